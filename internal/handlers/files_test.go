package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diewo77/case-archive/internal/models"
)

func TestFileCreateDefaultsAvailability(t *testing.T) {
	db := setupTestDB(t)
	h := NewFileHandler(db)
	c := models.Case{Title: "T", Summary: "S", Context: "C"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	w := httptest.NewRecorder()
	h.Create(w, jsonReq(t, http.MethodPost, "/api/files",
		`{"caseId":"`+c.ID+`","type":"narrative","title":"Opening report","content":"..."}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var f models.File
	if err := json.Unmarshal(w.Body.Bytes(), &f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Omitted availableAt means immediately available.
	if time.Since(f.AvailableAt) > time.Minute || f.AvailableAt.After(time.Now().Add(time.Minute)) {
		t.Fatalf("expected availableAt near now, got %v", f.AvailableAt)
	}
}

func TestFileCreateFutureAvailability(t *testing.T) {
	db := setupTestDB(t)
	h := NewFileHandler(db)
	c := models.Case{Title: "T", Summary: "S", Context: "C"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	future := time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339)
	w := httptest.NewRecorder()
	h.Create(w, jsonReq(t, http.MethodPost, "/api/files",
		`{"caseId":"`+c.ID+`","type":"document","title":"Sealed warrant","content":"...","availableAt":"`+future+`"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var f models.File
	if err := json.Unmarshal(w.Body.Bytes(), &f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !f.AvailableAt.After(time.Now().Add(48 * time.Hour)) {
		t.Fatalf("expected future availability, got %v", f.AvailableAt)
	}
}

func TestFileCreateRejectsUnknownType(t *testing.T) {
	db := setupTestDB(t)
	h := NewFileHandler(db)

	w := httptest.NewRecorder()
	h.Create(w, jsonReq(t, http.MethodPost, "/api/files",
		`{"caseId":"x","type":"hologram","title":"t","content":"c"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var n int64
	db.Model(&models.File{}).Count(&n)
	if n != 0 {
		t.Fatalf("rejected create must not insert, found %d rows", n)
	}
}

func TestFileCreateBadTimestamp(t *testing.T) {
	db := setupTestDB(t)
	h := NewFileHandler(db)

	w := httptest.NewRecorder()
	h.Create(w, jsonReq(t, http.MethodPost, "/api/files",
		`{"caseId":"x","type":"image","title":"t","content":"c","availableAt":"soonish"}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestFileListFiltersByCase(t *testing.T) {
	db := setupTestDB(t)
	h := NewFileHandler(db)
	a := models.Case{Title: "A", Summary: "S", Context: "C"}
	b := models.Case{Title: "B", Summary: "S", Context: "C"}
	for _, c := range []*models.Case{&a, &b} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	now := time.Now()
	files := []models.File{
		{CaseID: a.ID, Type: models.FileDocument, Title: "late", Content: "x", AvailableAt: now.Add(time.Hour)},
		{CaseID: a.ID, Type: models.FileDocument, Title: "early", Content: "x", AvailableAt: now.Add(-time.Hour)},
		{CaseID: b.ID, Type: models.FileDocument, Title: "other", Content: "x", AvailableAt: now},
	}
	for i := range files {
		if err := db.Create(&files[i]).Error; err != nil {
			t.Fatalf("seed file: %v", err)
		}
	}

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/files?caseId="+a.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var got []models.File
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 files for case A, got %d", len(got))
	}
	if got[0].Title != "early" || got[1].Title != "late" {
		t.Fatalf("expected chronological order, got %q then %q", got[0].Title, got[1].Title)
	}
}
