package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/case-archive/internal/httpx"
	"github.com/diewo77/case-archive/internal/models"
	"github.com/diewo77/case-archive/internal/store"
	"github.com/diewo77/case-archive/internal/validation"
)

// CaseHandler is the JSON API for cases.
type CaseHandler struct {
	DB    *gorm.DB
	Store *store.Store
}

func NewCaseHandler(db *gorm.DB) *CaseHandler {
	return &CaseHandler{DB: db, Store: store.New(db)}
}

func (h *CaseHandler) List(w http.ResponseWriter, r *http.Request) {
	var cases []models.Case
	if err := h.DB.Preload("Files").Preload("People").Order("published_at desc").Find(&cases).Error; err != nil {
		log.Printf("list cases: %v", err)
		httpx.StoreError(w, "list_cases")
		return
	}
	httpx.JSON(w, http.StatusOK, cases)
}

func (h *CaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Title   string  `json:"title"`
		Summary string  `json:"summary"`
		Context string  `json:"context"`
		Status  string  `json:"status"`
		CityID  *string `json:"cityId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("title", input.Title, v)
	validation.Required("summary", input.Summary, v)
	validation.Required("context", input.Context, v)
	validation.OneOf("status", input.Status, []string{models.StatusActive, models.StatusArchived, models.StatusPending}, v)
	if field, _, bad := v.FirstOf("title", "summary", "context", "status"); bad {
		httpx.JSONError(w, http.StatusBadRequest, field+"_required", v)
		return
	}
	c := models.Case{Title: input.Title, Summary: input.Summary, Context: input.Context, Status: input.Status, CityID: normalizeCityID(input.CityID)}
	if err := h.DB.Create(&c).Error; err != nil {
		log.Printf("create case: %v", err)
		httpx.StoreError(w, "create_case")
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *CaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	var c models.Case
	if err := h.DB.Preload("Files").Preload("People").First(&c, "id = ?", r.PathValue("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.NotFound(w, "case")
			return
		}
		log.Printf("get case: %v", err)
		httpx.StoreError(w, "get_case")
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Update applies a partial patch: only fields present and non-empty in the
// body are written. Empty strings count as not provided; that is the one
// merge policy used across the JSON and form entry points.
func (h *CaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var c models.Case
	if err := h.DB.First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.NotFound(w, "case")
			return
		}
		log.Printf("load case %s: %v", id, err)
		httpx.StoreError(w, "get_case")
		return
	}
	var input struct {
		Title   string  `json:"title"`
		Summary string  `json:"summary"`
		Context string  `json:"context"`
		Status  string  `json:"status"`
		CityID  *string `json:"cityId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.OneOf("status", input.Status, []string{models.StatusActive, models.StatusArchived, models.StatusPending}, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	if input.Title != "" {
		c.Title = input.Title
	}
	if input.Summary != "" {
		c.Summary = input.Summary
	}
	if input.Context != "" {
		c.Context = input.Context
	}
	if input.Status != "" {
		c.Status = input.Status
	}
	if input.CityID != nil {
		c.CityID = normalizeCityID(input.CityID)
	}
	// Last write wins: no version check, a concurrent update is silently
	// overwritten.
	if err := h.DB.Save(&c).Error; err != nil {
		log.Printf("update case %s: %v", id, err)
		httpx.StoreError(w, "update_case")
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

// Delete removes a case together with its files and people in one atomic
// unit, so an interrupted delete never leaves orphaned children.
func (h *CaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Store.DeleteCaseCascade(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.NotFound(w, "case")
			return
		}
		log.Printf("delete case %s: %v", id, err)
		httpx.StoreError(w, "delete_case")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "case deleted"})
}

// normalizeCityID maps the "none" sentinel the city select sends, and empty
// strings, to a detached case.
func normalizeCityID(cityID *string) *string {
	if cityID == nil || *cityID == "" || *cityID == "none" {
		return nil
	}
	return cityID
}
