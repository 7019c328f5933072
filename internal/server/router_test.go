package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/case-archive/internal/auth"
	"github.com/diewo77/case-archive/internal/config"
	"github.com/diewo77/case-archive/internal/models"
)

func testRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.City{}, &models.Case{}, &models.File{}, &models.Person{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := config.Config{AdminPassword: "hunter2", SessionSecret: "testsecret"}
	return New(db, cfg), db
}

func TestHealth(t *testing.T) {
	h, _ := testRouter(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}

func TestAdminRedirectsAnonymous(t *testing.T) {
	h, _ := testRouter(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/cases", nil))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/admin/login" {
		t.Fatalf("expected redirect to login, got %q", loc)
	}
}

func TestAdminJSONClientGets401(t *testing.T) {
	h, _ := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/cases", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestAdminAllowsValidSession(t *testing.T) {
	h, _ := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{
		Name:  auth.CookieName,
		Value: auth.MintToken(time.Now().Add(time.Hour), "testsecret"),
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestLoginPageOpenToAnonymous(t *testing.T) {
	h, _ := testRouter(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}

func TestLoginPageBouncesAuthenticated(t *testing.T) {
	h, _ := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	req.AddCookie(&http.Cookie{
		Name:  auth.CookieName,
		Value: auth.MintToken(time.Now().Add(time.Hour), "testsecret"),
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/admin" {
		t.Fatalf("expected bounce to /admin, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestExpiredSessionRejected(t *testing.T) {
	h, _ := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{
		Name:  auth.CookieName,
		Value: auth.MintToken(time.Now().Add(-time.Hour), "testsecret"),
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect for expired session, got %d", w.Code)
	}
}

// End to end through the mounted routes: login, create, fetch, delete.
func TestCaseLifecycleViaAPI(t *testing.T) {
	h, db := testRouter(t)

	login := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"password":"hunter2"}`))
	login.Header.Set("Content-Type", "application/json")
	lw := httptest.NewRecorder()
	h.ServeHTTP(lw, login)
	if lw.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d body=%s", lw.Code, lw.Body.String())
	}

	create := httptest.NewRequest(http.MethodPost, "/api/cases", strings.NewReader(`{"title":"Harbor","summary":"s","context":"c"}`))
	create.Header.Set("Content-Type", "application/json")
	cw := httptest.NewRecorder()
	h.ServeHTTP(cw, create)
	if cw.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", cw.Code, cw.Body.String())
	}
	var c models.Case
	if err := json.Unmarshal(cw.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}

	gw := httptest.NewRecorder()
	h.ServeHTTP(gw, httptest.NewRequest(http.MethodGet, "/api/cases/"+c.ID, nil))
	if gw.Code != http.StatusOK {
		t.Fatalf("get: expected 200 got %d", gw.Code)
	}

	dw := httptest.NewRecorder()
	h.ServeHTTP(dw, httptest.NewRequest(http.MethodDelete, "/api/cases/"+c.ID, nil))
	if dw.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", dw.Code)
	}
	var n int64
	db.Model(&models.Case{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected empty table after delete, got %d rows", n)
	}
}
