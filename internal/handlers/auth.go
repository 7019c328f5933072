package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/diewo77/case-archive/internal/auth"
	"github.com/diewo77/case-archive/internal/config"
	"github.com/diewo77/case-archive/internal/httpx"
)

// AuthHandler gates the admin area behind the single shared secret.
type AuthHandler struct{ Cfg config.Config }

func NewAuthHandler(cfg config.Config) *AuthHandler { return &AuthHandler{Cfg: cfg} }

// LoginPage renders the admin login form. The Gate middleware already
// bounced authenticated visitors to /admin before this runs.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "admin/login", nil)
}

// Login handles POST /api/admin/login with body {"password": "..."}.
// Wrong password and absent password get the same message; an unconfigured
// secret is the one distinct condition, and it fails closed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if !auth.Configured(h.Cfg.AdminPassword, h.Cfg.AdminPasswordHash) {
		httpx.JSONError(w, http.StatusInternalServerError, "authentication_not_configured", nil)
		return
	}
	if !auth.CheckSecret(body.Password, h.Cfg.AdminPassword, h.Cfg.AdminPasswordHash) {
		httpx.JSONError(w, http.StatusUnauthorized, "incorrect_password", nil)
		return
	}
	auth.CreateSession(w, time.Now(), h.Cfg.SessionSecret)
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "authenticated"})
}

// Logout clears the session marker immediately.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
