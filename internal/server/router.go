package server

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/case-archive/internal/auth"
	"github.com/diewo77/case-archive/internal/config"
	"github.com/diewo77/case-archive/internal/handlers"
	"github.com/diewo77/case-archive/internal/httpx"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			if _, werr := w.Write([]byte(`{"status":"degraded"}`)); werr != nil {
				_ = werr
			}
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// --- Static assets ---
	fs := http.FileServer(http.Dir("static"))
	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch filepath.Ext(r.URL.Path) {
		case ".css":
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		case ".js":
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		}
		if os.Getenv("DEV") != "1" {
			w.Header().Set("Cache-Control", "public, max-age=86400")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))

	// --- Public archive ---
	pages := handlers.NewPageHandler(db)
	mux.HandleFunc("GET /{$}", pages.Home)
	mux.HandleFunc("GET /cities/{id}", pages.City)
	mux.HandleFunc("GET /cases/{id}", pages.Case)
	mux.HandleFunc("GET /cases/{id}/people", pages.People)

	// --- Auth ---
	authHandler := handlers.NewAuthHandler(cfg)
	mux.HandleFunc("GET /admin/login", authHandler.LoginPage)
	mux.HandleFunc("POST /api/admin/login", authHandler.Login)
	mux.HandleFunc("POST /api/admin/logout", authHandler.Logout)

	// --- JSON API ---
	ch := handlers.NewCaseHandler(db)
	mux.HandleFunc("GET /api/cases", ch.List)
	mux.HandleFunc("POST /api/cases", ch.Create)
	mux.HandleFunc("GET /api/cases/{id}", ch.Get)
	mux.HandleFunc("PUT /api/cases/{id}", ch.Update)
	mux.HandleFunc("DELETE /api/cases/{id}", ch.Delete)

	fh := handlers.NewFileHandler(db)
	mux.HandleFunc("GET /api/files", fh.List)
	mux.HandleFunc("POST /api/files", fh.Create)

	ph := handlers.NewPersonHandler(db)
	mux.HandleFunc("GET /api/people", ph.List)
	mux.HandleFunc("POST /api/people", ph.Create)

	// --- Admin area (behind the session gate) ---
	admin := handlers.NewAdminHandler(db)
	mux.HandleFunc("GET /admin", admin.Dashboard)
	mux.HandleFunc("GET /admin/{$}", admin.Dashboard)

	mux.HandleFunc("GET /admin/cities", admin.Cities)
	mux.HandleFunc("GET /admin/cities/new", admin.NewCity)
	mux.HandleFunc("GET /admin/cities/{id}/edit", admin.EditCity)
	mux.HandleFunc("POST /admin/cities", admin.CreateCity)
	mux.HandleFunc("POST /admin/cities/{id}", admin.UpdateCity)
	mux.HandleFunc("POST /admin/cities/{id}/delete", admin.DeleteCity)

	mux.HandleFunc("GET /admin/cases", admin.Cases)
	mux.HandleFunc("GET /admin/cases/new", admin.NewCase)
	mux.HandleFunc("GET /admin/cases/{id}/edit", admin.EditCase)
	mux.HandleFunc("POST /admin/cases", admin.CreateCase)
	mux.HandleFunc("POST /admin/cases/{id}", admin.UpdateCase)
	mux.HandleFunc("POST /admin/cases/{id}/delete", admin.DeleteCase)

	mux.HandleFunc("GET /admin/files", admin.Files)
	mux.HandleFunc("GET /admin/files/new", admin.NewFile)
	mux.HandleFunc("GET /admin/files/{id}/edit", admin.EditFile)
	mux.HandleFunc("POST /admin/files", admin.CreateFile)
	mux.HandleFunc("POST /admin/files/{id}", admin.UpdateFile)
	mux.HandleFunc("POST /admin/files/{id}/delete", admin.DeleteFile)

	mux.HandleFunc("GET /admin/people", admin.People)
	mux.HandleFunc("GET /admin/people/new", admin.NewPerson)
	mux.HandleFunc("GET /admin/people/{id}/edit", admin.EditPerson)
	mux.HandleFunc("POST /admin/people", admin.CreatePerson)
	mux.HandleFunc("POST /admin/people/{id}", admin.UpdatePerson)
	mux.HandleFunc("POST /admin/people/{id}/delete", admin.DeletePerson)

	return withRecover(withLogging(auth.Gate(cfg.SessionSecret, mux)))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s: %v", r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
