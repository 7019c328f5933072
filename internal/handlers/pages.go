package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/case-archive/internal/disclosure"
	"github.com/diewo77/case-archive/internal/models"
	"github.com/diewo77/case-archive/internal/notes"
)

// PageHandler serves the public, read-only archive.
type PageHandler struct{ DB *gorm.DB }

func NewPageHandler(db *gorm.DB) *PageHandler { return &PageHandler{DB: db} }

// Home lists the archive: newest cases first, cities by difficulty.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	var cases []models.Case
	if err := h.DB.Preload("City").Order("published_at desc").Find(&cases).Error; err != nil {
		log.Printf("home cases: %v", err)
	}
	var cities []models.City
	if err := h.DB.Order("difficulty asc").Find(&cities).Error; err != nil {
		log.Printf("home cities: %v", err)
	}
	renderTemplate(w, r, "index", map[string]any{"Cases": cases, "Cities": cities})
}

// City shows a city dossier with its cases, newest first.
func (h *PageHandler) City(w http.ResponseWriter, r *http.Request) {
	var city models.City
	err := h.DB.Preload("Cases", func(db *gorm.DB) *gorm.DB {
		return db.Order("published_at desc")
	}).First(&city, "id = ?", r.PathValue("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			renderNotFound(w, r)
			return
		}
		log.Printf("city page: %v", err)
		renderNotFound(w, r)
		return
	}
	renderTemplate(w, r, "city", map[string]any{"City": city})
}

// Case renders the full case page: summary, people, and the evidence
// timeline partitioned at request time. The personal notes widget gets its
// client-side storage key here.
func (h *PageHandler) Case(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCase(w, r)
	if !ok {
		return
	}
	timeline := disclosure.Partition(c.Files, time.Now())
	renderTemplate(w, r, "case", map[string]any{
		"Case":       c,
		"Available":  timeline.Available,
		"Restricted": timeline.Restricted,
		"NotesKey":   notes.Key(c.ID),
	})
}

// People renders the full roster for a case.
func (h *PageHandler) People(w http.ResponseWriter, r *http.Request) {
	c, ok := h.loadCase(w, r)
	if !ok {
		return
	}
	renderTemplate(w, r, "people", map[string]any{"Case": c, "People": c.People})
}

func (h *PageHandler) loadCase(w http.ResponseWriter, r *http.Request) (models.Case, bool) {
	var c models.Case
	err := h.DB.Preload("Files").Preload("People").Preload("City").
		First(&c, "id = ?", r.PathValue("id")).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("case page: %v", err)
		}
		renderNotFound(w, r)
		return c, false
	}
	return c, true
}
