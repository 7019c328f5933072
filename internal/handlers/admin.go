package handlers

import (
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/case-archive/internal/models"
	"github.com/diewo77/case-archive/internal/store"
)

// AdminHandler serves the password-gated admin pages. The Gate middleware
// guarantees every request arriving here carries a valid session marker.
type AdminHandler struct {
	DB    *gorm.DB
	Store *store.Store
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db, Store: store.New(db)}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	var cityCount, caseCount, fileCount, personCount int64
	h.DB.Model(&models.City{}).Count(&cityCount)
	h.DB.Model(&models.Case{}).Count(&caseCount)
	h.DB.Model(&models.File{}).Count(&fileCount)
	h.DB.Model(&models.Person{}).Count(&personCount)
	var recent []models.Case
	h.DB.Order("published_at desc").Limit(5).Find(&recent)
	renderTemplate(w, r, "admin/dashboard", map[string]any{
		"Stats": map[string]int64{
			"Cities": cityCount, "Cases": caseCount,
			"Files": fileCount, "People": personCount,
		},
		"RecentCases": recent,
	})
}

func (h *AdminHandler) Cities(w http.ResponseWriter, r *http.Request) {
	var cities []models.City
	if err := h.DB.Preload("Cases").Order("difficulty asc").Find(&cities).Error; err != nil {
		log.Printf("admin cities: %v", err)
	}
	flash, flashErr := flashFromQuery(r)
	renderTemplate(w, r, "admin/cities", map[string]any{"Cities": cities, "Flash": flash, "Error": flashErr})
}

func (h *AdminHandler) Cases(w http.ResponseWriter, r *http.Request) {
	var cases []models.Case
	if err := h.DB.Preload("City").Preload("Files").Preload("People").
		Order("published_at desc").Find(&cases).Error; err != nil {
		log.Printf("admin cases: %v", err)
	}
	flash, flashErr := flashFromQuery(r)
	renderTemplate(w, r, "admin/cases", map[string]any{"Cases": cases, "Flash": flash, "Error": flashErr})
}

func (h *AdminHandler) Files(w http.ResponseWriter, r *http.Request) {
	var files []models.File
	if err := h.DB.Preload("Case").Order("available_at desc").Find(&files).Error; err != nil {
		log.Printf("admin files: %v", err)
	}
	flash, flashErr := flashFromQuery(r)
	renderTemplate(w, r, "admin/files", map[string]any{"Files": files, "Flash": flash, "Error": flashErr})
}

func (h *AdminHandler) People(w http.ResponseWriter, r *http.Request) {
	var people []models.Person
	if err := h.DB.Preload("Case").Order("name asc").Find(&people).Error; err != nil {
		log.Printf("admin people: %v", err)
	}
	flash, flashErr := flashFromQuery(r)
	renderTemplate(w, r, "admin/people", map[string]any{"People": people, "Flash": flash, "Error": flashErr})
}

// --- form pages ---

func (h *AdminHandler) NewCity(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "admin/city_form", map[string]any{})
}

func (h *AdminHandler) EditCity(w http.ResponseWriter, r *http.Request) {
	var city models.City
	if err := h.DB.First(&city, "id = ?", r.PathValue("id")).Error; err != nil {
		h.formLoadError(w, r, err, "edit city")
		return
	}
	renderTemplate(w, r, "admin/city_form", map[string]any{"City": city})
}

func (h *AdminHandler) NewCase(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "admin/case_form", map[string]any{"Cities": h.cityOptions()})
}

func (h *AdminHandler) EditCase(w http.ResponseWriter, r *http.Request) {
	var c models.Case
	if err := h.DB.First(&c, "id = ?", r.PathValue("id")).Error; err != nil {
		h.formLoadError(w, r, err, "edit case")
		return
	}
	renderTemplate(w, r, "admin/case_form", map[string]any{"Case": c, "Cities": h.cityOptions()})
}

func (h *AdminHandler) NewFile(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "admin/file_form", map[string]any{"Cases": h.caseOptions()})
}

func (h *AdminHandler) EditFile(w http.ResponseWriter, r *http.Request) {
	var f models.File
	if err := h.DB.First(&f, "id = ?", r.PathValue("id")).Error; err != nil {
		h.formLoadError(w, r, err, "edit file")
		return
	}
	renderTemplate(w, r, "admin/file_form", map[string]any{"File": f, "Cases": h.caseOptions()})
}

func (h *AdminHandler) NewPerson(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "admin/person_form", map[string]any{"Cases": h.caseOptions()})
}

func (h *AdminHandler) EditPerson(w http.ResponseWriter, r *http.Request) {
	var p models.Person
	if err := h.DB.First(&p, "id = ?", r.PathValue("id")).Error; err != nil {
		h.formLoadError(w, r, err, "edit person")
		return
	}
	renderTemplate(w, r, "admin/person_form", map[string]any{"Person": p, "Cases": h.caseOptions()})
}

func (h *AdminHandler) cityOptions() []models.City {
	var cities []models.City
	h.DB.Order("name asc").Find(&cities)
	return cities
}

func (h *AdminHandler) caseOptions() []models.Case {
	var cases []models.Case
	h.DB.Order("published_at desc").Find(&cases)
	return cases
}

func (h *AdminHandler) formLoadError(w http.ResponseWriter, r *http.Request, err error, op string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		renderNotFound(w, r)
		return
	}
	log.Printf("%s: %v", op, err)
	renderNotFound(w, r)
}
