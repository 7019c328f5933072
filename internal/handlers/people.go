package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/diewo77/case-archive/internal/httpx"
	"github.com/diewo77/case-archive/internal/models"
	"github.com/diewo77/case-archive/internal/validation"
)

// PersonHandler is the JSON API for people tied to cases.
type PersonHandler struct{ DB *gorm.DB }

func NewPersonHandler(db *gorm.DB) *PersonHandler { return &PersonHandler{DB: db} }

func (h *PersonHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Order("name asc")
	if caseID := r.URL.Query().Get("caseId"); caseID != "" {
		q = q.Where("case_id = ?", caseID)
	}
	if role := r.URL.Query().Get("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	var people []models.Person
	if err := q.Find(&people).Error; err != nil {
		log.Printf("list people: %v", err)
		httpx.StoreError(w, "list_people")
		return
	}
	httpx.JSON(w, http.StatusOK, people)
}

func (h *PersonHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CaseID      string `json:"caseId"`
		Name        string `json:"name"`
		Role        string `json:"role"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("caseId", input.CaseID, v)
	validation.Required("name", input.Name, v)
	validation.Required("role", input.Role, v)
	validation.Required("description", input.Description, v)
	if field, _, bad := v.FirstOf("caseId", "name", "role", "description"); bad {
		httpx.JSONError(w, http.StatusBadRequest, field+"_required", v)
		return
	}
	p := models.Person{CaseID: input.CaseID, Name: input.Name, Role: input.Role,
		Description: input.Description, Image: input.Image}
	if err := h.DB.Create(&p).Error; err != nil {
		log.Printf("create person: %v", err)
		httpx.StoreError(w, "create_person")
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}
