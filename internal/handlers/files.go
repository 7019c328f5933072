package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/case-archive/internal/httpx"
	"github.com/diewo77/case-archive/internal/models"
	"github.com/diewo77/case-archive/internal/validation"
)

// FileHandler is the JSON API for evidence files.
type FileHandler struct{ DB *gorm.DB }

func NewFileHandler(db *gorm.DB) *FileHandler { return &FileHandler{DB: db} }

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	q := h.DB.Order("available_at asc")
	if caseID := r.URL.Query().Get("caseId"); caseID != "" {
		q = q.Where("case_id = ?", caseID)
	}
	var files []models.File
	if err := q.Find(&files).Error; err != nil {
		log.Printf("list files: %v", err)
		httpx.StoreError(w, "list_files")
		return
	}
	httpx.JSON(w, http.StatusOK, files)
}

func (h *FileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		CaseID      string `json:"caseId"`
		Type        string `json:"type"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		AvailableAt string `json:"availableAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("caseId", input.CaseID, v)
	validation.Required("type", input.Type, v)
	validation.Required("title", input.Title, v)
	validation.Required("content", input.Content, v)
	validation.OneOf("type", input.Type, []string{models.FileNarrative, models.FileImage, models.FileInterview, models.FileDocument}, v)
	if field, _, bad := v.FirstOf("caseId", "type", "title", "content"); bad {
		httpx.JSONError(w, http.StatusBadRequest, field+"_required", v)
		return
	}
	availableAt := time.Now()
	if input.AvailableAt != "" {
		t, ok := parseWhen(input.AvailableAt)
		if !ok {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_available_at", nil)
			return
		}
		availableAt = t
	}
	f := models.File{CaseID: input.CaseID, Type: input.Type, Title: input.Title,
		Description: input.Description, Content: input.Content, AvailableAt: availableAt}
	if err := h.DB.Create(&f).Error; err != nil {
		log.Printf("create file: %v", err)
		httpx.StoreError(w, "create_file")
		return
	}
	httpx.JSON(w, http.StatusCreated, f)
}
