package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File types rendered by the public timeline.
const (
	FileNarrative = "narrative"
	FileImage     = "image"
	FileInterview = "interview"
	FileDocument  = "document"
)

// File is an evidence item. AvailableAt controls public visibility: the
// item stays locked until that moment. It has no enforced relationship to
// the owning case's PublishedAt and may sit in the past or the future.
type File struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID      string    `gorm:"type:uuid;not null;index" json:"caseId"`
	Case        *Case     `gorm:"foreignKey:CaseID" json:"case,omitempty"`
	Type        string    `gorm:"not null" json:"type"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	AvailableAt time.Time `gorm:"not null;index" json:"availableAt"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.AvailableAt.IsZero() {
		f.AvailableAt = time.Now()
	}
	return nil
}
