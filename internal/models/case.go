package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case statuses. Role strings on Person are deliberately free-form; these
// are closed because the admin forms and the public badges depend on them.
const (
	StatusActive   = "active"
	StatusArchived = "archived"
	StatusPending  = "pending"
)

// Case is a narrative investigative record. It owns Files (evidence) and
// People; deleting a case must remove both before the row itself.
type Case struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Summary     string    `gorm:"type:text;not null" json:"summary"`
	Context     string    `gorm:"type:text;not null" json:"context"`
	Status      string    `gorm:"not null;default:'active'" json:"status"`
	PublishedAt time.Time `gorm:"not null" json:"publishedAt"`
	CityID      *string   `gorm:"type:uuid;index" json:"cityId"`
	City        *City     `gorm:"foreignKey:CityID" json:"city,omitempty"`
	Files       []File    `gorm:"foreignKey:CaseID" json:"files,omitempty"`
	People      []Person  `gorm:"foreignKey:CaseID" json:"people,omitempty"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.PublishedAt.IsZero() {
		c.PublishedAt = time.Now()
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	return nil
}
