package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Common person roles. The column is free-form so new roles can be
// introduced from the admin forms without a migration.
const (
	RoleVictim       = "victim"
	RoleSuspect      = "suspect"
	RoleWitness      = "witness"
	RoleInvestigator = "investigator"
)

// Person is an individual tied to a case.
type Person struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID      string `gorm:"type:uuid;not null;index" json:"caseId"`
	Case        *Case  `gorm:"foreignKey:CaseID" json:"case,omitempty"`
	Name        string `gorm:"not null" json:"name"`
	Role        string `gorm:"not null;index" json:"role"`
	Description string `gorm:"type:text;not null" json:"description"`
	Image       string `json:"image,omitempty"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
