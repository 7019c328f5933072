package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// City groups cases by location. Difficulty is an ordinal 1-5 used to
// order the public archive from beginner to veteran territory.
type City struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Difficulty  int    `gorm:"not null" json:"difficulty"`
	Description string `gorm:"type:text" json:"description"`
	Cases       []Case `gorm:"foreignKey:CityID" json:"cases,omitempty"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *City) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
