package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Description  string    `gorm:"size:500" json:"description,omitempty"`
	IconURL      string    `gorm:"size:500" json:"icon_url,omitempty"`
	IsActive     bool      `gorm:"not null" json:"is_active"`
	DisplayOrder int       `gorm:"not null" json:"display_order"`
	Timestamp
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
