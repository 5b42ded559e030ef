package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ItemName string    `gorm:"not null" json:"item_name"`
	Quantity int       `gorm:"not null" json:"quantity"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
