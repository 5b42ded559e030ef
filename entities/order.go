package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

// Only the pending state is known; fulfillment and its transitions are not modelled yet.
const OrderPending OrderStatus = "PENDING"

func ParseOrderStatus(s string) (OrderStatus, bool) {
	if OrderStatus(s) == OrderPending {
		return OrderPending, true
	}
	return "", false
}

type Order struct {
	ID     uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	Status OrderStatus `gorm:"type:varchar(16);not null" json:"status"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	ensureID(&o.ID)
	if o.Status == "" {
		o.Status = OrderPending
	}
	return nil
}
