package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type FoodStatus string

const (
	FoodAvailable FoodStatus = "AVAILABLE"
	FoodReserved  FoodStatus = "RESERVED"
	FoodSoldOut   FoodStatus = "SOLD_OUT"
	FoodExpired   FoodStatus = "EXPIRED"
)

var foodTransitions = map[FoodStatus][]FoodStatus{
	FoodAvailable: {FoodReserved, FoodSoldOut, FoodExpired},
	FoodReserved:  {FoodAvailable, FoodSoldOut, FoodExpired},
	FoodSoldOut:   {FoodAvailable},
	FoodExpired:   {},
}

func ParseFoodStatus(s string) (FoodStatus, bool) {
	status := FoodStatus(s)
	_, ok := foodTransitions[status]
	return status, ok
}

// CanTransitionTo reports whether a listing may move from s to next.
// EXPIRED is terminal; staying in the same status is always allowed.
func (s FoodStatus) CanTransitionTo(next FoodStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range foodTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Food struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `gorm:"size:1000" json:"description,omitempty"`
	OriginalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"original_price"`
	CurrentPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null;index" json:"current_price"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	ExpiryDate    time.Time       `gorm:"not null;index" json:"expiry_date"`
	ImageURL      string          `gorm:"size:500" json:"image_url,omitempty"`
	Status        FoodStatus      `gorm:"type:varchar(16);not null;index" json:"status"`
	PostedAt      time.Time       `gorm:"not null" json:"posted_at"`
	IsActive      bool            `gorm:"not null;index" json:"is_active"`

	Store    *Store    `json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Tags     []FoodTag `gorm:"foreignKey:FoodID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

func (f *Food) BeforeCreate(tx *gorm.DB) error {
	ensureID(&f.ID)
	if f.PostedAt.IsZero() {
		f.PostedAt = time.Now().UTC()
	}
	return nil
}

func (f *Food) TagNames() []string {
	names := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		names = append(names, t.Tag)
	}
	return names
}

type FoodTag struct {
	FoodID uuid.UUID `gorm:"type:uuid;primaryKey" json:"food_id"`
	Tag    string    `gorm:"primaryKey;size:64;index" json:"tag"`
}
