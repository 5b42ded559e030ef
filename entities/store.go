package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DayHours struct {
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsOpen    bool   `json:"is_open"`
}

// BusinessHours maps a weekday name to its opening window. Stored as JSON, never evaluated.
type BusinessHours map[string]DayHours

func (b BusinessHours) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	raw, err := json.Marshal(b)
	return string(raw), err
}

func (b *BusinessHours) Scan(value any) error {
	return scanJSON(value, b)
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(l)
	return string(raw), err
}

func (l *StringList) Scan(value any) error {
	return scanJSON(value, l)
}

func scanJSON(value any, dest any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported json column value")
	}
}

type Store struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name          string        `gorm:"not null" json:"name"`
	Description   string        `gorm:"size:1000" json:"description,omitempty"`
	Address       string        `gorm:"size:500" json:"address,omitempty"`
	ImageURL      string        `gorm:"size:500" json:"image_url,omitempty"`
	PhoneNumber   string        `json:"phone_number,omitempty"`
	Website       string        `gorm:"size:500" json:"website,omitempty"`
	BusinessHours BusinessHours `gorm:"type:text" json:"business_hours,omitempty"`
	Categories    StringList    `gorm:"type:text" json:"categories"`
	IsActive      bool          `gorm:"not null" json:"is_active"`
	IsVerified    bool          `gorm:"not null" json:"is_verified"`

	User  *User  `gorm:"foreignKey:UserID" json:"-"`
	Foods []Food `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

func (s *Store) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
