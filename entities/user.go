package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleStore UserRole = "STORE"
	RoleAdmin UserRole = "ADMIN"
)

// ParseUserRole accepts any casing, the mobile client sends "user" and "store".
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleStore:
		return RoleStore, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

type User struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email                string     `gorm:"uniqueIndex;not null" json:"email"`
	Password             string     `gorm:"not null" json:"-"`
	Name                 string     `gorm:"not null" json:"name"`
	Role                 UserRole   `gorm:"type:varchar(16);not null" json:"role"`
	Avatar               *string    `json:"avatar,omitempty"`
	PhoneNumber          *string    `json:"phone_number,omitempty"`
	NotificationSettings *string    `gorm:"type:text" json:"notification_settings,omitempty"`
	IsActive             bool       `gorm:"not null" json:"is_active"`
	EmailVerified        bool       `gorm:"not null" json:"email_verified"`
	LastLogin            *time.Time `json:"last_login,omitempty"`

	Store     *Store     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders    []Order    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CartItems []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	ensureID(&u.ID)
	return nil
}
