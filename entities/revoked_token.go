package entities

import "time"

// RevokedToken is a logged-out access token, kept until it would have expired anyway.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:64" json:"jti"`
	UserID    string    `gorm:"size:64;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
