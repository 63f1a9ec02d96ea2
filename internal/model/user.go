package model

import "time"

// User has a password hash, a Google identity, or both. OAuth-only
// accounts carry an empty PasswordHash.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	GoogleID     string    `json:"-"`
	Premium      bool      `json:"premium"`
	LastLoginAt  time.Time `json:"last_login_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
