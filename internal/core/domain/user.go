package domain

import "time"

// User is a registered account holder. Users are created at
// registration and never mutated or deleted afterwards.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Argon2id, never expose
	APIKey       string    `json:"-"` // Opaque bearer credential, shown once at registration
	CreatedAt    time.Time `json:"created_at"`
}
