// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It owns zero or more tasks.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is an optional display name.
	Name *string `gorm:"size:100"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt digest of the user's password.
	// It is never returned in any response.
	PasswordHash string `gorm:"column:password_hash;size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// Public returns a copy of the user without the password hash.
func (u *User) Public() *User {
	out := *u
	out.PasswordHash = ""
	return &out
}
