// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	Password string `gorm:"size:255;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
