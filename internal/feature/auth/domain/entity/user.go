// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account.
// It holds the authentication credential plus the profile attributes
// exposed through the account endpoints.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored and the hash never leaves
	// the repository/usecase layers.
	PasswordHash string `gorm:"size:255;not null"`

	// DisplayName is the public name shown alongside the account.
	DisplayName string `gorm:"size:100;not null"`

	// Bio is an optional free-form profile description.
	Bio string `gorm:"size:1000"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}
