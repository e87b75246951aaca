// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is a registered account. Password holds the bcrypt hash, never plaintext.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;size:255;not null"` // stored lower-cased
	Password  string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
