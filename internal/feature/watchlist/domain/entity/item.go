// Package entity defines the domain models for the watchlist feature.
package entity

import "time"

// Item is one symbol on a user's watchlist.
type Item struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_watchlist_user_symbol"`
	Symbol    string    `gorm:"size:32;not null;uniqueIndex:idx_watchlist_user_symbol"`
	CreatedAt time.Time // insertion order
}

// TableName overrides the gorm table name.
func (Item) TableName() string {
	return "watchlist_items"
}
