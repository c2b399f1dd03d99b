// Package models defines the persisted entities, read-side views and the
// application error taxonomy.
package models

import "time"

// User is a registered account. Name is the display name used to attribute
// likes and comments.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthorSummary is the subset of a user joined into feed items.
type AuthorSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
