// Package model holds the domain types shared between the storage, service
// and transport layers.
package model

import "time"

// Bookmark is a saved link.
//
// ID is zero until the database assigns one. CreatedAt is set by the
// database at insert time and never changes afterwards.
type Bookmark struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	URL       string    `json:"url" db:"url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
