// Package models defines server-side data models persisted in the database.
package models

import "time"

// Book is a row of a user's reading list. Recommendation and PublishedYear
// are optional and stored as NULL when absent.
type Book struct {
	ID             int64
	UserID         int64
	Title          string
	Author         string
	Recommendation *string
	PublishedYear  *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
