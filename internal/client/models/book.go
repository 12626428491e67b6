// Package models defines client-side data models used by the BookTracker CLI.
package models

// Book mirrors the server's book JSON. Nil Recommendation or PublishedYear
// means the value is absent (JSON null).
type Book struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	Recommendation *string `json:"recommendation"`
	PublishedYear  *int    `json:"published_year"`
	UserID         int64   `json:"user_id"`
}

// BookInput is the body of create and update requests.
type BookInput struct {
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	Recommendation *string `json:"recommendation,omitempty"`
	PublishedYear  *int    `json:"published_year,omitempty"`
}
