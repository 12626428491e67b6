// Package client talks to the BookTracker REST API and owns the client's
// local sqlite database.
package client

import (
	"context"

	"github.com/dmitrijs2005/booktracker/internal/client/models"
)

// LoginResult is the body of a successful login.
type LoginResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type Client interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Ping(ctx context.Context) error

	ListBooks(ctx context.Context, token string) ([]models.Book, error)
	CreateBook(ctx context.Context, token string, in models.BookInput) (int64, error)
	UpdateBook(ctx context.Context, token string, id int64, in models.BookInput) error
	DeleteBook(ctx context.Context, token string, id int64) error
}
