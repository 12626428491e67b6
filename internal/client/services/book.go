package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/booktracker/internal/client/client"
	"github.com/dmitrijs2005/booktracker/internal/client/models"
	"github.com/dmitrijs2005/booktracker/internal/client/session"
)

// BookService manages the logged-in user's books. Every call uses the saved
// token; when the server rejects it the session is cleared and
// client.ErrSessionExpired is returned.
type BookService interface {
	List(ctx context.Context) ([]models.Book, error)
	Add(ctx context.Context, in models.BookInput) (int64, error)
	Edit(ctx context.Context, id int64, in models.BookInput) error
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	client client.Client
	store  SessionStore
}

func NewBookService(c client.Client, store SessionStore) BookService {
	return &bookService{client: c, store: store}
}

func (b *bookService) List(ctx context.Context) ([]models.Book, error) {
	var out []models.Book
	err := b.withToken(ctx, func(token string) error {
		var err error
		out, err = b.client.ListBooks(ctx, token)
		return err
	})
	return out, err
}

func (b *bookService) Add(ctx context.Context, in models.BookInput) (int64, error) {
	var id int64
	err := b.withToken(ctx, func(token string) error {
		var err error
		id, err = b.client.CreateBook(ctx, token, in)
		return err
	})
	return id, err
}

func (b *bookService) Edit(ctx context.Context, id int64, in models.BookInput) error {
	return b.withToken(ctx, func(token string) error {
		return b.client.UpdateBook(ctx, token, id, in)
	})
}

func (b *bookService) Delete(ctx context.Context, id int64) error {
	return b.withToken(ctx, func(token string) error {
		return b.client.DeleteBook(ctx, token, id)
	})
}

// withToken runs fn with the saved token and performs the forced logout.
func (b *bookService) withToken(ctx context.Context, fn func(token string) error) error {
	s, err := b.store.Load(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return client.ErrNotLoggedIn
		}
		return err
	}

	err = fn(s.Token)
	if errors.Is(err, client.ErrSessionExpired) {
		if clearErr := b.store.Clear(ctx); clearErr != nil {
			return fmt.Errorf("%w (clearing session: %v)", err, clearErr)
		}
	}
	return err
}
