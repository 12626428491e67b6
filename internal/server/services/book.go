package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/booktracker/internal/common"
	"github.com/dmitrijs2005/booktracker/internal/logging"
	"github.com/dmitrijs2005/booktracker/internal/server/models"
	"github.com/dmitrijs2005/booktracker/internal/server/repositories/repomanager"
)

// BookInput carries the writable fields of a book.
type BookInput struct {
	Title          string
	Author         string
	Recommendation *string
	PublishedYear  *int
}

// BookService implements owner-scoped book management. Every operation takes
// the caller's user id; rows owned by someone else behave as if absent.
type BookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewBookService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *BookService {
	return &BookService{db: db, repomanager: m, logger: logger.With("module", "books")}
}

func (s *BookService) List(ctx context.Context, userID int64) ([]*models.Book, error) {
	list, err := s.repomanager.Books(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, s.translate(ctx, "error listing books", err)
	}
	return list, nil
}

// Create stores a new book for userID and returns its id.
func (s *BookService) Create(ctx context.Context, userID int64, in BookInput) (int64, error) {
	book, err := newBook(userID, in)
	if err != nil {
		return 0, err
	}

	created, err := s.repomanager.Books(s.db).Create(ctx, book)
	if err != nil {
		return 0, s.translate(ctx, "error creating book", err)
	}
	return created.ID, nil
}

func (s *BookService) Update(ctx context.Context, userID, bookID int64, in BookInput) error {
	book, err := newBook(userID, in)
	if err != nil {
		return err
	}
	if bookID <= 0 {
		return common.ErrorNotFound
	}
	book.ID = bookID

	if err := s.repomanager.Books(s.db).Update(ctx, book); err != nil {
		return s.translate(ctx, "error updating book", err)
	}
	return nil
}

func (s *BookService) Delete(ctx context.Context, userID, bookID int64) error {
	if bookID <= 0 {
		return common.ErrorNotFound
	}
	if err := s.repomanager.Books(s.db).Delete(ctx, bookID, userID); err != nil {
		return s.translate(ctx, "error deleting book", err)
	}
	return nil
}

// translate keeps not-found and conflict errors (with their field) and turns
// everything else into common.ErrorInternal after logging it.
func (s *BookService) translate(ctx context.Context, msg string, err error) error {
	var conflict *common.ConflictError
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrorNotFound
	case errors.As(err, &conflict):
		return conflict
	case errors.Is(err, common.ErrorAlreadyExists):
		return common.ErrorAlreadyExists
	default:
		s.logger.Error(ctx, msg, "error", err)
		return common.ErrorInternal
	}
}

// newBook validates in and normalises the optional fields: a blank
// recommendation or a zero year is stored as NULL.
func newBook(userID int64, in BookInput) (*models.Book, error) {
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	if title == "" || author == "" {
		return nil, common.ErrorValidation
	}

	b := &models.Book{UserID: userID, Title: title, Author: author}

	if in.Recommendation != nil {
		if r := strings.TrimSpace(*in.Recommendation); r != "" {
			b.Recommendation = &r
		}
	}
	if in.PublishedYear != nil && *in.PublishedYear != 0 {
		y := *in.PublishedYear
		b.PublishedYear = &y
	}

	return b, nil
}
