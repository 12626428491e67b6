// Package memory provides map-backed repositories with the same semantics
// as the PostgreSQL ones: unique username/email, owner-scoped books, ids
// assigned in insertion order. It backs tests and local development.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/booktracker/internal/common"
	"github.com/dmitrijs2005/booktracker/internal/dbx"
	"github.com/dmitrijs2005/booktracker/internal/server/models"
	"github.com/dmitrijs2005/booktracker/internal/server/repositories/books"
	"github.com/dmitrijs2005/booktracker/internal/server/repositories/users"
)

// Manager satisfies repomanager.RepositoryManager. The db handle passed to
// Users and Books is ignored; all state lives in the manager.
type Manager struct {
	users *UserStore
	books *BookStore
}

func NewManager() *Manager {
	return &Manager{users: NewUserStore(), books: NewBookStore()}
}

func (m *Manager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *Manager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *Manager) Books(dbx.DBTX) books.Repository { return m.books }

// BookStore exposes the underlying book store, e.g. to toggle
// UniqueRecommendation.
func (m *Manager) BookStore() *BookStore { return m.books }

type UserStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{rows: make(map[int64]models.User)}
}

func (s *UserStore) Create(_ context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.UserName == u.UserName {
			return nil, &common.ConflictError{Field: "username"}
		}
		if row.Email == u.Email {
			return nil, &common.ConflictError{Field: "email"}
		}
	}

	s.nextID++
	u.ID = s.nextID
	u.CreatedAt = time.Now()
	s.rows[u.ID] = *u
	return u, nil
}

func (s *UserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.Email == email {
			u := row
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (s *UserStore) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.rows {
		if row.UserName == username || row.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type BookStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Book

	// UniqueRecommendation mirrors a unique index on books.recommendation.
	UniqueRecommendation bool
}

func NewBookStore() *BookStore {
	return &BookStore{rows: make(map[int64]models.Book)}
}

func (s *BookStore) ListByUser(_ context.Context, userID int64) ([]*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.Book, 0)
	for _, row := range s.rows {
		if row.UserID == userID {
			b := cloneBook(row)
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *BookStore) Create(_ context.Context, b *models.Book) (*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkUnique(b); err != nil {
		return nil, err
	}

	s.nextID++
	now := time.Now()
	b.ID = s.nextID
	b.CreatedAt, b.UpdatedAt = now, now
	s.rows[b.ID] = cloneBook(*b)
	return b, nil
}

func (s *BookStore) Update(_ context.Context, b *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[b.ID]
	if !ok || row.UserID != b.UserID {
		return common.ErrorNotFound
	}
	if err := s.checkUnique(b); err != nil {
		return err
	}

	row.Title, row.Author = b.Title, b.Author
	row.Recommendation, row.PublishedYear = b.Recommendation, b.PublishedYear
	row.UpdatedAt = time.Now()
	s.rows[b.ID] = cloneBook(row)
	return nil
}

func (s *BookStore) Delete(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok || row.UserID != userID {
		return common.ErrorNotFound
	}
	delete(s.rows, id)
	return nil
}

// checkUnique must be called with s.mu held.
func (s *BookStore) checkUnique(b *models.Book) error {
	if !s.UniqueRecommendation || b.Recommendation == nil {
		return nil
	}
	for id, row := range s.rows {
		if id == b.ID || row.Recommendation == nil {
			continue
		}
		if *row.Recommendation == *b.Recommendation {
			return &common.ConflictError{Field: "recommendation"}
		}
	}
	return nil
}

func cloneBook(b models.Book) models.Book {
	if b.Recommendation != nil {
		r := *b.Recommendation
		b.Recommendation = &r
	}
	if b.PublishedYear != nil {
		y := *b.PublishedYear
		b.PublishedYear = &y
	}
	return b
}
