// Package session persists the logged-in user and their token in the local
// metadata table so a restarted client resumes the session.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/booktracker/internal/client/models"
	"github.com/dmitrijs2005/booktracker/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/booktracker/internal/common"
	"github.com/dmitrijs2005/booktracker/internal/dbx"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// ErrNoSession is returned by Load when nothing is saved.
var ErrNoSession = errors.New("no saved session")

type Session struct {
	Token string
	User  models.User
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load returns the saved session. A half-written session (token without user
// or the reverse) counts as none.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, notFoundAsNoSession(err)
	}
	rawUser, err := repo.Get(ctx, keyUser)
	if err != nil {
		return nil, notFoundAsNoSession(err)
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		return nil, fmt.Errorf("corrupt saved user: %w", err)
	}
	if len(token) == 0 {
		return nil, ErrNoSession
	}

	return &Session{Token: string(token), User: user}, nil
}

// Save replaces the stored session atomically.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, rawUser)
	})
}

// Clear removes the stored session. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, keyToken, keyUser)
	})
}

func notFoundAsNoSession(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return ErrNoSession
	}
	return err
}
