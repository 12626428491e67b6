// Package services contains application services for the BookTracker client.
// This file defines the authentication service: register, login, logout and
// access to the saved session.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/booktracker/internal/client/client"
	"github.com/dmitrijs2005/booktracker/internal/client/models"
	"github.com/dmitrijs2005/booktracker/internal/client/session"
)

// SessionStore is implemented by *session.Store.
type SessionStore interface {
	Load(ctx context.Context) (*session.Session, error)
	Save(ctx context.Context, s *session.Session) error
	Clear(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create an account on the server.
//   - Login: authenticate and persist the session locally.
//   - Logout: drop the local session (tokens are stateless server-side).
//   - Current: the saved session, or client.ErrNotLoggedIn.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*session.Session, error)
}

type authService struct {
	client client.Client
	store  SessionStore
}

func NewAuthService(c client.Client, store SessionStore) AuthService {
	return &authService{client: c, store: store}
}

func (a *authService) Register(ctx context.Context, username, email, password string) error {
	return a.client.Register(ctx, username, email, password)
}

// Login replaces any previously saved session with the new one.
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	res, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := a.store.Save(ctx, &session.Session{Token: res.Token, User: res.User}); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &res.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) Current(ctx context.Context) (*session.Session, error) {
	s, err := a.store.Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return nil, client.ErrNotLoggedIn
	}
	return s, err
}
