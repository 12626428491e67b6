// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/booktracker/internal/common"
	"github.com/dmitrijs2005/booktracker/internal/dbx"
	"github.com/dmitrijs2005/booktracker/internal/logging"
	"github.com/dmitrijs2005/booktracker/internal/server/auth"
	"github.com/dmitrijs2005/booktracker/internal/server/config"
	"github.com/dmitrijs2005/booktracker/internal/server/models"
	"github.com/dmitrijs2005/booktracker/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned by Register for passwords bcrypt cannot hash.
var ErrPasswordTooLong = fmt.Errorf("%w: password must be at most 72 bytes", common.ErrorValidation)

// LoginResult is returned by a successful Login.
type LoginResult struct {
	Token string
	User  *models.User
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a token
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	logger        logging.Logger
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
		logger:        logger.With("module", "users"),
	}
}

// Register creates a user. Username and email are trimmed; all three fields
// are required. The password is used as given. The existence check and the insert share one transaction, and
// a unique violation from the insert is reported the same way as a found
// duplicate: common.ErrorAlreadyExists with no indication of the field.
func (s *UserService) Register(ctx context.Context, username, email, password string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return ErrPasswordTooLong
		}
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return common.ErrorInternal
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.ExistsByUsernameOrEmail(ctx, username, email)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrorAlreadyExists
		}

		_, err = repo.Create(ctx, &models.User{UserName: username, Email: email, PasswordHash: hash})
		return err
	})

	switch {
	case err == nil:
		s.logger.Info(ctx, "user registered", "username", username)
		return nil
	case errors.Is(err, common.ErrorAlreadyExists):
		return common.ErrorAlreadyExists
	default:
		s.logger.Error(ctx, "error registering user", "error", err)
		return common.ErrorInternal
	}
}

// Login verifies credentials and returns a signed token together with the
// user. Unknown email and wrong password both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "error loading user", "error", err)
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.UserName, s.jwtSecret, s.tokenValidity)
	if err != nil {
		s.logger.Error(ctx, "error signing token", "error", err)
		return nil, common.ErrorInternal
	}

	return &LoginResult{Token: token, User: user}, nil
}

// Authenticate verifies a bearer token and returns the caller's identity.
// Errors are common.ErrTokenExpired or common.ErrInvalidToken.
func (s *UserService) Authenticate(token string) (auth.Identity, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
