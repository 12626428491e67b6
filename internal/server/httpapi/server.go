// Package httpapi exposes the BookTracker REST API: registration, login,
// owner-scoped book management and a health probe.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/booktracker/internal/logging"
	"github.com/dmitrijs2005/booktracker/internal/server/auth"
	"github.com/dmitrijs2005/booktracker/internal/server/models"
	"github.com/dmitrijs2005/booktracker/internal/server/services"
)

// UserService is the subset of services.UserService used by the API.
type UserService interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Authenticate(token string) (auth.Identity, error)
}

// BookService is the subset of services.BookService used by the API.
type BookService interface {
	List(ctx context.Context, userID int64) ([]*models.Book, error)
	Create(ctx context.Context, userID int64, in services.BookInput) (int64, error)
	Update(ctx context.Context, userID, bookID int64, in services.BookInput) error
	Delete(ctx context.Context, userID, bookID int64) error
}

// Pinger reports database reachability for /health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
	maxBodyBytes      = 1 << 20
)

type Server struct {
	address         string
	logger          logging.Logger
	users           UserService
	books           BookService
	db              Pinger
	corsOrigins     []string
	shutdownTimeout time.Duration
}

func NewServer(address string, l logging.Logger, us UserService, bs BookService, db Pinger,
	corsOrigins []string, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         address,
		logger:          l.With("module", "http_server"),
		users:           us,
		books:           bs,
		db:              db,
		corsOrigins:     corsOrigins,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully, giving
// in-flight requests up to the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")

		sctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownErr
}
