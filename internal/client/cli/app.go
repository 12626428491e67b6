package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/booktracker/internal/client/client"
	"github.com/dmitrijs2005/booktracker/internal/client/config"
	"github.com/dmitrijs2005/booktracker/internal/client/models"
	"github.com/dmitrijs2005/booktracker/internal/client/services"
	"github.com/dmitrijs2005/booktracker/internal/client/session"
	"github.com/dmitrijs2005/booktracker/internal/filex"
)

type App struct {
	authService services.AuthService
	bookService services.BookService
	user        *models.User
	reader      *bufio.Reader
	out         io.Writer
	closeFn     func() error
}

// NewApp opens the local database under c.DataDir and builds the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, config.DatabaseFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	store := session.NewStore(db)

	app := newApp(services.NewAuthService(api, store), services.NewBookService(api, store), os.Stdin, os.Stdout)
	app.closeFn = db.Close
	return app, nil
}

func newApp(as services.AuthService, bs services.BookService, in io.Reader, out io.Writer) *App {
	return &App{
		authService: as,
		bookService: bs,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

// Run restores a saved session and blocks in the REPL until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) error {
	if a.closeFn != nil {
		defer a.closeFn()
	}

	if err := a.restoreSession(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Welcome to BookTracker (type 'help' for commands)")
	if a.user != nil {
		fmt.Fprintf(a.out, "Logged in as %s.\n", a.user.Username)
	}

	runREPL(ctx, a, a.reader, a.out)
	return nil
}

func (a *App) restoreSession(ctx context.Context) error {
	s, err := a.authService.Current(ctx)
	switch {
	case err == nil:
		a.user = &s.User
	case errors.Is(err, client.ErrNotLoggedIn):
		a.user = nil
	default:
		return fmt.Errorf("error loading session: %w", err)
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return a.user.Username
}

// handleErr forgets the in-memory user when the server ended the session.
// The stored session was already cleared by the book service.
func (a *App) handleErr(err error) error {
	if errors.Is(err, client.ErrSessionExpired) || errors.Is(err, client.ErrNotLoggedIn) {
		a.user = nil
	}
	return err
}
