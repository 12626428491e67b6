package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/booktracker/internal/client/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_CreatesLocalDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := &config.Config{ServerURL: "http://127.0.0.1:1", DataDir: dir, RequestTimeout: time.Second}

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, a.closeFn)

	_, err = os.Stat(filepath.Join(dir, config.DatabaseFile))
	assert.NoError(t, err)

	// a fresh database has no saved session
	require.NoError(t, a.restoreSession(context.Background()))
	assert.False(t, a.isLoggedIn())

	require.NoError(t, a.closeFn())
}

func TestNewApp_BadDataDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain-file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := NewApp(context.Background(), &config.Config{DataDir: filepath.Join(file, "sub")})
	require.Error(t, err)
}
