package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// newUsersDB opens a private in-memory database with a users table shaped
// like the server's: username and email are unique.
func newUsersDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE users (
		id       INTEGER PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email    TEXT NOT NULL UNIQUE
	)`)
	require.NoError(t, err)
	return db
}

func usernames(t *testing.T, db *sql.DB) []string {
	t.Helper()

	rows, err := db.Query(`SELECT username FROM users ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		out = append(out, s)
	}
	require.NoError(t, rows.Err())
	return out
}

func insertUser(ctx context.Context, tx DBTX, username, email string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO users(username, email) VALUES (?, ?)`, username, email)
	return err
}

func TestWithTx_CommitsRegistration(t *testing.T) {
	db := newUsersDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`,
			"alice", "alice@example.com").Scan(&n); err != nil {
			return err
		}
		require.Zero(t, n)
		return insertUser(ctx, tx, "alice", "alice@example.com")
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, usernames(t, db))
}

func TestWithTx_RollsBackOnUniqueViolation(t *testing.T) {
	db := newUsersDB(t)
	require.NoError(t, insertUser(context.Background(), db, "alice", "alice@example.com"))

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := insertUser(ctx, tx, "bob", "bob@example.com"); err != nil {
			return err
		}
		// same email as alice
		return insertUser(ctx, tx, "carol", "alice@example.com")
	})

	require.Error(t, err)
	assert.Equal(t, []string{"alice"}, usernames(t, db), "bob must not survive the failed transaction")
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db := newUsersDB(t)
	errExists := errors.New("already exists")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, insertUser(ctx, tx, "alice", "alice@example.com"))
		return errExists
	})

	require.ErrorIs(t, err, errExists)
	assert.Empty(t, usernames(t, db))
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	db := newUsersDB(t)

	assert.PanicsWithValue(t, "handler crashed", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, insertUser(ctx, tx, "alice", "alice@example.com"))
			panic("handler crashed")
		})
	})
	assert.Empty(t, usernames(t, db))
}

func TestWithTx_BeginError(t *testing.T) {
	db := newUsersDB(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
}

func TestWithTx_CommitErrorIsReturned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	errCommit := errors.New("connection lost")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errCommit)

	err = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return insertUser(ctx, tx, "alice", "alice@example.com")
	})

	require.ErrorIs(t, err, errCommit)
	assert.NoError(t, mock.ExpectationsWereMet())
}
