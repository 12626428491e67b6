package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/booktracker/internal/common"
	"github.com/dmitrijs2005/booktracker/internal/dbx"
	"github.com/dmitrijs2005/booktracker/internal/logging"
	"github.com/dmitrijs2005/booktracker/internal/server/auth"
	"github.com/dmitrijs2005/booktracker/internal/server/config"
	"github.com/dmitrijs2005/booktracker/internal/server/models"
	booksrepo "github.com/dmitrijs2005/booktracker/internal/server/repositories/books"
	"github.com/dmitrijs2005/booktracker/internal/server/repositories/memory"
	"github.com/dmitrijs2005/booktracker/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/booktracker/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newUserService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{SecretKey: "k", TokenValidity: time.Hour}
	return NewUserService(db, rm, cfg, logging.NewNopLogger())
}

type fakeUsersRepo struct {
	exists    bool
	existsErr error

	createErr error
	created   *models.User

	getOut *models.User
	getErr error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = 1
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(context.Context, string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) ExistsByUsernameOrEmail(context.Context, string, string) (bool, error) {
	return f.exists, f.existsErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	b booksrepo.Repository

	// handles records what each Users call was bound to.
	handles []dbx.DBTX
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository {
	m.handles = append(m.handles, db)
	return m.u
}
func (m *fakeRepoManager) Books(dbx.DBTX) booksrepo.Repository { return m.b }

// --- Register ---

func TestRegister_Success_RunsInTransaction(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{u: &fakeUsersRepo{}}
	s := newUserService(t, db, rm)

	require.NoError(t, s.Register(context.Background(), "  alice ", " alice@example.com ", "pw123"))

	require.NotNil(t, rm.u.created)
	assert.Equal(t, "alice", rm.u.created.UserName)
	assert.Equal(t, "alice@example.com", rm.u.created.Email)
	assert.True(t, strings.HasPrefix(rm.u.created.PasswordHash, "$2"))
	assert.True(t, auth.CheckPassword(rm.u.created.PasswordHash, "pw123"))

	require.Len(t, rm.handles, 1)
	_, isTx := rm.handles[0].(*sql.Tx)
	assert.True(t, isTx, "users repo must be bound to the transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{}})

	cases := [][3]string{
		{"", "a@x.io", "pw"},
		{"alice", "  ", "pw"},
		{"alice", "a@x.io", ""},
	}
	for _, c := range cases {
		err := s.Register(context.Background(), c[0], c[1], c[2])
		assert.ErrorIs(t, err, common.ErrorValidation, "input %q", c)
	}
}

func TestRegister_PasswordTooLong(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{}})

	err := s.Register(context.Background(), "alice", "a@x.io", strings.Repeat("x", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestRegister_Exists_RollsBack(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{u: &fakeUsersRepo{exists: true}}
	s := newUserService(t, db, rm)

	err := s.Register(context.Background(), "alice", "a@x.io", "pw")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Nil(t, rm.u.created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegister_InsertRaceMapsToConflict(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	rm := &fakeRepoManager{u: &fakeUsersRepo{createErr: &common.ConflictError{Field: "email"}}}
	s := newUserService(t, db, rm)

	err := s.Register(context.Background(), "alice", "a@x.io", "pw")
	assert.Equal(t, common.ErrorAlreadyExists, err, "field must not leak")
}

func TestRegister_InternalErrors(t *testing.T) {
	db, mock := newSQLMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{existsErr: errBoom{}}})
	assert.ErrorIs(t, s.Register(context.Background(), "alice", "a@x.io", "pw"), common.ErrorInternal)

	db2, mock2 := newSQLMockDB(t)
	mock2.ExpectBegin().WillReturnError(errors.New("no conn"))

	s2 := newUserService(t, db2, &fakeRepoManager{u: &fakeUsersRepo{}})
	assert.ErrorIs(t, s2.Register(context.Background(), "alice", "a@x.io", "pw"), common.ErrorInternal)
}

// --- Login ---

func TestLogin_Flows(t *testing.T) {
	hash, err := auth.HashPassword("right")
	require.NoError(t, err)
	user := &models.User{ID: 7, UserName: "alice", Email: "a@x.io", PasswordHash: hash}

	db, _ := newSQLMockDB(t)

	t.Run("missing fields", func(t *testing.T) {
		s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{}})
		_, err := s.Login(context.Background(), " ", "x")
		assert.ErrorIs(t, err, common.ErrorValidation)
		_, err = s.Login(context.Background(), "a@x.io", "")
		assert.ErrorIs(t, err, common.ErrorValidation)
	})

	t.Run("unknown email", func(t *testing.T) {
		s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{getErr: common.ErrorNotFound}})
		_, err := s.Login(context.Background(), "ghost@x.io", "x")
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})

	t.Run("wrong password", func(t *testing.T) {
		s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{getOut: user}})
		_, err := s.Login(context.Background(), "a@x.io", "wrong")
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})

	t.Run("db error", func(t *testing.T) {
		s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{getErr: errBoom{}}})
		_, err := s.Login(context.Background(), "a@x.io", "right")
		assert.ErrorIs(t, err, common.ErrorInternal)
	})

	t.Run("success", func(t *testing.T) {
		s := newUserService(t, db, &fakeRepoManager{u: &fakeUsersRepo{getOut: user}})
		res, err := s.Login(context.Background(), "a@x.io", "right")
		require.NoError(t, err)
		assert.Equal(t, int64(7), res.User.ID)

		claims, err := auth.ParseToken(res.Token, []byte("k"))
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)

		id, err := s.Authenticate(res.Token)
		require.NoError(t, err)
		assert.Equal(t, auth.Identity{UserID: 7, Username: "alice"}, id)
	})
}

func TestAuthenticate_Errors(t *testing.T) {
	db, _ := newSQLMockDB(t)
	s := newUserService(t, db, memory.NewManager())

	_, err := s.Authenticate("not-a-token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	expired, err := auth.GenerateToken(1, "alice", []byte("k"), -time.Minute)
	require.NoError(t, err)
	_, err = s.Authenticate(expired)
	assert.ErrorIs(t, err, common.ErrTokenExpired)

	foreign, err := auth.GenerateToken(1, "alice", []byte("other"), time.Hour)
	require.NoError(t, err)
	_, err = s.Authenticate(foreign)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
