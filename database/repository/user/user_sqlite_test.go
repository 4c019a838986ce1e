package userRepo

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"counselbook/database"
	"counselbook/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndGet(t *testing.T) {
	repo := NewSQLiteUserRepo(newTestDB(t))
	ctx := context.Background()

	u := &models.User{Username: "bob123", PasswordHash: "hash", SignupIP: "10.0.0.1"}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	got, err := repo.GetByUsername(ctx, "bob123")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "hash", got.PasswordHash)
	require.Equal(t, "10.0.0.1", got.SignupIP)
	require.False(t, got.CreatedAt.IsZero())
}

func TestDuplicateUsernameIsCaseInsensitive(t *testing.T) {
	repo := NewSQLiteUserRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "h", SignupIP: "ip"}))

	err := repo.Create(ctx, &models.User{Username: "Alice", PasswordHash: "h", SignupIP: "ip"})
	require.ErrorIs(t, err, ErrDuplicateUsername)
	err = repo.Create(ctx, &models.User{Username: "ALICE", PasswordHash: "h", SignupIP: "ip"})
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestGetByUsernameCaseInsensitive(t *testing.T) {
	repo := NewSQLiteUserRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice", PasswordHash: "h", SignupIP: "ip"}))

	got, err := repo.GetByUsername(ctx, "ALICE")
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)

	_, err = repo.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCountBySignupIP(t *testing.T) {
	repo := NewSQLiteUserRepo(newTestDB(t))
	ctx := context.Background()

	count, err := repo.CountBySignupIP(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, 0, count)

	require.NoError(t, repo.Create(ctx, &models.User{Username: "a1", PasswordHash: "h", SignupIP: "10.0.0.1"}))
	require.NoError(t, repo.Create(ctx, &models.User{Username: "a2", PasswordHash: "h", SignupIP: "10.0.0.1"}))
	require.NoError(t, repo.Create(ctx, &models.User{Username: "b1", PasswordHash: "h", SignupIP: "10.0.0.2"}))

	count, err = repo.CountBySignupIP(ctx, "10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}
