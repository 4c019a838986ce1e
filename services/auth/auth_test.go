package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	userRepo "counselbook/database/repository/user"
	"counselbook/models"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	key := strings.ToLower(user.Username)
	if _, exists := r.users[key]; exists {
		return userRepo.ErrDuplicateUsername
	}
	user.ID = r.nextID
	r.nextID++
	r.users[key] = user
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, exists := r.users[strings.ToLower(username)]
	if !exists {
		return nil, userRepo.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) CountBySignupIP(_ context.Context, ip string) (int, error) {
	count := 0
	for _, u := range r.users {
		if u.SignupIP == ip {
			count++
		}
	}
	return count, nil
}

// fakeHasher keeps tests fast; production wiring uses Argon2id.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(password, hash string) (bool, error) {
	return hash == "hashed:"+password, nil
}

func newTestService() (*DefaultAuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	svc := &DefaultAuthService{
		Repo:             repo,
		Hasher:           fakeHasher{},
		MaxAccountsPerIP: 3,
		Logger:           zap.NewNop(),
	}
	return svc, repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Bob123", "longenough1", "10.0.0.1")
	require.NoError(t, err)
	require.Equal(t, "bob123", user.Username)
	require.NotContains(t, user.PasswordHash, "longenough1")

	got, err := svc.Login(ctx, "bob123", "longenough1")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	// Login is case-insensitive on the username.
	got, err = svc.Login(ctx, "BOB123", "longenough1")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"username too short", "ab", "longenough1"},
		{"username too long", strings.Repeat("a", 31), "longenough1"},
		{"password too short", "bob123", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.password, "ip")
			var vErr ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "longenough1", "10.0.0.1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Alice", "longenough1", "10.0.0.2")
	require.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestRegisterIPAccountCap(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, name := range []string{"user1", "user2", "user3"} {
		_, err := svc.Register(ctx, name, "longenough1", "10.0.0.1")
		require.NoError(t, err)
	}

	_, err := svc.Register(ctx, "user4", "longenough1", "10.0.0.1")
	require.ErrorIs(t, err, ErrAccountLimit)

	// A different origin is unaffected.
	_, err = svc.Register(ctx, "user4", "longenough1", "10.0.0.2")
	require.NoError(t, err)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "longenough1", "ip")
	require.NoError(t, err)

	// Unknown user and wrong password yield the identical error value.
	_, unknownErr := svc.Login(ctx, "nobody", "longenough1")
	_, wrongPassErr := svc.Login(ctx, "alice", "wrongpassword")

	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	require.True(t, errors.Is(unknownErr, wrongPassErr) || unknownErr.Error() == wrongPassErr.Error())
}
