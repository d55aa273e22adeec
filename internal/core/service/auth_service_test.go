package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikeshop/shop-api/internal/core/domain"
	"github.com/bikeshop/shop-api/internal/core/ports"
	"github.com/bikeshop/shop-api/internal/infrastructure/db/memory"
	"github.com/bikeshop/shop-api/internal/pkg/password"
	"github.com/bikeshop/shop-api/internal/pkg/token"
)

func newAuthFixture() (*AuthService, *memory.UserRepository, *token.Service, *recordingSink) {
	users := memory.NewUserRepository()
	tokens := token.New(token.Config{Secret: "test-secret", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	sink := &recordingSink{}
	return NewAuthService(users, tokens, sink, nopLog), users, tokens, sink
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, users, tokens, sink := newAuthFixture()
	ctx := context.Background()

	res, err := svc.Register(ctx, ports.RegisterInput{Name: "John Doe", Email: "john@example.com", Password: "password123"})
	require.NoError(t, err)

	assert.Equal(t, "John Doe", res.User.Name)
	assert.Equal(t, "john@example.com", res.User.Email)
	assert.Equal(t, domain.RoleUser, res.User.Role)
	assert.NotEqual(t, "password123", res.User.PasswordHash)

	stored, err := users.FindByEmail(ctx, "john@example.com")
	require.NoError(t, err)
	ok, err := password.Verify("password123", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	access, err := tokens.Validate(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, access.Subject)
	assert.Equal(t, domain.RoleUser, access.Role)

	_, err = tokens.Validate(res.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, []domain.EventType{domain.EventUserRegistered}, sink.types())
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()
	in := ports.RegisterInput{Name: "John Doe", Email: "john@example.com", Password: "password123"}

	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, tokens, _ := newAuthFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, ports.RegisterInput{Name: "John Doe", Email: "john@example.com", Password: "password123"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		res, err := svc.Login(ctx, "john@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, res.User.ID)
		claims, err := tokens.Validate(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "john@example.com", "wrong-password")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_Login_CorruptHash(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &domain.User{ID: newID(), Email: "x@example.com", PasswordHash: "garbage", Role: domain.RoleUser}))

	_, err := svc.Login(ctx, "x@example.com", "password123")
	assert.ErrorIs(t, err, domain.ErrPasswordVerify)
}

func TestAuthService_Refresh(t *testing.T) {
	svc, _, tokens, _ := newAuthFixture()
	ctx := context.Background()

	reg, err := svc.Register(ctx, ports.RegisterInput{Name: "John Doe", Email: "john@example.com", Password: "password123"})
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, reg.RefreshToken)
	require.NoError(t, err)
	claims, err := tokens.Validate(access)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.Subject)

	_, err = svc.Refresh(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)

	_, err = svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidRefreshToken)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpass"))

	all, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.RoleAdmin, all[0].Role)

	res, err := svc.Login(ctx, "admin@example.com", "adminpass")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)
}
