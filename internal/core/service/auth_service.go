package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bikeshop/shop-api/internal/core/domain"
	"github.com/bikeshop/shop-api/internal/core/ports"
	"github.com/bikeshop/shop-api/internal/pkg/password"
	"github.com/bikeshop/shop-api/internal/pkg/token"
)

// TokenIssuer is the subset of the token service used for authentication.
type TokenIssuer interface {
	GeneratePair(subject string, role domain.Role) (token.Pair, error)
	Refresh(refreshToken string) (string, error)
}

// AuthService implements registration, login and access token refresh.
type AuthService struct {
	users  ports.UserRepository
	tokens TokenIssuer
	events ports.EventSink
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens TokenIssuer, events ports.EventSink, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, events: sinkOrNop(events), log: log}
}

// Register creates a User account and signs it in. Self-registration never
// grants the Admin role.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	user, err := s.createUser(ctx, in.Name, in.Email, in.Password, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	s.events.Emit(domain.NewEvent(domain.EventUserRegistered, user.ID, user))

	return &ports.AuthResult{User: user, AccessToken: pair.Access, RefreshToken: pair.Refresh}, nil
}

// Login checks the credentials and issues a fresh token pair. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, plain string) (*ports.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := password.Verify(plain, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("stored password hash is unreadable")
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.AuthResult{User: user, AccessToken: pair.Access, RefreshToken: pair.Refresh}, nil
}

// Refresh mints a new access token carrying the refresh token's subject and role.
func (s *AuthService) Refresh(_ context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrInvalidRefreshToken
	}
	return s.tokens.Refresh(refreshToken)
}

// EnsureAdmin creates an Admin account with the given credentials unless the
// email is already taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, plain string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != domain.RoleAdmin {
			s.log.Warn().Str("user_id", existing.ID).Msg("admin seed email belongs to a non-admin account")
		}
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	user, err := s.createUser(ctx, name, email, plain, domain.RoleAdmin)
	if errors.Is(err, domain.ErrDuplicate) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	s.log.Info().Str("user_id", user.ID).Msg("admin account created")
	return nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, plain string, role domain.Role) (*domain.User, error) {
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
