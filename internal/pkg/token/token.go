// Package token issues and validates HS256 access and refresh tokens.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bikeshop/shop-api/internal/core/domain"
)

// Lifetimes used when Config leaves them unset.
const (
	DefaultAccessTTL  = 60 * time.Minute
	DefaultRefreshTTL = 43200 * time.Minute
)

// Config is the explicit configuration of a Service.
type Config struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Claims is the payload of both token flavors; only the lifetime differs.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Pair is an access token issued together with its refresh token.
type Pair struct {
	Access  string
	Refresh string
}

// Service signs and validates tokens. It is safe for concurrent use.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a Service signing with cfg.Secret, applying the default TTLs
// for zero durations.
func New(cfg Config, opts ...Option) *Service {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	s := &Service{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateAccess issues a short-lived token that authenticates API calls.
func (s *Service) GenerateAccess(subject string, role domain.Role) (string, error) {
	return s.generate(subject, role, s.accessTTL)
}

// GenerateRefresh issues a long-lived token for Refresh. It differs from an
// access token only by its lifetime.
func (s *Service) GenerateRefresh(subject string, role domain.Role) (string, error) {
	return s.generate(subject, role, s.refreshTTL)
}

// GeneratePair issues an access and a refresh token for the same subject and role.
func (s *Service) GeneratePair(subject string, role domain.Role) (Pair, error) {
	access, err := s.GenerateAccess(subject, role)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := s.GenerateRefresh(subject, role)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}

// Validate checks signature and expiry. Every failure is reported as
// domain.ErrTokenDecode.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenDecode, err)
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: incomplete claims", domain.ErrTokenDecode)
	}
	return claims, nil
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token itself stays valid until it expires.
func (s *Service) Refresh(refreshToken string) (string, error) {
	claims, err := s.Validate(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidRefreshToken, err)
	}
	return s.GenerateAccess(claims.Subject, claims.Role)
}

func (s *Service) generate(subject string, role domain.Role, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTokenGeneration, err)
	}
	return signed, nil
}
