package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bikeshop/shop-api/internal/core/domain"
	"github.com/bikeshop/shop-api/internal/core/ports"
	"github.com/bikeshop/shop-api/internal/pkg/password"
)

type UserService struct {
	users  ports.UserRepository
	events ports.EventSink
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, events ports.EventSink, log zerolog.Logger) *UserService {
	return &UserService{users: users, events: sinkOrNop(events), log: log}
}

func (s *UserService) Me(ctx context.Context, userID string) (*domain.User, error) {
	if err := checkID(userID); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Update applies a partial profile change. A new password is re-hashed; an
// email already used by another account yields domain.ErrDuplicate.
func (s *UserService) Update(ctx context.Context, userID string, in ports.UpdateUserInput) error {
	if err := checkID(userID); err != nil {
		return err
	}

	patch := domain.UserPatch{Name: in.Name, Email: in.Email}
	if in.Password != nil {
		hash, err := password.Hash(*in.Password)
		if err != nil {
			return err
		}
		patch.PasswordHash = &hash
	}

	if patch.Empty() {
		_, err := s.users.FindByID(ctx, userID)
		return err
	}
	if err := s.users.Update(ctx, userID, patch); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("user updated")
	return nil
}

func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := checkID(userID); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("user deleted")
	s.events.Emit(domain.NewEvent(domain.EventUserDeleted, userID, nil))
	return nil
}
