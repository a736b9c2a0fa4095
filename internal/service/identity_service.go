package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"auticonnect/internal/model"
	"auticonnect/internal/repository"
)

// IdentityService registers participants and answers role questions for
// every gated command.
type IdentityService struct {
	userRepo *repository.UserRepository
}

func NewIdentityService(userRepo *repository.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// Register upserts the user keyed by Telegram ID. Calling it again updates
// name and role in place, so /start stays safe to repeat.
func (s *IdentityService) Register(ctx context.Context, telegramID int64, name string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	name = strings.TrimSpace(name)
	return s.userRepo.Upsert(ctx, telegramID, name, role)
}

// Lookup returns the registered user or ErrNotRegistered.
func (s *IdentityService) Lookup(ctx context.Context, telegramID int64) (*model.User, error) {
	user, err := s.userRepo.FindByTelegramID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, err
	}
	return user, nil
}

// Authorize looks the caller up and checks the required role.
func (s *IdentityService) Authorize(ctx context.Context, telegramID int64, required model.Role) (*model.User, error) {
	user, err := s.Lookup(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user.Role != required {
		return nil, ErrForbidden
	}
	return user, nil
}
