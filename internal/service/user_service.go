package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shaktiaryan/wildlife-gallery/internal/entity"
	"github.com/shaktiaryan/wildlife-gallery/internal/repository"
)

// UserService backs the admin user-management screens.
type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*entity.UserWithStats, error) {
	return s.userRepo.GetAllUsers(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UserCount(ctx context.Context) (int, error) {
	return s.userRepo.CountUsers(ctx)
}

func (s *UserService) AdminCount(ctx context.Context) (int, error) {
	return s.userRepo.CountAdmins(ctx)
}

func (s *UserService) MakeAdmin(ctx context.Context, id int) error {
	return s.setAdmin(ctx, id, true)
}

func (s *UserService) RevokeAdmin(ctx context.Context, id int) error {
	return s.setAdmin(ctx, id, false)
}

func (s *UserService) setAdmin(ctx context.Context, id int, isAdmin bool) error {
	changed, err := s.userRepo.SetAdmin(ctx, id, isAdmin)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating admin flag for user %d", id)
		return err
	}
	if changed == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

// IsAdmin re-derives the role from the user row so session state can
// never hold a stale grant.
func (s *UserService) IsAdmin(ctx context.Context, id int) (bool, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin, nil
}

// DeleteUser removes the user and their feedback.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	changed, err := s.userRepo.DeleteUser(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error deleting user %d", id)
		return err
	}
	if changed == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}
