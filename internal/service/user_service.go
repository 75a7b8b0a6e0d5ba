package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "ojtlog/internal/errors"
	"ojtlog/internal/model"
	"ojtlog/internal/repository"
)

// UserService exposes profile operations for the authenticated user.
type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, name, employeeNumber string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetProfile returns the caller's own record.
func (s *userService) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateProfile updates display name and employee number. Email and the
// admin flag are not editable here.
func (s *userService) UpdateProfile(ctx context.Context, userID uint, name, employeeNumber string) (*model.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	user.EmployeeNumber = employeeNumber
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
