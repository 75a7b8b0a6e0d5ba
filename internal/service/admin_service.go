package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "ojtlog/internal/errors"
	"ojtlog/internal/model"
	"ojtlog/internal/repository"
)

// AdminService handles administrative operations. Callers are gated on
// the admin claim at the router; the service trusts that check.
type AdminService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	ListEntries(ctx context.Context) ([]model.Entry, error)
	// DeleteUser removes a user and cascades to their entries and
	// supervisors.
	DeleteUser(ctx context.Context, id uint) error
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	userRepo  repository.UserRepository
	entryRepo repository.EntryRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(userRepo repository.UserRepository, entryRepo repository.EntryRepository) AdminService {
	return &adminService{userRepo: userRepo, entryRepo: entryRepo}
}

// ListUsers lists all users.
func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// ListEntries lists all entries across users.
func (s *adminService) ListEntries(ctx context.Context) ([]model.Entry, error) {
	return s.entryRepo.List(ctx)
}

// DeleteUser removes a user and everything they own.
func (s *adminService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	return s.userRepo.DeleteCascade(ctx, id)
}

// DeleteEntry removes a single entry.
func (s *adminService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if _, err := s.entryRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrEntryNotFound
		}
		return fmt.Errorf("find entry: %w", err)
	}
	return s.entryRepo.Delete(ctx, id)
}
