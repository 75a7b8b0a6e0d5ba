package service

import (
	"context"
	"fmt"

	apperrors "ojtlog/internal/errors"
	"ojtlog/internal/model"
	"ojtlog/internal/repository"
)

// SupervisorService manages a user's supervisor bank.
type SupervisorService interface {
	CreateSupervisor(ctx context.Context, userID uint, in SupervisorInput) (*model.Supervisor, error)
	ListSupervisors(ctx context.Context, userID uint) ([]model.Supervisor, error)
}

type supervisorService struct {
	supervisorRepo repository.SupervisorRepository
}

// NewSupervisorService creates a new supervisor service.
func NewSupervisorService(supervisorRepo repository.SupervisorRepository) SupervisorService {
	return &supervisorService{supervisorRepo: supervisorRepo}
}

// CreateSupervisor saves a contact to the caller's bank.
func (s *supervisorService) CreateSupervisor(ctx context.Context, userID uint, in SupervisorInput) (*model.Supervisor, error) {
	if !in.CertificationLevel.Valid() {
		return nil, apperrors.ErrInvalidCertificationLevel
	}
	supervisor := &model.Supervisor{
		UserID:             userID,
		Name:               in.Name,
		Email:              in.Email,
		Phone:              in.Phone,
		CertificationLevel: in.CertificationLevel,
		Company:            in.Company,
	}
	if err := s.supervisorRepo.Create(ctx, supervisor); err != nil {
		return nil, fmt.Errorf("create supervisor: %w", err)
	}
	return supervisor, nil
}

// ListSupervisors lists the caller's bank, newest first.
func (s *supervisorService) ListSupervisors(ctx context.Context, userID uint) ([]model.Supervisor, error) {
	return s.supervisorRepo.FindByUserID(ctx, userID)
}
