package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ojtlog/internal/model"
)

// SupervisorRepository defines supervisor persistence operations.
type SupervisorRepository interface {
	Create(ctx context.Context, supervisor *model.Supervisor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Supervisor, error)
	FindByUserID(ctx context.Context, userID uint) ([]model.Supervisor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type supervisorRepository struct {
	db *gorm.DB
}

// NewSupervisorRepository creates a new supervisor repository.
func NewSupervisorRepository(db *gorm.DB) SupervisorRepository {
	return &supervisorRepository{db: db}
}

// Create creates a new supervisor.
func (r *supervisorRepository) Create(ctx context.Context, supervisor *model.Supervisor) error {
	return r.db.WithContext(ctx).Create(supervisor).Error
}

// FindByID finds a supervisor by ID.
func (r *supervisorRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Supervisor, error) {
	var supervisor model.Supervisor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&supervisor).Error; err != nil {
		return nil, err
	}
	return &supervisor, nil
}

// FindByUserID lists one user's supervisor bank.
func (r *supervisorRepository) FindByUserID(ctx context.Context, userID uint) ([]model.Supervisor, error) {
	var supervisors []model.Supervisor
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&supervisors).Error; err != nil {
		return nil, err
	}
	return supervisors, nil
}

// Delete removes a supervisor.
func (r *supervisorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Supervisor{}).Error
}
