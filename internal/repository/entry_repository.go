package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ojtlog/internal/model"
)

// EntryRepository defines entry persistence operations.
type EntryRepository interface {
	Create(ctx context.Context, entry *model.Entry) error
	CreateBatch(ctx context.Context, entries []model.Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Entry, error)
	FindByToken(ctx context.Context, token string) (*model.Entry, error)
	FindByUserID(ctx context.Context, userID uint, verifiedOnly bool) ([]model.Entry, error)
	List(ctx context.Context) ([]model.Entry, error)
	// SetVerificationToken stores a freshly minted token on the entry,
	// overwriting any outstanding one. Re-requesting verification therefore
	// invalidates the previously issued link.
	SetVerificationToken(ctx context.Context, id uuid.UUID, token string) error
	// MarkVerified flips the entry to verified with a conditional update
	// keyed on verified = false and reports whether the write landed. Zero
	// rows affected means another redemption got there first; the guard
	// lives in the database so it holds across server processes.
	MarkVerified(ctx context.Context, id uuid.UUID, verifiedBy string, verifiedAt time.Time) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type entryRepository struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository.
func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

// Create creates a new entry.
func (r *entryRepository) Create(ctx context.Context, entry *model.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// CreateBatch creates multiple entries in a single statement.
func (r *entryRepository) CreateBatch(ctx context.Context, entries []model.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(entries, 100).Error
}

// FindByID finds an entry by ID.
func (r *entryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Entry, error) {
	var entry model.Entry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByToken finds an entry by its verification token. Tokens are unique
// across all entries.
func (r *entryRepository) FindByToken(ctx context.Context, token string) (*model.Entry, error) {
	var entry model.Entry
	if err := r.db.WithContext(ctx).Where("verification_token = ?", token).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByUserID lists a user's entries, newest work date first.
func (r *entryRepository) FindByUserID(ctx context.Context, userID uint, verifiedOnly bool) ([]model.Entry, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if verifiedOnly {
		q = q.Where("verified = ?", true)
	}
	var entries []model.Entry
	if err := q.Order("date DESC, created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// List lists all entries across users.
func (r *entryRepository) List(ctx context.Context) ([]model.Entry, error) {
	var entries []model.Entry
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SetVerificationToken overwrites the entry's token.
func (r *entryRepository) SetVerificationToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.db.WithContext(ctx).Model(&model.Entry{}).
		Where("id = ?", id).
		Update("verification_token", token).Error
}

// MarkVerified performs the one-shot verified transition.
func (r *entryRepository) MarkVerified(ctx context.Context, id uuid.UUID, verifiedBy string, verifiedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Entry{}).
		Where("id = ? AND verified = ?", id, false).
		Updates(map[string]interface{}{
			"verified":    true,
			"verified_by": verifiedBy,
			"verified_at": verifiedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Delete removes an entry.
func (r *entryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Entry{}).Error
}
