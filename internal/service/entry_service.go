package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	apperrors "ojtlog/internal/errors"
	"ojtlog/internal/model"
	"ojtlog/internal/repository"
)

// EntryInput carries the fields for one new entry.
type EntryInput struct {
	Date     time.Time
	Location string
	Method   model.Method
	Hours    decimal.Decimal
}

// EntryService handles entry creation, listing, and totals.
type EntryService interface {
	// CreateEntries validates and persists one or more entries for the
	// caller. Every input is validated before anything is written.
	CreateEntries(ctx context.Context, userID uint, inputs []EntryInput) ([]model.Entry, error)
	ListEntries(ctx context.Context, userID uint, verifiedOnly bool) ([]model.Entry, error)
	Totals(ctx context.Context, userID uint, verifiedOnly bool) (map[model.Method]decimal.Decimal, error)
}

type entryService struct {
	entryRepo repository.EntryRepository
}

// NewEntryService creates a new entry service.
func NewEntryService(entryRepo repository.EntryRepository) EntryService {
	return &entryService{entryRepo: entryRepo}
}

// CreateEntries validates and persists a batch of entries.
func (s *entryService) CreateEntries(ctx context.Context, userID uint, inputs []EntryInput) ([]model.Entry, error) {
	entries := make([]model.Entry, 0, len(inputs))
	for _, in := range inputs {
		if err := validateEntryInput(in); err != nil {
			return nil, err
		}
		entries = append(entries, model.Entry{
			UserID:   userID,
			Date:     in.Date,
			Location: in.Location,
			Method:   in.Method,
			Hours:    in.Hours,
			Verified: false,
		})
	}

	if err := s.entryRepo.CreateBatch(ctx, entries); err != nil {
		return nil, fmt.Errorf("create entries: %w", err)
	}
	return entries, nil
}

// ListEntries lists the caller's entries.
func (s *entryService) ListEntries(ctx context.Context, userID uint, verifiedOnly bool) ([]model.Entry, error) {
	return s.entryRepo.FindByUserID(ctx, userID, verifiedOnly)
}

// Totals returns per-method hour sums for the caller's entries.
func (s *entryService) Totals(ctx context.Context, userID uint, verifiedOnly bool) (map[model.Method]decimal.Decimal, error) {
	entries, err := s.entryRepo.FindByUserID(ctx, userID, verifiedOnly)
	if err != nil {
		return nil, err
	}
	return AggregateTotals(entries), nil
}

// AggregateTotals sums hours per method over the given entries. Every
// known method is present in the result, zero when absent from the input,
// so consumers can render a stable column set. Pure function, no rounding
// beyond what the inputs carry.
func AggregateTotals(entries []model.Entry) map[model.Method]decimal.Decimal {
	totals := make(map[model.Method]decimal.Decimal, len(model.Methods))
	for _, m := range model.Methods {
		totals[m] = decimal.Zero
	}
	for _, e := range entries {
		totals[e.Method] = totals[e.Method].Add(e.Hours)
	}
	return totals
}

func validateEntryInput(in EntryInput) error {
	if !in.Method.Valid() {
		return apperrors.ErrInvalidMethod
	}
	if in.Hours.LessThanOrEqual(decimal.Zero) {
		return apperrors.ErrInvalidHours
	}
	return nil
}
