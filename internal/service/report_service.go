package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ojtlog/internal/errors"
	"ojtlog/internal/model"
	"ojtlog/internal/repository"
)

// Report is the export document: the technician's identity, their
// verified entries, and per-method totals over exactly those entries.
// Unverified entries never appear in a report.
type Report struct {
	TechnicianName string                           `json:"technician_name"`
	EmployeeNumber string                           `json:"employee_number,omitempty"`
	Email          string                           `json:"email"`
	Entries        []model.Entry                    `json:"entries"`
	Totals         map[model.Method]decimal.Decimal `json:"totals"`
}

// ReportService assembles export documents.
type ReportService interface {
	Build(ctx context.Context, userID uint) (*Report, error)
	WriteCSV(w io.Writer, report *Report) error
}

type reportService struct {
	userRepo  repository.UserRepository
	entryRepo repository.EntryRepository
}

// NewReportService creates a new report service.
func NewReportService(userRepo repository.UserRepository, entryRepo repository.EntryRepository) ReportService {
	return &reportService{userRepo: userRepo, entryRepo: entryRepo}
}

// Build assembles the report for one user.
func (s *reportService) Build(ctx context.Context, userID uint) (*Report, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	entries, err := s.entryRepo.FindByUserID(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("list verified entries: %w", err)
	}

	return &Report{
		TechnicianName: user.Name,
		EmployeeNumber: user.EmployeeNumber,
		Email:          user.Email,
		Entries:        entries,
		Totals:         AggregateTotals(entries),
	}, nil
}

// WriteCSV renders the report as CSV: one row per entry, then a totals
// row per method. Hours are formatted to one decimal place, the display
// convention; stored values are not rounded.
func (s *reportService) WriteCSV(w io.Writer, report *Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "location", "method", "hours", "verified_by", "verified_at"}); err != nil {
		return err
	}
	for _, e := range report.Entries {
		verifiedAt := ""
		if e.VerifiedAt != nil {
			verifiedAt = e.VerifiedAt.Format("2006-01-02")
		}
		row := []string{
			e.Date.Format("2006-01-02"),
			e.Location,
			e.Method.Display(),
			e.Hours.StringFixed(1),
			e.VerifiedBy,
			verifiedAt,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	if err := cw.Write([]string{}); err != nil {
		return err
	}
	for _, m := range model.Methods {
		if err := cw.Write([]string{"total", "", m.Display(), report.Totals[m].StringFixed(1), "", ""}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
