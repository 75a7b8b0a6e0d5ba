package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "ojtlog/internal/errors"
	"ojtlog/internal/model"
	"ojtlog/internal/notify"
	"ojtlog/internal/repository"
)

// SupervisorInput carries the fields for a supervisor created inline with
// a verification request.
type SupervisorInput struct {
	Name               string
	Email              string
	Phone              string
	CertificationLevel model.CertificationLevel
	Company            string
}

// SupervisorRef selects the verifier for a request: either an existing
// supervisor from the caller's bank or a fresh one to persist first.
// Exactly one of the two fields is set.
type SupervisorRef struct {
	SupervisorID *uuid.UUID
	New          *SupervisorInput
}

// VerificationRequestResult is what the issuer hands back to the owner.
// The URL is always populated, even when delivery failed, so a human can
// share the link manually.
type VerificationRequestResult struct {
	Entry      *model.Entry      `json:"entry"`
	Supervisor *model.Supervisor `json:"supervisor"`
	URL        string            `json:"verification_url"`
	Delivered  bool              `json:"delivered"`
}

// VerificationDetails is the snapshot shown to a supervisor before they
// commit. Only the fields they need to review: the work being attested
// and who claims to have done it.
type VerificationDetails struct {
	Date           time.Time    `json:"date"`
	Location       string       `json:"location"`
	Method         model.Method `json:"method"`
	Hours          string       `json:"hours"`
	TechnicianName string       `json:"technician_name"`
	EmployeeNumber string       `json:"employee_number,omitempty"`
}

// VerificationService owns the entry verification lifecycle: it is the
// only place that mints tokens and the only place that flips an entry
// from unverified to verified.
type VerificationService interface {
	RequestVerification(ctx context.Context, userID uint, entryID uuid.UUID, ref SupervisorRef) (*VerificationRequestResult, error)
	GetByToken(ctx context.Context, token string) (*VerificationDetails, error)
	Redeem(ctx context.Context, token, verifierName string) (*model.Entry, error)
}

type verificationService struct {
	entryRepo      repository.EntryRepository
	supervisorRepo repository.SupervisorRepository
	userRepo       repository.UserRepository
	dispatcher     notify.Dispatcher
	baseURL        string
}

// NewVerificationService creates a new verification service.
func NewVerificationService(
	entryRepo repository.EntryRepository,
	supervisorRepo repository.SupervisorRepository,
	userRepo repository.UserRepository,
	dispatcher notify.Dispatcher,
	baseURL string,
) VerificationService {
	return &verificationService{
		entryRepo:      entryRepo,
		supervisorRepo: supervisorRepo,
		userRepo:       userRepo,
		dispatcher:     dispatcher,
		baseURL:        strings.TrimRight(baseURL, "/"),
	}
}

// RequestVerification mints a token for the entry and asks the dispatcher
// to deliver the link to the supervisor. Re-requesting overwrites the
// previous token, so only the latest issued link is live.
func (s *verificationService) RequestVerification(ctx context.Context, userID uint, entryID uuid.UUID, ref SupervisorRef) (*VerificationRequestResult, error) {
	entry, err := s.entryRepo.FindByID(ctx, entryID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	if entry.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	if entry.Verified {
		return nil, apperrors.ErrAlreadyVerified
	}

	supervisor, err := s.resolveSupervisor(ctx, userID, ref)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()
	if err := s.entryRepo.SetVerificationToken(ctx, entry.ID, token); err != nil {
		return nil, fmt.Errorf("store verification token: %w", err)
	}
	entry.VerificationToken = &token

	url := fmt.Sprintf("%s/verify/%s", s.baseURL, token)
	body := fmt.Sprintf(
		"You have been asked to verify %s hours of %s training logged at %s on %s.\r\n\r\nReview and verify here:\r\n%s\r\n",
		entry.Hours.StringFixed(1), entry.Method.Display(), entry.Location,
		entry.Date.Format("2006-01-02"), url,
	)

	// Exactly one dispatch attempt per call; a failure is logged and the
	// URL still returned so the owner can share it by hand.
	delivered := true
	if err := s.dispatcher.Send(ctx, supervisor.Email, "Training Hours Verification Request", body); err != nil {
		log.Printf("verification request delivery to %s failed: %v", supervisor.Email, err)
		delivered = false
	}

	return &VerificationRequestResult{
		Entry:      entry,
		Supervisor: supervisor,
		URL:        url,
		Delivered:  delivered,
	}, nil
}

// GetByToken resolves a token for display before redemption. An unknown
// token and an already-verified entry produce the same error so the
// endpoint cannot be used to probe which tokens exist.
func (s *verificationService) GetByToken(ctx context.Context, token string) (*VerificationDetails, error) {
	entry, err := s.lookupLiveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindByID(ctx, entry.UserID)
	if err != nil {
		return nil, fmt.Errorf("find entry owner: %w", err)
	}

	return &VerificationDetails{
		Date:           entry.Date,
		Location:       entry.Location,
		Method:         entry.Method,
		Hours:          entry.Hours.StringFixed(1),
		TechnicianName: owner.Name,
		EmployeeNumber: owner.EmployeeNumber,
	}, nil
}

// Redeem commits the verification. The flip is a conditional update at
// the persistence layer; under concurrent redemption of the same token
// exactly one caller wins and the rest observe the collapsed error.
func (s *verificationService) Redeem(ctx context.Context, token, verifierName string) (*model.Entry, error) {
	verifierName = strings.TrimSpace(verifierName)
	if verifierName == "" {
		return nil, apperrors.ErrVerifierNameRequired
	}

	entry, err := s.lookupLiveToken(ctx, token)
	if err != nil {
		return nil, err
	}

	ok, err := s.entryRepo.MarkVerified(ctx, entry.ID, verifierName, time.Now())
	if err != nil {
		return nil, fmt.Errorf("mark verified: %w", err)
	}
	if !ok {
		// Lost the race: someone verified between our read and write.
		return nil, apperrors.ErrVerificationNotFound
	}

	updated, err := s.entryRepo.FindByID(ctx, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("reload entry: %w", err)
	}

	s.sendConfirmation(ctx, updated)

	return updated, nil
}

// lookupLiveToken returns the entry for a token that is still redeemable.
func (s *verificationService) lookupLiveToken(ctx context.Context, token string) (*model.Entry, error) {
	entry, err := s.entryRepo.FindByToken(ctx, token)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrVerificationNotFound
		}
		return nil, fmt.Errorf("find entry by token: %w", err)
	}
	if entry.Verified {
		return nil, apperrors.ErrVerificationNotFound
	}
	return entry, nil
}

func (s *verificationService) resolveSupervisor(ctx context.Context, userID uint, ref SupervisorRef) (*model.Supervisor, error) {
	if ref.SupervisorID != nil {
		supervisor, err := s.supervisorRepo.FindByID(ctx, *ref.SupervisorID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrSupervisorNotFound
			}
			return nil, fmt.Errorf("find supervisor: %w", err)
		}
		if supervisor.UserID != userID {
			return nil, apperrors.ErrForbidden
		}
		return supervisor, nil
	}

	if ref.New == nil {
		return nil, apperrors.ErrSupervisorNotFound
	}
	if !ref.New.CertificationLevel.Valid() {
		return nil, apperrors.ErrInvalidCertificationLevel
	}

	supervisor := &model.Supervisor{
		UserID:             userID,
		Name:               ref.New.Name,
		Email:              ref.New.Email,
		Phone:              ref.New.Phone,
		CertificationLevel: ref.New.CertificationLevel,
		Company:            ref.New.Company,
	}
	if err := s.supervisorRepo.Create(ctx, supervisor); err != nil {
		return nil, fmt.Errorf("create supervisor: %w", err)
	}
	return supervisor, nil
}

// sendConfirmation notifies the owner that their entry was verified.
// Best-effort: the verification already committed and is never rolled
// back for a delivery failure.
func (s *verificationService) sendConfirmation(ctx context.Context, entry *model.Entry) {
	owner, err := s.userRepo.FindByID(ctx, entry.UserID)
	if err != nil {
		log.Printf("confirmation lookup for entry %s failed: %v", entry.ID, err)
		return
	}
	body := fmt.Sprintf(
		"Your %s entry for %s (%s hours) was verified by %s.\r\n",
		entry.Method.Display(), entry.Date.Format("2006-01-02"),
		entry.Hours.StringFixed(1), entry.VerifiedBy,
	)
	if err := s.dispatcher.Send(ctx, owner.Email, "Training Hours Verified", body); err != nil {
		log.Printf("confirmation delivery to %s failed: %v", owner.Email, err)
	}
}
