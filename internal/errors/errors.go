package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEntryNotFound is returned when an entry is not found.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrSupervisorNotFound is returned when a supervisor is not found.
	ErrSupervisorNotFound = errors.New("supervisor not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden is returned when a caller touches a resource owned by
	// someone else. Deliberately does not reveal whether the resource exists.
	ErrForbidden = errors.New("forbidden")
	// ErrAlreadyVerified is returned on the owner-facing path when an entry
	// has already been verified.
	ErrAlreadyVerified = errors.New("entry already verified")
	// ErrVerificationNotFound is the collapsed outcome for the public token
	// paths: unknown token and already-verified entry are indistinguishable
	// so tokens cannot be enumerated.
	ErrVerificationNotFound = errors.New("verification link is invalid or already used")
	// ErrInvalidMethod is returned when an entry's method is not in the
	// known enumeration.
	ErrInvalidMethod = errors.New("unknown inspection method")
	// ErrInvalidHours is returned when an entry's hours are not positive.
	ErrInvalidHours = errors.New("hours must be greater than zero")
	// ErrInvalidCertificationLevel is returned for an unknown supervisor
	// certification level.
	ErrInvalidCertificationLevel = errors.New("unknown certification level")
	// ErrVerifierNameRequired is returned when a redemption omits the
	// verifier's name.
	ErrVerifierNameRequired = errors.New("verifier name is required")
	// ErrInvalidResetToken is returned when a password-reset token is
	// unknown, used, or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrEntryNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ENTRY_NOT_FOUND")
	case ErrSupervisorNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "SUPERVISOR_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrAlreadyVerified:
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_VERIFIED")
	case ErrVerificationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "VERIFICATION_NOT_FOUND")
	case ErrInvalidMethod:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_METHOD")
	case ErrInvalidHours:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_HOURS")
	case ErrInvalidCertificationLevel:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CERTIFICATION_LEVEL")
	case ErrVerifierNameRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VERIFIER_NAME_REQUIRED")
	case ErrInvalidResetToken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RESET_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
