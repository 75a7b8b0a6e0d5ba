package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ojtlog/internal/errors"
	"ojtlog/internal/model"
	"ojtlog/internal/service"
)

// VerificationHandler handles the verification lifecycle: the owner-facing
// issuance endpoint and the unauthenticated redemption endpoints reached
// by supervisors through emailed links.
type VerificationHandler struct {
	verificationService service.VerificationService
}

// NewVerificationHandler creates a new verification handler.
func NewVerificationHandler(verificationService service.VerificationService) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService}
}

// VerificationRequestBody selects the supervisor for a verification
// request: an existing one by id, or inline fields for a new contact.
type VerificationRequestBody struct {
	SupervisorID string `json:"supervisor_id"`

	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	CertificationLevel string `json:"certification_level"`
	Company            string `json:"company"`
}

// RedeemRequest carries the verifier's asserted name.
type RedeemRequest struct {
	VerifierName string `json:"verifier_name" validate:"required"`
}

// RequestVerification godoc
// @Summary Request verification for an entry
// @Description Mints a single-use token, emails the link to the chosen
// @Description supervisor, and returns the link. Re-requesting replaces
// @Description any previously issued link.
// @Tags verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Entry ID"
// @Param request body VerificationRequestBody true "Supervisor selection"
// @Success 200 {object} service.VerificationRequestResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /entries/{id}/verification [post]
func (h *VerificationHandler) RequestVerification(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid entry id",
			Code:  "INVALID_UUID",
		})
	}

	var body VerificationRequestBody
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	ref, err := body.toRef()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	result, err := h.verificationService.RequestVerification(c.Request().Context(), claims.UserID, entryID, ref)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, result)
}

// ShowVerification godoc
// @Summary Look up a verification link before redeeming
// @Description Unauthenticated. Unknown tokens and already-verified
// @Description entries are indistinguishable in the response.
// @Tags verification
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} service.VerificationDetails
// @Failure 404 {object} errors.ErrorResponse
// @Router /verify/{token} [get]
func (h *VerificationHandler) ShowVerification(c echo.Context) error {
	details, err := h.verificationService.GetByToken(c.Request().Context(), c.Param("token"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, details)
}

// RedeemVerification godoc
// @Summary Verify an entry
// @Description Unauthenticated one-shot commit. A second attempt with the
// @Description same token gets the same not-found outcome as an unknown one.
// @Tags verification
// @Accept json
// @Produce json
// @Param token path string true "Verification token"
// @Param request body RedeemRequest true "Verifier name"
// @Success 200 {object} model.Entry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /verify/{token} [post]
func (h *VerificationHandler) RedeemVerification(c echo.Context) error {
	var req RedeemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	entry, err := h.verificationService.Redeem(c.Request().Context(), c.Param("token"), req.VerifierName)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, entry)
}

func (b VerificationRequestBody) toRef() (service.SupervisorRef, error) {
	if b.SupervisorID != "" {
		id, err := uuid.Parse(b.SupervisorID)
		if err != nil {
			return service.SupervisorRef{}, errors.NewHTTPError(http.StatusBadRequest, "invalid supervisor_id", "INVALID_UUID")
		}
		return service.SupervisorRef{SupervisorID: &id}, nil
	}

	if b.Name == "" || b.Email == "" || b.Phone == "" || b.CertificationLevel == "" || b.Company == "" {
		return service.SupervisorRef{}, errors.NewHTTPError(http.StatusBadRequest,
			"either supervisor_id or full supervisor fields are required", "SUPERVISOR_REQUIRED")
	}

	return service.SupervisorRef{
		New: &service.SupervisorInput{
			Name:               b.Name,
			Email:              b.Email,
			Phone:              b.Phone,
			CertificationLevel: model.CertificationLevel(b.CertificationLevel),
			Company:            b.Company,
		},
	}, nil
}
