package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ojtlog/internal/errors"
	"ojtlog/internal/model"
	"ojtlog/internal/service"
)

// SupervisorHandler handles supervisor bank endpoints.
type SupervisorHandler struct {
	supervisorService service.SupervisorService
}

// NewSupervisorHandler creates a new supervisor handler.
func NewSupervisorHandler(supervisorService service.SupervisorService) *SupervisorHandler {
	return &SupervisorHandler{supervisorService: supervisorService}
}

// SupervisorCreateRequest represents a new supervisor contact.
type SupervisorCreateRequest struct {
	Name               string `json:"name" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	Phone              string `json:"phone" validate:"required"`
	CertificationLevel string `json:"certification_level" validate:"required"`
	Company            string `json:"company" validate:"required"`
}

// CreateSupervisor godoc
// @Summary Save a supervisor to the caller's bank
// @Tags supervisors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SupervisorCreateRequest true "Supervisor data"
// @Success 201 {object} model.Supervisor
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /supervisors [post]
func (h *SupervisorHandler) CreateSupervisor(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req SupervisorCreateRequest
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

	supervisor, err := h.supervisorService.CreateSupervisor(c.Request().Context(), claims.UserID, service.SupervisorInput{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		CertificationLevel: model.CertificationLevel(req.CertificationLevel),
		Company:            req.Company,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, supervisor)
}

// ListSupervisors godoc
// @Summary List the caller's supervisor bank
// @Tags supervisors
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Supervisor
// @Failure 401 {object} errors.ErrorResponse
// @Router /supervisors [get]
func (h *SupervisorHandler) ListSupervisors(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	supervisors, err := h.supervisorService.ListSupervisors(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, supervisors)
}
