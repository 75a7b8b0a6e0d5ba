package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"ojtlog/internal/errors"
	"ojtlog/internal/model"
	"ojtlog/internal/service"
)

const dateLayout = "2006-01-02"

// EntryHandler handles entry endpoints.
type EntryHandler struct {
	entryService service.EntryService
}

// NewEntryHandler creates a new entry handler.
func NewEntryHandler(entryService service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// EntryCreateRequest represents one entry to create.
type EntryCreateRequest struct {
	Date     string `json:"date" validate:"required"`
	Location string `json:"location" validate:"required"`
	Method   string `json:"method" validate:"required"`
	Hours    string `json:"hours" validate:"required"`
}

// CreateEntries godoc
// @Summary Create one or more entries
// @Description Accepts a single entry object or an array of them.
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EntryCreateRequest true "Entry data (or an array)"
// @Success 201 {array} model.Entry
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /entries [post]
func (h *EntryHandler) CreateEntries(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	reqs, err := decodeEntryUnion(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "at least one entry is required",
			Code:  "EMPTY_BATCH",
		})
	}

	inputs := make([]service.EntryInput, 0, len(reqs))
	for _, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "VALIDATION_ERROR",
			})
		}
		input, err := req.toInput()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "VALIDATION_ERROR",
			})
		}
		inputs = append(inputs, input)
	}

	entries, err := h.entryService.CreateEntries(c.Request().Context(), claims.UserID, inputs)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, entries)
}

// ListEntries godoc
// @Summary List the caller's entries
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param verified query bool false "Only verified entries"
// @Success 200 {array} model.Entry
// @Failure 401 {object} errors.ErrorResponse
// @Router /entries [get]
func (h *EntryHandler) ListEntries(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	verifiedOnly := c.QueryParam("verified") == "true"
	entries, err := h.entryService.ListEntries(c.Request().Context(), claims.UserID, verifiedOnly)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, entries)
}

// TotalsResponse maps each method to its summed hours.
type TotalsResponse map[string]string

// GetTotals godoc
// @Summary Per-method hour totals for the caller
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param verified query bool false "Only verified entries"
// @Success 200 {object} TotalsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /entries/totals [get]
func (h *EntryHandler) GetTotals(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	verifiedOnly := c.QueryParam("verified") == "true"
	totals, err := h.entryService.Totals(c.Request().Context(), claims.UserID, verifiedOnly)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make(TotalsResponse, len(totals))
	for method, hours := range totals {
		resp[string(method)] = hours.StringFixed(1)
	}
	return c.JSON(http.StatusOK, resp)
}

// decodeEntryUnion accepts either a single entry object or an array of
// them, decided by the first non-whitespace byte of the body.
func decodeEntryUnion(body io.Reader) ([]EntryCreateRequest, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, io.ErrUnexpectedEOF
	}

	if trimmed[0] == '[' {
		var reqs []EntryCreateRequest
		if err := json.Unmarshal(trimmed, &reqs); err != nil {
			return nil, err
		}
		return reqs, nil
	}

	var req EntryCreateRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, err
	}
	return []EntryCreateRequest{req}, nil
}

func (r EntryCreateRequest) toInput() (service.EntryInput, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return service.EntryInput{}, errors.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD", "INVALID_DATE")
	}
	hours, err := decimal.NewFromString(r.Hours)
	if err != nil {
		return service.EntryInput{}, errors.ErrInvalidHours
	}
	return service.EntryInput{
		Date:     date,
		Location: r.Location,
		Method:   model.Method(r.Method),
		Hours:    hours,
	}, nil
}
