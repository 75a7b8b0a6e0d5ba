package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"ojtlog/internal/errors"
	"ojtlog/internal/service"
)

// ReportHandler handles the export endpoint.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetReport godoc
// @Summary Export the caller's verified entries with totals
// @Tags reports
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param format query string false "Output format: json (default) or csv"
// @Success 200 {object} service.Report
// @Failure 401 {object} errors.ErrorResponse
// @Router /report [get]
func (h *ReportHandler) GetReport(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	report, err := h.reportService.Build(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if c.QueryParam("format") == "csv" {
		c.Response().Header().Set(echo.HeaderContentType, "text/csv")
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="ojt-report.csv"`)
		c.Response().WriteHeader(http.StatusOK)
		return h.reportService.WriteCSV(c.Response(), report)
	}

	return c.JSON(http.StatusOK, report)
}
