package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/example/worktime-backend/internal/application"
)

type reportService interface {
	AnnualReport(ctx context.Context, userID string, year int) (application.AnnualReport, error)
}

// ReportHandler exposes the annual hours report endpoint.
type ReportHandler struct {
	service   reportService
	responder responder
	logger    *slog.Logger
}

func NewReportHandler(service reportService, logger *slog.Logger) *ReportHandler {
	base := defaultLogger(logger)
	return &ReportHandler{service: service, responder: newResponder(base), logger: base}
}

// AnnualHours serves GET /reports/annual_hours/{user_id}/{year}. The router
// extracts the two path segments.
func (h *ReportHandler) AnnualHours(w http.ResponseWriter, r *http.Request, userID, rawYear string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	year, err := strconv.Atoi(rawYear)
	if err != nil || year < 1 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidYear)
		return
	}

	logger := handlerLogger(r.Context(), h.logger, "ReportHandler", "AnnualHours", "user_id", userID, "year", year)

	report, err := h.service.AnnualReport(r.Context(), userID, year)
	if err != nil {
		logger.ErrorContext(r.Context(), "report failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "report generated", "total_hours", report.TotalHours)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toAnnualReportDTO(report))
}

type annualReportDTO struct {
	UserID           string            `json:"user_id"`
	Year             int               `json:"year"`
	TotalAnnualHours float64           `json:"total_annual_hours"`
	MonthlyBreakdown []monthlyHoursDTO `json:"monthly_breakdown"`
}

type monthlyHoursDTO struct {
	Month      int     `json:"month"`
	TotalHours float64 `json:"total_hours"`
}

func toAnnualReportDTO(report application.AnnualReport) annualReportDTO {
	months := make([]monthlyHoursDTO, 0, len(report.Monthly))
	for _, month := range report.Monthly {
		months = append(months, monthlyHoursDTO{Month: month.Month, TotalHours: month.Hours})
	}
	return annualReportDTO{
		UserID:           report.UserID,
		Year:             report.Year,
		TotalAnnualHours: report.TotalHours,
		MonthlyBreakdown: months,
	}
}
