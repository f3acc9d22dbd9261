package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/worktime-backend/internal/application"
)

type overtimeService interface {
	CreateOvertimeEntry(ctx context.Context, input application.OvertimeInput) (application.OvertimeEntry, error)
	ListOvertimeEntries(ctx context.Context, userID, status string) ([]application.OvertimeEntry, error)
}

// OvertimeHandler exposes the overtime entry endpoints.
type OvertimeHandler struct {
	service   overtimeService
	responder responder
	logger    *slog.Logger
}

func NewOvertimeHandler(service overtimeService, logger *slog.Logger) *OvertimeHandler {
	base := defaultLogger(logger)
	return &OvertimeHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *OvertimeHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req overtimeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := handlerLogger(r.Context(), h.logger, "OvertimeHandler", "Create", "user_id", req.UserID)

	entry, err := h.service.CreateOvertimeEntry(r.Context(), application.OvertimeInput{
		UserID:       strings.TrimSpace(req.UserID),
		Date:         parseDate(req.Date),
		Hours:        req.Hours,
		OvertimeType: req.OvertimeType,
		Notes:        req.Notes,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "overtime entry failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "overtime entry created", "entry_id", entry.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, overtimeCreatedResponse{
		Message:       "Overtime entry submitted successfully",
		OvertimeEntry: toOvertimeDTO(entry),
	})
}

func (h *OvertimeHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	userID := strings.TrimSpace(query.Get("user_id"))
	status := strings.TrimSpace(query.Get("status"))

	entries, err := h.service.ListOvertimeEntries(r.Context(), userID, status)
	if err != nil {
		handlerLogger(r.Context(), h.logger, "OvertimeHandler", "List", "user_id", userID).
			ErrorContext(r.Context(), "overtime listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]overtimeDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, toOvertimeDTO(entry))
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

type overtimeRequestBody struct {
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
	OvertimeType string  `json:"overtime_type"`
	Notes        *string `json:"notes"`
}

type overtimeCreatedResponse struct {
	Message       string      `json:"message"`
	OvertimeEntry overtimeDTO `json:"overtime_entry"`
}

type overtimeDTO struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Username     string  `json:"username"`
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
	OvertimeType string  `json:"overtime_type"`
	Notes        *string `json:"notes"`
	Status       string  `json:"status"`
	RequestedAt  string  `json:"requested_at"`
}

func toOvertimeDTO(entry application.OvertimeEntry) overtimeDTO {
	return overtimeDTO{
		ID:           entry.ID,
		UserID:       entry.UserID,
		Username:     entry.Username,
		Date:         entry.Date.Format(application.DateLayout),
		Hours:        entry.Hours,
		OvertimeType: entry.OvertimeType,
		Notes:        entry.Notes,
		Status:       entry.Status,
		RequestedAt:  entry.RequestedAt.Format(application.DateTimeLayout),
	}
}
