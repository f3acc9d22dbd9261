package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/worktime-backend/internal/application"
)

type ledgerService interface {
	ClockIn(ctx context.Context, userID string) (application.TimeEntry, error)
	ClockOut(ctx context.Context, userID string) (application.TimeEntry, error)
	ListEntries(ctx context.Context, params application.ListEntriesParams) ([]application.TimeEntry, error)
}

// TimeEntryHandler exposes the clock-in/clock-out/listing endpoints.
type TimeEntryHandler struct {
	service   ledgerService
	responder responder
	logger    *slog.Logger
}

func NewTimeEntryHandler(service ledgerService, logger *slog.Logger) *TimeEntryHandler {
	base := defaultLogger(logger)
	return &TimeEntryHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *TimeEntryHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "TimeEntryHandler", operation, attrs...)
}

func (h *TimeEntryHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req clockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "ClockIn", "user_id", req.UserID)

	entry, err := h.service.ClockIn(r.Context(), strings.TrimSpace(req.UserID))
	if err != nil {
		logger.ErrorContext(r.Context(), "clock-in failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "clock-in accepted", "entry_id", entry.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, clockInResponse{
		Message:   "Clock-in successful",
		TimeEntry: toOpenEntryDTO(entry),
	})
}

func (h *TimeEntryHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req clockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "ClockOut", "user_id", req.UserID)

	entry, err := h.service.ClockOut(r.Context(), strings.TrimSpace(req.UserID))
	if err != nil {
		logger.ErrorContext(r.Context(), "clock-out failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "clock-out accepted", "entry_id", entry.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, clockOutResponse{
		Message:   "Clock-out successful",
		TimeEntry: toTimeEntryDTO(entry),
	})
}

func (h *TimeEntryHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()

	userID := strings.TrimSpace(query.Get("user_id"))
	if userID == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMissingUserID)
		return
	}

	params := application.ListEntriesParams{UserID: userID}

	if raw := strings.TrimSpace(query.Get("start_date")); raw != "" {
		start, err := time.ParseInLocation(application.DateLayout, raw, time.Local)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
			return
		}
		params.StartDate = &start
	}
	if raw := strings.TrimSpace(query.Get("end_date")); raw != "" {
		end, err := time.ParseInLocation(application.DateLayout, raw, time.Local)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
			return
		}
		params.EndDate = &end
	}

	entries, err := h.service.ListEntries(r.Context(), params)
	if err != nil {
		h.log(r.Context(), "List", "user_id", userID).
			ErrorContext(r.Context(), "listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]timeEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, toTimeEntryDTO(entry))
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

type clockRequest struct {
	UserID string `json:"user_id"`
}

type clockInResponse struct {
	Message   string       `json:"message"`
	TimeEntry openEntryDTO `json:"time_entry"`
}

type clockOutResponse struct {
	Message   string       `json:"message"`
	TimeEntry timeEntryDTO `json:"time_entry"`
}

// openEntryDTO mirrors the clock-in payload, which carries no clock-out or
// duration fields.
type openEntryDTO struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	ClockInTime string `json:"clock_in_time"`
	Date        string `json:"date"`
}

// timeEntryDTO carries a full entry; clock_out_time and duration_hours are
// null while the session is open.
type timeEntryDTO struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	Date          string   `json:"date"`
	ClockInTime   string   `json:"clock_in_time"`
	ClockOutTime  *string  `json:"clock_out_time"`
	DurationHours *float64 `json:"duration_hours"`
}

func toOpenEntryDTO(entry application.TimeEntry) openEntryDTO {
	return openEntryDTO{
		ID:          entry.ID,
		UserID:      entry.UserID,
		ClockInTime: entry.ClockIn.Format(application.DateTimeLayout),
		Date:        entry.Date.Format(application.DateLayout),
	}
}

func toTimeEntryDTO(entry application.TimeEntry) timeEntryDTO {
	dto := timeEntryDTO{
		ID:          entry.ID,
		UserID:      entry.UserID,
		Date:        entry.Date.Format(application.DateLayout),
		ClockInTime: entry.ClockIn.Format(application.DateTimeLayout),
	}
	if entry.ClockOut != nil {
		out := entry.ClockOut.Format(application.DateTimeLayout)
		dto.ClockOutTime = &out
	}
	if hours, ok := entry.DurationHours(); ok {
		dto.DurationHours = &hours
	}
	return dto
}
