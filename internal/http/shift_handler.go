package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/worktime-backend/internal/application"
)

type shiftService interface {
	CreateShift(ctx context.Context, input application.ShiftInput) (application.Shift, error)
	ListShifts(ctx context.Context, filter application.ShiftFilter) ([]application.Shift, error)
}

// ShiftHandler exposes the shift scheduling endpoints.
type ShiftHandler struct {
	service   shiftService
	responder responder
	logger    *slog.Logger
}

func NewShiftHandler(service shiftService, logger *slog.Logger) *ShiftHandler {
	base := defaultLogger(logger)
	return &ShiftHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ShiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req shiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := handlerLogger(r.Context(), h.logger, "ShiftHandler", "Create", "user_id", req.UserID)

	shift, err := h.service.CreateShift(r.Context(), application.ShiftInput{
		UserID:   strings.TrimSpace(req.UserID),
		Date:     parseDate(req.Date),
		Start:    req.StartTime,
		End:      req.EndTime,
		Location: req.Location,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "shift creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "shift created", "shift_id", shift.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, shiftCreatedResponse{
		Message: "Shift created successfully",
		Shift:   toShiftDTO(shift),
	})
}

func (h *ShiftHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	filter := application.ShiftFilter{UserID: strings.TrimSpace(query.Get("user_id"))}

	if raw := strings.TrimSpace(query.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < 1 {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidYear)
			return
		}
		filter.Year = year
	}
	if raw := strings.TrimSpace(query.Get("month")); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMonth)
			return
		}
		filter.Month = month
	}
	if filter.Month != 0 && filter.Year == 0 {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errMonthWithoutYear)
		return
	}

	shifts, err := h.service.ListShifts(r.Context(), filter)
	if err != nil {
		handlerLogger(r.Context(), h.logger, "ShiftHandler", "List", "user_id", filter.UserID).
			ErrorContext(r.Context(), "shift listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]shiftDTO, 0, len(shifts))
	for _, shift := range shifts {
		dtos = append(dtos, toShiftDTO(shift))
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

type shiftRequest struct {
	UserID    string  `json:"user_id"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Location  *string `json:"location"`
}

type shiftCreatedResponse struct {
	Message string   `json:"message"`
	Shift   shiftDTO `json:"shift"`
}

type shiftDTO struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Location  *string `json:"location"`
}

func toShiftDTO(shift application.Shift) shiftDTO {
	return shiftDTO{
		ID:        shift.ID,
		UserID:    shift.UserID,
		Username:  shift.Username,
		Date:      shift.Date.Format(application.DateLayout),
		StartTime: shift.Start,
		EndTime:   shift.End,
		Location:  shift.Location,
	}
}

// parseDate returns the zero time on malformed input; the services treat a
// zero date as a missing field and respond with a validation error.
func parseDate(raw string) time.Time {
	parsed, err := time.ParseInLocation(application.DateLayout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
