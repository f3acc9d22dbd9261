package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/worktime-backend/internal/application"
)

type vacationService interface {
	CreateVacationRequest(ctx context.Context, input application.VacationInput) (application.VacationRequest, error)
	ListVacationRequests(ctx context.Context, userID, status string) ([]application.VacationRequest, error)
}

// VacationHandler exposes the vacation request endpoints.
type VacationHandler struct {
	service   vacationService
	responder responder
	logger    *slog.Logger
}

func NewVacationHandler(service vacationService, logger *slog.Logger) *VacationHandler {
	base := defaultLogger(logger)
	return &VacationHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *VacationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req vacationRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := handlerLogger(r.Context(), h.logger, "VacationHandler", "Create", "user_id", req.UserID)

	request, err := h.service.CreateVacationRequest(r.Context(), application.VacationInput{
		UserID:    strings.TrimSpace(req.UserID),
		StartDate: parseDate(req.StartDate),
		EndDate:   parseDate(req.EndDate),
		Reason:    req.Reason,
	})
	if err != nil {
		logger.ErrorContext(r.Context(), "vacation request failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "vacation request created", "request_id", request.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, vacationCreatedResponse{
		Message:         "Vacation request submitted successfully",
		VacationRequest: toVacationDTO(request),
	})
}

func (h *VacationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	userID := strings.TrimSpace(query.Get("user_id"))
	status := strings.TrimSpace(query.Get("status"))

	requests, err := h.service.ListVacationRequests(r.Context(), userID, status)
	if err != nil {
		handlerLogger(r.Context(), h.logger, "VacationHandler", "List", "user_id", userID).
			ErrorContext(r.Context(), "vacation listing failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]vacationDTO, 0, len(requests))
	for _, request := range requests {
		dtos = append(dtos, toVacationDTO(request))
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, dtos)
}

type vacationRequestBody struct {
	UserID    string  `json:"user_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    *string `json:"reason"`
}

type vacationCreatedResponse struct {
	Message         string      `json:"message"`
	VacationRequest vacationDTO `json:"vacation_request"`
}

type vacationDTO struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Username    string  `json:"username"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Status      string  `json:"status"`
	Reason      *string `json:"reason"`
	RequestedAt string  `json:"requested_at"`
}

func toVacationDTO(request application.VacationRequest) vacationDTO {
	return vacationDTO{
		ID:          request.ID,
		UserID:      request.UserID,
		Username:    request.Username,
		StartDate:   request.StartDate.Format(application.DateLayout),
		EndDate:     request.EndDate.Format(application.DateLayout),
		Status:      request.Status,
		Reason:      request.Reason,
		RequestedAt: request.RequestedAt.Format(application.DateTimeLayout),
	}
}
