package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/worktime-backend/internal/persistence"
)

// VacationRepository captures the persistence interactions needed by the
// vacation service.
type VacationRepository interface {
	CreateVacationRequest(ctx context.Context, request VacationRequest) error
	ListVacationRequests(ctx context.Context, userID, status string) ([]VacationRequest, error)
}

// VacationService persists vacation requests. Status is a stored field only;
// the service implements no approval workflow.
type VacationService struct {
	requests    VacationRepository
	users       UserDirectory
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewVacationService wires dependencies for vacation request operations.
func NewVacationService(requests VacationRepository, users UserDirectory, idGenerator func() string, now func() time.Time) *VacationService {
	return NewVacationServiceWithLogger(requests, users, idGenerator, now, nil)
}

// NewVacationServiceWithLogger wires dependencies together with a base logger.
func NewVacationServiceWithLogger(requests VacationRepository, users UserDirectory, idGenerator func() string, now func() time.Time, logger *slog.Logger) *VacationService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &VacationService{
		requests:    requests,
		users:       users,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// CreateVacationRequest validates the request before delegating to
// persistence. New requests always start in the pending state.
func (s *VacationService) CreateVacationRequest(ctx context.Context, input VacationInput) (VacationRequest, error) {
	if s == nil {
		return VacationRequest{}, fmt.Errorf("VacationService is nil")
	}

	vErr := &ValidationError{}
	if input.UserID == "" {
		vErr.add("user_id", "user_id is required")
	}
	if input.StartDate.IsZero() {
		vErr.add("start_date", "start_date is required in YYYY-MM-DD format")
	}
	if input.EndDate.IsZero() {
		vErr.add("end_date", "end_date is required in YYYY-MM-DD format")
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() && input.StartDate.After(input.EndDate) {
		vErr.add("date_range", "start_date cannot be after end_date")
	}
	if vErr.HasErrors() {
		return VacationRequest{}, vErr
	}

	user, err := s.lookupUser(ctx, input.UserID)
	if err != nil {
		return VacationRequest{}, err
	}

	request := VacationRequest{
		ID:          s.idGenerator(),
		UserID:      input.UserID,
		Username:    user.Username,
		StartDate:   DateOf(input.StartDate),
		EndDate:     DateOf(input.EndDate),
		Status:      StatusPending,
		Reason:      input.Reason,
		RequestedAt: s.now(),
	}

	if err := s.requests.CreateVacationRequest(ctx, request); err != nil {
		if errors.Is(err, persistence.ErrForeignKeyViolation) {
			return VacationRequest{}, ErrNotFound
		}
		return VacationRequest{}, err
	}

	serviceLogger(ctx, s.logger, "VacationService", "CreateVacationRequest", "user_id", input.UserID).
		InfoContext(ctx, "vacation request created", "request_id", request.ID)
	return request, nil
}

// ListVacationRequests returns a user's requests, optionally restricted to
// one status, ordered by start date descending.
func (s *VacationService) ListVacationRequests(ctx context.Context, userID, status string) ([]VacationRequest, error) {
	if s == nil {
		return nil, fmt.Errorf("VacationService is nil")
	}
	if vErr := requireUserID(userID); vErr != nil {
		return nil, vErr
	}

	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	requests, err := s.requests.ListVacationRequests(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	for i := range requests {
		requests[i].Username = user.Username
	}

	return requests, nil
}

func (s *VacationService) lookupUser(ctx context.Context, userID string) (User, error) {
	if s.users == nil {
		return User{}, nil
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) || errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}
