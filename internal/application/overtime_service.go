package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/worktime-backend/internal/persistence"
)

// OvertimeRepository captures the persistence interactions needed by the
// overtime service.
type OvertimeRepository interface {
	CreateOvertimeEntry(ctx context.Context, entry OvertimeEntry) error
	ListOvertimeEntries(ctx context.Context, userID, status string) ([]OvertimeEntry, error)
}

// OvertimeService persists requested overtime allotments. Like vacation
// requests, status is stored state with no transition logic.
type OvertimeService struct {
	entries     OvertimeRepository
	users       UserDirectory
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewOvertimeService wires dependencies for overtime operations.
func NewOvertimeService(entries OvertimeRepository, users UserDirectory, idGenerator func() string, now func() time.Time) *OvertimeService {
	return NewOvertimeServiceWithLogger(entries, users, idGenerator, now, nil)
}

// NewOvertimeServiceWithLogger wires dependencies together with a base logger.
func NewOvertimeServiceWithLogger(entries OvertimeRepository, users UserDirectory, idGenerator func() string, now func() time.Time, logger *slog.Logger) *OvertimeService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &OvertimeService{
		entries:     entries,
		users:       users,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// CreateOvertimeEntry validates the request before delegating to persistence.
func (s *OvertimeService) CreateOvertimeEntry(ctx context.Context, input OvertimeInput) (OvertimeEntry, error) {
	if s == nil {
		return OvertimeEntry{}, fmt.Errorf("OvertimeService is nil")
	}

	vErr := &ValidationError{}
	if input.UserID == "" {
		vErr.add("user_id", "user_id is required")
	}
	if input.Date.IsZero() {
		vErr.add("date", "date is required in YYYY-MM-DD format")
	}
	if input.Hours <= 0 {
		vErr.add("hours", "hours must be a positive number")
	}
	if input.OvertimeType == "" {
		vErr.add("overtime_type", "overtime_type is required")
	}
	if vErr.HasErrors() {
		return OvertimeEntry{}, vErr
	}

	user, err := s.lookupUser(ctx, input.UserID)
	if err != nil {
		return OvertimeEntry{}, err
	}

	entry := OvertimeEntry{
		ID:           s.idGenerator(),
		UserID:       input.UserID,
		Username:     user.Username,
		Date:         DateOf(input.Date),
		Hours:        input.Hours,
		OvertimeType: input.OvertimeType,
		Notes:        input.Notes,
		Status:       StatusPending,
		RequestedAt:  s.now(),
	}

	if err := s.entries.CreateOvertimeEntry(ctx, entry); err != nil {
		if errors.Is(err, persistence.ErrForeignKeyViolation) {
			return OvertimeEntry{}, ErrNotFound
		}
		return OvertimeEntry{}, err
	}

	serviceLogger(ctx, s.logger, "OvertimeService", "CreateOvertimeEntry", "user_id", input.UserID).
		InfoContext(ctx, "overtime entry created", "entry_id", entry.ID, "hours", entry.Hours)
	return entry, nil
}

// ListOvertimeEntries returns a user's entries, optionally restricted to one
// status, ordered by date descending.
func (s *OvertimeService) ListOvertimeEntries(ctx context.Context, userID, status string) ([]OvertimeEntry, error) {
	if s == nil {
		return nil, fmt.Errorf("OvertimeService is nil")
	}
	if vErr := requireUserID(userID); vErr != nil {
		return nil, vErr
	}

	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.ListOvertimeEntries(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Username = user.Username
	}

	return entries, nil
}

func (s *OvertimeService) lookupUser(ctx context.Context, userID string) (User, error) {
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
