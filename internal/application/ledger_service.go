package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/worktime-backend/internal/persistence"
)

// TimeEntryRepository captures the persistence interactions needed by the
// ledger and report services.
type TimeEntryRepository interface {
	CreateTimeEntry(ctx context.Context, entry TimeEntry) error
	CloseOpenEntry(ctx context.Context, userID string, date time.Time, closedAt time.Time) (TimeEntry, error)
	ListTimeEntries(ctx context.Context, filter TimeEntryFilter) ([]TimeEntry, error)
}

// TimeEntryFilter narrows queries issued to the time entry repository. Date
// bounds are inclusive and compare the stored calendar date.
type TimeEntryFilter struct {
	UserID     string
	StartDate  *time.Time
	EndDate    *time.Time
	ClosedOnly bool
}

// UserDirectory exposes user lookup operations. Ledger operations run only
// for users the directory knows.
type UserDirectory interface {
	UserExists(ctx context.Context, id string) (bool, error)
	GetUser(ctx context.Context, id string) (User, error)
}

// LedgerService owns the open/closed lifecycle of time entries: it is the
// only component that creates or mutates them.
type LedgerService struct {
	entries     TimeEntryRepository
	users       UserDirectory
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewLedgerService wires dependencies for time entry operations.
func NewLedgerService(entries TimeEntryRepository, users UserDirectory, idGenerator func() string, now func() time.Time) *LedgerService {
	return NewLedgerServiceWithLogger(entries, users, idGenerator, now, nil)
}

// NewLedgerServiceWithLogger wires dependencies together with a base logger.
func NewLedgerServiceWithLogger(entries TimeEntryRepository, users UserDirectory, idGenerator func() string, now func() time.Time, logger *slog.Logger) *LedgerService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &LedgerService{
		entries:     entries,
		users:       users,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *LedgerService) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "LedgerService", operation, attrs...)
}

// ClockIn opens a new session attributed to the calendar date of the current
// instant. A second open session for the same user and date is rejected with
// ErrConflict; nothing is queued or overwritten.
func (s *LedgerService) ClockIn(ctx context.Context, userID string) (TimeEntry, error) {
	if s == nil {
		return TimeEntry{}, fmt.Errorf("LedgerService is nil")
	}

	if vErr := requireUserID(userID); vErr != nil {
		return TimeEntry{}, vErr
	}
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return TimeEntry{}, err
	}

	now := s.now()
	entry := TimeEntry{
		ID:      s.idGenerator(),
		UserID:  userID,
		Date:    DateOf(now),
		ClockIn: now,
	}

	if err := s.entries.CreateTimeEntry(ctx, entry); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return TimeEntry{}, fmt.Errorf("%w: already clocked in", ErrConflict)
		}
		if errors.Is(err, persistence.ErrForeignKeyViolation) {
			return TimeEntry{}, ErrNotFound
		}
		return TimeEntry{}, err
	}

	s.log(ctx, "ClockIn", "user_id", userID).InfoContext(ctx, "session opened", "entry_id", entry.ID, "date", entry.Date.Format(DateLayout))
	return entry, nil
}

// ClockOut closes the open session for the calendar date of the current
// instant, newest clock-in first should the storage invariant ever be
// violated. Without an open session it fails with ErrNotFound; a clock-out
// never synthesizes an entry.
func (s *LedgerService) ClockOut(ctx context.Context, userID string) (TimeEntry, error) {
	if s == nil {
		return TimeEntry{}, fmt.Errorf("LedgerService is nil")
	}

	if vErr := requireUserID(userID); vErr != nil {
		return TimeEntry{}, vErr
	}
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return TimeEntry{}, err
	}

	now := s.now()
	entry, err := s.entries.CloseOpenEntry(ctx, userID, DateOf(now), now)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return TimeEntry{}, fmt.Errorf("%w: no open session", ErrNotFound)
		}
		return TimeEntry{}, err
	}

	hours, _ := entry.DurationHours()
	s.log(ctx, "ClockOut", "user_id", userID).InfoContext(ctx, "session closed", "entry_id", entry.ID, "duration_hours", hours)
	return entry, nil
}

// ListEntries returns a user's sessions ordered by date descending, then
// clock-in descending, optionally bounded by an inclusive date range.
func (s *LedgerService) ListEntries(ctx context.Context, params ListEntriesParams) ([]TimeEntry, error) {
	if s == nil {
		return nil, fmt.Errorf("LedgerService is nil")
	}

	if vErr := requireUserID(params.UserID); vErr != nil {
		return nil, vErr
	}
	if err := s.ensureUserExists(ctx, params.UserID); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListTimeEntries(ctx, TimeEntryFilter{
		UserID:    params.UserID,
		StartDate: params.StartDate,
		EndDate:   params.EndDate,
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *LedgerService) ensureUserExists(ctx context.Context, userID string) error {
	if s.users == nil {
		return nil
	}
	exists, err := s.users.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

func requireUserID(userID string) *ValidationError {
	if userID != "" {
		return nil
	}
	vErr := &ValidationError{}
	vErr.add("user_id", "user_id is required")
	return vErr
}
