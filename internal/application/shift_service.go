package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/worktime-backend/internal/persistence"
)

// ShiftRepository captures the persistence interactions needed by the shift
// service.
type ShiftRepository interface {
	CreateShift(ctx context.Context, shift Shift) error
	ListShifts(ctx context.Context, filter ShiftFilter) ([]Shift, error)
}

// ShiftService persists scheduled shifts. Shifts are plain records; no
// conflict detection or derived computation applies to them.
type ShiftService struct {
	shifts      ShiftRepository
	users       UserDirectory
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewShiftService wires dependencies for shift operations.
func NewShiftService(shifts ShiftRepository, users UserDirectory, idGenerator func() string, now func() time.Time) *ShiftService {
	return NewShiftServiceWithLogger(shifts, users, idGenerator, now, nil)
}

// NewShiftServiceWithLogger wires dependencies together with a base logger.
func NewShiftServiceWithLogger(shifts ShiftRepository, users UserDirectory, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ShiftService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ShiftService{
		shifts:      shifts,
		users:       users,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

// CreateShift validates the request before delegating to persistence.
func (s *ShiftService) CreateShift(ctx context.Context, input ShiftInput) (Shift, error) {
	if s == nil {
		return Shift{}, fmt.Errorf("ShiftService is nil")
	}

	vErr := &ValidationError{}
	if input.UserID == "" {
		vErr.add("user_id", "user_id is required")
	}
	if input.Date.IsZero() {
		vErr.add("date", "date is required in YYYY-MM-DD format")
	}
	validateClock(vErr, "start_time", input.Start)
	validateClock(vErr, "end_time", input.End)
	if vErr.HasErrors() {
		return Shift{}, vErr
	}

	user, err := s.lookupUser(ctx, input.UserID)
	if err != nil {
		return Shift{}, err
	}

	shift := Shift{
		ID:        s.idGenerator(),
		UserID:    input.UserID,
		Username:  user.Username,
		Date:      DateOf(input.Date),
		Start:     input.Start,
		End:       input.End,
		Location:  input.Location,
		CreatedAt: s.now(),
	}

	if err := s.shifts.CreateShift(ctx, shift); err != nil {
		if errors.Is(err, persistence.ErrForeignKeyViolation) {
			return Shift{}, ErrNotFound
		}
		return Shift{}, err
	}

	serviceLogger(ctx, s.logger, "ShiftService", "CreateShift", "user_id", input.UserID).
		InfoContext(ctx, "shift created", "shift_id", shift.ID)
	return shift, nil
}

// ListShifts enumerates shifts matching the filter, each carrying the
// owner's username.
func (s *ShiftService) ListShifts(ctx context.Context, filter ShiftFilter) ([]Shift, error) {
	if s == nil {
		return nil, fmt.Errorf("ShiftService is nil")
	}

	shifts, err := s.shifts.ListShifts(ctx, filter)
	if err != nil {
		return nil, err
	}

	usernames := make(map[string]string)
	for i := range shifts {
		name, ok := usernames[shifts[i].UserID]
		if !ok {
			user, err := s.lookupUser(ctx, shifts[i].UserID)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, err
			}
			name = user.Username
			usernames[shifts[i].UserID] = name
		}
		shifts[i].Username = name
	}

	return shifts, nil
}

func (s *ShiftService) lookupUser(ctx context.Context, userID string) (User, error) {
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

func validateClock(vErr *ValidationError, field, value string) {
	if value == "" {
		vErr.add(field, field+" is required in HH:MM format")
		return
	}
	if _, err := time.Parse(ClockLayout, value); err != nil {
		vErr.add(field, field+" must be in HH:MM format")
	}
}
