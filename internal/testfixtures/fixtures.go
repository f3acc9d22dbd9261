package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/worktime-backend/internal/persistence"
)

var (
	userCounter     uint64
	entryCounter    uint64
	shiftCounter    uint64
	vacationCounter uint64
	overtimeCounter uint64
)

// Timestamps are naive local time throughout the system, so fixtures are
// anchored in time.Local rather than UTC.
var referenceTime = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.Local)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ----------------------------- User fixtures -----------------------------

// UserOption configures a generated user fixture.
type UserOption func(*persistence.User)

// NewUserFixture returns a deterministic user record with optional overrides.
func NewUserFixture(opts ...UserOption) persistence.User {
	idx := atomic.AddUint64(&userCounter, 1)
	id := fmt.Sprintf("user-%03d", idx)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	user := persistence.User{
		ID:           id,
		Username:     fmt.Sprintf("worker%03d", idx),
		Email:        fmt.Sprintf("%s@example.com", id),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		Role:         "employee",
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&user)
	}
	return user
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(u *persistence.User) {
		u.ID = id
	}
}

// WithUsername overrides the generated username.
func WithUsername(username string) UserOption {
	return func(u *persistence.User) {
		u.Username = username
	}
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(u *persistence.User) {
		u.Email = email
	}
}

// WithUserRole overrides the generated role.
func WithUserRole(role string) UserOption {
	return func(u *persistence.User) {
		u.Role = role
	}
}

// -------------------------- Time entry fixtures --------------------------

// TimeEntryOption configures a generated time entry fixture.
type TimeEntryOption func(*persistence.TimeEntry)

// NewTimeEntryFixture returns a deterministic open time entry for the given
// user. The entry clocks in at the reference time; use WithClockOut to close
// it.
func NewTimeEntryFixture(userID string, opts ...TimeEntryOption) persistence.TimeEntry {
	idx := atomic.AddUint64(&entryCounter, 1)
	clockIn := referenceTime.Add(time.Duration(idx) * 24 * time.Hour)
	entry := persistence.TimeEntry{
		ID:      fmt.Sprintf("entry-%03d", idx),
		UserID:  userID,
		Date:    time.Date(clockIn.Year(), clockIn.Month(), clockIn.Day(), 0, 0, 0, 0, clockIn.Location()),
		ClockIn: clockIn,
	}
	for _, opt := range opts {
		opt(&entry)
	}
	return entry
}

// WithEntryID overrides the generated entry ID.
func WithEntryID(id string) TimeEntryOption {
	return func(e *persistence.TimeEntry) {
		e.ID = id
	}
}

// WithClockIn sets the clock-in instant and realigns the entry date to it.
func WithClockIn(clockIn time.Time) TimeEntryOption {
	return func(e *persistence.TimeEntry) {
		e.ClockIn = clockIn
		e.Date = time.Date(clockIn.Year(), clockIn.Month(), clockIn.Day(), 0, 0, 0, 0, clockIn.Location())
	}
}

// WithClockOut closes the entry at the provided instant.
func WithClockOut(clockOut time.Time) TimeEntryOption {
	return func(e *persistence.TimeEntry) {
		out := clockOut
		e.ClockOut = &out
	}
}

// WithWorkedHours closes the entry the given number of hours after clock-in.
func WithWorkedHours(hours float64) TimeEntryOption {
	return func(e *persistence.TimeEntry) {
		out := e.ClockIn.Add(time.Duration(hours * float64(time.Hour)))
		e.ClockOut = &out
	}
}

// ---------------------------- Shift fixtures -----------------------------

// ShiftOption configures a generated shift fixture.
type ShiftOption func(*persistence.Shift)

// NewShiftFixture returns a deterministic shift for the given user.
func NewShiftFixture(userID string, opts ...ShiftOption) persistence.Shift {
	idx := atomic.AddUint64(&shiftCounter, 1)
	date := referenceTime.Add(time.Duration(idx) * 24 * time.Hour)
	shift := persistence.Shift{
		ID:        fmt.Sprintf("shift-%03d", idx),
		UserID:    userID,
		Date:      time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		Start:     "09:00",
		End:       "17:00",
		CreatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&shift)
	}
	return shift
}

// WithShiftDate overrides the shift date.
func WithShiftDate(date time.Time) ShiftOption {
	return func(s *persistence.Shift) {
		s.Date = date
	}
}

// WithShiftTimes overrides the start and end times of day.
func WithShiftTimes(start, end string) ShiftOption {
	return func(s *persistence.Shift) {
		s.Start = start
		s.End = end
	}
}

// WithShiftLocation sets the optional location.
func WithShiftLocation(location string) ShiftOption {
	return func(s *persistence.Shift) {
		s.Location = &location
	}
}

// --------------------- Vacation and overtime fixtures --------------------

// NewVacationFixture returns a deterministic pending vacation request for the
// given user.
func NewVacationFixture(userID string) persistence.VacationRequest {
	idx := atomic.AddUint64(&vacationCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * 7 * 24 * time.Hour)
	return persistence.VacationRequest{
		ID:          fmt.Sprintf("vacation-%03d", idx),
		UserID:      userID,
		StartDate:   time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		EndDate:     time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()).Add(4 * 24 * time.Hour),
		Status:      "pending",
		RequestedAt: referenceTime,
	}
}

// NewOvertimeFixture returns a deterministic pending overtime entry for the
// given user.
func NewOvertimeFixture(userID string) persistence.OvertimeEntry {
	idx := atomic.AddUint64(&overtimeCounter, 1)
	date := referenceTime.Add(time.Duration(idx) * 24 * time.Hour)
	return persistence.OvertimeEntry{
		ID:           fmt.Sprintf("overtime-%03d", idx),
		UserID:       userID,
		Date:         time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()),
		Hours:        2,
		OvertimeType: "regular",
		Status:       "pending",
		RequestedAt:  referenceTime,
	}
}
