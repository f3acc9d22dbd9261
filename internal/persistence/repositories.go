package persistence

import "context"
import "time"

// UserRepository exposes CRUD operations for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	UserExists(ctx context.Context, id string) (bool, error)
	DeleteUser(ctx context.Context, id string) error
}

// TimeEntryFilter narrows time entry queries. StartDate and EndDate bound the
// stored calendar date inclusively; ClosedOnly excludes open sessions.
type TimeEntryFilter struct {
	UserID     string
	StartDate  *time.Time
	EndDate    *time.Time
	ClosedOnly bool
}

// TimeEntryRepository stores clock-in/clock-out sessions. CreateTimeEntry
// reports ErrDuplicate when an open entry already exists for the same user
// and date; CloseOpenEntry atomically selects and closes the most recently
// opened entry for the given user and date, reporting ErrNotFound when no
// open entry exists.
type TimeEntryRepository interface {
	CreateTimeEntry(ctx context.Context, entry TimeEntry) error
	CloseOpenEntry(ctx context.Context, userID string, date time.Time, closedAt time.Time) (TimeEntry, error)
	ListTimeEntries(ctx context.Context, filter TimeEntryFilter) ([]TimeEntry, error)
	CountOpenEntries(ctx context.Context, userID string, date time.Time) (int, error)
}

// ShiftFilter narrows shift queries. Year/Month select shifts whose date
// falls in that calendar month; zero values disable the filter.
type ShiftFilter struct {
	UserID string
	Year   int
	Month  int
}

// ShiftRepository stores scheduled shifts.
type ShiftRepository interface {
	CreateShift(ctx context.Context, shift Shift) error
	ListShifts(ctx context.Context, filter ShiftFilter) ([]Shift, error)
}

// VacationRepository stores vacation requests.
type VacationRepository interface {
	CreateVacationRequest(ctx context.Context, request VacationRequest) error
	ListVacationRequests(ctx context.Context, userID, status string) ([]VacationRequest, error)
}

// OvertimeRepository stores overtime entries.
type OvertimeRepository interface {
	CreateOvertimeEntry(ctx context.Context, entry OvertimeEntry) error
	ListOvertimeEntries(ctx context.Context, userID, status string) ([]OvertimeEntry, error)
}
