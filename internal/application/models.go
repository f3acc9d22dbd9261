package application

import "time"

// Wire layouts shared by handlers and services. Timestamps are naive local
// time; the system deliberately has no timezone handling.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
	ClockLayout    = "15:04"
)

// Account roles. Stored with the user; no authorization is enforced on them.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// Request workflow states for vacation and overtime records. Only the stored
// value changes; no transition logic exists.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// User represents an employee account exposed by the application services.
type User struct {
	ID        string
	Username  string
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserCredentials models the authentication attributes persisted for a user.
type UserCredentials struct {
	User         User
	PasswordHash string
}

// TimeEntry represents one work session. ClockOut is nil while the session
// is open; Date is the calendar date of the clock-in instant and never
// diverges from it.
type TimeEntry struct {
	ID       string
	UserID   string
	Date     time.Time
	ClockIn  time.Time
	ClockOut *time.Time
}

// DurationHours reports the session length in hours rounded to two decimals,
// and false while the session is still open.
func (e TimeEntry) DurationHours() (float64, bool) {
	if e.ClockOut == nil {
		return 0, false
	}
	return RoundHours(e.ClockOut.Sub(e.ClockIn).Seconds() / 3600), true
}

// ListEntriesParams narrows a time entry listing to an inclusive date range.
type ListEntriesParams struct {
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
}

// MonthlyHours is one bucket of an annual report.
type MonthlyHours struct {
	Month int
	Hours float64
}

// AnnualReport is the rollup of a user's completed sessions for one year.
// Monthly always holds twelve buckets, months 1 through 12.
type AnnualReport struct {
	UserID     string
	Year       int
	TotalHours float64
	Monthly    []MonthlyHours
}

// RegisterParams captures the data required to create an account.
type RegisterParams struct {
	Username string
	Password string
	Email    string
	Role     string
}

// Credentials captures a login attempt.
type Credentials struct {
	Username string
	Password string
}

// Shift represents a scheduled shift.
type Shift struct {
	ID        string
	UserID    string
	Username  string
	Date      time.Time
	Start     string
	End       string
	Location  *string
	CreatedAt time.Time
}

// ShiftInput captures caller provided shift fields. Start and End are times
// of day in ClockLayout.
type ShiftInput struct {
	UserID   string
	Date     time.Time
	Start    string
	End      string
	Location *string
}

// ShiftFilter narrows shift listings.
type ShiftFilter struct {
	UserID string
	Year   int
	Month  int
}

// VacationRequest represents a vacation request and its stored status.
type VacationRequest struct {
	ID          string
	UserID      string
	Username    string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	Reason      *string
	RequestedAt time.Time
}

// VacationInput captures caller provided vacation request fields.
type VacationInput struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Reason    *string
}

// OvertimeEntry represents a requested overtime allotment.
type OvertimeEntry struct {
	ID           string
	UserID       string
	Username     string
	Date         time.Time
	Hours        float64
	OvertimeType string
	Notes        *string
	Status       string
	RequestedAt  time.Time
}

// OvertimeInput captures caller provided overtime fields.
type OvertimeInput struct {
	UserID       string
	Date         time.Time
	Hours        float64
	OvertimeType string
	Notes        *string
}
