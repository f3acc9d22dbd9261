package persistence

import "time"

// User represents an employee account row.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TimeEntry represents one work session row. ClockOut is nil while the
// session is open. Date carries the calendar date the session is attributed
// to; it is always derived from ClockIn at insert time.
type TimeEntry struct {
	ID       string
	UserID   string
	Date     time.Time
	ClockIn  time.Time
	ClockOut *time.Time
}

// Shift represents a scheduled shift row. Start and End are times of day on
// Date; no temporal reasoning is applied to them.
type Shift struct {
	ID        string
	UserID    string
	Date      time.Time
	Start     string
	End       string
	Location  *string
	CreatedAt time.Time
}

// VacationRequest represents a vacation request row with its workflow status.
type VacationRequest struct {
	ID          string
	UserID      string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	Reason      *string
	RequestedAt time.Time
}

// OvertimeEntry represents a requested overtime allotment row.
type OvertimeEntry struct {
	ID           string
	UserID       string
	Date         time.Time
	Hours        float64
	OvertimeType string
	Notes        *string
	Status       string
	RequestedAt  time.Time
}
