package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/worktime-backend/internal/persistence"
)

// VacationRepository implements persistence.VacationRepository using SQLite.
type VacationRepository struct {
	storage *Storage
}

// NewVacationRepository wires a vacation repository to the shared storage
// handle.
func NewVacationRepository(storage *Storage) *VacationRepository {
	return &VacationRepository{storage: storage}
}

// CreateVacationRequest inserts a new vacation request.
func (r *VacationRepository) CreateVacationRequest(ctx context.Context, request persistence.VacationRequest) error {
	if request.ID == "" || request.UserID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO vacation_requests (id, user_id, start_date, end_date, status, reason, requested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	return r.storage.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			request.ID,
			request.UserID,
			formatDate(request.StartDate),
			formatDate(request.EndDate),
			request.Status,
			nullableString(request.Reason),
			formatDateTime(request.RequestedAt),
		)
		return mapError(err)
	})
}

// ListVacationRequests returns a user's requests ordered by start date
// descending, optionally restricted to one status.
func (r *VacationRepository) ListVacationRequests(ctx context.Context, userID, status string) ([]persistence.VacationRequest, error) {
	query := `
		SELECT id, user_id, start_date, end_date, status, reason, requested_at
		FROM vacation_requests
		WHERE user_id = ?
	`
	args := []any{userID}

	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY start_date DESC"

	rows, err := r.storage.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	requests := make([]persistence.VacationRequest, 0)
	for rows.Next() {
		var (
			request     persistence.VacationRequest
			rawStart    string
			rawEnd      string
			reason      sql.NullString
			requestedAt string
		)
		if err := rows.Scan(&request.ID, &request.UserID, &rawStart, &rawEnd, &request.Status, &reason, &requestedAt); err != nil {
			return nil, mapError(err)
		}
		if request.StartDate, err = parseDate(rawStart); err != nil {
			return nil, fmt.Errorf("parse start_date: %w", err)
		}
		if request.EndDate, err = parseDate(rawEnd); err != nil {
			return nil, fmt.Errorf("parse end_date: %w", err)
		}
		if request.RequestedAt, err = parseDateTime(requestedAt); err != nil {
			return nil, fmt.Errorf("parse requested_at: %w", err)
		}
		if reason.Valid {
			value := reason.String
			request.Reason = &value
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return requests, nil
}

// OvertimeRepository implements persistence.OvertimeRepository using SQLite.
type OvertimeRepository struct {
	storage *Storage
}

// NewOvertimeRepository wires an overtime repository to the shared storage
// handle.
func NewOvertimeRepository(storage *Storage) *OvertimeRepository {
	return &OvertimeRepository{storage: storage}
}

// CreateOvertimeEntry inserts a new overtime entry. The schema rejects
// non-positive hours via a CHECK constraint.
func (r *OvertimeRepository) CreateOvertimeEntry(ctx context.Context, entry persistence.OvertimeEntry) error {
	if entry.ID == "" || entry.UserID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO overtime_entries (id, user_id, date, hours, overtime_type, notes, status, requested_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	return r.storage.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			entry.ID,
			entry.UserID,
			formatDate(entry.Date),
			entry.Hours,
			entry.OvertimeType,
			nullableString(entry.Notes),
			entry.Status,
			formatDateTime(entry.RequestedAt),
		)
		return mapError(err)
	})
}

// ListOvertimeEntries returns a user's entries ordered by date descending,
// optionally restricted to one status.
func (r *OvertimeRepository) ListOvertimeEntries(ctx context.Context, userID, status string) ([]persistence.OvertimeEntry, error) {
	query := `
		SELECT id, user_id, date, hours, overtime_type, notes, status, requested_at
		FROM overtime_entries
		WHERE user_id = ?
	`
	args := []any{userID}

	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY date DESC"

	rows, err := r.storage.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	entries := make([]persistence.OvertimeEntry, 0)
	for rows.Next() {
		var (
			entry        persistence.OvertimeEntry
			rawDate      string
			overtimeType sql.NullString
			notes        sql.NullString
			requestedAt  string
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &rawDate, &entry.Hours, &overtimeType, &notes, &entry.Status, &requestedAt); err != nil {
			return nil, mapError(err)
		}
		if entry.Date, err = parseDate(rawDate); err != nil {
			return nil, fmt.Errorf("parse date: %w", err)
		}
		if entry.RequestedAt, err = parseDateTime(requestedAt); err != nil {
			return nil, fmt.Errorf("parse requested_at: %w", err)
		}
		entry.OvertimeType = overtimeType.String
		if notes.Valid {
			value := notes.String
			entry.Notes = &value
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return entries, nil
}

var (
	_ persistence.VacationRepository = (*VacationRepository)(nil)
	_ persistence.OvertimeRepository = (*OvertimeRepository)(nil)
)
