package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/worktime-backend/internal/persistence"
)

// ShiftRepository implements persistence.ShiftRepository using SQLite.
type ShiftRepository struct {
	storage *Storage
}

// NewShiftRepository wires a shift repository to the shared storage handle.
func NewShiftRepository(storage *Storage) *ShiftRepository {
	return &ShiftRepository{storage: storage}
}

// CreateShift inserts a new scheduled shift.
func (r *ShiftRepository) CreateShift(ctx context.Context, shift persistence.Shift) error {
	if shift.ID == "" || shift.UserID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO shifts (id, user_id, date, start_time, end_time, location, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	return r.storage.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			shift.ID,
			shift.UserID,
			formatDate(shift.Date),
			shift.Start,
			shift.End,
			nullableString(shift.Location),
			formatDateTime(shift.CreatedAt),
		)
		return mapError(err)
	})
}

// ListShifts returns shifts matching the filter ordered by date then start
// time. Year/month filtering compares the stored date text prefix.
func (r *ShiftRepository) ListShifts(ctx context.Context, filter persistence.ShiftFilter) ([]persistence.Shift, error) {
	query := `
		SELECT id, user_id, date, start_time, end_time, location, created_at
		FROM shifts
		WHERE 1 = 1
	`
	args := make([]any, 0, 2)

	if filter.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}
	switch {
	case filter.Year != 0 && filter.Month != 0:
		query += " AND date LIKE ?"
		args = append(args, fmt.Sprintf("%04d-%02d-%%", filter.Year, filter.Month))
	case filter.Year != 0:
		query += " AND date LIKE ?"
		args = append(args, fmt.Sprintf("%04d-%%", filter.Year))
	}

	query += " ORDER BY date, start_time"

	rows, err := r.storage.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	shifts := make([]persistence.Shift, 0)
	for rows.Next() {
		var (
			shift     persistence.Shift
			rawDate   string
			location  sql.NullString
			createdAt string
		)
		if err := rows.Scan(&shift.ID, &shift.UserID, &rawDate, &shift.Start, &shift.End, &location, &createdAt); err != nil {
			return nil, mapError(err)
		}
		if shift.Date, err = parseDate(rawDate); err != nil {
			return nil, fmt.Errorf("parse date: %w", err)
		}
		if shift.CreatedAt, err = parseDateTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		if location.Valid {
			value := location.String
			shift.Location = &value
		}
		shifts = append(shifts, shift)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return shifts, nil
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

var _ persistence.ShiftRepository = (*ShiftRepository)(nil)
