package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/worktime-backend/internal/persistence"
)

// TimeEntryRepository implements persistence.TimeEntryRepository using SQLite.
type TimeEntryRepository struct {
	storage *Storage
}

// NewTimeEntryRepository wires a time entry repository to the shared storage
// handle.
func NewTimeEntryRepository(storage *Storage) *TimeEntryRepository {
	return &TimeEntryRepository{storage: storage}
}

// CreateTimeEntry inserts a new open session. The insert is unconditional;
// the partial unique index over (user_id, date) for open rows rejects a
// second open session, which surfaces as persistence.ErrDuplicate. That makes
// concurrent clock-ins for the same user safe without a read-then-write.
func (r *TimeEntryRepository) CreateTimeEntry(ctx context.Context, entry persistence.TimeEntry) error {
	if entry.ID == "" || entry.UserID == "" {
		return persistence.ErrConstraintViolation
	}

	query := `
		INSERT INTO time_entries (id, user_id, date, clock_in_time, clock_out_time)
		VALUES (?, ?, ?, ?, NULL)
	`

	return r.storage.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			entry.ID,
			entry.UserID,
			formatDate(entry.Date),
			formatDateTime(entry.ClockIn),
		)
		return mapError(err)
	})
}

// CloseOpenEntry selects the open entry for (userID, date) with the most
// recent clock-in and stamps its clock-out, all within one transaction.
// Returns persistence.ErrNotFound when no open entry exists; a clock-out is
// never synthesized.
func (r *TimeEntryRepository) CloseOpenEntry(ctx context.Context, userID string, date time.Time, closedAt time.Time) (persistence.TimeEntry, error) {
	var closed persistence.TimeEntry

	err := r.storage.WithTransaction(ctx, func(tx *sql.Tx) error {
		selectQuery := `
			SELECT id, user_id, date, clock_in_time
			FROM time_entries
			WHERE user_id = ? AND date = ? AND clock_out_time IS NULL
			ORDER BY clock_in_time DESC
			LIMIT 1
		`

		var (
			entry   persistence.TimeEntry
			rawDate string
			rawIn   string
		)
		err := tx.QueryRowContext(ctx, selectQuery, userID, formatDate(date)).
			Scan(&entry.ID, &entry.UserID, &rawDate, &rawIn)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return persistence.ErrNotFound
			}
			return mapError(err)
		}

		if entry.Date, err = parseDate(rawDate); err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
		if entry.ClockIn, err = parseDateTime(rawIn); err != nil {
			return fmt.Errorf("parse clock_in_time: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE time_entries SET clock_out_time = ? WHERE id = ?`,
			formatDateTime(closedAt), entry.ID,
		); err != nil {
			return mapError(err)
		}

		out := closedAt
		entry.ClockOut = &out
		closed = entry
		return nil
	})
	if err != nil {
		return persistence.TimeEntry{}, err
	}

	return closed, nil
}

// ListTimeEntries returns a user's entries ordered by date descending, then
// clock-in descending, honoring the optional inclusive date range.
func (r *TimeEntryRepository) ListTimeEntries(ctx context.Context, filter persistence.TimeEntryFilter) ([]persistence.TimeEntry, error) {
	query := `
		SELECT id, user_id, date, clock_in_time, clock_out_time
		FROM time_entries
		WHERE user_id = ?
	`
	args := []any{filter.UserID}

	if filter.StartDate != nil {
		query += " AND date >= ?"
		args = append(args, formatDate(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query += " AND date <= ?"
		args = append(args, formatDate(*filter.EndDate))
	}
	if filter.ClosedOnly {
		query += " AND clock_out_time IS NOT NULL"
	}

	query += " ORDER BY date DESC, clock_in_time DESC"

	rows, err := r.storage.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	entries := make([]persistence.TimeEntry, 0)
	for rows.Next() {
		entry, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return entries, nil
}

// CountOpenEntries reports how many open sessions exist for (userID, date).
// The schema caps this at one; the method exists so tests can verify the
// invariant directly.
func (r *TimeEntryRepository) CountOpenEntries(ctx context.Context, userID string, date time.Time) (int, error) {
	query := `
		SELECT COUNT(1) FROM time_entries
		WHERE user_id = ? AND date = ? AND clock_out_time IS NULL
	`

	var count int
	if err := r.storage.db.QueryRowContext(ctx, query, userID, formatDate(date)).Scan(&count); err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

func scanTimeEntry(rows *sql.Rows) (persistence.TimeEntry, error) {
	var (
		entry   persistence.TimeEntry
		rawDate string
		rawIn   string
		rawOut  sql.NullString
	)

	if err := rows.Scan(&entry.ID, &entry.UserID, &rawDate, &rawIn, &rawOut); err != nil {
		return persistence.TimeEntry{}, mapError(err)
	}

	var err error
	if entry.Date, err = parseDate(rawDate); err != nil {
		return persistence.TimeEntry{}, fmt.Errorf("parse date: %w", err)
	}
	if entry.ClockIn, err = parseDateTime(rawIn); err != nil {
		return persistence.TimeEntry{}, fmt.Errorf("parse clock_in_time: %w", err)
	}
	if rawOut.Valid {
		out, err := parseDateTime(rawOut.String)
		if err != nil {
			return persistence.TimeEntry{}, fmt.Errorf("parse clock_out_time: %w", err)
		}
		entry.ClockOut = &out
	}

	return entry, nil
}

var _ persistence.TimeEntryRepository = (*TimeEntryRepository)(nil)
