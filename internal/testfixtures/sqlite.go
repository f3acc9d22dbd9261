package testfixtures

import (
	"path/filepath"
	"testing"

	"github.com/example/worktime-backend/internal/persistence"
	"github.com/example/worktime-backend/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite storage
// instance for integration-style persistence tests.
type SQLiteHarness struct {
	Users       persistence.UserRepository
	TimeEntries persistence.TimeEntryRepository
	Shifts      persistence.ShiftRepository
	Vacations   persistence.VacationRepository
	Overtime    persistence.OvertimeRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// will also register a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	dir := tb.TempDir()
	dsn := "file:" + filepath.Join(dir, "worktime.db")

	storage, err := sqlite.Open(dsn)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}

	if err := storage.Migrate(); err != nil {
		_ = storage.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}

	harness := &SQLiteHarness{
		Users:       sqlite.NewUserRepository(storage),
		TimeEntries: sqlite.NewTimeEntryRepository(storage),
		Shifts:      sqlite.NewShiftRepository(storage),
		Vacations:   sqlite.NewVacationRepository(storage),
		Overtime:    sqlite.NewOvertimeRepository(storage),
		cleanup: func() {
			_ = storage.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
