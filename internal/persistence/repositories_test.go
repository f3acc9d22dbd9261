package persistence_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/worktime-backend/internal/persistence"
	"github.com/example/worktime-backend/internal/testfixtures"
)

func TestUserRepository(t *testing.T) {
	t.Parallel()

	t.Run("creates and reads users", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)
		defer harness.Close()

		user := testfixtures.NewUserFixture(
			testfixtures.WithUserID("user-1"),
			testfixtures.WithUsername("alice"),
			testfixtures.WithUserEmail("alice@example.com"),
		)

		if err := harness.Users.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		fetched, err := harness.Users.GetUser(ctx, "user-1")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if fetched.Username != "alice" || fetched.Email != "alice@example.com" {
			t.Fatalf("unexpected user: %+v", fetched)
		}

		byName, err := harness.Users.GetUserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserByUsername failed: %v", err)
		}
		if byName.ID != "user-1" {
			t.Fatalf("expected user-1, got %q", byName.ID)
		}

		exists, err := harness.Users.UserExists(ctx, "user-1")
		if err != nil || !exists {
			t.Fatalf("UserExists = %v, %v", exists, err)
		}
	})

	t.Run("rejects duplicate usernames", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)
		defer harness.Close()

		first := testfixtures.NewUserFixture(testfixtures.WithUsername("taken"))
		if err := harness.Users.CreateUser(ctx, first); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		second := testfixtures.NewUserFixture(testfixtures.WithUsername("taken"))
		if err := harness.Users.CreateUser(ctx, second); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("missing users surface ErrNotFound", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)
		defer harness.Close()

		if _, err := harness.Users.GetUser(ctx, "ghost"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if err := harness.Users.DeleteUser(ctx, "ghost"); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound from delete, got %v", err)
		}

		exists, err := harness.Users.UserExists(ctx, "ghost")
		if err != nil {
			t.Fatalf("UserExists failed: %v", err)
		}
		if exists {
			t.Fatal("expected ghost to be absent")
		}
	})
}

func TestTimeEntryRepository(t *testing.T) {
	t.Parallel()

	t.Run("opens and closes a session", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)
		defer harness.Close()

		user := testfixtures.NewUserFixture()
		if err := harness.Users.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		entry := testfixtures.NewTimeEntryFixture(user.ID)
		if err := harness.TimeEntries.CreateTimeEntry(ctx, entry); err != nil {
			t.Fatalf("CreateTimeEntry failed: %v", err)
		}

		count, err := harness.TimeEntries.CountOpenEntries(ctx, user.ID, entry.Date)
		if err != nil {
			t.Fatalf("CountOpenEntries failed: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected 1 open entry, got %d", count)
		}

		closedAt := entry.ClockIn.Add(8 * time.Hour)
		closed, err := harness.TimeEntries.CloseOpenEntry(ctx, user.ID, entry.Date, closedAt)
		if err != nil {
			t.Fatalf("CloseOpenEntry failed: %v", err)
		}
		if closed.ID != entry.ID {
			t.Fatalf("expected entry %q closed, got %q", entry.ID, closed.ID)
		}
		if closed.ClockOut == nil || !closed.ClockOut.Equal(closedAt) {
			t.Fatalf("expected clock-out %v, got %v", closedAt, closed.ClockOut)
		}

		count, err = harness.TimeEntries.CountOpenEntries(ctx, user.ID, entry.Date)
		if err != nil {
			t.Fatalf("CountOpenEntries failed: %v", err)
		}
		if count != 0 {
			t.Fatalf("expected no open entries after close, got %d", count)
		}
	})

	t.Run("rejects a second open session for the same day", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)
		defer harness.Close()

		user := testfixtures.NewUserFixture()
		if err := harness.Users.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		first := testfixtures.NewTimeEntryFixture(user.ID)
		if err := harness.TimeEntries.CreateTimeEntry(ctx, first); err != nil {
			t.Fatalf("CreateTimeEntry failed: %v", err)
		}

		second := testfixtures.NewTimeEntryFixture(user.ID, testfixtures.WithClockIn(first.ClockIn.Add(time.Minute)))
		if err := harness.TimeEntries.CreateTimeEntry(ctx, second); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}

		// Once the first session is closed, a fresh one may open on the
		// same day.
		if _, err := harness.TimeEntries.CloseOpenEntry(ctx, user.ID, first.Date, first.ClockIn.Add(4*time.Hour)); err != nil {
			t.Fatalf("CloseOpenEntry failed: %v", err)
		}
		if err := harness.TimeEntries.CreateTimeEntry(ctx, second); err != nil {
			t.Fatalf("expected reopen after close to succeed, got %v", err)
		}
	})

	t.Run("keeps at most one open session under concurrent clock-ins", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)
		defer harness.Close()

		user := testfixtures.NewUserFixture()
		if err := harness.Users.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		base := testfixtures.NewTimeEntryFixture(user.ID)

		const attempts = 8
		var wg sync.WaitGroup
		results := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				entry := base
				entry.ID = base.ID + "-" + string(rune('a'+i))
				results[i] = harness.TimeEntries.CreateTimeEntry(ctx, entry)
			}()
		}
		wg.Wait()

		succeeded := 0
		for _, err := range results {
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, persistence.ErrDuplicate):
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if succeeded != 1 {
			t.Fatalf("expected exactly 1 successful clock-in, got %d", succeeded)
		}

		count, err := harness.TimeEntries.CountOpenEntries(ctx, user.ID, base.Date)
		if err != nil {
			t.Fatalf("CountOpenEntries failed: %v", err)
		}
		if count != 1 {
			t.Fatalf("invariant violated: %d open entries", count)
		}
	})

	t.Run("close without an open session fails", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)
		defer harness.Close()

		user := testfixtures.NewUserFixture()
		if err := harness.Users.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		_, err := harness.TimeEntries.CloseOpenEntry(ctx, user.ID, testfixtures.ReferenceTime(), testfixtures.ReferenceTime())
		if !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("entries require an existing user", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)
		defer harness.Close()

		entry := testfixtures.NewTimeEntryFixture("ghost")
		if err := harness.TimeEntries.CreateTimeEntry(ctx, entry); !errors.Is(err, persistence.ErrForeignKeyViolation) {
			t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
		}
	})

	t.Run("lists newest first with date bounds", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)
		defer harness.Close()

		user := testfixtures.NewUserFixture()
		if err := harness.Users.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		day1 := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.Local)
		day2 := day1.Add(24 * time.Hour)
		day3 := day1.Add(48 * time.Hour)

		for i, clockIn := range []time.Time{day1, day2, day3} {
			entry := testfixtures.NewTimeEntryFixture(user.ID,
				testfixtures.WithEntryID([]string{"entry-a", "entry-b", "entry-c"}[i]),
				testfixtures.WithClockIn(clockIn),
				testfixtures.WithWorkedHours(8),
			)
			if err := harness.TimeEntries.CreateTimeEntry(ctx, entry); err != nil {
				t.Fatalf("CreateTimeEntry failed: %v", err)
			}
			// Open entries: fixture clock-outs are not persisted by create,
			// so close explicitly.
			if _, err := harness.TimeEntries.CloseOpenEntry(ctx, user.ID, entry.Date, *entry.ClockOut); err != nil {
				t.Fatalf("CloseOpenEntry failed: %v", err)
			}
		}

		all, err := harness.TimeEntries.ListTimeEntries(ctx, persistence.TimeEntryFilter{UserID: user.ID})
		if err != nil {
			t.Fatalf("ListTimeEntries failed: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(all))
		}
		if all[0].ID != "entry-c" || all[2].ID != "entry-a" {
			t.Fatalf("expected newest first, got %q..%q", all[0].ID, all[2].ID)
		}

		start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)
		end := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)
		bounded, err := harness.TimeEntries.ListTimeEntries(ctx, persistence.TimeEntryFilter{
			UserID:    user.ID,
			StartDate: &start,
			EndDate:   &end,
		})
		if err != nil {
			t.Fatalf("ListTimeEntries failed: %v", err)
		}
		if len(bounded) != 1 || bounded[0].ID != "entry-b" {
			t.Fatalf("expected only entry-b in range, got %+v", bounded)
		}
	})
}

func TestShiftRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	harness := testfixtures.NewSQLiteHarness(t)
	defer harness.Close()

	user := testfixtures.NewUserFixture()
	if err := harness.Users.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	july := testfixtures.NewShiftFixture(user.ID,
		testfixtures.WithShiftDate(time.Date(2025, time.July, 14, 0, 0, 0, 0, time.Local)),
		testfixtures.WithShiftLocation("warehouse"),
	)
	august := testfixtures.NewShiftFixture(user.ID,
		testfixtures.WithShiftDate(time.Date(2025, time.August, 4, 0, 0, 0, 0, time.Local)),
		testfixtures.WithShiftTimes("13:00", "21:00"),
	)

	for _, shift := range []persistence.Shift{july, august} {
		if err := harness.Shifts.CreateShift(ctx, shift); err != nil {
			t.Fatalf("CreateShift failed: %v", err)
		}
	}

	shifts, err := harness.Shifts.ListShifts(ctx, persistence.ShiftFilter{UserID: user.ID, Year: 2025, Month: 7})
	if err != nil {
		t.Fatalf("ListShifts failed: %v", err)
	}
	if len(shifts) != 1 || shifts[0].ID != july.ID {
		t.Fatalf("expected only the July shift, got %+v", shifts)
	}
	if shifts[0].Location == nil || *shifts[0].Location != "warehouse" {
		t.Fatalf("expected location to round-trip, got %v", shifts[0].Location)
	}

	orphan := testfixtures.NewShiftFixture("ghost")
	if err := harness.Shifts.CreateShift(ctx, orphan); !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
	}
}

func TestVacationRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	harness := testfixtures.NewSQLiteHarness(t)
	defer harness.Close()

	user := testfixtures.NewUserFixture()
	if err := harness.Users.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	pending := testfixtures.NewVacationFixture(user.ID)
	approved := testfixtures.NewVacationFixture(user.ID)
	approved.Status = "approved"

	for _, request := range []persistence.VacationRequest{pending, approved} {
		if err := harness.Vacations.CreateVacationRequest(ctx, request); err != nil {
			t.Fatalf("CreateVacationRequest failed: %v", err)
		}
	}

	all, err := harness.Vacations.ListVacationRequests(ctx, user.ID, "")
	if err != nil {
		t.Fatalf("ListVacationRequests failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(all))
	}

	filtered, err := harness.Vacations.ListVacationRequests(ctx, user.ID, "approved")
	if err != nil {
		t.Fatalf("ListVacationRequests failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != approved.ID {
		t.Fatalf("expected only the approved request, got %+v", filtered)
	}
}

func TestOvertimeRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	harness := testfixtures.NewSQLiteHarness(t)
	defer harness.Close()

	user := testfixtures.NewUserFixture()
	if err := harness.Users.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	entry := testfixtures.NewOvertimeFixture(user.ID)
	if err := harness.Overtime.CreateOvertimeEntry(ctx, entry); err != nil {
		t.Fatalf("CreateOvertimeEntry failed: %v", err)
	}

	entries, err := harness.Overtime.ListOvertimeEntries(ctx, user.ID, "pending")
	if err != nil {
		t.Fatalf("ListOvertimeEntries failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Hours != entry.Hours {
		t.Fatalf("unexpected listing: %+v", entries)
	}

	invalid := testfixtures.NewOvertimeFixture(user.ID)
	invalid.Hours = 0
	if err := harness.Overtime.CreateOvertimeEntry(ctx, invalid); !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation for zero hours, got %v", err)
	}
}
