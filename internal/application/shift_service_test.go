package application

import (
	"context"
	"errors"
	"testing"
	"time"
)

type shiftRepoStub struct {
	created    []Shift
	createErr  error
	list       []Shift
	listErr    error
	lastFilter ShiftFilter
}

func (s *shiftRepoStub) CreateShift(ctx context.Context, shift Shift) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, shift)
	return nil
}

func (s *shiftRepoStub) ListShifts(ctx context.Context, filter ShiftFilter) ([]Shift, error) {
	s.lastFilter = filter
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]Shift, len(s.list))
	copy(out, s.list)
	return out, nil
}

func TestShiftService_CreateShift(t *testing.T) {
	t.Parallel()

	repo := &shiftRepoStub{}
	directory := &userDirectoryStub{exists: true, user: User{Username: "alice"}}
	svc := NewShiftService(repo, directory, func() string { return "shift-1" }, fixedTime(8, 0))

	shift, err := svc.CreateShift(context.Background(), ShiftInput{
		UserID: "user-1",
		Date:   time.Date(2025, time.July, 1, 0, 0, 0, 0, time.Local),
		Start:  "09:00",
		End:    "17:00",
	})
	if err != nil {
		t.Fatalf("CreateShift failed: %v", err)
	}

	if shift.ID != "shift-1" {
		t.Errorf("expected generated ID shift-1, got %q", shift.ID)
	}
	if shift.Username != "alice" {
		t.Errorf("expected username alice, got %q", shift.Username)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected 1 persisted shift, got %d", len(repo.created))
	}
}

func TestShiftService_CreateShift_ValidatesFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input ShiftInput
		field string
	}{
		{name: "missing user", input: ShiftInput{Date: time.Now(), Start: "09:00", End: "17:00"}, field: "user_id"},
		{name: "missing date", input: ShiftInput{UserID: "user-1", Start: "09:00", End: "17:00"}, field: "date"},
		{name: "missing start", input: ShiftInput{UserID: "user-1", Date: time.Now(), End: "17:00"}, field: "start_time"},
		{name: "malformed end", input: ShiftInput{UserID: "user-1", Date: time.Now(), Start: "09:00", End: "5pm"}, field: "end_time"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewShiftService(&shiftRepoStub{}, &userDirectoryStub{exists: true}, nil, nil)
			_, err := svc.CreateShift(context.Background(), tc.input)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := vErr.FieldErrors[tc.field]; !ok {
				t.Fatalf("expected %s validation error, got %v", tc.field, vErr.FieldErrors)
			}
		})
	}
}

func TestShiftService_CreateShift_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := NewShiftService(&shiftRepoStub{}, &userDirectoryStub{exists: false}, nil, nil)

	_, err := svc.CreateShift(context.Background(), ShiftInput{
		UserID: "ghost",
		Date:   time.Date(2025, time.July, 1, 0, 0, 0, 0, time.Local),
		Start:  "09:00",
		End:    "17:00",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestShiftService_ListShifts_FillsUsernames(t *testing.T) {
	t.Parallel()

	repo := &shiftRepoStub{list: []Shift{
		{ID: "shift-1", UserID: "user-1"},
		{ID: "shift-2", UserID: "user-1"},
	}}
	directory := &userDirectoryStub{exists: true, user: User{Username: "alice"}}
	svc := NewShiftService(repo, directory, nil, nil)

	shifts, err := svc.ListShifts(context.Background(), ShiftFilter{UserID: "user-1", Year: 2025, Month: 7})
	if err != nil {
		t.Fatalf("ListShifts failed: %v", err)
	}

	if len(shifts) != 2 {
		t.Fatalf("expected 2 shifts, got %d", len(shifts))
	}
	for _, shift := range shifts {
		if shift.Username != "alice" {
			t.Errorf("shift %s missing username, got %q", shift.ID, shift.Username)
		}
	}
	if repo.lastFilter.Year != 2025 || repo.lastFilter.Month != 7 {
		t.Errorf("filter not forwarded: %+v", repo.lastFilter)
	}
}
