package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/example/worktime-backend/internal/application"
	"github.com/example/worktime-backend/internal/config"
	httptransport "github.com/example/worktime-backend/internal/http"
	"github.com/example/worktime-backend/internal/persistence"
	"github.com/example/worktime-backend/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	users := sqlite.NewUserRepository(storage)
	entries := sqlite.NewTimeEntryRepository(storage)
	shifts := sqlite.NewShiftRepository(storage)
	vacations := sqlite.NewVacationRepository(storage)
	overtime := sqlite.NewOvertimeRepository(storage)

	userDirectory := newUserDirectoryAdapter(users)
	credentialStore := newCredentialStoreAdapter(users)
	entryRepo := newTimeEntryRepositoryAdapter(entries)
	shiftRepo := newShiftRepositoryAdapter(shifts)
	vacationRepo := newVacationRepositoryAdapter(vacations)
	overtimeRepo := newOvertimeRepositoryAdapter(overtime)

	accountService := application.NewAccountServiceWithLogger(credentialStore, idGenerator, now, logger)
	ledgerService := application.NewLedgerServiceWithLogger(entryRepo, userDirectory, idGenerator, now, logger)
	reportService := application.NewReportServiceWithLogger(entryRepo, userDirectory, logger)
	shiftService := application.NewShiftServiceWithLogger(shiftRepo, userDirectory, idGenerator, now, logger)
	vacationService := application.NewVacationServiceWithLogger(vacationRepo, userDirectory, idGenerator, now, logger)
	overtimeService := application.NewOvertimeServiceWithLogger(overtimeRepo, userDirectory, idGenerator, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:        httptransport.NewAuthHandler(accountService, logger),
		TimeEntries: httptransport.NewTimeEntryHandler(ledgerService, logger),
		Reports:     httptransport.NewReportHandler(reportService, logger),
		Shifts:      httptransport.NewShiftHandler(shiftService, logger),
		Vacations:   httptransport.NewVacationHandler(vacationService, logger),
		Overtime:    httptransport.NewOvertimeHandler(overtimeService, logger),
		Middleware:  []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("worktime API listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

type userDirectoryAdapter struct {
	repo persistence.UserRepository
}

func newUserDirectoryAdapter(repo persistence.UserRepository) *userDirectoryAdapter {
	return &userDirectoryAdapter{repo: repo}
}

func (a *userDirectoryAdapter) UserExists(ctx context.Context, id string) (bool, error) {
	return a.repo.UserExists(ctx, id)
}

func (a *userDirectoryAdapter) GetUser(ctx context.Context, id string) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, err
	}
	return toApplicationUser(stored), nil
}

type credentialStoreAdapter struct {
	repo persistence.UserRepository
}

func newCredentialStoreAdapter(repo persistence.UserRepository) *credentialStoreAdapter {
	return &credentialStoreAdapter{repo: repo}
}

func (a *credentialStoreAdapter) CreateCredentials(ctx context.Context, credentials application.UserCredentials) error {
	return a.repo.CreateUser(ctx, persistence.User{
		ID:           credentials.User.ID,
		Username:     credentials.User.Username,
		Email:        credentials.User.Email,
		PasswordHash: credentials.PasswordHash,
		Role:         credentials.User.Role,
		CreatedAt:    credentials.User.CreatedAt,
		UpdatedAt:    credentials.User.UpdatedAt,
	})
}

func (a *credentialStoreAdapter) GetCredentialsByUsername(ctx context.Context, username string) (application.UserCredentials, error) {
	stored, err := a.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return application.UserCredentials{}, err
	}
	return application.UserCredentials{
		User:         toApplicationUser(stored),
		PasswordHash: stored.PasswordHash,
	}, nil
}

type timeEntryRepositoryAdapter struct {
	repo persistence.TimeEntryRepository
}

func newTimeEntryRepositoryAdapter(repo persistence.TimeEntryRepository) *timeEntryRepositoryAdapter {
	return &timeEntryRepositoryAdapter{repo: repo}
}

func (a *timeEntryRepositoryAdapter) CreateTimeEntry(ctx context.Context, entry application.TimeEntry) error {
	return a.repo.CreateTimeEntry(ctx, toPersistenceTimeEntry(entry))
}

func (a *timeEntryRepositoryAdapter) CloseOpenEntry(ctx context.Context, userID string, date time.Time, closedAt time.Time) (application.TimeEntry, error) {
	stored, err := a.repo.CloseOpenEntry(ctx, userID, date, closedAt)
	if err != nil {
		return application.TimeEntry{}, err
	}
	return toApplicationTimeEntry(stored), nil
}

func (a *timeEntryRepositoryAdapter) ListTimeEntries(ctx context.Context, filter application.TimeEntryFilter) ([]application.TimeEntry, error) {
	models, err := a.repo.ListTimeEntries(ctx, persistence.TimeEntryFilter{
		UserID:     filter.UserID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		ClosedOnly: filter.ClosedOnly,
	})
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	entries := make([]application.TimeEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, toApplicationTimeEntry(model))
	}
	return entries, nil
}

type shiftRepositoryAdapter struct {
	repo persistence.ShiftRepository
}

func newShiftRepositoryAdapter(repo persistence.ShiftRepository) *shiftRepositoryAdapter {
	return &shiftRepositoryAdapter{repo: repo}
}

func (a *shiftRepositoryAdapter) CreateShift(ctx context.Context, shift application.Shift) error {
	return a.repo.CreateShift(ctx, persistence.Shift{
		ID:        shift.ID,
		UserID:    shift.UserID,
		Date:      shift.Date,
		Start:     shift.Start,
		End:       shift.End,
		Location:  cloneString(shift.Location),
		CreatedAt: shift.CreatedAt,
	})
}

func (a *shiftRepositoryAdapter) ListShifts(ctx context.Context, filter application.ShiftFilter) ([]application.Shift, error) {
	models, err := a.repo.ListShifts(ctx, persistence.ShiftFilter{
		UserID: filter.UserID,
		Year:   filter.Year,
		Month:  filter.Month,
	})
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	shifts := make([]application.Shift, 0, len(models))
	for _, model := range models {
		shifts = append(shifts, application.Shift{
			ID:        model.ID,
			UserID:    model.UserID,
			Date:      model.Date,
			Start:     model.Start,
			End:       model.End,
			Location:  cloneString(model.Location),
			CreatedAt: model.CreatedAt,
		})
	}
	return shifts, nil
}

type vacationRepositoryAdapter struct {
	repo persistence.VacationRepository
}

func newVacationRepositoryAdapter(repo persistence.VacationRepository) *vacationRepositoryAdapter {
	return &vacationRepositoryAdapter{repo: repo}
}

func (a *vacationRepositoryAdapter) CreateVacationRequest(ctx context.Context, request application.VacationRequest) error {
	return a.repo.CreateVacationRequest(ctx, persistence.VacationRequest{
		ID:          request.ID,
		UserID:      request.UserID,
		StartDate:   request.StartDate,
		EndDate:     request.EndDate,
		Status:      request.Status,
		Reason:      cloneString(request.Reason),
		RequestedAt: request.RequestedAt,
	})
}

func (a *vacationRepositoryAdapter) ListVacationRequests(ctx context.Context, userID, status string) ([]application.VacationRequest, error) {
	models, err := a.repo.ListVacationRequests(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	requests := make([]application.VacationRequest, 0, len(models))
	for _, model := range models {
		requests = append(requests, application.VacationRequest{
			ID:          model.ID,
			UserID:      model.UserID,
			StartDate:   model.StartDate,
			EndDate:     model.EndDate,
			Status:      model.Status,
			Reason:      cloneString(model.Reason),
			RequestedAt: model.RequestedAt,
		})
	}
	return requests, nil
}

type overtimeRepositoryAdapter struct {
	repo persistence.OvertimeRepository
}

func newOvertimeRepositoryAdapter(repo persistence.OvertimeRepository) *overtimeRepositoryAdapter {
	return &overtimeRepositoryAdapter{repo: repo}
}

func (a *overtimeRepositoryAdapter) CreateOvertimeEntry(ctx context.Context, entry application.OvertimeEntry) error {
	return a.repo.CreateOvertimeEntry(ctx, persistence.OvertimeEntry{
		ID:           entry.ID,
		UserID:       entry.UserID,
		Date:         entry.Date,
		Hours:        entry.Hours,
		OvertimeType: entry.OvertimeType,
		Notes:        cloneString(entry.Notes),
		Status:       entry.Status,
		RequestedAt:  entry.RequestedAt,
	})
}

func (a *overtimeRepositoryAdapter) ListOvertimeEntries(ctx context.Context, userID, status string) ([]application.OvertimeEntry, error) {
	models, err := a.repo.ListOvertimeEntries(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return nil, nil
	}
	entries := make([]application.OvertimeEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, application.OvertimeEntry{
			ID:           model.ID,
			UserID:       model.UserID,
			Date:         model.Date,
			Hours:        model.Hours,
			OvertimeType: model.OvertimeType,
			Notes:        cloneString(model.Notes),
			Status:       model.Status,
			RequestedAt:  model.RequestedAt,
		})
	}
	return entries, nil
}

func toApplicationUser(model persistence.User) application.User {
	return application.User{
		ID:        model.ID,
		Username:  model.Username,
		Email:     model.Email,
		Role:      model.Role,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toPersistenceTimeEntry(entry application.TimeEntry) persistence.TimeEntry {
	return persistence.TimeEntry{
		ID:       entry.ID,
		UserID:   entry.UserID,
		Date:     entry.Date,
		ClockIn:  entry.ClockIn,
		ClockOut: cloneTime(entry.ClockOut),
	}
}

func toApplicationTimeEntry(model persistence.TimeEntry) application.TimeEntry {
	return application.TimeEntry{
		ID:       model.ID,
		UserID:   model.UserID,
		Date:     model.Date,
		ClockIn:  model.ClockIn,
		ClockOut: cloneTime(model.ClockOut),
	}
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}

func cloneTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
