package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ReportService aggregates completed ledger entries into annual rollups. It
// reads entry data only through the repository and never mutates it.
type ReportService struct {
	entries TimeEntryRepository
	users   UserDirectory
	logger  *slog.Logger
}

// NewReportService wires dependencies for reporting.
func NewReportService(entries TimeEntryRepository, users UserDirectory) *ReportService {
	return NewReportServiceWithLogger(entries, users, nil)
}

// NewReportServiceWithLogger wires dependencies together with a base logger.
func NewReportServiceWithLogger(entries TimeEntryRepository, users UserDirectory, logger *slog.Logger) *ReportService {
	return &ReportService{entries: entries, users: users, logger: defaultLogger(logger)}
}

// AnnualReport produces the monthly/annual hour rollup for one user and year.
// Only completed entries count; open sessions are excluded, never estimated.
// Totals accumulate in seconds and each figure is rounded to two decimals
// independently at the end, so the monthly sum may drift from the total by a
// few hundredths of an hour. That drift is accepted, not corrected.
func (s *ReportService) AnnualReport(ctx context.Context, userID string, year int) (AnnualReport, error) {
	if s == nil {
		return AnnualReport{}, fmt.Errorf("ReportService is nil")
	}

	if vErr := requireUserID(userID); vErr != nil {
		return AnnualReport{}, vErr
	}
	if s.users != nil {
		exists, err := s.users.UserExists(ctx, userID)
		if err != nil {
			return AnnualReport{}, err
		}
		if !exists {
			return AnnualReport{}, ErrNotFound
		}
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)

	entries, err := s.entries.ListTimeEntries(ctx, TimeEntryFilter{
		UserID:     userID,
		StartDate:  &start,
		EndDate:    &end,
		ClosedOnly: true,
	})
	if err != nil {
		return AnnualReport{}, err
	}

	var totalSeconds float64
	var monthSeconds [13]float64

	for _, entry := range entries {
		if entry.ClockOut == nil {
			continue
		}
		seconds := entry.ClockOut.Sub(entry.ClockIn).Seconds()
		totalSeconds += seconds
		// Bucketed by the stored date's month, which the ledger guarantees
		// matches the clock-in instant.
		monthSeconds[entry.Date.Month()] += seconds
	}

	report := AnnualReport{
		UserID:     userID,
		Year:       year,
		TotalHours: RoundHours(totalSeconds / 3600),
		Monthly:    make([]MonthlyHours, 0, 12),
	}
	for month := 1; month <= 12; month++ {
		report.Monthly = append(report.Monthly, MonthlyHours{
			Month: month,
			Hours: RoundHours(monthSeconds[month] / 3600),
		})
	}

	serviceLogger(ctx, s.logger, "ReportService", "AnnualReport", "user_id", userID, "year", year).
		InfoContext(ctx, "annual report computed", "entries", len(entries), "total_hours", report.TotalHours)

	return report, nil
}
