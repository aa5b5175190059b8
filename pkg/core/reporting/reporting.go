// Package reporting exposes the read-only query surface: day and upcoming
// shift listings, change request review listings, duty assignment pages and
// request statistics. Nothing here mutates state and the workflow services
// never read through it.
package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/core/model"
	"github.com/frsm-ph/shiftops/pkg/db"
)

// DutyAssignmentsPerPage matches the page size the admin review screen uses
const DutyAssignmentsPerPage = 5

// DailySummary tallies attendance for one day of shifts
type DailySummary struct {
	Total      int
	Pending    int
	CheckedIn  int
	CheckedOut int
	Absent     int
	Excused    int
}

// Store defines the read operations the reporting layer needs
type Store interface {
	ListShiftsForDate(ctx context.Context, date time.Time) ([]db.ShiftDetail, error)
	ListUpcomingShifts(ctx context.Context, from, to time.Time) ([]db.ShiftDetail, error)
	ListChangeRequests(ctx context.Context, f db.ChangeRequestFilter) ([]db.ChangeRequestRow, error)
	ListDutyAssignments(ctx context.Context, f db.DutyAssignmentFilter, page, perPage int) (*db.DutyAssignmentPage, error)
	GetRequestStatistics(ctx context.Context) (*db.RequestStatistics, error)
}

// ShiftsForDate returns the day's shifts plus their attendance tally
func ShiftsForDate(ctx context.Context, database Store, logger *zap.Logger, date time.Time) ([]db.ShiftDetail, DailySummary, error) {
	logger.Debug("Listing shifts for date", zap.Time("date", date))

	shifts, err := database.ListShiftsForDate(ctx, date)
	if err != nil {
		return nil, DailySummary{}, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, SummarizeDay(shifts), nil
}

// UpcomingShifts returns shifts from today through daysAhead days out
func UpcomingShifts(ctx context.Context, database Store, logger *zap.Logger, daysAhead int) ([]db.ShiftDetail, error) {
	if daysAhead < 1 {
		daysAhead = 7
	}
	now := time.Now()
	// Midnight in the local calendar day, not the UTC one
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 0, daysAhead)
	logger.Debug("Listing upcoming shifts",
		zap.Time("from", from),
		zap.Time("to", to))

	shifts, err := database.ListUpcomingShifts(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming shifts: %w", err)
	}
	return shifts, nil
}

// ChangeRequests returns requests for review, pending first
func ChangeRequests(ctx context.Context, database Store, logger *zap.Logger, f db.ChangeRequestFilter) ([]db.ChangeRequestRow, error) {
	logger.Debug("Listing change requests", zap.String("status", string(f.Status)))

	rows, err := database.ListChangeRequests(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list change requests: %w", err)
	}
	return rows, nil
}

// DutyAssignments returns one page of duty assignments
func DutyAssignments(ctx context.Context, database Store, logger *zap.Logger, f db.DutyAssignmentFilter, page int) (*db.DutyAssignmentPage, error) {
	logger.Debug("Listing duty assignments", zap.Int("page", page))

	result, err := database.ListDutyAssignments(ctx, f, page, DutyAssignmentsPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list duty assignments: %w", err)
	}
	return result, nil
}

// RequestStatistics returns the trailing-30-day change request figures
func RequestStatistics(ctx context.Context, database Store, logger *zap.Logger) (*db.RequestStatistics, error) {
	stats, err := database.GetRequestStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch request statistics: %w", err)
	}
	return stats, nil
}

// SummarizeDay tallies shifts by attendance status
func SummarizeDay(shifts []db.ShiftDetail) DailySummary {
	s := DailySummary{Total: len(shifts)}
	for _, shift := range shifts {
		switch shift.AttendanceStatus {
		case model.AttendancePending:
			s.Pending++
		case model.AttendanceCheckedIn:
			s.CheckedIn++
		case model.AttendanceCheckedOut:
			s.CheckedOut++
		case model.AttendanceAbsent:
			s.Absent++
		case model.AttendanceExcused:
			s.Excused++
		}
	}
	return s
}
