package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/core/model"
	"github.com/frsm-ph/shiftops/pkg/db"
)

type mockStore struct {
	shifts   []db.ShiftDetail
	requests []db.ChangeRequestRow
	page     *db.DutyAssignmentPage
	stats    *db.RequestStatistics

	upcomingFrom time.Time
	upcomingTo   time.Time
	pageArg      int
	perPageArg   int
}

func (m *mockStore) ListShiftsForDate(ctx context.Context, date time.Time) ([]db.ShiftDetail, error) {
	return m.shifts, nil
}

func (m *mockStore) ListUpcomingShifts(ctx context.Context, from, to time.Time) ([]db.ShiftDetail, error) {
	m.upcomingFrom = from
	m.upcomingTo = to
	return m.shifts, nil
}

func (m *mockStore) ListChangeRequests(ctx context.Context, f db.ChangeRequestFilter) ([]db.ChangeRequestRow, error) {
	return m.requests, nil
}

func (m *mockStore) ListDutyAssignments(ctx context.Context, f db.DutyAssignmentFilter, page, perPage int) (*db.DutyAssignmentPage, error) {
	m.pageArg = page
	m.perPageArg = perPage
	return m.page, nil
}

func (m *mockStore) GetRequestStatistics(ctx context.Context) (*db.RequestStatistics, error) {
	return m.stats, nil
}

func detailWithStatus(status model.AttendanceStatus) db.ShiftDetail {
	return db.ShiftDetail{Shift: db.Shift{AttendanceStatus: status}}
}

func TestSummarizeDay(t *testing.T) {
	shifts := []db.ShiftDetail{
		detailWithStatus(model.AttendancePending),
		detailWithStatus(model.AttendanceCheckedIn),
		detailWithStatus(model.AttendanceCheckedIn),
		detailWithStatus(model.AttendanceCheckedOut),
		detailWithStatus(model.AttendanceAbsent),
		detailWithStatus(model.AttendanceExcused),
	}

	summary := SummarizeDay(shifts)

	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 2, summary.CheckedIn)
	assert.Equal(t, 1, summary.CheckedOut)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 1, summary.Excused)
}

func TestSummarizeDay_Empty(t *testing.T) {
	assert.Equal(t, DailySummary{}, SummarizeDay(nil))
}

func TestShiftsForDate_ReturnsSummary(t *testing.T) {
	store := &mockStore{shifts: []db.ShiftDetail{
		detailWithStatus(model.AttendanceCheckedIn),
		detailWithStatus(model.AttendancePending),
	}}

	shifts, summary, err := ShiftsForDate(context.Background(), store, zap.NewNop(),
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Len(t, shifts, 2)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.CheckedIn)
}

func TestUpcomingShifts_DefaultsToAWeek(t *testing.T) {
	store := &mockStore{}

	_, err := UpcomingShifts(context.Background(), store, zap.NewNop(), 0)
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, store.upcomingTo.Sub(store.upcomingFrom))
}

func TestUpcomingShifts_StartsAtLocalMidnight(t *testing.T) {
	store := &mockStore{}

	_, err := UpcomingShifts(context.Background(), store, zap.NewNop(), 3)
	require.NoError(t, err)

	from := store.upcomingFrom
	assert.Equal(t, 0, from.Hour())
	assert.Equal(t, 0, from.Minute())
	assert.Equal(t, 0, from.Second())
	assert.Equal(t, time.Local, from.Location())

	// Midnight of the current local day, regardless of the UTC offset
	assert.False(t, from.After(time.Now()))
	assert.Less(t, time.Since(from), 24*time.Hour)
}

func TestDutyAssignments_FixedPageSize(t *testing.T) {
	store := &mockStore{page: &db.DutyAssignmentPage{Page: 3}}

	result, err := DutyAssignments(context.Background(), store, zap.NewNop(), db.DutyAssignmentFilter{}, 3)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Page)
	assert.Equal(t, 3, store.pageArg)
	assert.Equal(t, DutyAssignmentsPerPage, store.perPageArg)
}

func TestRequestStatistics(t *testing.T) {
	store := &mockStore{stats: &db.RequestStatistics{TotalRequests: 12, PendingRequests: 4}}

	stats, err := RequestStatistics(context.Background(), store, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 12, stats.TotalRequests)
	assert.Equal(t, 4, stats.PendingRequests)
}
