package attendance

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
	db.Store

	shift    *db.Shift
	shiftErr error

	updates       []db.ShiftAttendanceUpdate
	logs          []*db.AttendanceLog
	closures      []db.AttendanceLogCheckOut
	notifications []*db.Notification
}

func (m *mockStore) GetShiftForUpdate(ctx context.Context, shiftID int64) (*db.Shift, error) {
	if m.shiftErr != nil {
		return nil, m.shiftErr
	}
	return m.shift, nil
}

func (m *mockStore) UpdateShiftAttendance(ctx context.Context, upd db.ShiftAttendanceUpdate) error {
	m.updates = append(m.updates, upd)
	return nil
}

func (m *mockStore) InsertAttendanceLog(ctx context.Context, log *db.AttendanceLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockStore) CloseAttendanceLog(ctx context.Context, out db.AttendanceLogCheckOut) error {
	m.closures = append(m.closures, out)
	return nil
}

func (m *mockStore) InsertNotification(ctx context.Context, n *db.Notification) error {
	m.notifications = append(m.notifications, n)
	return nil
}

type mockConn struct {
	*mockStore
}

func (m *mockConn) InTx(ctx context.Context, fn func(db.Store) error) error {
	return fn(m.mockStore)
}

func int64Ptr(v int64) *int64 { return &v }

func pendingShift() *db.Shift {
	return &db.Shift{
		ID:               42,
		ShiftDate:        time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:        "19:00",
		EndTime:          "23:00",
		Location:         "Station 1",
		VolunteerID:      int64Ptr(7),
		VolunteerUserID:  int64Ptr(70),
		Status:           model.ShiftConfirmed,
		AttendanceStatus: model.AttendancePending,
	}
}

func TestApplyAttendanceAction_CheckIn(t *testing.T) {
	store := &mockStore{shift: pendingShift()}
	conn := &mockConn{mockStore: store}
	now := time.Date(2026, 3, 14, 18, 55, 0, 0, time.UTC)

	result, err := apply(context.Background(), conn, zap.NewNop(), 42, model.ActionCheckIn, "", now)
	require.NoError(t, err)

	assert.Equal(t, model.AttendanceCheckedIn, result.AttendanceStatus)
	assert.Nil(t, result.TotalHours)

	require.Len(t, store.updates, 1)
	upd := store.updates[0]
	assert.Equal(t, model.AttendanceCheckedIn, upd.AttendanceStatus)
	assert.Equal(t, model.ShiftInProgress, upd.Status)
	require.NotNil(t, upd.CheckInTime)
	assert.Equal(t, now, *upd.CheckInTime)
	assert.Nil(t, upd.CheckOutTime)

	require.Len(t, store.logs, 1)
	log := store.logs[0]
	assert.Equal(t, model.LogPresent, log.AttendanceStatus)
	assert.Equal(t, "Checked in by admin", log.Notes)
	require.NotNil(t, log.CheckIn)
	assert.Equal(t, now, *log.CheckIn)

	require.Len(t, store.notifications, 1)
	n := store.notifications[0]
	assert.Equal(t, int64(70), n.UserID)
	assert.Equal(t, "attendance_checkin", n.Type)
	assert.Equal(t, "Checked In Successfully", n.Title)
	assert.Contains(t, n.Message, "7:00 PM")
	assert.NotEmpty(t, n.ID)
}

func TestApplyAttendanceAction_DoubleCheckInRejected(t *testing.T) {
	shift := pendingShift()
	shift.AttendanceStatus = model.AttendanceCheckedIn
	store := &mockStore{shift: shift}
	conn := &mockConn{mockStore: store}

	_, err := apply(context.Background(), conn, zap.NewNop(), 42, model.ActionCheckIn, "", time.Now())

	var stateErr *model.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, string(model.ActionCheckIn), stateErr.Action)

	// Nothing was written
	assert.Empty(t, store.updates)
	assert.Empty(t, store.logs)
	assert.Empty(t, store.notifications)
}

func TestApplyAttendanceAction_CheckOutComputesHours(t *testing.T) {
	checkIn := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	now := checkIn.Add(2 * time.Hour)

	shift := pendingShift()
	shift.AttendanceStatus = model.AttendanceCheckedIn
	shift.CheckInTime = &checkIn
	store := &mockStore{shift: shift}
	conn := &mockConn{mockStore: store}

	result, err := apply(context.Background(), conn, zap.NewNop(), 42, model.ActionCheckOut, "", now)
	require.NoError(t, err)

	require.NotNil(t, result.TotalHours)
	assert.InDelta(t, 2.0, *result.TotalHours, 0.001)

	require.Len(t, store.updates, 1)
	assert.Equal(t, model.AttendanceCheckedOut, store.updates[0].AttendanceStatus)
	assert.Equal(t, model.ShiftCompleted, store.updates[0].Status)
	require.NotNil(t, store.updates[0].CheckOutTime)

	require.Len(t, store.closures, 1)
	closure := store.closures[0]
	assert.InDelta(t, 2.0, closure.TotalHours, 0.001)
	assert.Equal(t, "Checked out: Completed shift", closure.Note)

	require.Len(t, store.notifications, 1)
	assert.Equal(t, "attendance_checkout", store.notifications[0].Type)
	assert.Contains(t, store.notifications[0].Message, "2.00")
}

func TestApplyAttendanceAction_CheckOutRoundsFractionalHours(t *testing.T) {
	checkIn := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	now := checkIn.Add(2*time.Hour + 20*time.Minute)

	shift := pendingShift()
	shift.AttendanceStatus = model.AttendanceCheckedIn
	shift.CheckInTime = &checkIn
	store := &mockStore{shift: shift}
	conn := &mockConn{mockStore: store}

	result, err := apply(context.Background(), conn, zap.NewNop(), 42, model.ActionCheckOut, "late finish", now)
	require.NoError(t, err)

	require.NotNil(t, result.TotalHours)
	assert.InDelta(t, 2.33, *result.TotalHours, 0.001)

	require.Len(t, store.closures, 1)
	assert.Equal(t, "Checked out: late finish", store.closures[0].Note)
}

func TestApplyAttendanceAction_CheckOutWithoutCheckInRejected(t *testing.T) {
	store := &mockStore{shift: pendingShift()}
	conn := &mockConn{mockStore: store}

	_, err := apply(context.Background(), conn, zap.NewNop(), 42, model.ActionCheckOut, "", time.Now())

	var stateErr *model.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Empty(t, store.updates)
	assert.Empty(t, store.closures)
}

func TestApplyAttendanceAction_MarkAbsentNotifies(t *testing.T) {
	store := &mockStore{shift: pendingShift()}
	conn := &mockConn{mockStore: store}

	result, err := apply(context.Background(), conn, zap.NewNop(), 42, model.ActionMarkAbsent, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceAbsent, result.AttendanceStatus)

	require.Len(t, store.updates, 1)
	assert.Equal(t, model.ShiftAbsent, store.updates[0].Status)
	assert.Nil(t, store.updates[0].CheckInTime)

	require.Len(t, store.logs, 1)
	assert.Equal(t, model.LogAbsent, store.logs[0].AttendanceStatus)
	assert.Equal(t, "Marked absent by admin", store.logs[0].Notes)
	assert.Nil(t, store.logs[0].CheckIn)

	require.Len(t, store.notifications, 1)
	assert.Equal(t, "attendance_absent", store.notifications[0].Type)
	assert.Contains(t, store.notifications[0].Message, "March 14, 2026")
}

func TestApplyAttendanceAction_MarkExcusedDoesNotNotify(t *testing.T) {
	store := &mockStore{shift: pendingShift()}
	conn := &mockConn{mockStore: store}

	result, err := apply(context.Background(), conn, zap.NewNop(), 42, model.ActionMarkExcused, "family emergency", time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.AttendanceExcused, result.AttendanceStatus)

	require.Len(t, store.logs, 1)
	assert.Equal(t, model.LogExcused, store.logs[0].AttendanceStatus)
	assert.Equal(t, "family emergency", store.logs[0].Notes)

	assert.Empty(t, store.notifications)
}

func TestApplyAttendanceAction_ShiftNotFound(t *testing.T) {
	store := &mockStore{shiftErr: db.ErrNotFound}
	conn := &mockConn{mockStore: store}

	_, err := apply(context.Background(), conn, zap.NewNop(), 99, model.ActionCheckIn, "", time.Now())
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestApplyAttendanceAction_UnknownAction(t *testing.T) {
	store := &mockStore{shift: pendingShift()}
	conn := &mockConn{mockStore: store}

	_, err := apply(context.Background(), conn, zap.NewNop(), 42, model.AttendanceAction("promote"), "", time.Now())

	var stateErr *model.InvalidStateError
	require.ErrorAs(t, err, &stateErr)
}

func TestApplyAttendanceAction_NoLinkedUserSkipsNotification(t *testing.T) {
	shift := pendingShift()
	shift.VolunteerUserID = nil
	store := &mockStore{shift: shift}
	conn := &mockConn{mockStore: store}

	_, err := apply(context.Background(), conn, zap.NewNop(), 42, model.ActionCheckIn, "", time.Now())
	require.NoError(t, err)

	require.Len(t, store.logs, 1)
	assert.Empty(t, store.notifications)
}
