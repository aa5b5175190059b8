package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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
	request  *db.ChangeRequestDetail
	pool     []db.ReplacementCandidate
	stats    *db.RequestStatistics
}

func (m *mockStore) GetShiftForUpdate(ctx context.Context, shiftID int64) (*db.Shift, error) {
	if m.shiftErr != nil {
		return nil, m.shiftErr
	}
	return m.shift, nil
}

func (m *mockStore) UpdateShiftAttendance(ctx context.Context, upd db.ShiftAttendanceUpdate) error {
	return nil
}

func (m *mockStore) InsertAttendanceLog(ctx context.Context, log *db.AttendanceLog) error {
	return nil
}

func (m *mockStore) InsertNotification(ctx context.Context, n *db.Notification) error {
	return nil
}

func (m *mockStore) GetChangeRequestForUpdate(ctx context.Context, requestID int64) (*db.ChangeRequestDetail, error) {
	if m.request == nil {
		return nil, db.ErrNotFound
	}
	return m.request, nil
}

func (m *mockStore) UpdateChangeRequestStatus(ctx context.Context, requestID int64, status model.RequestStatus, adminNotes *string, reviewerID int64) error {
	return nil
}

func (m *mockStore) GetVolunteer(ctx context.Context, volunteerID int64) (*db.Volunteer, error) {
	return nil, db.ErrNotFound
}

func (m *mockStore) ListReplacementCandidates(ctx context.Context, shiftID, excludeVolunteerID int64) ([]db.ReplacementCandidate, error) {
	return m.pool, nil
}

func (m *mockStore) GetRequestStatistics(ctx context.Context) (*db.RequestStatistics, error) {
	return m.stats, nil
}

type mockConn struct {
	*mockStore
}

func (m *mockConn) InTx(ctx context.Context, fn func(db.Store) error) error {
	return fn(m.mockStore)
}

func int64Ptr(v int64) *int64 { return &v }

func newTestServer(store *mockStore) *httptest.Server {
	h := NewHandler(&mockConn{mockStore: store}, zap.NewNop(), 7)
	return httptest.NewServer(h.Router())
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestApplyAttendanceAction_OK(t *testing.T) {
	store := &mockStore{shift: &db.Shift{
		ID:               42,
		ShiftDate:        time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		StartTime:        "19:00",
		VolunteerID:      int64Ptr(7),
		VolunteerUserID:  int64Ptr(70),
		AttendanceStatus: model.AttendancePending,
	}}
	srv := newTestServer(store)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/shifts/42/attendance", `{"action":"check_in"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body attendanceResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(42), body.ShiftID)
	assert.Equal(t, "checked_in", body.AttendanceStatus)
}

func TestApplyAttendanceAction_Conflict(t *testing.T) {
	store := &mockStore{shift: &db.Shift{
		ID:               42,
		AttendanceStatus: model.AttendanceCheckedIn,
	}}
	srv := newTestServer(store)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/shifts/42/attendance", `{"action":"check_in"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestApplyAttendanceAction_NotFound(t *testing.T) {
	store := &mockStore{shiftErr: db.ErrNotFound}
	srv := newTestServer(store)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/shifts/99/attendance", `{"action":"check_in"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestApplyAttendanceAction_BadPayload(t *testing.T) {
	srv := newTestServer(&mockStore{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/shifts/42/attendance", `{"action":"promote"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestResolveChangeRequest_ReferentialViolation(t *testing.T) {
	swapTarget := int64(9)
	store := &mockStore{request: &db.ChangeRequestDetail{
		ShiftChangeRequest: db.ShiftChangeRequest{
			ID:                  5,
			ShiftID:             42,
			VolunteerID:         7,
			RequestType:         model.RequestSwap,
			SwapWithVolunteerID: &swapTarget,
			Status:              model.RequestPending,
		},
	}}
	srv := newTestServer(store)
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/change-requests/5/resolution",
		`{"status":"approved","reviewer_id":1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestResolveChangeRequest_InvalidStatus(t *testing.T) {
	srv := newTestServer(&mockStore{})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/change-requests/5/resolution",
		`{"status":"pending","reviewer_id":1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFindReplacements_OK(t *testing.T) {
	store := &mockStore{
		shift: &db.Shift{ID: 42},
		pool: []db.ReplacementCandidate{
			{Volunteer: db.Volunteer{ID: 2, FirstName: "Maria"}, ConfirmedLast30Days: 3},
			{Volunteer: db.Volunteer{ID: 3, FirstName: "Jose"}, SameDayShifts: 1},
		},
	}
	srv := newTestServer(store)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/shifts/42/replacements?exclude_volunteer_id=7")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Candidates []struct {
			VolunteerID int64  `json:"VolunteerID"`
			FirstName   string `json:"FirstName"`
		} `json:"candidates"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Candidates, 1)
	assert.Equal(t, int64(2), body.Candidates[0].VolunteerID)
}

func TestRequestStatistics_OK(t *testing.T) {
	store := &mockStore{stats: &db.RequestStatistics{TotalRequests: 8}}
	srv := newTestServer(store)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/change-requests/statistics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats db.RequestStatistics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, 8, stats.TotalRequests)
}
