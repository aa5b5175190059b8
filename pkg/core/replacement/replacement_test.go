package replacement

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/db"
)

type mockStore struct {
	shift    *db.Shift
	shiftErr error
	pool     []db.ReplacementCandidate
}

func (m *mockStore) GetShiftForUpdate(ctx context.Context, shiftID int64) (*db.Shift, error) {
	if m.shiftErr != nil {
		return nil, m.shiftErr
	}
	return m.shift, nil
}

func (m *mockStore) ListReplacementCandidates(ctx context.Context, shiftID, excludeVolunteerID int64) ([]db.ReplacementCandidate, error) {
	return m.pool, nil
}

func timePtr(t time.Time) *time.Time { return &t }

func candidate(id int64, confirmed, sameDay int) db.ReplacementCandidate {
	return db.ReplacementCandidate{
		Volunteer: db.Volunteer{
			ID:        id,
			FirstName: fmt.Sprintf("V%d", id),
			LastName:  "Test",
		},
		SameDayShifts:       sameDay,
		ConfirmedLast30Days: confirmed,
	}
}

func TestFindReplacements_RanksByReliability(t *testing.T) {
	store := &mockStore{
		shift: &db.Shift{ID: 42},
		pool: []db.ReplacementCandidate{
			candidate(1, 2, 0),
			candidate(2, 5, 0),
			candidate(3, 0, 0),
		},
	}

	result, err := FindReplacements(context.Background(), store, zap.NewNop(), 42, 7)
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, int64(2), result[0].VolunteerID)
	assert.Equal(t, int64(1), result[1].VolunteerID)
	assert.Equal(t, int64(3), result[2].VolunteerID)
}

func TestFindReplacements_ExcludesSameDayConflicts(t *testing.T) {
	store := &mockStore{
		shift: &db.Shift{ID: 42},
		pool: []db.ReplacementCandidate{
			candidate(1, 9, 1),
			candidate(2, 1, 0),
		},
	}

	result, err := FindReplacements(context.Background(), store, zap.NewNop(), 42, 7)
	require.NoError(t, err)

	require.Len(t, result, 1)
	assert.Equal(t, int64(2), result[0].VolunteerID)
}

func TestFindReplacements_TiebreakOnAssignmentDate(t *testing.T) {
	older := candidate(1, 3, 0)
	older.AssignmentDate = timePtr(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	newer := candidate(2, 3, 0)
	newer.AssignmentDate = timePtr(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	unassigned := candidate(3, 3, 0)

	store := &mockStore{
		shift: &db.Shift{ID: 42},
		pool:  []db.ReplacementCandidate{unassigned, older, newer},
	}

	result, err := FindReplacements(context.Background(), store, zap.NewNop(), 42, 7)
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, int64(2), result[0].VolunteerID)
	assert.Equal(t, int64(1), result[1].VolunteerID)
	assert.Equal(t, int64(3), result[2].VolunteerID, "unassigned volunteers rank last on ties")
}

func TestFindReplacements_CapsAtTen(t *testing.T) {
	var pool []db.ReplacementCandidate
	for i := 1; i <= 15; i++ {
		pool = append(pool, candidate(int64(i), i, 0))
	}
	store := &mockStore{shift: &db.Shift{ID: 42}, pool: pool}

	result, err := FindReplacements(context.Background(), store, zap.NewNop(), 42, 7)
	require.NoError(t, err)

	require.Len(t, result, 10)
	assert.Equal(t, int64(15), result[0].VolunteerID)
	assert.Equal(t, int64(6), result[9].VolunteerID)
}

func TestFindReplacements_ShiftNotFound(t *testing.T) {
	store := &mockStore{shiftErr: db.ErrNotFound}

	_, err := FindReplacements(context.Background(), store, zap.NewNop(), 99, 7)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestFindReplacements_EmptyPool(t *testing.T) {
	store := &mockStore{shift: &db.Shift{ID: 42}}

	result, err := FindReplacements(context.Background(), store, zap.NewNop(), 42, 7)
	require.NoError(t, err)
	assert.Empty(t, result)
}
