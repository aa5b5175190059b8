// Package replacement finds substitute volunteers for a shift whose
// assignee cannot attend.
package replacement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/db"
)

// maxCandidates caps the ranked list handed back to the admin
const maxCandidates = 10

// Candidate is one ranked replacement suggestion
type Candidate struct {
	VolunteerID             int64
	FirstName               string
	LastName                string
	ContactNumber           string
	Email                   string
	VolunteerStatus         string
	UnitName                *string
	UnitCode                *string
	SkillsBasicFirefighting bool
	SkillsFirstAidCPR       bool
	SkillsSearchRescue      bool
	ConfirmedLast30Days     int
}

// FindReplacementsStore defines the database operations needed to build the
// candidate pool
type FindReplacementsStore interface {
	GetShiftForUpdate(ctx context.Context, shiftID int64) (*db.Shift, error)
	ListReplacementCandidates(ctx context.Context, shiftID, excludeVolunteerID int64) ([]db.ReplacementCandidate, error)
}

// FindReplacements returns up to ten volunteers who could cover the shift,
// most reliable first. Volunteers already holding a shift on the same day
// are excluded; ties on recent reliability break toward the most recent
// unit assignment.
func FindReplacements(
	ctx context.Context,
	database FindReplacementsStore,
	logger *zap.Logger,
	shiftID int64,
	excludeVolunteerID int64,
) ([]Candidate, error) {
	logger.Debug("Finding replacements",
		zap.Int64("shift_id", shiftID),
		zap.Int64("exclude_volunteer_id", excludeVolunteerID))

	// Existence check only. Outside a transaction the row lock ends with
	// the statement, which is fine here: this path never writes, it just
	// needs the same load-or-ErrNotFound the workflows use.
	if _, err := database.GetShiftForUpdate(ctx, shiftID); err != nil {
		return nil, err
	}

	pool, err := database.ListReplacementCandidates(ctx, shiftID, excludeVolunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch replacement pool: %w", err)
	}
	logger.Debug("Fetched candidate pool", zap.Int("count", len(pool)))

	ranked := rank(pool)
	logger.Debug("Ranked candidates", zap.Int("count", len(ranked)))

	result := make([]Candidate, 0, len(ranked))
	for _, c := range ranked {
		result = append(result, Candidate{
			VolunteerID:             c.ID,
			FirstName:               c.FirstName,
			LastName:                c.LastName,
			ContactNumber:           c.ContactNumber,
			Email:                   c.Email,
			VolunteerStatus:         c.VolunteerStatus,
			UnitName:                c.UnitName,
			UnitCode:                c.UnitCode,
			SkillsBasicFirefighting: c.SkillsBasicFirefighting,
			SkillsFirstAidCPR:       c.SkillsFirstAidCPR,
			SkillsSearchRescue:      c.SkillsSearchRescue,
			ConfirmedLast30Days:     c.ConfirmedLast30Days,
		})
	}
	return result, nil
}

// rank drops same-day conflicts, orders by 30-day confirmed count then by
// most recent unit assignment, and caps the list
func rank(pool []db.ReplacementCandidate) []db.ReplacementCandidate {
	available := make([]db.ReplacementCandidate, 0, len(pool))
	for _, c := range pool {
		if c.SameDayShifts == 0 {
			available = append(available, c)
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		if available[i].ConfirmedLast30Days != available[j].ConfirmedLast30Days {
			return available[i].ConfirmedLast30Days > available[j].ConfirmedLast30Days
		}
		return laterAssignment(available[i].AssignmentDate, available[j].AssignmentDate)
	})

	if len(available) > maxCandidates {
		available = available[:maxCandidates]
	}
	return available
}

// laterAssignment orders non-nil assignment dates newest first, with
// unassigned volunteers last
func laterAssignment(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.After(*b)
	}
}
