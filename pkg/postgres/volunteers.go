package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/frsm-ph/shiftops/pkg/db"
)

// GetVolunteer loads a volunteer row by id
func (st *Store) GetVolunteer(ctx context.Context, volunteerID int64) (*db.Volunteer, error) {
	query, args, err := psql.
		Select(
			"id", "user_id", "first_name", "last_name", "contact_number",
			"email", "status", "volunteer_status", "available_days",
			"available_hours", "skills_basic_firefighting",
			"skills_first_aid_cpr", "skills_search_rescue",
		).
		From("volunteers").
		Where(sq.Eq{"id": volunteerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build volunteer query: %w", err)
	}

	var v db.Volunteer
	err = st.q.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.UserID, &v.FirstName, &v.LastName, &v.ContactNumber,
		&v.Email, &v.Status, &v.VolunteerStatus, &v.AvailableDays,
		&v.AvailableHours, &v.SkillsBasicFirefighting,
		&v.SkillsFirstAidCPR, &v.SkillsSearchRescue,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load volunteer %d: %w", volunteerID, err)
	}
	return &v, nil
}

// ListReplacementCandidates returns the substitute pool for a shift:
// approved, active volunteers other than the excluded one, each with their
// same-day shift count and confirmed-shift count over the trailing 30 days.
// Conflict filtering and ranking happen in the replacement service.
func (st *Store) ListReplacementCandidates(ctx context.Context, shiftID, excludeVolunteerID int64) ([]db.ReplacementCandidate, error) {
	rows, err := st.q.Query(ctx, `
		SELECT
			v.id, v.user_id, v.first_name, v.last_name, v.contact_number,
			v.email, v.status, v.volunteer_status, v.available_days,
			v.available_hours, v.skills_basic_firefighting,
			v.skills_first_aid_cpr, v.skills_search_rescue,
			u.unit_name, u.unit_code, va.assignment_date,
			COUNT(DISTINCT s2.id) AS same_day_shifts,
			(SELECT COUNT(*) FROM shifts s3
			 WHERE s3.volunteer_id = v.id
			 AND s3.confirmation_status = 'confirmed'
			 AND s3.shift_date BETWEEN CURRENT_DATE - INTERVAL '30 days' AND CURRENT_DATE
			) AS confirmed_last_30
		FROM volunteers v
		LEFT JOIN volunteer_assignments va ON v.id = va.volunteer_id AND va.status = 'Active'
		LEFT JOIN units u ON va.unit_id = u.id
		LEFT JOIN shifts s2 ON v.id = s2.volunteer_id
			AND s2.shift_for = 'volunteer'
			AND s2.shift_date = (SELECT shift_date FROM shifts WHERE id = $1)
		WHERE v.status = 'approved'
		AND v.volunteer_status IN ('Active', 'New Volunteer')
		AND v.id <> $2
		GROUP BY v.id, u.unit_name, u.unit_code, va.assignment_date
	`, shiftID, excludeVolunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query replacement candidates: %w", err)
	}
	defer rows.Close()

	var candidates []db.ReplacementCandidate
	for rows.Next() {
		var c db.ReplacementCandidate
		err := rows.Scan(
			&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.ContactNumber,
			&c.Email, &c.Status, &c.VolunteerStatus, &c.AvailableDays,
			&c.AvailableHours, &c.SkillsBasicFirefighting,
			&c.SkillsFirstAidCPR, &c.SkillsSearchRescue,
			&c.UnitName, &c.UnitCode, &c.AssignmentDate,
			&c.SameDayShifts, &c.ConfirmedLast30Days,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan replacement candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating replacement candidates: %w", err)
	}
	return candidates, nil
}
