package postgres

import (
	"context"
	"fmt"
	"math"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/frsm-ph/shiftops/pkg/db"
)

func (st *Store) queryShiftDetails(ctx context.Context, where string, orderBy string, args ...any) ([]db.ShiftDetail, error) {
	rows, err := st.q.Query(ctx, `
		SELECT
			s.id, s.shift_date, s.start_time, s.end_time, s.location,
			s.shift_for, s.unit_id, s.volunteer_id, s.user_id,
			s.duty_assignment_id, s.status, s.confirmation_status,
			s.attendance_status, s.check_in_time, s.check_out_time,
			s.attendance_notes, s.confirmed_at, s.declined_reason,
			s.change_request_notes, s.notes,
			v.first_name, v.last_name, v.contact_number, v.email,
			v.volunteer_status,
			u.unit_name, u.unit_code,
			da.duty_type, da.duty_description, da.priority
		FROM shifts s
		INNER JOIN volunteers v ON s.volunteer_id = v.id
		LEFT JOIN units u ON s.unit_id = u.id
		LEFT JOIN duty_assignments da ON s.duty_assignment_id = da.id
		WHERE `+where+`
		AND s.shift_for = 'volunteer'
		AND s.status <> 'cancelled'
		AND v.status = 'approved'
		ORDER BY `+orderBy, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var details []db.ShiftDetail
	for rows.Next() {
		var d db.ShiftDetail
		err := rows.Scan(
			&d.ID, &d.ShiftDate, &d.StartTime, &d.EndTime, &d.Location,
			&d.ShiftFor, &d.UnitID, &d.VolunteerID, &d.UserID,
			&d.DutyAssignmentID, &d.Status, &d.ConfirmationStatus,
			&d.AttendanceStatus, &d.CheckInTime, &d.CheckOutTime,
			&d.AttendanceNotes, &d.ConfirmedAt, &d.DeclinedReason,
			&d.ChangeRequestNotes, &d.Notes,
			&d.VolunteerFirstName, &d.VolunteerLastName, &d.VolunteerContact,
			&d.VolunteerEmail, &d.VolunteerStatus,
			&d.UnitName, &d.UnitCode,
			&d.DutyType, &d.DutyDescription, &d.DutyPriority,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift detail: %w", err)
		}
		details = append(details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}
	return details, nil
}

// ListShiftsForDate returns all volunteer shifts scheduled on one day
func (st *Store) ListShiftsForDate(ctx context.Context, date time.Time) ([]db.ShiftDetail, error) {
	return st.queryShiftDetails(ctx,
		"s.shift_date = $1",
		"s.start_time, v.last_name, v.first_name",
		date)
}

// ListUpcomingShifts returns volunteer shifts inside the date range
func (st *Store) ListUpcomingShifts(ctx context.Context, from, to time.Time) ([]db.ShiftDetail, error) {
	return st.queryShiftDetails(ctx,
		"s.shift_date BETWEEN $1 AND $2",
		"s.shift_date, s.start_time, v.last_name, v.first_name",
		from, to)
}

// ListChangeRequests returns requests for admin review: pending first, then
// approved, rejected, cancelled; within a group by shift date ascending and
// request time descending.
func (st *Store) ListChangeRequests(ctx context.Context, f db.ChangeRequestFilter) ([]db.ChangeRequestRow, error) {
	b := psql.
		Select(changeRequestColumns...).
		Columns(
			"s.shift_date", "s.start_time", "s.end_time", "s.location",
			"s.status", "s.confirmation_status",
			"v.first_name", "v.last_name",
			"v2.first_name", "v2.last_name",
			"ru.first_name", "ru.last_name",
		).
		From("shift_change_requests scr").
		Join("shifts s ON scr.shift_id = s.id").
		Join("volunteers v ON scr.volunteer_id = v.id").
		LeftJoin("volunteers v2 ON scr.swap_with_volunteer_id = v2.id").
		LeftJoin("users ru ON scr.reviewed_by = ru.id")

	if f.Status != "" {
		b = b.Where(sq.Eq{"scr.status": f.Status})
	}
	if f.DateFrom != nil {
		b = b.Where(sq.GtOrEq{"s.shift_date": *f.DateFrom})
	}
	if f.DateTo != nil {
		b = b.Where(sq.LtOrEq{"s.shift_date": *f.DateTo})
	}
	if f.VolunteerID != nil {
		b = b.Where(sq.Eq{"scr.volunteer_id": *f.VolunteerID})
	}

	query, args, err := b.OrderBy(`
		CASE scr.status
			WHEN 'pending' THEN 1
			WHEN 'approved' THEN 2
			WHEN 'rejected' THEN 3
			WHEN 'cancelled' THEN 4
			ELSE 5
		END`,
		"s.shift_date ASC",
		"scr.requested_at DESC",
	).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build change request listing: %w", err)
	}

	rows, err := st.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query change requests: %w", err)
	}
	defer rows.Close()

	var result []db.ChangeRequestRow
	for rows.Next() {
		var r db.ChangeRequestRow
		dest := changeRequestDest(&r.ShiftChangeRequest)
		dest = append(dest,
			&r.ShiftDate, &r.OriginalStartTime, &r.OriginalEndTime,
			&r.ShiftLocation, &r.ShiftStatus, &r.ConfirmationStatus,
			&r.VolunteerFirstName, &r.VolunteerLastName,
			&r.SwapFirstName, &r.SwapLastName,
			&r.ReviewerFirstName, &r.ReviewerLastName,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan change request row: %w", err)
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change requests: %w", err)
	}
	return result, nil
}

// ListDutyAssignments returns one page of duty assignments plus the total
// from a separate count query.
func (st *Store) ListDutyAssignments(ctx context.Context, f db.DutyAssignmentFilter, page, perPage int) (*db.DutyAssignmentPage, error) {
	if page < 1 {
		page = 1
	}

	countB := psql.Select("COUNT(*)").From("duty_assignments da")
	listB := psql.
		Select(
			"da.id", "da.shift_id", "da.duty_type", "da.duty_description",
			"da.priority", "da.required_equipment", "da.required_training",
			"da.notes", "da.created_at",
		).
		From("duty_assignments da")

	if f.ShiftID != nil {
		countB = countB.Where(sq.Eq{"da.shift_id": *f.ShiftID})
		listB = listB.Where(sq.Eq{"da.shift_id": *f.ShiftID})
	}
	if f.DutyType != "" {
		countB = countB.Where(sq.Eq{"da.duty_type": f.DutyType})
		listB = listB.Where(sq.Eq{"da.duty_type": f.DutyType})
	}

	countSQL, countArgs, err := countB.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build duty count query: %w", err)
	}
	var total int
	if err := st.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count duty assignments: %w", err)
	}

	query, args, err := listB.
		OrderBy("da.created_at DESC").
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build duty listing: %w", err)
	}

	rows, err := st.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query duty assignments: %w", err)
	}
	defer rows.Close()

	var duties []db.DutyAssignment
	for rows.Next() {
		var d db.DutyAssignment
		err := rows.Scan(
			&d.ID, &d.ShiftID, &d.DutyType, &d.DutyDescription,
			&d.Priority, &d.RequiredEquipment, &d.RequiredTraining,
			&d.Notes, &d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan duty assignment: %w", err)
		}
		duties = append(duties, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating duty assignments: %w", err)
	}

	return &db.DutyAssignmentPage{
		Duties:     duties,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: int(math.Ceil(float64(total) / float64(perPage))),
	}, nil
}

// GetRequestStatistics aggregates change requests filed in the trailing 30 days
func (st *Store) GetRequestStatistics(ctx context.Context) (*db.RequestStatistics, error) {
	var s db.RequestStatistics
	err := st.q.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COUNT(DISTINCT volunteer_id),
			COALESCE(AVG(EXTRACT(EPOCH FROM (reviewed_at - requested_at)) / 3600)
				FILTER (WHERE status = 'approved' AND reviewed_at IS NOT NULL), 0)
		FROM shift_change_requests
		WHERE requested_at >= CURRENT_DATE - INTERVAL '30 days'
	`).Scan(
		&s.TotalRequests, &s.PendingRequests, &s.ApprovedRequests,
		&s.RejectedRequests, &s.CancelledRequests, &s.UniqueVolunteers,
		&s.AvgProcessingHours,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query request statistics: %w", err)
	}
	return &s, nil
}
