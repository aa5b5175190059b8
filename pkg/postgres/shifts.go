package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/frsm-ph/shiftops/pkg/core/model"
	"github.com/frsm-ph/shiftops/pkg/db"
)

var shiftColumns = []string{
	"s.id", "s.shift_date", "s.start_time", "s.end_time", "s.location",
	"s.shift_for", "s.unit_id", "s.volunteer_id", "s.user_id",
	"s.duty_assignment_id", "s.status", "s.confirmation_status",
	"s.attendance_status", "s.check_in_time", "s.check_out_time",
	"s.attendance_notes", "s.confirmed_at", "s.declined_reason",
	"s.change_request_notes", "s.notes",
}

func scanShift(row pgx.Row, s *db.Shift, extra ...any) error {
	dest := []any{
		&s.ID, &s.ShiftDate, &s.StartTime, &s.EndTime, &s.Location,
		&s.ShiftFor, &s.UnitID, &s.VolunteerID, &s.UserID,
		&s.DutyAssignmentID, &s.Status, &s.ConfirmationStatus,
		&s.AttendanceStatus, &s.CheckInTime, &s.CheckOutTime,
		&s.AttendanceNotes, &s.ConfirmedAt, &s.DeclinedReason,
		&s.ChangeRequestNotes, &s.Notes,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

// GetShiftForUpdate loads a shift together with its volunteer's user id and
// locks the shift row for the remainder of the transaction. Both workflows
// contend on this row, so the read-decide-write sequence runs under the lock.
func (st *Store) GetShiftForUpdate(ctx context.Context, shiftID int64) (*db.Shift, error) {
	query, args, err := psql.
		Select(shiftColumns...).
		Column("v.user_id AS volunteer_user_id").
		From("shifts s").
		LeftJoin("volunteers v ON s.volunteer_id = v.id").
		Where(sq.Eq{"s.id": shiftID}).
		Suffix("FOR UPDATE OF s").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build shift query: %w", err)
	}

	var s db.Shift
	if err := scanShift(st.q.QueryRow(ctx, query, args...), &s, &s.VolunteerUserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load shift %d: %w", shiftID, err)
	}
	return &s, nil
}

// UpdateShiftAttendance applies one attendance action's field set as a
// single parameterized statement. Only the timestamps the action touches
// are included in the SET list.
func (st *Store) UpdateShiftAttendance(ctx context.Context, upd db.ShiftAttendanceUpdate) error {
	b := psql.
		Update("shifts").
		Set("attendance_status", upd.AttendanceStatus).
		Set("status", upd.Status).
		Set("updated_at", time.Now())

	if upd.CheckInTime != nil {
		b = b.Set("check_in_time", *upd.CheckInTime)
	}
	if upd.CheckOutTime != nil {
		b = b.Set("check_out_time", *upd.CheckOutTime)
	}

	query, args, err := b.Where(sq.Eq{"id": upd.ShiftID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build attendance update: %w", err)
	}

	if _, err := st.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update shift attendance: %w", err)
	}
	return nil
}

// ReassignShift hands the shift to a new assignee and resets it to an
// unconfirmed scheduled state, clearing any previous response fields.
func (st *Store) ReassignShift(ctx context.Context, r db.ShiftReassignment) error {
	query, args, err := psql.
		Update("shifts").
		Set("volunteer_id", r.VolunteerID).
		Set("user_id", r.UserID).
		Set("confirmation_status", model.ConfirmationPending).
		Set("status", model.ShiftScheduled).
		Set("confirmed_at", nil).
		Set("declined_reason", nil).
		Set("change_request_notes", nil).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": r.ShiftID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build reassignment update: %w", err)
	}

	if _, err := st.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to reassign shift: %w", err)
	}
	return nil
}

// ApplyShiftScheduleChange writes only the proposed fields that were set,
// and always confirms the shift with a fresh confirmation timestamp.
func (st *Store) ApplyShiftScheduleChange(ctx context.Context, chg db.ShiftScheduleChange) error {
	b := psql.Update("shifts")

	if chg.Date != nil {
		b = b.Set("shift_date", *chg.Date)
	}
	if chg.StartTime != nil {
		b = b.Set("start_time", *chg.StartTime)
	}
	if chg.EndTime != nil {
		b = b.Set("end_time", *chg.EndTime)
	}

	query, args, err := b.
		Set("confirmation_status", model.ConfirmationConfirmed).
		Set("status", model.ShiftConfirmed).
		Set("confirmed_at", time.Now()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": chg.ShiftID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build schedule change update: %w", err)
	}

	if _, err := st.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to apply schedule change: %w", err)
	}
	return nil
}

// SetShiftConfirmationStatus sets only the confirmation status, used to
// release the change-requested hold when a request is rejected.
func (st *Store) SetShiftConfirmationStatus(ctx context.Context, shiftID int64, status model.ConfirmationStatus) error {
	query, args, err := psql.
		Update("shifts").
		Set("confirmation_status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": shiftID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build confirmation status update: %w", err)
	}

	if _, err := st.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to set confirmation status: %w", err)
	}
	return nil
}

// ConfirmShift records the assigned volunteer accepting the shift
func (st *Store) ConfirmShift(ctx context.Context, shiftID, volunteerID int64) error {
	query, args, err := psql.
		Update("shifts").
		Set("confirmation_status", model.ConfirmationConfirmed).
		Set("status", model.ShiftConfirmed).
		Set("confirmed_at", time.Now()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": shiftID, "volunteer_id": volunteerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build confirm update: %w", err)
	}

	tag, err := st.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to confirm shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeclineShift records the assigned volunteer declining the shift
func (st *Store) DeclineShift(ctx context.Context, shiftID, volunteerID int64, reason string) error {
	query, args, err := psql.
		Update("shifts").
		Set("confirmation_status", model.ConfirmationDeclined).
		Set("declined_reason", reason).
		Set("status", model.ShiftCancelled).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": shiftID, "volunteer_id": volunteerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build decline update: %w", err)
	}

	tag, err := st.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to decline shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// FlagShiftChangeRequested puts the shift on hold while a change request
// is pending review.
func (st *Store) FlagShiftChangeRequested(ctx context.Context, shiftID, volunteerID int64, details string) error {
	query, args, err := psql.
		Update("shifts").
		Set("confirmation_status", model.ConfirmationChangeRequested).
		Set("change_request_notes", details).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": shiftID, "volunteer_id": volunteerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build change-requested update: %w", err)
	}

	tag, err := st.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to flag change requested: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
