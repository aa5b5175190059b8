package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/frsm-ph/shiftops/pkg/db"
)

// InsertAttendanceLog appends a new attendance log row and fills in its id
func (st *Store) InsertAttendanceLog(ctx context.Context, log *db.AttendanceLog) error {
	query, args, err := psql.
		Insert("attendance_logs").
		Columns(
			"shift_id",
			"volunteer_id",
			"user_id",
			"shift_date",
			"check_in",
			"attendance_status",
			"notes",
		).
		Values(
			log.ShiftID,
			log.VolunteerID,
			log.UserID,
			log.ShiftDate,
			log.CheckIn,
			log.AttendanceStatus,
			log.Notes,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build attendance log insert: %w", err)
	}

	if err := st.q.QueryRow(ctx, query, args...).Scan(&log.ID); err != nil {
		return fmt.Errorf("failed to insert attendance log: %w", err)
	}
	return nil
}

// CloseAttendanceLog stamps the check-out on the newest open log row for
// the shift and assignee, recording total hours and appending the note.
// At most one open row exists per shift+assignee; the newest-first order
// guards against historical rows left open by hand edits.
func (st *Store) CloseAttendanceLog(ctx context.Context, out db.AttendanceLogCheckOut) error {
	sub := sq.
		Select("id").
		From("attendance_logs").
		Where(sq.Eq{"shift_id": out.ShiftID, "volunteer_id": out.VolunteerID}).
		Where("check_out IS NULL").
		OrderBy("created_at DESC").
		Limit(1)
	subSQL, subArgs, err := sub.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build open log subquery: %w", err)
	}

	query, args, err := psql.
		Update("attendance_logs").
		Set("check_out", out.CheckOut).
		Set("total_hours", out.TotalHours).
		Set("notes", sq.Expr("notes || ?", " "+out.Note)).
		Set("updated_at", time.Now()).
		Where(sq.Expr("id = ("+subSQL+")", subArgs...)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build attendance log update: %w", err)
	}

	tag, err := st.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to close attendance log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}
