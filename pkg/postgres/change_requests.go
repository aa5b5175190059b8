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

var changeRequestColumns = []string{
	"scr.id", "scr.shift_id", "scr.volunteer_id", "scr.request_type",
	"scr.request_details", "scr.proposed_date", "scr.proposed_start_time",
	"scr.proposed_end_time", "scr.swap_with_volunteer_id", "scr.status",
	"scr.admin_notes", "scr.requested_at", "scr.reviewed_at", "scr.reviewed_by",
}

func changeRequestDest(r *db.ShiftChangeRequest) []any {
	return []any{
		&r.ID, &r.ShiftID, &r.VolunteerID, &r.RequestType,
		&r.RequestDetails, &r.ProposedDate, &r.ProposedStartTime,
		&r.ProposedEndTime, &r.SwapWithVolunteerID, &r.Status,
		&r.AdminNotes, &r.RequestedAt, &r.ReviewedAt, &r.ReviewedBy,
	}
}

// GetChangeRequestForUpdate loads a request joined with its shift and the
// requesting volunteer's user account, locking both the request and the
// shift row for the rest of the transaction.
func (st *Store) GetChangeRequestForUpdate(ctx context.Context, requestID int64) (*db.ChangeRequestDetail, error) {
	cols := append([]string{}, changeRequestColumns...)
	cols = append(cols, shiftColumns...)
	query, args, err := psql.
		Select(cols...).
		Column("v.user_id AS volunteer_user_id").
		From("shift_change_requests scr").
		Join("shifts s ON scr.shift_id = s.id").
		Join("volunteers v ON scr.volunteer_id = v.id").
		Where(sq.Eq{"scr.id": requestID}).
		Suffix("FOR UPDATE OF scr, s").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build change request query: %w", err)
	}

	var d db.ChangeRequestDetail
	dest := changeRequestDest(&d.ShiftChangeRequest)
	dest = append(dest,
		&d.Shift.ID, &d.Shift.ShiftDate, &d.Shift.StartTime, &d.Shift.EndTime,
		&d.Shift.Location, &d.Shift.ShiftFor, &d.Shift.UnitID,
		&d.Shift.VolunteerID, &d.Shift.UserID, &d.Shift.DutyAssignmentID,
		&d.Shift.Status, &d.Shift.ConfirmationStatus, &d.Shift.AttendanceStatus,
		&d.Shift.CheckInTime, &d.Shift.CheckOutTime, &d.Shift.AttendanceNotes,
		&d.Shift.ConfirmedAt, &d.Shift.DeclinedReason, &d.Shift.ChangeRequestNotes,
		&d.Shift.Notes, &d.VolunteerUserID,
	)
	if err := st.q.QueryRow(ctx, query, args...).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load change request %d: %w", requestID, err)
	}
	return &d, nil
}

// UpdateChangeRequestStatus records the review decision on the request row
func (st *Store) UpdateChangeRequestStatus(ctx context.Context, requestID int64, status model.RequestStatus, adminNotes *string, reviewerID int64) error {
	query, args, err := psql.
		Update("shift_change_requests").
		Set("status", status).
		Set("admin_notes", adminNotes).
		Set("reviewed_at", time.Now()).
		Set("reviewed_by", reviewerID).
		Where(sq.Eq{"id": requestID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build request status update: %w", err)
	}

	if _, err := st.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	return nil
}

// InsertChangeRequest files a new pending change request and fills in its id
func (st *Store) InsertChangeRequest(ctx context.Context, req *db.ShiftChangeRequest) error {
	query, args, err := psql.
		Insert("shift_change_requests").
		Columns(
			"shift_id",
			"volunteer_id",
			"request_type",
			"request_details",
			"proposed_date",
			"proposed_start_time",
			"proposed_end_time",
			"swap_with_volunteer_id",
			"status",
		).
		Values(
			req.ShiftID,
			req.VolunteerID,
			req.RequestType,
			req.RequestDetails,
			req.ProposedDate,
			req.ProposedStartTime,
			req.ProposedEndTime,
			req.SwapWithVolunteerID,
			model.RequestPending,
		).
		Suffix("RETURNING id, requested_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build change request insert: %w", err)
	}

	if err := st.q.QueryRow(ctx, query, args...).Scan(&req.ID, &req.RequestedAt); err != nil {
		return fmt.Errorf("failed to insert change request: %w", err)
	}
	req.Status = model.RequestPending
	return nil
}
