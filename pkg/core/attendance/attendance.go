package attendance

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/core/model"
	"github.com/frsm-ph/shiftops/pkg/core/notify"
	"github.com/frsm-ph/shiftops/pkg/db"
)

// Result reports what an attendance action wrote
type Result struct {
	ShiftID          int64
	Action           model.AttendanceAction
	AttendanceStatus model.AttendanceStatus
	TotalHours       *float64
}

// ApplyAttendanceAction runs one admin attendance transition against a shift.
// The shift row, the log row and the notification are written in a single
// transaction; the shift row is locked for the duration so concurrent actions
// on the same shift serialize.
func ApplyAttendanceAction(
	ctx context.Context,
	database db.Conn,
	logger *zap.Logger,
	shiftID int64,
	action model.AttendanceAction,
	notes string,
) (*Result, error) {
	return apply(ctx, database, logger, shiftID, action, notes, time.Now())
}

func apply(
	ctx context.Context,
	database db.Conn,
	logger *zap.Logger,
	shiftID int64,
	action model.AttendanceAction,
	notes string,
	now time.Time,
) (*Result, error) {
	logger.Debug("Starting attendance action",
		zap.Int64("shift_id", shiftID),
		zap.String("action", string(action)))

	if !action.IsValid() {
		return nil, &model.InvalidStateError{
			Action: string(action),
			Reason: "unknown attendance action",
		}
	}

	var result *Result
	err := database.InTx(ctx, func(tx db.Store) error {
		// Lock the shift row before deciding anything
		shift, err := tx.GetShiftForUpdate(ctx, shiftID)
		if err != nil {
			return err
		}
		logger.Debug("Locked shift",
			zap.Int64("shift_id", shift.ID),
			zap.String("attendance_status", string(shift.AttendanceStatus)))

		switch action {
		case model.ActionCheckIn:
			result, err = checkIn(ctx, tx, shift, notes, now)
		case model.ActionCheckOut:
			result, err = checkOut(ctx, tx, shift, notes, now)
		case model.ActionMarkAbsent:
			result, err = markAbsent(ctx, tx, shift, notes, now)
		case model.ActionMarkExcused:
			result, err = markExcused(ctx, tx, shift, notes, now)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("Attendance action applied",
		zap.Int64("shift_id", shiftID),
		zap.String("action", string(action)),
		zap.String("attendance_status", string(result.AttendanceStatus)))
	return result, nil
}

func checkIn(ctx context.Context, tx db.Store, shift *db.Shift, notes string, now time.Time) (*Result, error) {
	if shift.AttendanceStatus == model.AttendanceCheckedIn ||
		shift.AttendanceStatus == model.AttendanceCheckedOut {
		return nil, &model.InvalidStateError{
			Action:  string(model.ActionCheckIn),
			Current: string(shift.AttendanceStatus),
			Reason:  "assignee is already checked in or checked out",
		}
	}

	err := tx.UpdateShiftAttendance(ctx, db.ShiftAttendanceUpdate{
		ShiftID:          shift.ID,
		AttendanceStatus: model.AttendanceCheckedIn,
		Status:           model.ShiftInProgress,
		CheckInTime:      &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update shift for check-in: %w", err)
	}

	if notes == "" {
		notes = "Checked in by admin"
	}
	log := &db.AttendanceLog{
		ShiftID:          shift.ID,
		VolunteerID:      shift.VolunteerID,
		UserID:           shift.VolunteerUserID,
		ShiftDate:        shift.ShiftDate,
		CheckIn:          &now,
		AttendanceStatus: model.LogPresent,
		Notes:            notes,
	}
	if err := tx.InsertAttendanceLog(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to insert check-in log: %w", err)
	}

	if shift.VolunteerUserID != nil {
		n := notify.New(*shift.VolunteerUserID,
			"attendance_checkin",
			"Checked In Successfully",
			fmt.Sprintf("You have been checked in for your shift starting at %s.",
				notify.Clock(shift.StartTime)))
		if err := tx.InsertNotification(ctx, n); err != nil {
			return nil, fmt.Errorf("failed to insert check-in notification: %w", err)
		}
	}

	return &Result{
		ShiftID:          shift.ID,
		Action:           model.ActionCheckIn,
		AttendanceStatus: model.AttendanceCheckedIn,
	}, nil
}

func checkOut(ctx context.Context, tx db.Store, shift *db.Shift, notes string, now time.Time) (*Result, error) {
	if shift.AttendanceStatus != model.AttendanceCheckedIn || shift.CheckInTime == nil {
		return nil, &model.InvalidStateError{
			Action:  string(model.ActionCheckOut),
			Current: string(shift.AttendanceStatus),
			Reason:  "assignee must be checked in before checking out",
		}
	}
	if shift.CheckOutTime != nil {
		return nil, &model.InvalidStateError{
			Action:  string(model.ActionCheckOut),
			Current: string(shift.AttendanceStatus),
			Reason:  "assignee is already checked out",
		}
	}

	hours := roundHours(now.Sub(*shift.CheckInTime))

	err := tx.UpdateShiftAttendance(ctx, db.ShiftAttendanceUpdate{
		ShiftID:          shift.ID,
		AttendanceStatus: model.AttendanceCheckedOut,
		Status:           model.ShiftCompleted,
		CheckOutTime:     &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update shift for check-out: %w", err)
	}

	if notes == "" {
		notes = "Completed shift"
	}
	err = tx.CloseAttendanceLog(ctx, db.AttendanceLogCheckOut{
		ShiftID:     shift.ID,
		VolunteerID: shift.VolunteerID,
		CheckOut:    now,
		TotalHours:  hours,
		Note:        "Checked out: " + notes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to close attendance log: %w", err)
	}

	if shift.VolunteerUserID != nil {
		n := notify.New(*shift.VolunteerUserID,
			"attendance_checkout",
			"Checked Out Successfully",
			fmt.Sprintf("You have been checked out from your shift. Total hours: %.2f.", hours))
		if err := tx.InsertNotification(ctx, n); err != nil {
			return nil, fmt.Errorf("failed to insert check-out notification: %w", err)
		}
	}

	return &Result{
		ShiftID:          shift.ID,
		Action:           model.ActionCheckOut,
		AttendanceStatus: model.AttendanceCheckedOut,
		TotalHours:       &hours,
	}, nil
}

func markAbsent(ctx context.Context, tx db.Store, shift *db.Shift, notes string, now time.Time) (*Result, error) {
	err := tx.UpdateShiftAttendance(ctx, db.ShiftAttendanceUpdate{
		ShiftID:          shift.ID,
		AttendanceStatus: model.AttendanceAbsent,
		Status:           model.ShiftAbsent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update shift for mark-absent: %w", err)
	}

	if notes == "" {
		notes = "Marked absent by admin"
	}
	log := &db.AttendanceLog{
		ShiftID:          shift.ID,
		VolunteerID:      shift.VolunteerID,
		UserID:           shift.VolunteerUserID,
		ShiftDate:        shift.ShiftDate,
		AttendanceStatus: model.LogAbsent,
		Notes:            notes,
	}
	if err := tx.InsertAttendanceLog(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to insert absence log: %w", err)
	}

	if shift.VolunteerUserID != nil {
		n := notify.New(*shift.VolunteerUserID,
			"attendance_absent",
			"Marked Absent",
			fmt.Sprintf("You have been marked absent for your shift on %s.",
				notify.Date(shift.ShiftDate)))
		if err := tx.InsertNotification(ctx, n); err != nil {
			return nil, fmt.Errorf("failed to insert absence notification: %w", err)
		}
	}

	return &Result{
		ShiftID:          shift.ID,
		Action:           model.ActionMarkAbsent,
		AttendanceStatus: model.AttendanceAbsent,
	}, nil
}

// markExcused writes the shift and log rows only. Excusals carry no
// notification; absences do.
func markExcused(ctx context.Context, tx db.Store, shift *db.Shift, notes string, now time.Time) (*Result, error) {
	err := tx.UpdateShiftAttendance(ctx, db.ShiftAttendanceUpdate{
		ShiftID:          shift.ID,
		AttendanceStatus: model.AttendanceExcused,
		Status:           model.ShiftExcused,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update shift for mark-excused: %w", err)
	}

	if notes == "" {
		notes = "Marked excused by admin"
	}
	log := &db.AttendanceLog{
		ShiftID:          shift.ID,
		VolunteerID:      shift.VolunteerID,
		UserID:           shift.VolunteerUserID,
		ShiftDate:        shift.ShiftDate,
		AttendanceStatus: model.LogExcused,
		Notes:            notes,
	}
	if err := tx.InsertAttendanceLog(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to insert excusal log: %w", err)
	}

	return &Result{
		ShiftID:          shift.ID,
		Action:           model.ActionMarkExcused,
		AttendanceStatus: model.AttendanceExcused,
	}, nil
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
