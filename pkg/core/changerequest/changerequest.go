// Package changerequest implements the admin review workflow for shift
// change requests: approving (with the swap or time/date-change side
// effects), rejecting or cancelling a pending request.
package changerequest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/core/model"
	"github.com/frsm-ph/shiftops/pkg/core/notify"
	"github.com/frsm-ph/shiftops/pkg/db"
)

// Resolution is an admin's decision on a pending request
type Resolution struct {
	RequestID  int64
	NewStatus  model.RequestStatus
	ReviewerID int64
	AdminNotes string
}

// ResolveChangeRequest applies a resolution to a pending change request.
// Status update, shift side effects and the outcome notification commit or
// roll back together: a failed swap target check undoes the status update
// as well.
func ResolveChangeRequest(ctx context.Context, database db.Conn, logger *zap.Logger, res Resolution) error {
	logger.Debug("Starting change request resolution",
		zap.Int64("request_id", res.RequestID),
		zap.String("new_status", string(res.NewStatus)))

	if !res.NewStatus.IsResolution() {
		return &model.InvalidStateError{
			Action: string(res.NewStatus),
			Reason: "resolution must be approved, rejected or cancelled",
		}
	}

	return database.InTx(ctx, func(tx db.Store) error {
		// Locks both the request and its shift row
		req, err := tx.GetChangeRequestForUpdate(ctx, res.RequestID)
		if err != nil {
			return err
		}
		logger.Debug("Locked change request",
			zap.Int64("request_id", req.ID),
			zap.String("type", string(req.RequestType)),
			zap.String("status", string(req.Status)))

		if req.Status != model.RequestPending {
			return &model.InvalidStateError{
				Action:  string(res.NewStatus),
				Current: string(req.Status),
				Reason:  "only pending requests can be resolved",
			}
		}

		var notes *string
		if res.AdminNotes != "" {
			notes = &res.AdminNotes
		}
		err = tx.UpdateChangeRequestStatus(ctx, req.ID, res.NewStatus, notes, res.ReviewerID)
		if err != nil {
			return fmt.Errorf("failed to update request status: %w", err)
		}

		switch res.NewStatus {
		case model.RequestApproved:
			// A swap without a target approves with no shift mutation;
			// only swaps with a target and non-swap requests touch the shift
			switch {
			case req.RequestType == model.RequestSwap && req.SwapWithVolunteerID != nil:
				if err := applySwap(ctx, tx, logger, req); err != nil {
					return err
				}
			case req.RequestType != model.RequestSwap:
				if err := applyScheduleChange(ctx, tx, logger, req); err != nil {
					return err
				}
			}
		case model.RequestRejected:
			// Put the shift back into a confirmed state so it does not
			// stay flagged for a request that was turned down
			if req.Shift.ConfirmationStatus == model.ConfirmationChangeRequested {
				err := tx.SetShiftConfirmationStatus(ctx, req.ShiftID, model.ConfirmationConfirmed)
				if err != nil {
					return fmt.Errorf("failed to reset shift confirmation: %w", err)
				}
			}
		case model.RequestCancelled:
			// No shift mutation
		}

		return notifyRequester(ctx, tx, req, res.NewStatus, res.AdminNotes)
	})
}

// applySwap moves the shift to the requested swap target. The target must
// exist and be an approved volunteer; otherwise the whole resolution fails.
func applySwap(ctx context.Context, tx db.Store, logger *zap.Logger, req *db.ChangeRequestDetail) error {
	targetID := *req.SwapWithVolunteerID

	target, err := tx.GetVolunteer(ctx, targetID)
	if errors.Is(err, db.ErrNotFound) {
		return &model.ReferentialError{
			Entity: "volunteer",
			ID:     targetID,
			Reason: "swap target does not exist",
		}
	}
	if err != nil {
		return fmt.Errorf("failed to load swap target: %w", err)
	}
	if target.Status != model.VolunteerApproved {
		return &model.ReferentialError{
			Entity: "volunteer",
			ID:     targetID,
			Reason: "swap target is not an approved volunteer",
		}
	}

	logger.Debug("Reassigning shift to swap target",
		zap.Int64("shift_id", req.ShiftID),
		zap.Int64("target_volunteer_id", targetID))

	err = tx.ReassignShift(ctx, db.ShiftReassignment{
		ShiftID:     req.ShiftID,
		VolunteerID: target.ID,
		UserID:      target.UserID,
	})
	if err != nil {
		return fmt.Errorf("failed to reassign shift: %w", err)
	}

	if err := tx.DeleteShiftConfirmation(ctx, req.ShiftID, req.VolunteerID); err != nil {
		return fmt.Errorf("failed to remove requester confirmation: %w", err)
	}
	err = tx.InsertShiftConfirmation(ctx, &db.ShiftConfirmation{
		ShiftID:     req.ShiftID,
		VolunteerID: target.ID,
		Status:      model.ConfirmationPending,
	})
	if err != nil {
		return fmt.Errorf("failed to insert target confirmation: %w", err)
	}

	// Only the incoming volunteer is notified about the swap itself;
	// the requester gets the resolution outcome notification
	if target.UserID != nil {
		s := req.Shift
		n := notify.New(*target.UserID,
			"new_shift",
			"New Shift Assigned",
			fmt.Sprintf(
				"You have been assigned a new shift on %s from %s to %s at %s. Please confirm your availability.",
				notify.Date(s.ShiftDate), notify.Clock(s.StartTime), notify.Clock(s.EndTime), s.Location))
		if err := tx.InsertNotification(ctx, n); err != nil {
			return fmt.Errorf("failed to insert swap notification: %w", err)
		}
	}
	return nil
}

// applyScheduleChange writes the proposed date/time fields that the request
// carries and leaves everything else untouched
func applyScheduleChange(ctx context.Context, tx db.Store, logger *zap.Logger, req *db.ChangeRequestDetail) error {
	chg := db.ShiftScheduleChange{
		ShiftID:   req.ShiftID,
		Date:      req.ProposedDate,
		StartTime: nonEmpty(req.ProposedStartTime),
		EndTime:   nonEmpty(req.ProposedEndTime),
	}
	logger.Debug("Applying schedule change",
		zap.Int64("shift_id", req.ShiftID),
		zap.Bool("date", chg.Date != nil),
		zap.Bool("start_time", chg.StartTime != nil),
		zap.Bool("end_time", chg.EndTime != nil))

	if err := tx.ApplyShiftScheduleChange(ctx, chg); err != nil {
		return fmt.Errorf("failed to apply schedule change: %w", err)
	}

	err := tx.UpsertShiftConfirmation(ctx, req.ShiftID, req.VolunteerID,
		model.ConfirmationConfirmed, "Time/Date change approved")
	if err != nil {
		return fmt.Errorf("failed to confirm changed shift: %w", err)
	}
	return nil
}

func notifyRequester(ctx context.Context, tx db.Store, req *db.ChangeRequestDetail, status model.RequestStatus, adminNotes string) error {
	if req.VolunteerUserID == nil {
		return nil
	}

	var n *db.Notification
	switch status {
	case model.RequestApproved:
		msg := "Your shift change request has been approved."
		if adminNotes != "" {
			msg += " Notes: " + adminNotes
		}
		n = notify.New(*req.VolunteerUserID, "shift_change_approved", "Shift Change Request Approved", msg)
	case model.RequestRejected:
		msg := "Your shift change request has been rejected."
		if adminNotes != "" {
			msg += " Reason: " + adminNotes
		}
		n = notify.New(*req.VolunteerUserID, "shift_change_rejected", "Shift Change Request Rejected", msg)
	case model.RequestCancelled:
		msg := "Your shift change request has been cancelled."
		if adminNotes != "" {
			msg += " Reason: " + adminNotes
		}
		n = notify.New(*req.VolunteerUserID, "shift_change_cancelled", "Shift Change Request Cancelled", msg)
	default:
		return nil
	}

	if err := tx.InsertNotification(ctx, n); err != nil {
		return fmt.Errorf("failed to insert resolution notification: %w", err)
	}
	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
