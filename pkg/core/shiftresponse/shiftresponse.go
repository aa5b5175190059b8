// Package shiftresponse handles a volunteer's answer to an assigned shift:
// confirming it, declining it with a reason, or filing a change request.
package shiftresponse

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/core/model"
	"github.com/frsm-ph/shiftops/pkg/core/notify"
	"github.com/frsm-ph/shiftops/pkg/db"
)

// Response is the volunteer's answer to a shift assignment
type Response string

const (
	ResponseConfirm       Response = "confirm"
	ResponseDecline       Response = "decline"
	ResponseRequestChange Response = "request_change"
)

// ChangeProposal carries the payload of a request_change response. Proposed
// schedule fields apply to time_change/date_change requests; the swap target
// applies to swap requests only.
type ChangeProposal struct {
	Type                model.RequestType
	Details             string
	ProposedDate        *time.Time
	ProposedStartTime   *string
	ProposedEndTime     *string
	SwapWithVolunteerID *int64
}

// Respond records a volunteer's response to their shift. All writes for one
// response share a transaction. The shift must belong to the responding
// volunteer.
func Respond(
	ctx context.Context,
	database db.Conn,
	logger *zap.Logger,
	shiftID int64,
	volunteerID int64,
	response Response,
	reason string,
	proposal *ChangeProposal,
) error {
	logger.Debug("Recording shift response",
		zap.Int64("shift_id", shiftID),
		zap.Int64("volunteer_id", volunteerID),
		zap.String("response", string(response)))

	switch response {
	case ResponseConfirm:
	case ResponseDecline:
		if reason == "" {
			return &model.InvalidStateError{
				Action: string(response),
				Reason: "a decline requires a reason",
			}
		}
	case ResponseRequestChange:
		if err := validateProposal(proposal); err != nil {
			return err
		}
	default:
		return &model.InvalidStateError{
			Action: string(response),
			Reason: "unknown response",
		}
	}

	return database.InTx(ctx, func(tx db.Store) error {
		shift, err := tx.GetShiftForUpdate(ctx, shiftID)
		if err != nil {
			return err
		}
		if shift.VolunteerID == nil || *shift.VolunteerID != volunteerID {
			return db.ErrNotFound
		}

		switch response {
		case ResponseConfirm:
			return confirm(ctx, tx, shift, volunteerID)
		case ResponseDecline:
			return decline(ctx, tx, shift, volunteerID, reason)
		default:
			return requestChange(ctx, tx, shift, volunteerID, proposal)
		}
	})
}

// validateProposal enforces the request-type/field pairing: swap targets
// only on swaps, proposed schedule fields never on swaps
func validateProposal(p *ChangeProposal) error {
	if p == nil || p.Details == "" {
		return &model.InvalidStateError{
			Action: string(ResponseRequestChange),
			Reason: "a change request requires details",
		}
	}
	if !p.Type.IsValid() {
		return &model.InvalidStateError{
			Action: string(ResponseRequestChange),
			Reason: fmt.Sprintf("unknown request type %q", p.Type),
		}
	}
	if p.Type == model.RequestSwap && p.SwapWithVolunteerID == nil {
		return &model.InvalidStateError{
			Action: string(ResponseRequestChange),
			Reason: "a swap request requires a swap target",
		}
	}
	if p.Type != model.RequestSwap && p.SwapWithVolunteerID != nil {
		return &model.InvalidStateError{
			Action: string(ResponseRequestChange),
			Reason: "only swap requests may name a swap target",
		}
	}
	return nil
}

func confirm(ctx context.Context, tx db.Store, shift *db.Shift, volunteerID int64) error {
	if err := tx.ConfirmShift(ctx, shift.ID, volunteerID); err != nil {
		return fmt.Errorf("failed to confirm shift: %w", err)
	}

	err := tx.UpsertShiftConfirmation(ctx, shift.ID, volunteerID,
		model.ConfirmationConfirmed, "Confirmed by volunteer")
	if err != nil {
		return fmt.Errorf("failed to record confirmation: %w", err)
	}

	if shift.VolunteerUserID != nil {
		n := notify.New(*shift.VolunteerUserID,
			"shift_confirmation",
			"Shift Confirmed",
			fmt.Sprintf("You have confirmed your shift on %s from %s to %s.",
				notify.Date(shift.ShiftDate), notify.Clock(shift.StartTime), notify.Clock(shift.EndTime)))
		if err := tx.InsertNotification(ctx, n); err != nil {
			return fmt.Errorf("failed to insert confirmation notification: %w", err)
		}
	}
	return nil
}

func decline(ctx context.Context, tx db.Store, shift *db.Shift, volunteerID int64, reason string) error {
	if err := tx.DeclineShift(ctx, shift.ID, volunteerID, reason); err != nil {
		return fmt.Errorf("failed to decline shift: %w", err)
	}

	err := tx.UpsertShiftConfirmation(ctx, shift.ID, volunteerID,
		model.ConfirmationDeclined, reason)
	if err != nil {
		return fmt.Errorf("failed to record declination: %w", err)
	}

	if shift.VolunteerUserID != nil {
		n := notify.New(*shift.VolunteerUserID,
			"shift_declined",
			"Shift Declined",
			fmt.Sprintf("You have declined your shift on %s. Reason: %s",
				notify.Date(shift.ShiftDate), reason))
		if err := tx.InsertNotification(ctx, n); err != nil {
			return fmt.Errorf("failed to insert declination notification: %w", err)
		}
	}
	return nil
}

func requestChange(ctx context.Context, tx db.Store, shift *db.Shift, volunteerID int64, p *ChangeProposal) error {
	req := &db.ShiftChangeRequest{
		ShiftID:             shift.ID,
		VolunteerID:         volunteerID,
		RequestType:         p.Type,
		RequestDetails:      p.Details,
		SwapWithVolunteerID: p.SwapWithVolunteerID,
		Status:              model.RequestPending,
	}
	// Proposed schedule fields only travel on time/date changes
	if p.Type == model.RequestTimeChange || p.Type == model.RequestDateChange {
		req.ProposedDate = p.ProposedDate
		req.ProposedStartTime = p.ProposedStartTime
		req.ProposedEndTime = p.ProposedEndTime
	}

	if err := tx.InsertChangeRequest(ctx, req); err != nil {
		return fmt.Errorf("failed to insert change request: %w", err)
	}

	if err := tx.FlagShiftChangeRequested(ctx, shift.ID, volunteerID, p.Details); err != nil {
		return fmt.Errorf("failed to flag shift: %w", err)
	}

	if shift.VolunteerUserID != nil {
		n := notify.New(*shift.VolunteerUserID,
			"shift_change_request",
			"Shift Change Requested",
			fmt.Sprintf("Your change request for the shift on %s has been submitted and is awaiting review.",
				notify.Date(shift.ShiftDate)))
		if err := tx.InsertNotification(ctx, n); err != nil {
			return fmt.Errorf("failed to insert change request notification: %w", err)
		}
	}
	return nil
}
