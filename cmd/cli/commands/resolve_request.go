package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/core/changerequest"
	"github.com/frsm-ph/shiftops/pkg/core/model"
)

// ResolveRequestCmd creates the resolve-request command
func ResolveRequestCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve-request <request-id> <approved|rejected|cancelled>",
		Short: "Resolve a pending shift change request",
		Long:  "Approve, reject or cancel a pending change request, applying swap or schedule changes on approval",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requestID, err := parseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid request id: %w", err)
			}
			newStatus := model.RequestStatus(args[1])
			reviewerID, _ := cmd.Flags().GetInt64("reviewer")
			notes, _ := cmd.Flags().GetString("notes")

			app.Logger.Debug("resolve-request command",
				zap.Int64("request_id", requestID),
				zap.String("new_status", string(newStatus)))

			err = changerequest.ResolveChangeRequest(app.Ctx, app.Database, app.Logger,
				changerequest.Resolution{
					RequestID:  requestID,
					NewStatus:  newStatus,
					ReviewerID: reviewerID,
					AdminNotes: notes,
				})
			if err != nil {
				return fmt.Errorf("resolution failed: %w", err)
			}

			fmt.Printf("\n✅ Request %d %s\n", requestID, newStatus)
			return nil
		},
	}

	cmd.Flags().Int64("reviewer", 0, "Reviewing admin's user id")
	cmd.Flags().String("notes", "", "Admin notes to attach to the resolution")
	cmd.MarkFlagRequired("reviewer")
	return cmd
}
