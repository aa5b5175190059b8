package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frsm-ph/shiftops/pkg/core/model"
	"github.com/frsm-ph/shiftops/pkg/core/reporting"
	"github.com/frsm-ph/shiftops/pkg/db"
)

// ListRequestsCmd creates the list-requests command
func ListRequestsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-requests",
		Short: "List shift change requests for review",
		Long:  "List change requests, pending first, with the trailing-30-day statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			statusFlag, _ := cmd.Flags().GetString("status")

			var filter db.ChangeRequestFilter
			if statusFlag != "" {
				status := model.RequestStatus(statusFlag)
				if !status.IsValid() {
					return fmt.Errorf("invalid status %q", statusFlag)
				}
				filter.Status = status
			}

			requests, err := reporting.ChangeRequests(app.Ctx, app.Database, app.Logger, filter)
			if err != nil {
				return fmt.Errorf("listing failed: %w", err)
			}

			stats, err := reporting.RequestStatistics(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return fmt.Errorf("statistics failed: %w", err)
			}

			fmt.Printf("\n📋 Change Requests (%d)\n\n", len(requests))
			for _, r := range requests {
				fmt.Printf("#%d [%s] %s — %s %s, shift %s %s-%s\n",
					r.ID, r.Status, r.RequestType,
					r.VolunteerFirstName, r.VolunteerLastName,
					r.ShiftDate.Format("2006-01-02"),
					r.OriginalStartTime, r.OriginalEndTime)
				if r.RequestDetails != "" {
					fmt.Printf("    %s\n", r.RequestDetails)
				}
			}

			fmt.Printf("\nLast 30 days: %d total | %d pending | %d approved | %d rejected | %d cancelled\n",
				stats.TotalRequests, stats.PendingRequests, stats.ApprovedRequests,
				stats.RejectedRequests, stats.CancelledRequests)
			fmt.Printf("Average processing time: %.1f hours\n", stats.AvgProcessingHours)
			return nil
		},
	}

	cmd.Flags().String("status", "", "Filter by status (pending, approved, rejected, cancelled)")
	return cmd
}
