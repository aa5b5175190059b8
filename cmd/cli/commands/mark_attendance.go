package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/core/attendance"
	"github.com/frsm-ph/shiftops/pkg/core/model"
)

// MarkAttendanceCmd creates the mark-attendance command
func MarkAttendanceCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mark-attendance <shift-id> <action>",
		Short: "Apply an attendance action to a shift",
		Long:  "Apply check_in, check_out, mark_absent or mark_excused to a shift",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID, err := parseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid shift id: %w", err)
			}
			action := model.AttendanceAction(args[1])
			notes, _ := cmd.Flags().GetString("notes")

			app.Logger.Debug("mark-attendance command",
				zap.Int64("shift_id", shiftID),
				zap.String("action", string(action)))

			result, err := attendance.ApplyAttendanceAction(app.Ctx, app.Database, app.Logger,
				shiftID, action, notes)
			if err != nil {
				return fmt.Errorf("attendance action failed: %w", err)
			}

			fmt.Printf("\n✅ Shift %d is now %s\n", result.ShiftID, result.AttendanceStatus)
			if result.TotalHours != nil {
				fmt.Printf("Total hours: %.2f\n", *result.TotalHours)
			}
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Notes to record on the attendance log")
	return cmd
}
