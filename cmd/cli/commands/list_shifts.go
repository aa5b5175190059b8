package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/frsm-ph/shiftops/pkg/core/reporting"
)

// ListShiftsCmd creates the list-shifts command
func ListShiftsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-shifts",
		Short: "List a day's shifts with their attendance tally",
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if dateFlag, _ := cmd.Flags().GetString("date"); dateFlag != "" {
				parsed, err := time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", dateFlag)
				}
				date = parsed
			}

			shifts, summary, err := reporting.ShiftsForDate(app.Ctx, app.Database, app.Logger, date)
			if err != nil {
				return fmt.Errorf("listing failed: %w", err)
			}

			fmt.Printf("\n📅 Shifts for %s (%d)\n\n", date.Format("2006-01-02"), summary.Total)
			for _, s := range shifts {
				fmt.Printf("#%d %s-%s %s — %s %s [%s]\n",
					s.ID, s.StartTime, s.EndTime, s.Location,
					s.VolunteerFirstName, s.VolunteerLastName,
					s.AttendanceStatus)
			}
			fmt.Printf("\n%d pending | %d checked in | %d checked out | %d absent | %d excused\n",
				summary.Pending, summary.CheckedIn, summary.CheckedOut,
				summary.Absent, summary.Excused)
			return nil
		},
	}

	cmd.Flags().String("date", "", "Day to list (YYYY-MM-DD, default today)")
	return cmd
}
