package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/frsm-ph/shiftops/pkg/core/replacement"
)

// FindReplacementsCmd creates the find-replacements command
func FindReplacementsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find-replacements <shift-id>",
		Short: "Suggest replacement volunteers for a shift",
		Long:  "List up to ten approved volunteers free on the shift day, most reliable first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID, err := parseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid shift id: %w", err)
			}
			exclude, _ := cmd.Flags().GetInt64("exclude")

			app.Logger.Debug("find-replacements command",
				zap.Int64("shift_id", shiftID),
				zap.Int64("exclude", exclude))

			candidates, err := replacement.FindReplacements(app.Ctx, app.Database, app.Logger,
				shiftID, exclude)
			if err != nil {
				return fmt.Errorf("replacement search failed: %w", err)
			}

			if len(candidates) == 0 {
				fmt.Println("\nNo available replacements found.")
				return nil
			}

			fmt.Printf("\n🔄 Replacement Candidates (%d)\n\n", len(candidates))
			for i, c := range candidates {
				unit := "unassigned"
				if c.UnitName != nil {
					unit = *c.UnitName
				}
				fmt.Printf("%2d. %s %s — %s (confirmed last 30 days: %d)\n",
					i+1, c.FirstName, c.LastName, unit, c.ConfirmedLast30Days)
				fmt.Printf("    %s | %s\n", c.ContactNumber, c.Email)
			}
			return nil
		},
	}

	cmd.Flags().Int64("exclude", 0, "Volunteer id to exclude (the one being replaced)")
	return cmd
}
