package mealdeck

import (
	"database/sql"
	"fmt"

	"github.com/mealdeck/mealdeck/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check stored data against its invariants",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix, timeNow())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Duplicate dates:        %d\n", report.DuplicateDates)
			fmt.Fprintf(out, "Unchecked residue:      %d\n", report.UncheckedResidue)
			fmt.Fprintf(out, "Unlogged checked slots: %d\n", report.UnloggedCheckedSlots)
			fmt.Fprintf(out, "Orphan log records:     %d\n", report.OrphanLogRecords)
			fmt.Fprintf(out, "Out-of-range ratings:   %d\n", report.OutOfRangeRatings)
			fmt.Fprintf(out, "Stale goal flags:       %d\n", report.StaleGoalFlags)
			if doctorFix {
				fmt.Fprintf(out, "Fixed issues:           %d\n", report.FixedIssues)
				return nil
			}
			if !report.Clean() {
				return fmt.Errorf("found issues; re-run with --fix to repair")
			}
			fmt.Fprintln(out, "All clean")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Apply safe repairs")
}
