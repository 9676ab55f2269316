package mealdeck

import (
	"database/sql"
	"fmt"

	"github.com/mealdeck/mealdeck/internal/service"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect or clear the live daily log",
}

var logShowDate string

var logShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show logged meals for a date (default today)",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrToday(logShowDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			records, err := service.RecordsForDate(sqldb, date)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No meals logged for %s\n", date)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Log for %s\n", date)
			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tRATING\tTIME\tRECIPE")
			for _, rec := range records {
				recipe := ""
				if rec.AssociatedMeal != nil {
					recipe = rec.AssociatedMeal.Name
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n", rec.Name, rec.Rating, rec.TimeChecked, recipe)
			}
			return nil
		})
	},
}

var logClearYes bool

var logClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the live log and uncheck every slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !logClearYes {
			return fmt.Errorf("clearing the log is destructive; re-run with --yes to confirm")
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ClearLog(sqldb, timeNow()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared the live log")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logShowCmd, logClearCmd)

	logShowCmd.Flags().StringVar(&logShowDate, "date", "", "Date YYYY-MM-DD (default today)")
	logClearCmd.Flags().BoolVar(&logClearYes, "yes", false, "Confirm clearing")
}
