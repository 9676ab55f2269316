package mealdeck

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mealdeck/mealdeck/internal/service"
	"github.com/spf13/cobra"
)

var recapCmd = &cobra.Command{
	Use:   "recap",
	Short: "Review past days",
}

var recapDayCmd = &cobra.Command{
	Use:   "day <date>",
	Short: "Show one day's meals and average rating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			avg, hasData, err := service.AverageRatingForDate(sqldb, args[0])
			if err != nil {
				return err
			}
			if !hasData {
				fmt.Fprintf(cmd.OutOrStdout(), "No data for %s\n", args[0])
				return nil
			}
			records, err := service.RecordsForDate(sqldb, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d meals, average rating %.1f\n", args[0], len(records), avg)
			for _, rec := range records {
				recipe := ""
				if rec.AssociatedMeal != nil {
					recipe = "\t(" + rec.AssociatedMeal.Name + ")"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\t%d\t%s%s\n", rec.Name, rec.Rating, rec.TimeChecked, recipe)
			}
			return nil
		})
	},
}

var (
	recapYear  int
	recapMonth int
)

var recapMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show the monthly calendar of average ratings",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := timeNow()
		year := recapYear
		if year == 0 {
			year = now.Year()
		}
		month := time.Month(recapMonth)
		if recapMonth == 0 {
			month = now.Month()
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.MonthSummary(sqldb, year, month)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", month, year)
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tMEALS\tAVG")
			for _, day := range report.Days {
				if !day.HasData {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t-\t-\n", day.Date)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%.1f\n", day.Date, day.Records, day.Average)
			}
			if report.DaysWithData > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Month average: %.1f over %d days\n", report.Average, report.DaysWithData)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No data this month")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(recapCmd)
	recapCmd.AddCommand(recapDayCmd, recapMonthCmd)

	recapMonthCmd.Flags().IntVar(&recapYear, "year", 0, "Year (default current)")
	recapMonthCmd.Flags().IntVar(&recapMonth, "month", 0, "Month 1-12 (default current)")
}
