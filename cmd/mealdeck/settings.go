package mealdeck

import (
	"database/sql"
	"fmt"

	"github.com/mealdeck/mealdeck/internal/service"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persisted preferences",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			s := service.LoadSettings(sqldb)
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\nRating bounds: %d-%d\n", s.Theme, s.RatingMin, s.RatingMax)
			return nil
		})
	},
}

var (
	settingsTheme     string
	settingsRatingMin int
	settingsRatingMax int
)

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings (only the flags you pass)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			s := service.LoadSettings(sqldb)
			if cmd.Flags().Changed("theme") {
				s.Theme = settingsTheme
			}
			if cmd.Flags().Changed("rating-min") {
				s.RatingMin = settingsRatingMin
			}
			if cmd.Flags().Changed("rating-max") {
				s.RatingMax = settingsRatingMax
			}
			if err := service.SaveSettings(sqldb, s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\nRating bounds: %d-%d\n", s.Theme, s.RatingMin, s.RatingMax)
			return nil
		})
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ResetSettings(sqldb); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsResetCmd)

	settingsSetCmd.Flags().StringVar(&settingsTheme, "theme", "", "Theme: light or dark")
	settingsSetCmd.Flags().IntVar(&settingsRatingMin, "rating-min", 0, "Lower rating bound")
	settingsSetCmd.Flags().IntVar(&settingsRatingMax, "rating-max", 10, "Upper rating bound")
}
