package mealdeck

import (
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/mealdeck/mealdeck/internal/service"
	"github.com/spf13/cobra"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream change notifications until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Watching for changes every %s (ctrl-c to stop)\n", watchInterval)
			for change := range service.Watch(ctx, sqldb, watchInterval) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", change.At.Format(time.RFC3339), change.Marker)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", service.DefaultWatchInterval, "Polling interval")
}
