package mealdeck

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "mealdeck",
	Short: "mealdeck tracks your daily meal checklist from the terminal",
	Long:  "mealdeck is a local-first meal checklist with a recipe catalog, a daily log, a monthly recap, and a goals tracker.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
