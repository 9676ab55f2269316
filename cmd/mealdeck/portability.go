package mealdeck

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mealdeck/mealdeck/internal/service"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every collection as a JSON bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			data := service.ExportSnapshot(sqldb, timeNow())
			raw, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return fmt.Errorf("encode export bundle: %w", err)
			}
			raw = append(raw, '\n')
			if exportOut == "" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			if err := os.WriteFile(exportOut, raw, 0o644); err != nil {
				return fmt.Errorf("write export bundle: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", exportOut)
			return nil
		})
	},
}

var (
	importFile string
	importMode string
	importYes  bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a JSON bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		if importFile == "" {
			return fmt.Errorf("--file is required")
		}
		mode := service.ImportMode(importMode)
		if mode == service.ImportModeReplace && !importYes {
			return fmt.Errorf("replace mode overwrites all local data; re-run with --yes to confirm")
		}
		raw, err := os.ReadFile(importFile)
		if err != nil {
			return fmt.Errorf("read import bundle: %w", err)
		}
		var data service.ExportData
		if err := json.Unmarshal(raw, &data); err != nil {
			return fmt.Errorf("decode import bundle: %w", err)
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.ImportSnapshot(sqldb, &data, mode, timeNow())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d slots, %d recipes, %d days, %d goals\n",
				report.Slots, report.Recipes, report.Days, report.Goals)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	importCmd.Flags().StringVar(&importFile, "file", "", "Bundle file to import")
	importCmd.Flags().StringVar(&importMode, "mode", string(service.ImportModeMerge), "Import mode: merge or replace")
	importCmd.Flags().BoolVar(&importYes, "yes", false, "Confirm replace mode")
}
