package mealdeck

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/mealdeck/mealdeck/internal/service"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up and restore the database file",
}

var backupOut string

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Copy the database to a backup file",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := resolveDBPath()
		if err != nil {
			return err
		}
		out := backupOut
		if out == "" {
			out = filepath.Join(filepath.Dir(src), fmt.Sprintf("mealdeck-%s.db", time.Now().Format("20060102-150405")))
		}
		info, err := service.CreateBackup(src, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backed up to %s (%d bytes, sha256 %s)\n", info.Path, info.SizeBytes, info.Checksum)
		return nil
	},
}

var backupListDir string

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups in a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := resolveDBPath()
		if err != nil {
			return err
		}
		dir := backupListDir
		if dir == "" {
			dir = filepath.Dir(src)
		}
		backups, err := service.ListBackups(dir, src)
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No backups found")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "PATH\tSIZE\tCREATED")
		for _, b := range backups {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", b.Path, b.SizeBytes, b.CreatedAt.Format(time.RFC3339))
		}
		return nil
	},
}

var backupRestoreForce bool

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <backup-file>",
	Short: "Restore a backup over the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := service.RestoreBackup(args[0], dst, backupRestoreForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s to %s\n", args[0], dst)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup file path (default alongside the db)")
	backupListCmd.Flags().StringVar(&backupListDir, "dir", "", "Directory to scan (default the db directory)")
	backupRestoreCmd.Flags().BoolVar(&backupRestoreForce, "force", false, "Overwrite an existing database")
}
