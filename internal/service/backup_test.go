package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mealdeck/mealdeck/internal/db"
	"github.com/mealdeck/mealdeck/internal/service"
)

func TestBackupAndRestore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mealdeck.db")

	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	sqldb.Close()

	backupPath := filepath.Join(dir, "backups", "mealdeck-backup.db")
	info, err := service.CreateBackup(dbPath, backupPath)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("expected checksum and size, got %+v", info)
	}
	if _, err := os.Stat(backupPath + ".sha256"); err != nil {
		t.Fatalf("expected a checksum sidecar: %v", err)
	}

	// Restore refuses to clobber an existing database without force.
	if err := service.RestoreBackup(backupPath, dbPath, false); err == nil {
		t.Fatalf("expected restore over an existing db to be refused")
	}
	if err := service.RestoreBackup(backupPath, dbPath, true); err != nil {
		t.Fatalf("forced restore: %v", err)
	}

	restorePath := filepath.Join(dir, "restored.db")
	if err := service.RestoreBackup(backupPath, restorePath, false); err != nil {
		t.Fatalf("restore to a fresh path: %v", err)
	}
	restored, err := db.Open(restorePath)
	if err != nil {
		t.Fatalf("open restored db: %v", err)
	}
	defer restored.Close()
	var count int
	if err := restored.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count); err != nil {
		t.Fatalf("query restored db: %v", err)
	}
	if count == 0 {
		t.Fatalf("expected seeded snapshots in the restored db")
	}
}

func TestRestoreDetectsTamperedBackup(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mealdeck.db")
	if err := os.WriteFile(dbPath, []byte("data"), 0o644); err != nil {
		t.Fatalf("write db: %v", err)
	}

	backupPath := filepath.Join(dir, "backup.db")
	if _, err := service.CreateBackup(dbPath, backupPath); err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if err := os.WriteFile(backupPath, []byte("tampered"), 0o644); err != nil {
		t.Fatalf("tamper: %v", err)
	}

	target := filepath.Join(dir, "restored.db")
	if err := service.RestoreBackup(backupPath, target, false); err == nil {
		t.Fatalf("expected a checksum mismatch error")
	}
}

func TestListBackups(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mealdeck.db")
	if err := os.WriteFile(dbPath, []byte("data"), 0o644); err != nil {
		t.Fatalf("write db: %v", err)
	}

	if _, err := service.CreateBackup(dbPath, filepath.Join(dir, "a.db")); err != nil {
		t.Fatalf("backup a: %v", err)
	}
	if _, err := service.CreateBackup(dbPath, filepath.Join(dir, "b.db")); err != nil {
		t.Fatalf("backup b: %v", err)
	}

	backups, err := service.ListBackups(dir, dbPath)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	// The live database shares the directory but is not a backup.
	if len(backups) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(backups))
	}
	for _, b := range backups {
		if b.Path == dbPath {
			t.Fatalf("expected the active database to be excluded")
		}
		if b.SizeBytes == 0 {
			t.Fatalf("expected a size for %s", b.Path)
		}
	}
}
