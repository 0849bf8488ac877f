package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/coparent/internal/backup"
	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/constants"
	"github.com/julianstephens/coparent/internal/logger"
	"github.com/julianstephens/coparent/internal/storage"
)

var errNotSQLite = errors.New("backups are only available for SQLite databases")

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a backup now."`
	List    BackupListCmd    `cmd:"" help:"List available backups." default:"1"`
	Restore BackupRestoreCmd `cmd:"" help:"Replace the database with a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	if !storage.IsSQLite(ctx.Store) {
		return errNotSQLite
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	if !storage.IsSQLite(ctx.Store) {
		return errNotSQLite
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		ctx.Printf("  %s  %s  (%.1f KB)\n", b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), sizeKB)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Restore without asking for confirmation."`
}

// confirmRestore asks before the database is replaced.
var confirmRestore = func(backupPath string) (bool, error) {
	ok := false
	err := huh.NewConfirm().
		Title("Replace the current database with this backup?").
		Description(fmt.Sprintf("Restore from: %s\nStop every other coparent process (including the TUI) first.", backupPath)).
		Affirmative("Restore").
		Negative("Cancel").
		Value(&ok).
		WithTheme(huh.ThemeDracula()).
		Run()
	return ok, err
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	if !storage.IsSQLite(ctx.Store) {
		return errNotSQLite
	}

	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := resolveBackupPath(c.BackupFile, mgr.GetBackupDir())
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Println("⚠️  WARNING: This will replace your current database with the backup.")
		ctx.Println("A backup of your current database will be created before restoring.")
		ok, err := confirmRestore(backupPath)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	// the file is about to be replaced
	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close database connection before restore", "error", err)
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Println("✓ Database restored successfully!")
	if safety != "" {
		ctx.Printf("  Previous database saved as: %s\n", filepath.Base(safety))
	}
	ctx.Println("⚠️  Restart any coparent processes that were stopped for the restore.")
	return nil
}

// resolveBackupPath accepts an absolute path, a path relative to the working
// directory, or a bare file name inside the backup directory.
func resolveBackupPath(name, backupDir string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("backup file not found: %s", name)
		}
		return name, nil
	}

	if _, err := os.Stat(name); err == nil {
		abs, err := filepath.Abs(name)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}

	candidate := filepath.Join(backupDir, name)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}
