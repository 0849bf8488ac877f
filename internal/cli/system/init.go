package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/storage"
	"github.com/julianstephens/coparent/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy the household from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force && storage.IsSQLite(ctx.Store) {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			if abs, err := filepath.Abs(dbPath); err == nil {
				dbPath = abs
			}
			if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	} else if c.Force {
		return errors.New("--force is only supported for SQLite databases")
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized coparent storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying household from: %s\n", c.Source)
		if err := c.copyHousehold(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) copyHousehold(ctx *cli.Context) error {
	if postgres.IsConnString(c.Source) {
		if _, err := postgres.ValidateConnString(c.Source); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
	}

	source, err := storage.New(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	h, err := source.GetHousehold()
	if err != nil {
		return fmt.Errorf("failed to read household from source: %w", err)
	}
	if err := ctx.Store.SaveHousehold(h); err != nil {
		return fmt.Errorf("failed to save household to destination: %w", err)
	}

	ctx.Printf("  Copied %d overrides, %d expenses, %d support entries, %d tasks, %d notes\n",
		len(h.Exceptions), len(h.Expenses), len(h.Support), len(h.Tasks), len(h.Notes))
	return nil
}
