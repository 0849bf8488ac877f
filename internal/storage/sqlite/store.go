package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/logger"
	"github.com/julianstephens/coparent/internal/migration"
	"github.com/julianstephens/coparent/internal/storage/sqlstore"
	"github.com/julianstephens/coparent/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init creates the database file if needed, applies pending migrations and
// seeds the default household when none is stored yet. Existing data is kept.
func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := sqlstore.LoadHousehold(s.db, sqlstore.Question); err != nil {
		if !errors.Is(err, sqlstore.ErrNoHousehold) {
			return err
		}
		if err := sqlstore.SaveHousehold(s.db, sqlstore.Question, household.Default()); err != nil {
			return fmt.Errorf("failed to save default household: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'coparent init' first")
	}

	if err := s.open(); err != nil {
		return err
	}

	return s.validateSchemaVersion()
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps writers serialized on the file.
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// GetHousehold loads the stored snapshot and validates it.
func (s *Store) GetHousehold() (household.Household, error) {
	if s.db == nil {
		return household.Household{}, fmt.Errorf("storage not loaded")
	}
	h, err := sqlstore.LoadHousehold(s.db, sqlstore.Question)
	if err != nil {
		return household.Household{}, err
	}
	if err := h.Validate(); err != nil {
		return household.Household{}, fmt.Errorf("stored household is invalid: %w", err)
	}
	return h, nil
}

func (s *Store) SaveHousehold(h household.Household) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := h.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid household: %w", err)
	}
	return sqlstore.SaveHousehold(s.db, sqlstore.Question, h)
}

func (s *Store) runMigrations() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Info(msg)
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	runner, err := s.migrationRunner()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

// SchemaVersion reports the applied and the latest known migration versions.
func (s *Store) SchemaVersion() (int, int, error) {
	if s.db == nil {
		return 0, 0, fmt.Errorf("storage not loaded")
	}
	runner, err := s.migrationRunner()
	if err != nil {
		return 0, 0, err
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}

func (s *Store) migrationRunner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverSQLite)
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// Ping runs a trivial query against the open database.
func (s *Store) Ping() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	var one int
	if err := s.db.QueryRow("SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

// GetDB returns the underlying connection, or nil before Init or Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}
