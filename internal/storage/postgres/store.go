package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	pq "github.com/lib/pq"

	"github.com/julianstephens/coparent/internal/constants"
	"github.com/julianstephens/coparent/internal/household"
	"github.com/julianstephens/coparent/internal/logger"
	"github.com/julianstephens/coparent/internal/migration"
	"github.com/julianstephens/coparent/internal/storage/sqlstore"
	"github.com/julianstephens/coparent/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

// ensureSearchPath points the connection at the application schema unless the
// caller already chose one.
func (s *Store) ensureSearchPath() {
	if isURL(s.connStr) {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}
	if !hasSearchPathParam(s.connStr) {
		s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
	}
}

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// IsConnString reports whether config names a PostgreSQL database rather than
// a SQLite file path.
func IsConnString(config string) bool {
	if isURL(config) {
		return true
	}
	for _, part := range strings.Fields(config) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && (strings.EqualFold(kv[0], "host") || strings.EqualFold(kv[0], "dbname")) {
			return true
		}
	}
	return false
}

// hasSearchPathParam reports whether a DSN-style connection string has a
// search_path key (case-insensitive).
func hasSearchPathParam(connStr string) bool {
	return hasDSNKey(connStr, "search_path")
}

// hasSSLMode checks for an sslmode key in URL-style or DSN-style connection strings.
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for key := range u.Query() {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasDSNKey(connStr, "sslmode")
}

func hasDSNKey(connStr, key string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// ValidateConnString checks that connStr is a valid PostgreSQL connection
// string (URI or DSN) without an embedded password.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if isURL(connStr) {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}
		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return true, nil
	}

	if hasDSNKey(connStr, "password") {
		return false, ErrEmbeddedCredentials
	}
	return true, nil
}

func (s *Store) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(constants.PostgresMaxConns)
	db.SetMaxIdleConns(constants.PostgresMaxConns)
	db.SetConnMaxLifetime(constants.PostgresConnLife)
	s.db = db
	return nil
}

// Ping checks that the server is reachable.
func (s *Store) Ping() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	return s.ping()
}

func (s *Store) ping() error {
	if err := s.db.Ping(); err != nil {
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

// Init creates the application schema, applies migrations and seeds the
// default household when the database is empty.
func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	if err := s.ping(); err != nil {
		return err
	}

	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := sqlstore.LoadHousehold(s.db, sqlstore.Dollar); err != nil {
		if !errors.Is(err, sqlstore.ErrNoHousehold) {
			return err
		}
		if err := sqlstore.SaveHousehold(s.db, sqlstore.Dollar, household.Default()); err != nil {
			return fmt.Errorf("failed to save default household: %w", err)
		}
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	if err := s.ping(); err != nil {
		return err
	}
	return s.validateSchemaVersion()
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
	h, err := sqlstore.LoadHousehold(s.db, sqlstore.Dollar)
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
	return sqlstore.SaveHousehold(s.db, sqlstore.Dollar, h)
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
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DriverPostgres)
}

// GetConfigPath returns a non-sensitive identifier instead of the connection string.
func (s *Store) GetConfigPath() string {
	return "postgresql"
}
