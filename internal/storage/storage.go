package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/coparent/internal/storage/postgres"
	"github.com/julianstephens/coparent/internal/storage/sqlite"
)

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)

	_ Inspector = (*sqlite.Store)(nil)
	_ Inspector = (*postgres.Store)(nil)
)

// New picks a provider for config: a PostgreSQL connection string or a SQLite
// file path. Connection strings must not embed a password.
func New(config string) (Provider, error) {
	if postgres.IsConnString(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(path), nil
}

// NewTrusted is New without the embedded-password check, for connection
// strings that came from the keyring or the environment.
func NewTrusted(config string) (Provider, error) {
	if postgres.IsConnString(config) {
		return postgres.New(config), nil
	}
	return New(config)
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// IsSQLite reports whether p is backed by a local SQLite file.
func IsSQLite(p Provider) bool {
	_, ok := p.(*sqlite.Store)
	return ok
}
