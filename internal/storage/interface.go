package storage

import "github.com/julianstephens/coparent/internal/household"

// Provider persists one household snapshot. Implementations save a snapshot
// atomically; a failed SaveHousehold leaves the previous one intact.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Household
	GetHousehold() (household.Household, error)
	SaveHousehold(household.Household) error

	// Utils
	GetConfigPath() string
}

// Inspector is implemented by providers that can report on their database for
// diagnostics.
type Inspector interface {
	Ping() error
	SchemaVersion() (current, latest int, err error)
}
