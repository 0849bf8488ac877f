package constants

import "time"

const (
	AppName            = "coparent"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/coparent/coparent.db"
	Version            = "v0.3.0"

	// Environment overrides
	EnvConfig        = "COPARENT_DB"
	EnvDebug         = "COPARENT_DEBUG"
	EnvDBConnection  = "COPARENT_DB_CONNECTION"
	KeyringConfigRef = "keyring"

	// DateFormat is the calendar date format used for every stored date (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat identifies a child-support month (YYYY-MM)
	MonthFormat = "2006-01"

	// TimestampFormat is used for note timestamps
	TimestampFormat = "2006-01-02 15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "coparent-"
	BackupFileSuffix = ".db"

	// Log rotation
	LogFileName      = "coparent.log"
	LogMaxSizeMB     = 10
	LogMaxBackups    = 3
	LogMaxAgeDays    = 28
	PostgresMaxConns = 10
	PostgresConnLife = 5 * time.Minute
)

// Household defaults, matching a freshly created tracker.
const (
	DefaultParentAName = "Parent A"
	DefaultParentBName = "Parent B"
	DefaultChildName   = "Child"
	DefaultCurrency    = "$"
	DefaultStartYear   = 2026
	DefaultWeekStart   = time.Monday
)
