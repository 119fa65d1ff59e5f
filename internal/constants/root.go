package constants

const (
	AppName            = "daycard"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/daycard/daycard.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daycard-"
	BackupFileSuffix = ".db"

	// Session lock
	SessionLockfileName = "daycard-session.lock"

	// Environment variables
	EnvConfig       = "DAYCARD_CONFIG"
	EnvActor        = "DAYCARD_ACTOR"
	EnvDBConnection = "DAYCARD_DB_CONNECTION"
	EnvDebug        = "DAYCARD_DEBUG"
)
