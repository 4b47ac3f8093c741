package constants

const (
	AppName           = "mayfly"
	DefaultConfigDir  = "~/.config/mayfly"
	DefaultConfigPath = "~/.config/mayfly/mayfly.db"
	DefaultConfigFile = "config"
	EnvPrefix         = "MAYFLY"
	Version           = "v1.0.0"

	// DateFormat is the calendar-day layout used for completion dates (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimestampFormat is a fixed-width UTC layout so stored timestamps sort lexically
	TimestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

	// MaxPriorityTodos caps todos that are both priority and incomplete
	MaxPriorityTodos = 3

	// CharacterStateID is the primary key of the singleton character row
	CharacterStateID = 1

	// ExportVersion is written into exported JSON documents
	ExportVersion    = "1.0.0"
	ExportFilePrefix = "mayfly-backup-"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "mayfly-"
	BackupFileSuffix = ".db"

	// Log rotation
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28

	// WeeklyStatsDays is the trailing window, today included
	WeeklyStatsDays = 7
)
