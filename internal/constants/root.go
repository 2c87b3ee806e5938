package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "habitquest"
	DefaultKeyringUser = "storage-connection"
	DefaultConfigDir   = "~/.config/habitquest"
	DefaultStoragePath = "~/.config/habitquest/habitquest.db"
	DefaultConfigFile  = "config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the canonical calendar date format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is used by the calendar view (YYYY-MM)
	MonthFormat = "2006-01"

	// Persisted state keys
	KeyHabits        = "habits"
	KeyGoals         = "goals"
	KeyRewards       = "rewards"
	KeyStats         = "stats"
	KeyDarkMode      = "darkMode"
	KeyLastResetDate = "lastResetDate"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitquest-"

	// Session lock
	SessionLockfileName = "habitquest.lock"

	// Redis key namespace
	RedisKeyPrefix = "habitquest:"

	// Special storage settings
	StorageMemory  = ":memory:"
	StorageKeyring = "keyring"
)

// Session States. The first TabCount values are the top-level tabs, in order.
const (
	StateDaily SessionState = iota
	StateGoals
	StateHistory
	StateRewards
	StateAddHabit
	StateAddGoal
	StateAddReward
	StateConfirmDelete
)

// TabCount is the number of top-level TUI tabs (Daily, Goals, History, Rewards)
const TabCount = 4

// StateKeys lists the keys that make up a full domain snapshot, in write order.
var StateKeys = []string{KeyHabits, KeyGoals, KeyRewards, KeyStats}
