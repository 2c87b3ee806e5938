package constants

const (
	// Environment overrides
	EnvStorage         = "HABITQUEST_STORAGE"
	EnvTimezone        = "HABITQUEST_TIMEZONE"
	EnvDebug           = "HABITQUEST_DEBUG"
	EnvBackupKeep      = "HABITQUEST_BACKUP_KEEP"
	EnvStorageSecret   = "HABITQUEST_DB_CONNECTION"
	EnvTestPostgres    = "HABITQUEST_TEST_POSTGRES"
	EnvTestRedis       = "HABITQUEST_TEST_REDIS"
	DefaultEnvFileName = ".env"
	DefaultTimezone    = "Local" // Use system local timezone by default
	DefaultBackupsOn   = true
	DefaultHabitPoints = 10
	DefaultGoalTarget  = 5
	DefaultRewardCost  = 100
)
