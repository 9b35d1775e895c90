package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8000
	defaultEnv        = "development"

	defaultDBDriver    = DriverSQLite
	defaultSQLitePath  = "studyaid.db"
	defaultDBHost      = "127.0.0.1"
	defaultMySQLPort   = 3306
	defaultPGPort      = 5432
	defaultDBUser      = "root"
	defaultDBName      = "studyaid"
	defaultDBCharset   = "utf8mb4"
	defaultDBLoc       = "Local"
	defaultPGSSLMode   = "disable"
	defaultAuthTimeout = 10 * time.Second

	defaultAIModel         = "gpt-4o-mini"
	defaultMaxInputChars   = 48000
	defaultMaxOutputTokens = 2048
	defaultAITimeout       = 90 * time.Second

	defaultMaxPDFMB        = 20
	defaultRateLimitMax    = 10
	defaultRateLimitWindow = time.Minute
	defaultS3KeyPrefix     = "uploads/pdf"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var defaultTranscriptLanguages = []string{"en"}
