package config

import "strings"

func normalize(cfg AppConfig) AppConfig {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.Timezone = strings.TrimSpace(cfg.Timezone)
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	cfg.Redis.URL = normalizeRedisRawURL(cfg.Redis.URL)
	cfg.Auth.SupabaseURL = strings.TrimRight(strings.TrimSpace(cfg.Auth.SupabaseURL), "/")
	cfg.Auth.AnonKey = strings.TrimSpace(cfg.Auth.AnonKey)
	cfg.Auth.JWTSecret = strings.TrimSpace(cfg.Auth.JWTSecret)
	cfg.AI = normalizeAIConfig(cfg.AI)
	cfg.YouTube.Languages = normalizeLanguages(cfg.YouTube.Languages)
	cfg.Storage.S3 = normalizeS3Config(cfg.Storage.S3)
	cfg.Paths.Logs = strings.TrimSpace(cfg.Paths.Logs)
	return cfg
}

func normalizeDatabaseConfig(cfg DatabaseConfig) DatabaseConfig {
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.User = strings.TrimSpace(cfg.User)
	cfg.Password = strings.TrimSpace(cfg.Password)
	cfg.Name = strings.TrimSpace(cfg.Name)
	cfg.SSLMode = strings.TrimSpace(cfg.SSLMode)
	cfg.Driver = normalizeDriver(cfg.Driver)
	if cfg.Driver == "" {
		cfg.Driver = inferDriver(cfg.DSN)
	}

	switch cfg.Driver {
	case DriverSQLite:
		if cfg.Name == "" {
			cfg.Name = defaultSQLitePath
		}
	case DriverMySQL, DriverPostgres:
		if cfg.Host == "" {
			cfg.Host = defaultDBHost
		}
		if cfg.Port == 0 {
			cfg.Port = defaultMySQLPort
			if cfg.Driver == DriverPostgres {
				cfg.Port = defaultPGPort
			}
		}
		if cfg.User == "" {
			cfg.User = defaultDBUser
		}
		if cfg.Name == "" {
			cfg.Name = defaultDBName
		}
		if cfg.Driver == DriverPostgres && cfg.SSLMode == "" {
			cfg.SSLMode = defaultPGSSLMode
		}
	}
	if cfg.Params != nil {
		cfg.Params = copyStringMap(cfg.Params)
	}
	return cfg
}

func normalizeDriver(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return ""
	case "postgres", "postgresql", "pg", "supabase":
		return DriverPostgres
	case "sqlite", "sqlite3":
		return DriverSQLite
	case "mysql", "mariadb":
		return DriverMySQL
	default:
		return strings.ToLower(strings.TrimSpace(raw))
	}
}

// inferDriver guesses the driver from a DSN; an empty DSN means the default.
func inferDriver(dsn string) string {
	lower := strings.ToLower(dsn)
	switch {
	case lower == "":
		return defaultDBDriver
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"),
		strings.Contains(lower, "host=") && strings.Contains(lower, "dbname="):
		return DriverPostgres
	case strings.HasPrefix(lower, "sqlite:"), strings.HasPrefix(lower, "file:"),
		strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"), lower == ":memory:":
		return DriverSQLite
	default:
		return DriverMySQL
	}
}

func normalizeRedisRawURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "redis://") || strings.HasPrefix(trimmed, "rediss://") {
		return trimmed
	}
	return "redis://" + trimmed
}

func normalizeAIConfig(cfg AIConfig) AIConfig {
	providers := make([]AIProvider, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		p.ID = strings.TrimSpace(p.ID)
		p.Type = strings.TrimSpace(p.Type)
		p.APIKey = strings.TrimSpace(p.APIKey)
		p.Endpoint = strings.TrimSpace(p.Endpoint)
		p.DefaultModel = strings.TrimSpace(p.DefaultModel)
		if p.ID == "" {
			p.ID = strings.ToLower(p.Type)
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		providers = append(providers, p)
	}
	cfg.Providers = providers
	if cfg.MaxInputChars <= 0 {
		cfg.MaxInputChars = defaultMaxInputChars
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultAITimeout
	}
	return cfg
}

func normalizeLanguages(langs []string) []string {
	out := make([]string, 0, len(langs))
	for _, lang := range langs {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return append(out, defaultTranscriptLanguages...)
	}
	return out
}

func normalizeS3Config(cfg S3Config) S3Config {
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	cfg.Region = strings.TrimSpace(cfg.Region)
	cfg.Bucket = strings.TrimSpace(cfg.Bucket)
	cfg.AccessKeyID = strings.TrimSpace(cfg.AccessKeyID)
	cfg.SecretAccessKey = strings.TrimSpace(cfg.SecretAccessKey)
	cfg.KeyPrefix = strings.Trim(strings.TrimSpace(cfg.KeyPrefix), "/")
	if cfg.Endpoint != "" && !cfg.PathStyleAccess {
		cfg.PathStyleAccess = true
	}
	return cfg
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func copyStringMap(input map[string]string) map[string]string {
	if input == nil {
		return nil
	}
	out := make(map[string]string, len(input))
	for key, value := range input {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			out[k] = v
		}
	}
	return out
}
