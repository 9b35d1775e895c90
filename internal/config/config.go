package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at configPath, then applies environment overrides.
// A missing file at the default path is not an error; defaults and env are used.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if path == "" {
		path = DefaultConfigPath
	}

	raw := rawAppConfig{AppConfig: defaultAppConfig()}

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && (!explicit || path == DefaultConfigPath):
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := raw.AppConfig
	applyRawAliases(&cfg, raw)
	applyEnv(&cfg, os.LookupEnv)
	cfg = normalize(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Driver: defaultDBDriver,
		},
		Auth: AuthConfig{
			Timeout: defaultAuthTimeout,
		},
		AI: AIConfig{
			MaxInputChars:   defaultMaxInputChars,
			MaxOutputTokens: defaultMaxOutputTokens,
			Timeout:         defaultAITimeout,
		},
		YouTube: YouTubeConfig{
			Languages: append([]string(nil), defaultTranscriptLanguages...),
		},
		Upload: UploadConfig{
			MaxPDFMB: defaultMaxPDFMB,
		},
		Storage: StorageConfig{
			S3: S3Config{KeyPrefix: defaultS3KeyPrefix},
		},
		RateLimit: RateLimitConfig{
			Enable: true,
			Max:    defaultRateLimitMax,
			Window: defaultRateLimitWindow,
		},
		Metrics: MetricsConfig{
			Enable: true,
		},
	}
}

func applyRawAliases(cfg *AppConfig, raw rawAppConfig) {
	if v := strings.TrimSpace(raw.DatabaseURL); v != "" {
		cfg.Database.DSN = v
	}
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		cfg.Redis.URL = v
	}
	if v := strings.TrimSpace(raw.NodeEnv); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}
	if raw.CORSAllowedOrigins != nil && cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = raw.CORSAllowedOrigins
	}
}

// applyEnv overlays well-known environment variables. lookup is os.LookupEnv
// outside of tests.
func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) {
	get := func(key string) string {
		v, ok := lookup(key)
		if !ok {
			return ""
		}
		return strings.TrimSpace(v)
	}

	if v := get("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := get("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := get("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
		cfg.Database.Driver = ""
	}
	if v := get("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := get("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := get("SUPABASE_URL"); v != "" {
		cfg.Auth.SupabaseURL = v
	}
	if v := get("SUPABASE_ANON_KEY"); v != "" {
		cfg.Auth.AnonKey = v
	}
	if v := get("SUPABASE_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}

	apiKey := get("OPENAI_API_KEY")
	if apiKey != "" && !hasEnabledProvider(cfg.AI.Providers) {
		cfg.AI.Providers = append(cfg.AI.Providers, AIProvider{
			ID:           "openai",
			Name:         "OpenAI",
			Type:         "openai",
			APIKey:       apiKey,
			Endpoint:     get("OPENAI_BASE_URL"),
			DefaultModel: defaultAIModel,
			Enabled:      true,
		})
	}
	if v := get("AI_MODEL"); v != "" {
		for i := range cfg.AI.Providers {
			cfg.AI.Providers[i].DefaultModel = v
		}
	}
}

// Validate reports the first invalid setting.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Upload.MaxPDFMB < 1 {
		return fmt.Errorf("invalid upload.max_pdf_mb %d, expected >= 1", c.Upload.MaxPDFMB)
	}
	if c.RateLimit.Enable && (c.RateLimit.Max < 1 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate_limit: max must be >= 1 and window > 0")
	}
	if c.AI.MaxOutputTokens < 1 {
		return fmt.Errorf("invalid ai.max_output_tokens %d", c.AI.MaxOutputTokens)
	}
	if c.Storage.S3.Enable && (c.Storage.S3.Bucket == "" || c.Storage.S3.Region == "") {
		return fmt.Errorf("incomplete storage.s3 config: bucket and region are required")
	}
	return nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// LogDir returns the absolute native log directory.
func (c *AppConfig) LogDir() string {
	return ResolveRuntimePath(c.Paths.Logs, "logs")
}

// MaxPDFBytes returns the upload limit in bytes.
func (c *AppConfig) MaxPDFBytes() int64 {
	return int64(c.Upload.MaxPDFMB) * 1024 * 1024
}

// AuthTimeout returns the identity provider request timeout.
func (c *AppConfig) AuthTimeout() time.Duration {
	if c.Auth.Timeout <= 0 {
		return defaultAuthTimeout
	}
	return c.Auth.Timeout
}

func hasEnabledProvider(providers []AIProvider) bool {
	for _, p := range providers {
		if p.Enabled {
			return true
		}
	}
	return false
}
