package config

import "time"

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Port           int             `yaml:"port"`
	Env            string          `yaml:"env"` // "development" | "production"
	AllowedOrigins []string        `yaml:"allowed_origins"`
	Timezone       string          `yaml:"timezone"`
	Database       DatabaseConfig  `yaml:"database"`
	Redis          RedisConfig     `yaml:"redis"`
	Auth           AuthConfig      `yaml:"auth"`
	AI             AIConfig        `yaml:"ai"`
	YouTube        YouTubeConfig   `yaml:"youtube"`
	Upload         UploadConfig    `yaml:"upload"`
	Storage        StorageConfig   `yaml:"storage"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
	Metrics        MetricsConfig   `yaml:"metrics"`
	Paths          PathsConfig     `yaml:"paths"`
}

type DatabaseConfig struct {
	Driver   string            `yaml:"driver"` // mysql | postgres | sqlite
	DSN      string            `yaml:"dsn"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Name     string            `yaml:"name"` // database name, or file path for sqlite
	SSLMode  string            `yaml:"sslmode"`
	Params   map[string]string `yaml:"params"`
}

type RedisConfig struct {
	URL string `yaml:"url"`
}

// AuthConfig points at the external identity provider (Supabase GoTrue).
type AuthConfig struct {
	SupabaseURL string        `yaml:"supabase_url"`
	AnonKey     string        `yaml:"anon_key"`
	JWTSecret   string        `yaml:"jwt_secret"` // when set, tokens are verified locally
	Timeout     time.Duration `yaml:"timeout"`
}

type AIConfig struct {
	Providers       []AIProvider       `yaml:"providers"`
	SummaryModel    *AIModelAssignment `yaml:"summary_model,omitempty"`
	StudyModel      *AIModelAssignment `yaml:"study_model,omitempty"`
	MaxInputChars   int                `yaml:"max_input_chars"`
	MaxOutputTokens int                `yaml:"max_output_tokens"`
	Timeout         time.Duration      `yaml:"timeout"`
}

type AIModelAssignment struct {
	ProviderID string `yaml:"provider_id"`
	Model      string `yaml:"model"`
}

type AIProvider struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Type         string `yaml:"type"` // OpenAI | OpenAI-Compatible | Anthropic | OpenRouter
	APIKey       string `yaml:"api_key"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	DefaultModel string `yaml:"default_model"`
	Enabled      bool   `yaml:"enabled"`
}

type YouTubeConfig struct {
	Languages []string      `yaml:"languages"`
	Timeout   time.Duration `yaml:"timeout"`
}

type UploadConfig struct {
	MaxPDFMB int `yaml:"max_pdf_mb"`
}

type StorageConfig struct {
	S3 S3Config `yaml:"s3"`
}

type S3Config struct {
	Enable          bool   `yaml:"enable"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyleAccess bool   `yaml:"path_style_access"`
	KeyPrefix       string `yaml:"key_prefix"`
}

type RateLimitConfig struct {
	Enable bool          `yaml:"enable"`
	Max    int           `yaml:"max"`
	Window time.Duration `yaml:"window"`
}

type MetricsConfig struct {
	Enable bool `yaml:"enable"`
}

type PathsConfig struct {
	Logs string `yaml:"logs"`
}

// rawAppConfig accepts a few legacy aliases on top of AppConfig.
type rawAppConfig struct {
	AppConfig          `yaml:",inline"`
	DatabaseURL        string   `yaml:"database_url"`
	RedisURL           string   `yaml:"redis_url"`
	NodeEnv            string   `yaml:"node_env"`
	LogDir             string   `yaml:"log_dir"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}
