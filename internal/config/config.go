package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Auth      AuthConfig
	S3        S3Config
	Upload    UploadConfig
	AI        AIConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// IsDevelopment reports whether the server runs in the development environment.
func (s ServerConfig) IsDevelopment() bool {
	return s.Environment == "development"
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds bearer token verification settings.
type AuthConfig struct {
	// Provider is "firebase" (Google-signed ID tokens) or "local" (HS256 dev tokens).
	Provider          string        `mapstructure:"provider"`
	FirebaseProjectID string        `mapstructure:"firebase_project_id"`
	MockEnabled       bool          `mapstructure:"mock_enabled"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	JWTIssuer         string        `mapstructure:"jwt_issuer"`
	TokenExpiry       time.Duration `mapstructure:"token_expiry"`
}

// S3Config holds settings for the PDF archive bucket. An empty bucket disables archiving.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// UploadConfig holds PDF upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (u UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB << 20
}

// AIProviderConfig holds settings for a single text generation provider.
type AIProviderConfig struct {
	Provider    string  `mapstructure:"provider"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

// AIConfig holds recommendation generation settings.
type AIConfig struct {
	Primary     AIProviderConfig `mapstructure:"primary"`
	Secondary   AIProviderConfig `mapstructure:"secondary"`
	TimeoutSecs int              `mapstructure:"timeout_secs"`
	HistorySize int              `mapstructure:"history_size"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (a *AIConfig) SecondaryConfig() *AIProviderConfig {
	if a.Secondary.Provider != "" {
		return &a.Secondary
	}
	return nil
}

// Timeout returns the per-request generation timeout.
func (a *AIConfig) Timeout() time.Duration {
	if a.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(a.TimeoutSecs) * time.Second
}

// RateLimitConfig holds per-user request limits.
type RateLimitConfig struct {
	RecommendationsPerMinute int `mapstructure:"recommendations_per_minute"`
	RecommendationsBurst     int `mapstructure:"recommendations_burst"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from environment variables with the BEACH_ prefix.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("BEACH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "beach")
	v.SetDefault("db.password", "beach_secret")
	v.SetDefault("db.name", "beachtrack")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Auth defaults
	v.SetDefault("auth.provider", "local")
	v.SetDefault("auth.firebase_project_id", "")
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.jwt_issuer", "beachtrack")
	v.SetDefault("auth.token_expiry", "24h")

	// S3 defaults (archiving disabled until a bucket is set)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 900)

	v.SetDefault("upload.max_file_size_mb", 10)

	// AI defaults
	v.SetDefault("ai.primary.provider", "gemini")
	v.SetDefault("ai.primary.api_key", "")
	v.SetDefault("ai.primary.model", "gemini-2.0-flash")
	v.SetDefault("ai.primary.temperature", 0.4)
	v.SetDefault("ai.secondary.provider", "")
	v.SetDefault("ai.secondary.api_key", "")
	v.SetDefault("ai.secondary.model", "")
	v.SetDefault("ai.secondary.temperature", 0.4)
	v.SetDefault("ai.timeout_secs", 30)
	v.SetDefault("ai.history_size", 20)

	v.SetDefault("ratelimit.recommendations_per_minute", 6)
	v.SetDefault("ratelimit.recommendations_burst", 2)

	v.SetDefault("log.level", "info")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                          "BEACH_SERVER_PORT",
		"server.read_timeout":                  "BEACH_SERVER_READ_TIMEOUT",
		"server.write_timeout":                 "BEACH_SERVER_WRITE_TIMEOUT",
		"server.environment":                   "BEACH_SERVER_ENVIRONMENT",
		"db.host":                              "BEACH_DB_HOST",
		"db.port":                              "BEACH_DB_PORT",
		"db.user":                              "BEACH_DB_USER",
		"db.password":                          "BEACH_DB_PASSWORD",
		"db.name":                              "BEACH_DB_NAME",
		"db.sslmode":                           "BEACH_DB_SSLMODE",
		"db.max_open":                          "BEACH_DB_MAX_OPEN",
		"db.max_idle":                          "BEACH_DB_MAX_IDLE",
		"auth.provider":                        "BEACH_AUTH_PROVIDER",
		"auth.firebase_project_id":             "BEACH_AUTH_FIREBASE_PROJECT_ID",
		"auth.mock_enabled":                    "BEACH_AUTH_MOCK_ENABLED",
		"auth.jwt_secret":                      "BEACH_AUTH_JWT_SECRET",
		"auth.jwt_issuer":                      "BEACH_AUTH_JWT_ISSUER",
		"auth.token_expiry":                    "BEACH_AUTH_TOKEN_EXPIRY",
		"s3.region":                            "BEACH_S3_REGION",
		"s3.bucket":                            "BEACH_S3_BUCKET",
		"s3.endpoint":                          "BEACH_S3_ENDPOINT",
		"s3.access_key":                        "BEACH_S3_ACCESS_KEY",
		"s3.secret_key":                        "BEACH_S3_SECRET_KEY",
		"s3.presign_expiry":                    "BEACH_S3_PRESIGN_EXPIRY",
		"upload.max_file_size_mb":              "BEACH_UPLOAD_MAX_FILE_SIZE_MB",
		"ai.primary.provider":                  "BEACH_AI_PRIMARY_PROVIDER",
		"ai.primary.api_key":                   "BEACH_AI_PRIMARY_API_KEY",
		"ai.primary.model":                     "BEACH_AI_PRIMARY_MODEL",
		"ai.primary.temperature":               "BEACH_AI_PRIMARY_TEMPERATURE",
		"ai.secondary.provider":                "BEACH_AI_SECONDARY_PROVIDER",
		"ai.secondary.api_key":                 "BEACH_AI_SECONDARY_API_KEY",
		"ai.secondary.model":                   "BEACH_AI_SECONDARY_MODEL",
		"ai.secondary.temperature":             "BEACH_AI_SECONDARY_TEMPERATURE",
		"ai.timeout_secs":                      "BEACH_AI_TIMEOUT_SECS",
		"ai.history_size":                      "BEACH_AI_HISTORY_SIZE",
		"ratelimit.recommendations_per_minute": "BEACH_RATELIMIT_RECOMMENDATIONS_PER_MINUTE",
		"ratelimit.recommendations_burst":      "BEACH_RATELIMIT_RECOMMENDATIONS_BURST",
		"log.level":                            "BEACH_LOG_LEVEL",
		"cors.allowed_origins":                 "BEACH_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set a PORT env var. Use it if BEACH_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BEACH_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}

	// Mock tokens default to on in development only.
	mockEnabled := cfg.Server.IsDevelopment()
	if v.IsSet("auth.mock_enabled") {
		mockEnabled = v.GetBool("auth.mock_enabled")
	}
	cfg.Auth = AuthConfig{
		Provider:          v.GetString("auth.provider"),
		FirebaseProjectID: v.GetString("auth.firebase_project_id"),
		MockEnabled:       mockEnabled,
		JWTSecret:         v.GetString("auth.jwt_secret"),
		JWTIssuer:         v.GetString("auth.jwt_issuer"),
		TokenExpiry:       v.GetDuration("auth.token_expiry"),
	}

	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}

	cfg.AI = AIConfig{
		Primary: AIProviderConfig{
			Provider:    v.GetString("ai.primary.provider"),
			APIKey:      v.GetString("ai.primary.api_key"),
			Model:       v.GetString("ai.primary.model"),
			Temperature: v.GetFloat64("ai.primary.temperature"),
		},
		Secondary: AIProviderConfig{
			Provider:    v.GetString("ai.secondary.provider"),
			APIKey:      v.GetString("ai.secondary.api_key"),
			Model:       v.GetString("ai.secondary.model"),
			Temperature: v.GetFloat64("ai.secondary.temperature"),
		},
		TimeoutSecs: v.GetInt("ai.timeout_secs"),
		HistorySize: v.GetInt("ai.history_size"),
	}
	// GEMINI_API_KEY is the conventional variable for the Gemini SDK.
	if cfg.AI.Primary.APIKey == "" && cfg.AI.Primary.Provider == "gemini" {
		cfg.AI.Primary.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	cfg.RateLimit = RateLimitConfig{
		RecommendationsPerMinute: v.GetInt("ratelimit.recommendations_per_minute"),
		RecommendationsBurst:     v.GetInt("ratelimit.recommendations_burst"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	if cfg.Auth.MockEnabled && !cfg.Server.IsDevelopment() {
		log.Printf("config.Load: WARNING mock auth tokens are enabled outside development")
	}

	return cfg, nil
}
