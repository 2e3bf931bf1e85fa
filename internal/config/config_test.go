package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beachtrack/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("BEACH_SERVER_PORT", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, int64(10), cfg.Upload.MaxFileSizeMB)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes())
	assert.Equal(t, "gemini", cfg.AI.Primary.Provider)
	assert.Nil(t, cfg.AI.SecondaryConfig())
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout())
	assert.True(t, cfg.Auth.MockEnabled)
	assert.Empty(t, cfg.S3.Bucket)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BEACH_SERVER_PORT", ":9999")
	t.Setenv("BEACH_SERVER_ENVIRONMENT", "production")
	t.Setenv("BEACH_UPLOAD_MAX_FILE_SIZE_MB", "4")
	t.Setenv("BEACH_AI_SECONDARY_PROVIDER", "gemini")
	t.Setenv("BEACH_AI_SECONDARY_MODEL", "gemini-1.5-flash")
	t.Setenv("BEACH_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Port)
	assert.False(t, cfg.Auth.MockEnabled)
	assert.Equal(t, int64(4<<20), cfg.Upload.MaxBytes())
	require.NotNil(t, cfg.AI.SecondaryConfig())
	assert.Equal(t, "gemini-1.5-flash", cfg.AI.SecondaryConfig().Model)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPort(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BEACH_SERVER_PORT", "")
	t.Setenv("PORT", "3001")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Server.Port)
}

func TestLoad_MockAuthExplicit(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BEACH_SERVER_ENVIRONMENT", "production")
	t.Setenv("BEACH_AUTH_MOCK_ENABLED", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Auth.MockEnabled)
}

func TestLoad_GeminiAPIKeyFallback(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("BEACH_AI_PRIMARY_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "from-sdk-env")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "from-sdk-env", cfg.AI.Primary.APIKey)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}

	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", db.DSN())
}

func TestAIConfig_Timeout(t *testing.T) {
	assert.Equal(t, 5*time.Second, (&config.AIConfig{TimeoutSecs: 5}).Timeout())
	assert.Equal(t, 30*time.Second, (&config.AIConfig{}).Timeout())
}
