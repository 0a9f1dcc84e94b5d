package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_USER", "forkfeed")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "jwt-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "forkfeed", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Empty(t, cfg.AllowedOrigins)

	assert.Equal(t,
		"host=localhost port=5432 user=forkfeed password=secret dbname=forkfeed sslmode=disable",
		cfg.DSN())
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfigS3RequiresRegion(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("S3_BUCKET_NAME", "forkfeed-images")
	t.Setenv("AWS_REGION", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AWS_REGION")

	t.Setenv("AWS_REGION", "us-east-1")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "forkfeed-images", cfg.S3Bucket)
}

func TestLoadConfigParsesLists(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://forkfeed.example, https://admin.forkfeed.example ,")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://forkfeed.example", "https://admin.forkfeed.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 3, cfg.RedisDB)

	t.Setenv("REDIS_DB", "not-a-number")
	_, err = LoadConfig()
	assert.Error(t, err)
}
