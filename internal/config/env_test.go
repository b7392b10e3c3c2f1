package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Variables(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PROMPTVAULT_BACKEND", "file")
	t.Setenv("PROMPTVAULT_QUOTA_BYTES", "2048")
	t.Setenv("PROMPTVAULT_S3_BUCKET", "bkt")
	t.Setenv("PROMPTVAULT_S3_PATH_STYLE", "true")
	t.Setenv("PROMPTVAULT_LOG_LEVEL", "")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "file", cfg.Backend)
	assert.Equal(t, int64(2048), cfg.QuotaBytes)
	assert.Equal(t, "bkt", cfg.S3.Bucket)
	assert.True(t, cfg.S3.PathStyle)
	assert.Equal(t, "info", cfg.LogLevel, "empty variables are ignored")
}

func TestParseEnv_DotEnvFiles(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PROMPTVAULT_EXPORT_DIR=from-dotenv\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("PROMPTVAULT_EXPORT_DIR=from-local\nPROMPTVAULT_S3_REGION=eu-north-1\n"), 0o600))
	// t.Setenv registers cleanup for variables godotenv is about to set.
	t.Setenv("PROMPTVAULT_EXPORT_DIR", "")
	t.Setenv("PROMPTVAULT_S3_REGION", "")
	require.NoError(t, os.Unsetenv("PROMPTVAULT_EXPORT_DIR"))
	require.NoError(t, os.Unsetenv("PROMPTVAULT_S3_REGION"))

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "from-dotenv", cfg.ExportDir)
	assert.Equal(t, "eu-north-1", cfg.S3.Region)
}

func TestParseEnv_BadNumberPanics(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PROMPTVAULT_QUOTA_BYTES", "lots")
	require.Panics(t, func() { parseEnv(&Config{}) })
}
