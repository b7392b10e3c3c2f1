package config

import (
	"github.com/TK2F/promptvault/internal/archive"
	"github.com/TK2F/promptvault/internal/repositories/kv"
)

// Config holds runtime settings for the promptvault CLI.
type Config struct {
	Backend    string
	DBPath     string
	FilePath   string
	QuotaBytes int64
	LogLevel   string
	ExportDir  string
	S3         archive.S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Backend = kv.BackendSQLite
	c.DBPath = "promptvault.db"
	c.FilePath = "promptvault.json"
	c.QuotaBytes = kv.DefaultSQLiteQuota
	c.LogLevel = "info"
	c.ExportDir = "exports"
	c.S3 = archive.S3Config{}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// KVOptions returns the options for opening the storage backend.
func (c *Config) KVOptions() kv.Options {
	return kv.Options{
		Backend:    c.Backend,
		DBPath:     c.DBPath,
		FilePath:   c.FilePath,
		QuotaBytes: c.QuotaBytes,
	}
}

// ArchiveOptions returns the options for opening the export sink.
func (c *Config) ArchiveOptions() archive.Options {
	return archive.Options{Dir: c.ExportDir, S3: c.S3}
}
