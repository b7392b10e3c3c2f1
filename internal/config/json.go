package config

import (
	"encoding/json"
	"os"

	"github.com/TK2F/promptvault/internal/archive"
	"github.com/TK2F/promptvault/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It is seeded
// from the current Config so keys absent from the file keep their values.
type JsonConfig struct {
	Backend    string           `json:"backend"`
	DBPath     string           `json:"db_path"`
	FilePath   string           `json:"file_path"`
	QuotaBytes int64            `json:"quota_bytes"`
	LogLevel   string           `json:"log_level"`
	ExportDir  string           `json:"export_dir"`
	S3         archive.S3Config `json:"s3"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag it does nothing. Read and unmarshal
// errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := JsonConfig{
		Backend:    cfg.Backend,
		DBPath:     cfg.DBPath,
		FilePath:   cfg.FilePath,
		QuotaBytes: cfg.QuotaBytes,
		LogLevel:   cfg.LogLevel,
		ExportDir:  cfg.ExportDir,
		S3:         cfg.S3,
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.Backend = jc.Backend
	cfg.DBPath = jc.DBPath
	cfg.FilePath = jc.FilePath
	cfg.QuotaBytes = jc.QuotaBytes
	cfg.LogLevel = jc.LogLevel
	cfg.ExportDir = jc.ExportDir
	// Credentials never come from the file.
	jc.S3.AccessKeyID, jc.S3.SecretAccessKey = cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey
	cfg.S3 = jc.S3
}
