package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const envPrefix = "PROMPTVAULT_"

// envFiles are loaded in order; a variable set by an earlier file or by the
// process environment is never overwritten.
var envFiles = []string{".env", ".env.local"}

// parseEnv overlays Config with PROMPTVAULT_* environment variables after
// loading any .env files present in the working directory. Missing files are
// ignored.
func parseEnv(cfg *Config) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	setString(&cfg.Backend, "BACKEND")
	setString(&cfg.DBPath, "DB_PATH")
	setString(&cfg.FilePath, "FILE_PATH")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.ExportDir, "EXPORT_DIR")
	setString(&cfg.S3.Bucket, "S3_BUCKET")
	setString(&cfg.S3.Region, "S3_REGION")
	setString(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.S3.Prefix, "S3_PREFIX")
	setString(&cfg.S3.AccessKeyID, "S3_ACCESS_KEY_ID")
	setString(&cfg.S3.SecretAccessKey, "S3_SECRET_ACCESS_KEY")

	if v, ok := lookup("QUOTA_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(err)
		}
		cfg.QuotaBytes = n
	}
	if v, ok := lookup("S3_PATH_STYLE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.S3.PathStyle = b
	}
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func setString(dst *string, name string) {
	if v, ok := lookup(name); ok {
		*dst = v
	}
}
