// Package config loads runtime configuration for the promptvault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: .env and .env.local are loaded into the process
//     environment (existing variables win), then PROMPTVAULT_* variables are
//     read (see parseEnv).
//  3. Optional JSON file selected via flags: -c or -config (see parseJson).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite database
//	-b string   storage backend: sqlite or file
//	-l string   log level: debug, info, warn or error
//	-e string   directory exports are written to
//
// # JSON schema
//
// Every key is optional; absent keys keep the value from earlier sources:
//
//	{
//	  "backend": "sqlite",
//	  "db_path": "promptvault.db",
//	  "file_path": "promptvault.json",
//	  "quota_bytes": 10485760,
//	  "log_level": "info",
//	  "export_dir": "exports",
//	  "s3": {"bucket": "vault-exports", "region": "eu-west-1", "endpoint": "http://localhost:9000", "path_style": true}
//	}
//
// Malformed JSON, flags or numeric environment values panic; the caller
// recovers if it wants to.
package config
