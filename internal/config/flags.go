package config

import (
	"flag"
	"os"

	"github.com/TK2F/promptvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   SQLite database path
//	-b string   storage backend (sqlite|file)
//	-l string   log level
//	-e string   export directory
//
// os.Args is filtered with flagx.FilterArgs so arguments meant for other
// components never reach this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b", "-l", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the SQLite database")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend: sqlite or file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "directory exports are written to")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
