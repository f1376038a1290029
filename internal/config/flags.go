package config

import (
	"flag"
	"os"

	"chatlite/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string   path or DSN of the local SQLite database
//	-l string   minimum log level (debug, info, warn, error)
//
// Note: the function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path or DSN of the local database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "minimum log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
