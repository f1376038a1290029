// Package config loads runtime configuration for the chatlite CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path or DSN of the local SQLite database
//	-l string   minimum log level (debug, info, warn, error)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "database_dsn": "chatlite.db",
//	  "delivered_after": "1s",
//	  "seen_after": "3s",
//	  "delivery_step": "200ms",
//	  "log_level": "info"
//	}
//
// Note: this package does not read environment variables; use the JSON file
// or flags to configure values.
package config
