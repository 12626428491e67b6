// Package config loads runtime configuration for the BookTracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-D string   directory holding the local database
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "data_dir": "data",
//	  "request_timeout": "10s"
//	}
package config
