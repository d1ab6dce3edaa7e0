// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Call LoadEnvFile first to pick up a local .env file:

	_ = cliparse.LoadEnvFile(".env")

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (default for sqlite: file:group-swipe.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - LogLevel, LogFormat: slog handler settings
  - FetchConcurrency: Max in-flight group/session fetches (default: 8)
  - PageSize: Default results page size (default: 20)
  - StrictIDs: Only accept session-scoped activity references

# CLI Flags

	-p                  Server port
	-d                  Database URL
	-t                  Database type
	--log-level         debug, info, warn, error
	--log-format        text or json
	--fetch-concurrency Max concurrent fetches
	--page-size         Default page size
	--strict-ids        Strict activity ID matching

# Environment Variables

Flags fall back to environment variables:

	PORT                → -p
	DATABASE_URL        → -d
	DATABASE_TYPE       → -t
	LOG_LEVEL           → --log-level
	LOG_FORMAT          → --log-format
	FETCH_CONCURRENCY   → --fetch-concurrency
	PAGE_SIZE           → --page-size
	STRICT_ACTIVITY_IDS → --strict-ids

CLI flags take precedence over environment variables, and environment
variables take precedence over the .env file.

# Validation

ParseFlags returns an error if:

  - a numeric variable does not parse
  - the database type is not sqlite or postgres
  - postgres is selected without a DATABASE_URL
  - fetch concurrency or page size is below 1
*/
package cliparse
