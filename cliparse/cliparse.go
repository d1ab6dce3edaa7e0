// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

const (
	DefaultPort             = 3318
	DefaultSQLiteURL        = "file:group-swipe.db"
	DefaultFetchConcurrency = 8
	DefaultPageSize         = 20
)

type Config struct {
	Port             int
	DatabaseURL      string
	DatabaseType     string
	LogLevel         string
	LogFormat        string
	FetchConcurrency int
	PageSize         int
	StrictIDs        bool
}

// LoadEnvFile loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags validates flags and fills gaps from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("group-swipe", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	// Results
	fs.IntVar(&cfg.FetchConcurrency, "fetch-concurrency", 0, "Maximum concurrent group/session fetches")
	fs.IntVar(&cfg.PageSize, "page-size", 0, "Default results page size")
	strictIDs := fs.Bool("strict-ids", false, "Only match session-scoped activity references")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	var err error
	if cfg.Port, err = intFromEnv(cfg.Port, "PORT", DefaultPort); err != nil {
		return Config{}, err
	}
	if cfg.FetchConcurrency, err = intFromEnv(cfg.FetchConcurrency, "FETCH_CONCURRENCY", DefaultFetchConcurrency); err != nil {
		return Config{}, err
	}
	if cfg.PageSize, err = intFromEnv(cfg.PageSize, "PAGE_SIZE", DefaultPageSize); err != nil {
		return Config{}, err
	}

	cfg.StrictIDs = *strictIDs
	if !cfg.StrictIDs {
		if v := os.Getenv("STRICT_ACTIVITY_IDS"); v != "" {
			strict, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid STRICT_ACTIVITY_IDS env variable")
			}
			cfg.StrictIDs = strict
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("database type must be %s or %s, got %q", DatabaseSQLite, DatabasePostgres, cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteURL
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
	}

	if cfg.FetchConcurrency < 1 {
		return Config{}, errors.New("fetch concurrency must be at least 1")
	}
	if cfg.PageSize < 1 {
		return Config{}, errors.New("page size must be at least 1")
	}

	return cfg, nil
}

// intFromEnv keeps a flag value when set, otherwise reads key or uses def.
func intFromEnv(current int, key string, def int) (int, error) {
	if current != 0 {
		return current, nil
	}
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}
