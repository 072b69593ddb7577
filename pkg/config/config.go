// Package config provides configuration management for BrewDB.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: driver, host, port, user, password, database, ssl_mode,
//     path, batch_size
//   - Mapping: fuzzy_recipe_name, style_limits
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Import.Replace, Import.Format (per-command)
//   - Mapping.All (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use BREWDB_ prefix with underscores for nesting:
//
//	BREWDB_DATABASE_DRIVER=sqlite
//	BREWDB_DATABASE_HOST=localhost
//	BREWDB_LOG_LEVEL=info
//	BREWDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete BrewDB configuration.
type Config struct {
	// Database contains connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings of import commands.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	// Mapping contains settings of the mapping processor.
	Mapping MappingConfig `mapstructure:"mapping" yaml:"mapping"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains database connection parameters.
type DatabaseConfig struct {
	// Driver is either "postgres" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// Path is the SQLite database file. A relative path is resolved
	// against the data directory. ":memory:" keeps the database in RAM.
	Path string `mapstructure:"path" yaml:"path"`

	// BatchSize is the number of rows written in one mapping
	// transaction.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ImportConfig contains settings of recipe import.
type ImportConfig struct {
	// Replace deletes an existing recipe with the same UID before import.
	// When false, an existing recipe is left untouched.
	Replace bool `mapstructure:"replace" yaml:"replace"`

	// Format forces a parser ("beersmith", "beerxml", "mmum"). Empty
	// value means the format is detected from the file.
	Format string `mapstructure:"format" yaml:"format"`
}

// MappingConfig contains settings of the mapping processor.
type MappingConfig struct {
	// All remaps rows that already have a mapping.
	All bool `mapstructure:"all" yaml:"all"`

	// FuzzyRecipeName enables substring matching of recipe names to
	// styles when neither the stated style nor the exact recipe name
	// resolves.
	FuzzyRecipeName bool `mapstructure:"fuzzy_recipe_name" yaml:"fuzzy_recipe_name"`

	// StyleLimits is the policy that rejects a matched style when the
	// recipe is out of the style's ranges.
	StyleLimits StyleLimitsConfig `mapstructure:"style_limits" yaml:"style_limits"`
}

// StyleLimitsConfig describes tolerance of style ranges.
type StyleLimitsConfig struct {
	// Enabled turns the policy on.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Lower multiplies the minimum of a range.
	Lower float64 `mapstructure:"lower" yaml:"lower"`

	// Upper multiplies the maximum of a range.
	Upper float64 `mapstructure:"upper" yaml:"upper"`

	// ColorCeiling is the SRM maximum at or above which color is
	// unbounded.
	ColorCeiling float64 `mapstructure:"color_ceiling" yaml:"color_ceiling"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Driver:    "sqlite",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "brewdb",
			SSLMode:   "disable",
			Path:      "brewdb.sqlite",
			BatchSize: 1_000,
		},
		Mapping: MappingConfig{
			StyleLimits: StyleLimitsConfig{
				Enabled:      true,
				Lower:        0.9,
				Upper:        1.1,
				ColorCeiling: 40,
			},
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
