package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDriver sets the database driver.
// Valid values: "postgres", "sqlite".
func OptDatabaseDriver(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Database.Driver", s) {
			c.Database.Driver = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabasePath sets the SQLite database file.
func OptDatabasePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Path", s) {
			c.Database.Path = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows written per mapping
// transaction.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptImportReplace sets whether an existing recipe is replaced on import.
// Runtime-only field - not in ToOptions().
func OptImportReplace(b bool) Option {
	return func(c *Config) {
		c.Import.Replace = b
	}
}

// OptImportFormat forces a recipe format. Empty string restores format
// detection.
// Runtime-only field - not in ToOptions().
func OptImportFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if s == "" {
			c.Import.Format = ""
			return
		}
		if isValidEnum("Import.Format", s) {
			c.Import.Format = s
		}
	}
}

// OptMappingAll sets whether already mapped rows are mapped again.
// Runtime-only field - not in ToOptions().
func OptMappingAll(b bool) Option {
	return func(c *Config) {
		c.Mapping.All = b
	}
}

// OptMappingFuzzyRecipeName enables substring matching of recipe names
// to styles.
func OptMappingFuzzyRecipeName(b bool) Option {
	return func(c *Config) {
		c.Mapping.FuzzyRecipeName = b
	}
}

// OptStyleLimitsEnabled turns the style limits policy on or off.
func OptStyleLimitsEnabled(b bool) Option {
	return func(c *Config) {
		c.Mapping.StyleLimits.Enabled = b
	}
}

// OptStyleLimitsLower sets the multiplier of range minimums. It must be
// within (0, 1].
func OptStyleLimitsLower(f float64) Option {
	return func(c *Config) {
		if isValidFactor("Style Limits Lower", f, 0, 1) {
			c.Mapping.StyleLimits.Lower = f
		}
	}
}

// OptStyleLimitsUpper sets the multiplier of range maximums. It must be
// within [1, 10].
func OptStyleLimitsUpper(f float64) Option {
	return func(c *Config) {
		if isValidFactor("Style Limits Upper", f, 1, 10) {
			c.Mapping.StyleLimits.Upper = f
		}
	}
}

// OptStyleLimitsColorCeiling sets the SRM maximum that makes color
// unbounded.
func OptStyleLimitsColorCeiling(f float64) Option {
	return func(c *Config) {
		if isValidFactor("Style Limits Color Ceiling", f, 1, 1000) {
			c.Mapping.StyleLimits.ColorCeiling = f
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, data, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
