package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "brewdb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/brewdb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for the SQLite database.
// Returns ~/.local/share/brewdb by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/brewdb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/brewdb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SQLitePath resolves the SQLite database file of a config.
func (c *Config) SQLitePath() string {
	p := c.Database.Path
	if p == ":memory:" || filepath.IsAbs(p) || c.HomeDir == "" {
		return p
	}
	return filepath.Join(DataDir(c.HomeDir), p)
}
