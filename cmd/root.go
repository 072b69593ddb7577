/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/brewdb/internal/iofs"
	"github.com/gnames/brewdb/internal/iologger"
	"github.com/gnames/brewdb/internal/iostore"
	brewdb "github.com/gnames/brewdb/pkg"
	"github.com/gnames/brewdb/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir   string
	opts      []config.Option
	cfg       *config.Config
	logCloser io.Closer
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", brewdb.Version, brewdb.Build),
		Use:     "brewdb",
		Short:   "BrewDB imports brewing recipes and maps their ingredients",
		Long: `BrewDB imports brewing recipes from BeerXML, BeerSmith and MMuM
files into a database and links their hops, fermentables, yeasts and
styles to a curated catalog.

Typical workflow:
  brewdb create
  brewdb catalog load catalog.yaml
  brewdb import-dir ~/recipes/mmum mmum
  brewdb map all

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (BREWDB_*)
  3. Config file (~/.config/brewdb/config.yaml)
  4. Defaults

The database is SQLite in ~/.local/share/brewdb unless
database.driver is set to "postgres".`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "brewdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for brewdb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getCatalogCmd(),
		getImportCmd(),
		getImportDirCmd(),
		getMapCmd(),
		getUnsetCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	closeLog()
	logCloser, err = iologger.Init(config.LogDir(homeDir), cfg.Log, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

func closeLog() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

// openStore connects to the configured database.
func openStore(ctx context.Context) (*iostore.DB, error) {
	db, err := iostore.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if db.Driver() == "postgres" {
		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	} else {
		gn.Info("Using database <em>%s</em>", cfg.SQLitePath())
	}
	return db, nil
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initDefaults(v)
	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, ConfigFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, ConfigFileError(cfgPath, err)
	}

	return &res, nil
}

// initDefaults keeps default values for keys missing from an edited
// config file.
func initDefaults(v *viper.Viper) {
	def := config.New()
	v.SetDefault("database.driver", def.Database.Driver)
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("database.batch_size", def.Database.BatchSize)
	v.SetDefault("mapping.style_limits.enabled", def.Mapping.StyleLimits.Enabled)
	v.SetDefault("mapping.style_limits.lower", def.Mapping.StyleLimits.Lower)
	v.SetDefault("mapping.style_limits.upper", def.Mapping.StyleLimits.Upper)
	v.SetDefault("mapping.style_limits.color_ceiling",
		def.Mapping.StyleLimits.ColorCeiling)
}

func initEnvVars(v *viper.Viper) {
	// Environment variables are bound one by one, so it is clear which
	// of them are allowed. They match the fields of config.ToOptions().
	v.SetEnvPrefix("BREWDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "BREWDB_DATABASE_DRIVER")
	v.BindEnv("database.host", "BREWDB_DATABASE_HOST")
	v.BindEnv("database.port", "BREWDB_DATABASE_PORT")
	v.BindEnv("database.user", "BREWDB_DATABASE_USER")
	v.BindEnv("database.password", "BREWDB_DATABASE_PASSWORD")
	v.BindEnv("database.database", "BREWDB_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "BREWDB_DATABASE_SSL_MODE")
	v.BindEnv("database.path", "BREWDB_DATABASE_PATH")
	v.BindEnv("database.batch_size", "BREWDB_DATABASE_BATCH_SIZE")

	// Mapping configuration
	v.BindEnv("mapping.fuzzy_recipe_name", "BREWDB_MAPPING_FUZZY_RECIPE_NAME")
	v.BindEnv("mapping.style_limits.enabled", "BREWDB_MAPPING_STYLE_LIMITS_ENABLED")
	v.BindEnv("mapping.style_limits.lower", "BREWDB_MAPPING_STYLE_LIMITS_LOWER")
	v.BindEnv("mapping.style_limits.upper", "BREWDB_MAPPING_STYLE_LIMITS_UPPER")
	v.BindEnv("mapping.style_limits.color_ceiling",
		"BREWDB_MAPPING_STYLE_LIMITS_COLOR_CEILING")

	// Log configuration
	v.BindEnv("log.level", "BREWDB_LOG_LEVEL")
	v.BindEnv("log.format", "BREWDB_LOG_FORMAT")
	v.BindEnv("log.destination", "BREWDB_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "BREWDB_JOBS_NUMBER")
}
