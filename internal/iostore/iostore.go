// Package iostore implements store interfaces with GORM. This is an
// impure I/O package; PostgreSQL is reached through a pgx pool and
// SQLite through the pure Go modernc driver.
package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"

	"github.com/gnames/brewdb/pkg/config"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/brewdb/pkg/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

// DB is a connected database. It implements store.Store and
// store.SchemaManager.
type DB struct {
	session

	driver string
	sqlDB  *sql.DB
	pool   *pgxpool.Pool
}

var (
	_ store.Store         = (*DB)(nil)
	_ store.SchemaManager = (*DB)(nil)
)

// Open connects to the database described by the config.
func Open(ctx context.Context, cfg *config.Config) (*DB, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return openPostgres(ctx, &cfg.Database)
	case "sqlite":
		return openSQLite(ctx, cfg.SQLitePath())
	default:
		return nil, UnknownDriverError(cfg.Database.Driver)
	}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

func openPostgres(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		gormConfig(),
	)
	if err != nil {
		sqlDB.Close()
		pool.Close()
		return nil, GORMConnectionError("postgres", err)
	}

	slog.Info("Connected to PostgreSQL",
		"host", cfg.Host, "database", cfg.Database)
	return &DB{
		session: session{db: gormDB},
		driver:  "postgres",
		sqlDB:   sqlDB,
		pool:    pool,
	}, nil
}

func openSQLite(ctx context.Context, path string) (*DB, error) {
	gormDB, err := gorm.Open(
		sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: path}),
		gormConfig(),
	)
	if err != nil {
		return nil, GORMConnectionError("sqlite", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, GORMConnectionError("sqlite", err)
	}
	// SQLite allows one writer; an in-memory database also exists only
	// within its connection.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, GORMConnectionError("sqlite", err)
	}

	slog.Info("Opened SQLite database", "path", path)
	return &DB{
		session: session{db: gormDB},
		driver:  "sqlite",
		sqlDB:   sqlDB,
	}, nil
}

// Driver returns the name of the database driver.
func (d *DB) Driver() string {
	return d.driver
}

// Close releases all database connections.
func (d *DB) Close() error {
	var err error
	if d.sqlDB != nil {
		err = d.sqlDB.Close()
	}
	if d.pool != nil {
		d.pool.Close()
	}
	return err
}

// Transaction runs fn inside a database transaction.
func (d *DB) Transaction(
	ctx context.Context,
	fn func(tx store.Session) error,
) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&session{db: tx})
	})
}

// Migrate creates or updates all tables with GORM AutoMigrate.
func (d *DB) Migrate(ctx context.Context) error {
	if err := schema.Migrate(d.db.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}
	return nil
}

// HasTables checks if any BrewDB table exists.
func (d *DB) HasTables(ctx context.Context) (bool, error) {
	m := d.db.WithContext(ctx).Migrator()
	for _, v := range schema.TableNames() {
		if m.HasTable(v) {
			return true, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return false, TableCheckError(err)
	}
	return false, nil
}

// DropAll drops BrewDB tables, dependent tables first.
func (d *DB) DropAll(ctx context.Context) error {
	m := d.db.WithContext(ctx).Migrator()
	for _, v := range slices.Backward(schema.TableNames()) {
		if err := m.DropTable(v); err != nil {
			return DropTableError(v, err)
		}
	}
	return nil
}
