package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/gn"
)

// ConnectionError is returned when a PostgreSQL pool cannot be created
// or does not answer.
func ConnectionError(host string, port int, database, user string, err error) error {
	msg := `Cannot connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify the database <em>%s</em> exists and is accessible
     by user <em>%s</em>
  3. Set <em>database.driver: sqlite</em> in config to use a local file`

	vars := []any{host, port, database, user}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s:%d/%s: %w",
			fn.Name(), host, port, database, err),
	}
}

// UnknownDriverError is returned for an unsupported database driver.
func UnknownDriverError(driver string) error {
	msg := "Database driver <em>%s</em> is not supported"
	vars := []any{driver}
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown database driver %q", driver),
	}
}

// GORMConnectionError is returned when GORM cannot use an opened
// connection.
func GORMConnectionError(driver string, err error) error {
	msg := `Cannot open <em>%s</em> database with GORM

<em>Possible causes:</em>
  - SQLite file is not writable
  - Connection pool was closed

<em>How to fix:</em>
  1. Check permissions of the data directory
  2. Check database configuration`

	vars := []any{driver}
	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to open %s with GORM: %w", driver, err),
	}
}

// MigrateSchemaError is returned when tables cannot be created or
// updated.
func MigrateSchemaError(err error) error {
	msg := `Cannot migrate database schema

<em>Possible causes:</em>
  - Insufficient database permissions
  - Incompatible data in existing tables

<em>How to fix:</em>
  1. Check database user has CREATE and ALTER permissions
  2. Recreate the database with <em>brewdb create --force</em>`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}

// TableCheckError is returned when existence of tables cannot be
// checked.
func TableCheckError(err error) error {
	msg := "Cannot verify database state"
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}

// QueryError is returned when reading data fails.
func QueryError(what string, err error) error {
	msg := "Cannot read <em>%s</em> from database"
	vars := []any{what}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: failed to read %s: %w", fn.Name(), what, err),
	}
}

// WriteError is returned when writing data fails.
func WriteError(what string, err error) error {
	msg := "Cannot write <em>%s</em> to database"
	vars := []any{what}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: failed to write %s: %w", fn.Name(), what, err),
	}
}

// RecipeNotFoundError is returned when a recipe does not exist.
func RecipeNotFoundError(uid string, err error) error {
	msg := "Recipe <em>%s</em> not found"
	vars := []any{uid}
	return &gn.Error{
		Code: errcode.RecipeNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("recipe %s not found: %w", uid, err),
	}
}
