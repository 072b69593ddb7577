package iocatalog

import (
	"fmt"
	"runtime"

	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/gn"
)

// CatalogReadError is returned when a catalog file cannot be read or
// decoded.
func CatalogReadError(path string, err error) error {
	msg := `Cannot read catalog file

<em>Catalog file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax`

	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot load catalog %s: %w", fn.Name(), path, err),
	}
}

// CatalogSeedError is returned for an invalid catalog record.
func CatalogSeedError(record, reason string) error {
	msg := "Invalid catalog record <em>%s</em>: %s"
	vars := []any{record, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogSeedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: %s", fn.Name(), record, reason),
	}
}
