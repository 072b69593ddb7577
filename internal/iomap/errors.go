package iomap

import (
	"fmt"
	"runtime"

	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/gn"
)

// MappingKindError is returned for a kind that has no mappers.
func MappingKindError(kind schema.Kind) error {
	msg := `Unknown mapping kind <em>%s</em>

<em>How to fix:</em>
  Use one of <em>style</em>, <em>fermentable</em>, <em>hop</em>, <em>yeast</em>`

	vars := []any{kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MappingKindError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown kind %q", fn.Name(), kind),
	}
}

// MappingBatchError is returned when a batch of matches cannot be
// saved. Earlier batches stay committed.
func MappingBatchError(kind schema.Kind, batch int, err error) error {
	msg := `Cannot save batch <em>%d</em> of <em>%s</em> mappings

<em>Possible causes:</em>
  1. Database connection was lost
  2. Catalog was changed during the mapping run

<em>How to fix:</em>
  Run the mapping again, rows that are already mapped are skipped`

	vars := []any{batch, kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MappingBatchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: batch %d of %s: %w", fn.Name(), batch, kind, err),
	}
}
