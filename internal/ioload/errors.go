package ioload

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/gn"
)

// InvalidUIDError is returned for a recipe UID without a source prefix.
func InvalidUIDError(uid string) error {
	msg := `Recipe UID <em>%s</em> is invalid

<em>How to fix:</em>
  Use the form <em>source:source_id</em>, for example <em>mmum:1234</em>`

	vars := []any{uid}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InvalidUIDError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: uid %q has no source prefix", fn.Name(), uid),
	}
}

// FieldValidationError is returned when unsetting invalid fields of a
// record does not make it valid.
func FieldValidationError(record string, vs []schema.Violation) error {
	msg := "Cannot repair invalid fields of <em>%s</em>: %s"
	list := make([]string, len(vs))
	for i, v := range vs {
		list[i] = v.String()
	}
	details := strings.Join(list, "; ")
	vars := []any{record, details}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FieldValidationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: validation of %s did not converge: %s",
			fn.Name(), record, details),
	}
}

// RecipeImportError is returned when a recipe file cannot be imported.
func RecipeImportError(path string, err error) error {
	msg := "Cannot import recipe from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RecipeImportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: import of %s failed: %w", fn.Name(), path, err),
	}
}

// ReadFileError is returned when a recipe file or directory cannot be
// read.
func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}
