package format

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/gn"
)

// MalformedInputError is returned when a file cannot be read as a
// single recipe of the given format.
func MalformedInputError(f Format, reason string, err error) error {
	msg := "Cannot read <em>%s</em> recipe: %s"
	vars := []any{f, reason}
	if err == nil {
		err = errors.New(reason)
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MalformedInputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: malformed %s input: %w",
			fn.Name(), f, err),
	}
}

// UnknownFormatError is returned when no parser fits a file.
func UnknownFormatError(name string) error {
	msg := "Cannot detect recipe format of <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown format of %s", fn.Name(), name),
	}
}
