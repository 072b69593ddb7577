package mapping

import (
	"fmt"
	"runtime"

	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/gn"
)

// MappingConflictError is returned when two catalog entities share a
// name variant. It points to a defect in catalog data.
func MappingConflictError(variant string, obj, existing any) error {
	msg := "Cannot map <em>%s</em> to <em>%s</em>, " +
		"it is already mapped to <em>%s</em>"
	vars := []any{variant, label(obj), label(existing)}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MappingConflictError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: variant %q of %q is taken by %q",
			fn.Name(), variant, label(obj), label(existing)),
	}
}

func label(obj any) string {
	if v, ok := obj.(schema.NameSource); ok {
		return v.PrimaryName()
	}
	return fmt.Sprint(obj)
}
