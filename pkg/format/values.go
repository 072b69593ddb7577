package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/gnames/brewdb/pkg/normalize"
)

// Float parses a trimmed number. Empty or invalid text gives nil.
func Float(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Int parses a number and rounds it to the nearest integer.
func Int(s string) *int {
	f := Float(s)
	if f == nil {
		return nil
	}
	i := int(math.Round(*f))
	return &i
}

// String returns trimmed text or nil if it is empty.
func String(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Kind returns cleaned ingredient text or nil if it is empty.
func Kind(s string) *string {
	return String(normalize.Kind(s))
}

// Positive returns f if it is greater than zero.
func Positive(f *float64) *float64 {
	if f == nil || *f <= 0 {
		return nil
	}
	return f
}

// Scale multiplies a value that might be absent.
func Scale(f *float64, factor float64) *float64 {
	if f == nil {
		return nil
	}
	res := *f * factor
	return &res
}

// Convert applies a unit conversion to a value that might be absent.
func Convert(f *float64, fn func(float64) float64) *float64 {
	if f == nil {
		return nil
	}
	res := fn(*f)
	return &res
}

// Lookup maps a code to a canonical value with a table. Unknown codes
// give nil.
func Lookup(table map[string]string, code string) *string {
	code = strings.ToLower(normalize.Kind(code))
	if v, ok := table[code]; ok {
		return &v
	}
	return nil
}

// Index maps a numeric code to a canonical value by its position in a
// table. Unknown codes give nil.
func Index(table []string, code *int) *string {
	if code == nil || *code < 0 || *code >= len(table) {
		return nil
	}
	v := table[*code]
	return &v
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}
