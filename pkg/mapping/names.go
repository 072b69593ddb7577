package mapping

import (
	"strings"
	"unicode/utf8"

	"github.com/gnames/brewdb/pkg/normalize"
)

// NameObjectMap indexes objects under every variant of their names.
// It is not safe for concurrent writes, but after it is built any number
// of goroutines can read from it.
type NameObjectMap[T comparable] struct {
	variants normalize.VariantFunc

	// ignoreAmbiguous marks colliding variants as ambiguous instead of
	// failing.
	ignoreAmbiguous bool

	index map[string]*entry[T]

	// patterns keeps insertion order of variants for substring search.
	patterns []string
}

type entry[T comparable] struct {
	obj       T
	ambiguous bool
}

// NewNameObjectMap creates an empty map that expands names with
// variants.
func NewNameObjectMap[T comparable](
	variants normalize.VariantFunc,
	ignoreAmbiguous bool,
) *NameObjectMap[T] {
	return &NameObjectMap[T]{
		variants:        variants,
		ignoreAmbiguous: ignoreAmbiguous,
		index:           make(map[string]*entry[T]),
	}
}

// Add indexes obj under all variants of name. A variant that already
// points to a different object is a conflict.
func (m *NameObjectMap[T]) Add(name string, obj T) error {
	for _, v := range m.variants(name) {
		e, ok := m.index[v]
		if !ok {
			m.index[v] = &entry[T]{obj: obj}
			m.patterns = append(m.patterns, v)
			continue
		}
		if e.ambiguous || e.obj == obj {
			continue
		}
		if !m.ignoreAmbiguous {
			return MappingConflictError(v, obj, e.obj)
		}
		var zero T
		e.obj, e.ambiguous = zero, true
	}
	return nil
}

// Len returns the number of indexed variants.
func (m *NameObjectMap[T]) Len() int {
	return len(m.index)
}

// Match returns the object of the first variant of name found in the
// index. An ambiguous first hit is not a match.
func (m *NameObjectMap[T]) Match(name string) (T, bool) {
	var zero T
	for _, v := range m.variants(name) {
		if e, ok := m.index[v]; ok {
			if e.ambiguous {
				return zero, false
			}
			return e.obj, true
		}
	}
	return zero, false
}

// Candidates returns indexed patterns found inside variants of name,
// ordered by variant and then by insertion.
func (m *NameObjectMap[T]) Candidates(name string) []Candidate[T] {
	var res []Candidate[T]
	for _, v := range m.variants(name) {
		for _, p := range m.patterns {
			if strings.Contains(v, p) {
				e := m.index[p]
				res = append(res, Candidate[T]{
					Pattern:   p,
					Object:    e.obj,
					Ambiguous: e.ambiguous,
				})
			}
		}
	}
	return res
}

// Candidate is an indexed pattern found inside a name.
type Candidate[T comparable] struct {
	Pattern   string
	Object    T
	Ambiguous bool
}

// Weight ranks candidates: more underscore-joined words first, then
// longer patterns. Spaces do not separate words here, so for ordinary
// names the longer pattern wins.
func (c Candidate[T]) Weight() int {
	words := strings.Count(c.Pattern, "_") + 1
	return words*1000 + utf8.RuneCountInString(c.Pattern)
}

// Best returns the candidate with the highest weight. Of candidates with
// equal weight the last one wins.
func Best[T comparable](cs []Candidate[T]) (Candidate[T], bool) {
	if len(cs) == 0 {
		return Candidate[T]{}, false
	}
	best := cs[0]
	for _, v := range cs[1:] {
		if v.Weight() >= best.Weight() {
			best = v
		}
	}
	return best, true
}
