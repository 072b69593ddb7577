// Package normalize provides pure string transforms used to compare
// free-text ingredient and style names: transliteration to ASCII at two
// fidelity levels, punctuation cleanup and domain-specific variant
// generators.
//
// All functions are safe for concurrent use.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gnames/gnlib"
	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fidelity determines how extended-alphabet letters are spelled out
// during transliteration.
type Fidelity int

const (
	// Long spells umlauts and ligatures as digraphs ("ü" -> "ue").
	Long Fidelity = iota
	// Short keeps only the base letter ("ü" -> "u").
	Short
)

// String implements fmt.Stringer.
func (f Fidelity) String() string {
	if f == Short {
		return "short"
	}
	return "long"
}

var (
	longDigraphs = strings.NewReplacer(
		"ä", "ae", "Ä", "Ae",
		"ö", "oe", "Ö", "Oe",
		"ü", "ue", "Ü", "Ue",
		"ß", "ss", "ẞ", "SS",
		"æ", "ae", "Æ", "Ae",
		"œ", "oe", "Œ", "Oe",
		"ø", "oe", "Ø", "Oe",
		"å", "aa", "Å", "Aa",
	)

	reNonWord   = regexp.MustCompile(`[^\w\s-]`)
	reSpaceDash = regexp.MustCompile(`[\s-]+`)
	reIDStrip   = regexp.MustCompile(`[^\w\s/-]`)
	reIDSep     = regexp.MustCompile(`[\s/-]+`)
	reSpaces    = regexp.MustCompile(`\s+`)
)

// Translit converts s to ASCII. Punctuation and case are kept.
func Translit(s string, f Fidelity) string {
	if f == Long {
		s = longDigraphs.Replace(s)
	}
	// A transformer keeps state, so each call gets its own chain.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if res, _, err := transform.String(t, s); err == nil {
		s = res
	}
	return unidecode.Unidecode(s)
}

// Normalize transliterates raw with the given fidelity, removes
// everything except word characters, spaces and hyphens, collapses runs
// of spaces and hyphens into one space, trims and lower-cases the result.
// Normalize is idempotent.
func Normalize(raw string, f Fidelity) string {
	s := Translit(raw, f)
	s = reNonWord.ReplaceAllString(s, "")
	s = reSpaceDash.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// TranslitVariants returns the Long form of name and, when it differs,
// the Short form.
func TranslitVariants(name string) []string {
	long := Normalize(name, Long)
	short := Normalize(name, Short)
	if short == long {
		return []string{long}
	}
	return []string{long, short}
}

// Kind cleans a raw ingredient name as it comes from a recipe file:
// registered-trademark signs (including their mis-encoded form) are
// removed and whitespace is collapsed.
func Kind(raw string) string {
	raw = gnlib.FixUtf8(raw)
	raw = strings.ReplaceAll(raw, "Â®", "")
	raw = strings.ReplaceAll(raw, "®", "")
	raw = reSpaces.ReplaceAllString(raw, " ")
	return strings.TrimSpace(raw)
}

// HumanReadableID creates a slug-like identifier for catalog entries,
// for example "Münchner Malz" becomes "muenchner-malz".
func HumanReadableID(name string) string {
	s := Translit(name, Long)
	s = reIDStrip.ReplaceAllString(s, "")
	s = reIDSep.ReplaceAllString(s, "-")
	return strings.ToLower(s)
}
