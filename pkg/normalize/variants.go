package normalize

import (
	"regexp"
	"strings"
)

// VariantFunc expands one name into the ordered list of its variants.
// The first element is usually the name itself.
type VariantFunc func(name string) []string

// Expand applies gen to every name and concatenates the results,
// keeping order.
func Expand(names []string, gen VariantFunc) []string {
	res := make([]string, 0, len(names)*2)
	for _, v := range names {
		res = append(res, gen(v)...)
	}
	return res
}

// Chain builds a VariantFunc that starts with TranslitVariants and pipes
// the result through every generator in order.
func Chain(gens ...VariantFunc) VariantFunc {
	return func(name string) []string {
		res := TranslitVariants(name)
		for _, gen := range gens {
			res = Expand(res, gen)
		}
		return res
	}
}

var (
	reHasNumber  = regexp.MustCompile(`\s[0-9]+\b`)
	reJoinNumber = regexp.MustCompile(`\s+([0-9]+)\b`)

	reHasRoman = regexp.MustCompile(`\si+\b`)
	reRoman3   = regexp.MustCompile(`\siii\b`)
	reRoman2   = regexp.MustCompile(`\sii\b`)
	reRoman1   = regexp.MustCompile(`\si\b`)

	reMalzWord  = regexp.MustCompile(`\bmalz\b`)
	reGluedMalt = regexp.MustCompile(`(\w)malt\b`)
	reGluedMalz = regexp.MustCompile(`(\w)malz\b`)
	reMuenchner = regexp.MustCompile(`\bmünchener\b`)
	rePilsener  = regexp.MustCompile(`\bpilsener\b`)
	rePilsen    = regexp.MustCompile(`\bpilsen\b`)
	reCaramell  = regexp.MustCompile(`\bcaramell\b`)
	reCaramelo  = regexp.MustCompile(`\bcaramelo\b`)

	reCaraSpace = regexp.MustCompile(`\bcara\s`)
	reCaraGlue  = regexp.MustCompile(`\bcara\s+`)
	reCara      = regexp.MustCompile(`\bcara\b`)

	reIPA   = regexp.MustCompile(`\bipa\b`)
	reLager = regexp.MustCompile(`\blager\b`)

	reNonWordRun = regexp.MustCompile(`\W+`)
	reLetterNum  = regexp.MustCompile(`([A-Za-z])([0-9])`)
	reNumLetter  = regexp.MustCompile(`([0-9])([A-Za-z])`)
)

// caraSubstitutes are tried in place of a standalone "cara" token.
// Catalog alternate names were curated against exactly this list.
var caraSubstitutes = []struct {
	repl   string
	dedupe bool
}{
	{"cara malt", false},
	{"caramel", false},
	{"caramel malt", true},
	{"crystal", false},
	{"crystal malt", true},
	{"karamell", false},
	{"karamell malt", true},
	{"caracrystal", false},
	{"cara crystal", false},
	{"crystal cara", false},
}

// NumberVariants yields name and, when it contains a separate number,
// a form where numbers are glued to the preceding word
// ("amarillo 2015" -> "amarillo2015").
func NumberVariants(name string) []string {
	res := []string{name}
	if reHasNumber.MatchString(name) {
		res = append(res, reJoinNumber.ReplaceAllString(name, "${1}"))
	}
	return res
}

// RomanNumeralVariants yields name and, when it has a trailing roman
// numeral token I, II or III, a form with the arabic number instead.
func RomanNumeralVariants(name string) []string {
	res := []string{name}
	if reHasRoman.MatchString(name) {
		s := reRoman3.ReplaceAllString(name, " 3")
		s = reRoman2.ReplaceAllString(s, " 2")
		s = reRoman1.ReplaceAllString(s, " 1")
		res = append(res, s)
	}
	return res
}

// MaltNormalize makes "malt" a word of its own and unifies common
// spellings of malt names such as "münchener" or "caramell".
// The input is expected to be lower-case.
func MaltNormalize(s string) string {
	s = strings.ToLower(s)
	s = reMalzWord.ReplaceAllString(s, "malt")
	s = reGluedMalt.ReplaceAllString(s, "${1} malt")
	s = reGluedMalz.ReplaceAllString(s, "${1} malt")
	s = StyleNormalize(s)
	s = reCaramell.ReplaceAllString(s, "caramel")
	return reCaramelo.ReplaceAllString(s, "caramel")
}

// StyleNormalize unifies spellings shared by malt and style names.
func StyleNormalize(s string) string {
	s = strings.ToLower(s)
	s = reMuenchner.ReplaceAllString(s, "münchner")
	s = rePilsener.ReplaceAllString(s, "pilsner")
	return rePilsen.ReplaceAllString(s, "pilsner")
}

// MaltVariants yields name and, if "malt" sits in the middle of it,
// the name without that word.
func MaltVariants(name string) []string {
	res := []string{name}
	if strings.Contains(name, " malt ") {
		res = append(res, strings.ReplaceAll(name, " malt ", " "))
	}
	return res
}

// CaraVariants yields name, a form where "cara" is glued to the next
// word, and the caramel/crystal spellings of a standalone "cara".
func CaraVariants(name string) []string {
	res := []string{name}
	if reCaraSpace.MatchString(name) {
		res = append(res, reCaraGlue.ReplaceAllString(name, "cara"))
	}
	if !reCara.MatchString(name) {
		return res
	}
	for _, v := range caraSubstitutes {
		s := reCara.ReplaceAllLiteralString(name, v.repl)
		if v.dedupe {
			s = strings.ReplaceAll(s, "malt malt", "malt")
		}
		res = append(res, s)
	}
	return res
}

// StyleVariants expands "ipa" to "india pale ale" and then offers
// "pilsner" for "lager".
func StyleVariants(name string) []string {
	names := []string{name}
	if reIPA.MatchString(name) {
		names = append(names, reIPA.ReplaceAllString(name, "india pale ale"))
	}
	res := make([]string, 0, len(names)*2)
	for _, v := range names {
		res = append(res, v)
		if reLager.MatchString(v) {
			res = append(res, reLager.ReplaceAllString(v, "pilsner"))
		}
	}
	return res
}

// ProductIDVariants splits a product code on punctuation and
// letter/digit boundaries and yields every way of joining the parts
// with either nothing or a single space: "A1B" gives "A1B", "A1 B",
// "A 1B" and "A 1 B".
func ProductIDVariants(token string) []string {
	s := reNonWordRun.ReplaceAllString(token, " ")
	s = reLetterNum.ReplaceAllString(s, "${1} ${2}")
	s = reNumLetter.ReplaceAllString(s, "${1} ${2}")
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return []string{""}
	}

	res := []string{parts[0]}
	for _, p := range parts[1:] {
		next := make([]string, 0, len(res)*2)
		for _, prefix := range res {
			next = append(next, prefix+p, prefix+" "+p)
		}
		res = next
	}
	return res
}
