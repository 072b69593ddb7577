package normalize_test

import (
	"testing"
	"unicode/utf8"

	"github.com/gnames/brewdb/pkg/normalize"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		long  string
		short string
	}{
		{"plain", "Cascade", "cascade", "cascade"},
		{"umlaut", "Hallertauer Mittelfrüh", "hallertauer mittelfrueh",
			"hallertauer mittelfruh"},
		{"sharp s", "Weißbier", "weissbier", "weissbier"},
		{"accent", "Saaz Žatec", "saaz zatec", "saaz zatec"},
		{"punctuation", "  Crystal (60L)!  ", "crystal 60l", "crystal 60l"},
		{"hyphens", "Dual--Purpose - Hop", "dual purpose hop",
			"dual purpose hop"},
		{"underscore kept", "east_kent goldings", "east_kent goldings",
			"east_kent goldings"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.long, normalize.Normalize(tt.input, normalize.Long))
			assert.Equal(t, tt.short, normalize.Normalize(tt.input, normalize.Short))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Münchner Malz Typ II",
		"Wyeast 1968 London ESB™",
		"  Hallertau - Tradition (4.5 AA) ",
		"Pale Ale Malt 2-Row",
		"Ölbräu Spezial",
	}
	for _, in := range inputs {
		for _, f := range []normalize.Fidelity{normalize.Long, normalize.Short} {
			once := normalize.Normalize(in, f)
			assert.Equal(t, once, normalize.Normalize(once, f),
				"%s (%s)", in, f)
		}
	}
}

func TestTranslitVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		res   []string
	}{
		{"same at both levels", "Pilsner Malt", []string{"pilsner malt"}},
		{"differs", "Münchner", []string{"muenchner", "munchner"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.res, normalize.TranslitVariants(tt.input))
		})
	}
}

func TestKind(t *testing.T) {
	assert.Equal(t, "Weyermann Pilsner", normalize.Kind("  Weyermann®  \t Pilsner "))
	assert.Equal(t, "Carapils", normalize.Kind("CarapilsÂ®"))
	// latin-1 bytes from old recipe files
	assert.True(t, utf8.ValidString(normalize.Kind("Hallertauer Mittelfr\xfch")))
}

func TestHumanReadableID(t *testing.T) {
	tests := []struct {
		input, res string
	}{
		{"Münchner Malz", "muenchner-malz"},
		{"Pale Ale / Bitter", "pale-ale-bitter"},
		{"St. Louis - Lager", "st-louis-lager"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.res, normalize.HumanReadableID(tt.input), tt.input)
	}
}
