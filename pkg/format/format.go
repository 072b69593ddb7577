// Package format describes the intermediate representation of a recipe
// read from one of the supported exchange formats. Parsers live in
// subpackages, one per format.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
	"time"
)

// Format is the name of a recipe exchange format.
type Format string

const (
	Unknown   Format = ""
	BeerSmith Format = "beersmith"
	BeerXML   Format = "beerxml"
	MMuM      Format = "mmum"
)

// Parser converts the content of a recipe file to a ParseResult.
type Parser interface {
	Format() Format
	Parse(data []byte) (*ParseResult, error)
}

// ParseResult is a recipe with its ingredients in the order of the file.
type ParseResult struct {
	Recipe       RecipeDraft
	Fermentables []FermentableDraft
	Hops         []HopDraft
	Yeasts       []YeastDraft
}

// RecipeDraft holds recipe values found in a file or calculated from
// its ingredients. Nil means absent.
type RecipeDraft struct {
	Name     *string
	Author   *string
	Created  *time.Time
	StyleRaw *string

	// ExtractEfficiency in percent.
	ExtractEfficiency *float64

	OG            *float64
	FG            *float64
	OriginalPlato *float64
	FinalPlato    *float64
	ABV           *float64
	SRM           *float64
	EBC           *float64
	IBU           *float64

	// MashWater, SpargeWater and CastOutWort are in liters.
	MashWater   *float64
	SpargeWater *float64
	CastOutWort *float64

	// BoilingTime in minutes.
	BoilingTime *float64
}

// FermentableDraft is a fermentable as found in a file.
type FermentableDraft struct {
	Kind   string
	Origin *string
	Form   *string

	// Amount in grams.
	Amount *float64

	// Lovibond is the color in degrees Lovibond.
	Lovibond *float64

	// Yield in percent.
	Yield *float64
}

// HopDraft is a hop addition as found in a file.
type HopDraft struct {
	Kind string

	// Amount in grams.
	Amount *float64
	Use    *string

	// Time in minutes.
	Time *float64
	Type *string
	Form *string

	Alpha         *float64
	Beta          *float64
	HSI           *float64
	Humulene      *float64
	Caryophyllene *float64
	Cohumulone    *float64
	Myrcene       *float64
	Substitutes   *string

	// IBUContribution is the bitterness reported for this addition.
	// It is only used to estimate bitterness of the recipe.
	IBUContribution *float64
}

// YeastDraft is a yeast as found in a file.
type YeastDraft struct {
	Kind      string
	Lab       *string
	ProductID *string
	Form      *string
	Type      *string

	Amount         *float64
	AmountIsWeight *bool

	AttenuationMin *float64
	AttenuationMax *float64

	// Temperatures in °C.
	TemperatureMin *float64
	TemperatureMax *float64

	Flocculation *string
}

// Detect guesses the format of a file from its name and content.
func Detect(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".bsmx":
		return BeerSmith
	case ".json":
		return MMuM
	}

	head := data
	if len(head) > 4096 {
		head = head[:4096]
	}
	lower := bytes.ToLower(head)
	trimmed := bytes.TrimSpace(lower)

	switch {
	case bytes.HasPrefix(trimmed, []byte("{")):
		if bytes.Contains(head, []byte(`"Name"`)) ||
			bytes.Contains(head, []byte(`"Malz1"`)) {
			return MMuM
		}
	case bytes.Contains(lower, []byte("<recipes")):
		return BeerXML
	case bytes.Contains(lower, []byte("<f_r_")) ||
		bytes.Contains(lower, []byte("<recipe>")):
		return BeerSmith
	}
	return Unknown
}
