package mapping

import (
	"regexp"
	"strings"

	"github.com/gnames/brewdb/pkg/normalize"
	"github.com/gnames/brewdb/pkg/schema"
)

var (
	reHopEntity    = regexp.MustCompile(`&#039;`)
	reHopProducer  = regexp.MustCompile(`northern\s+brewer\s+-\s+`)
	reHopHallertau = regexp.MustCompile(`^hall?ertau(er)?$`)
	reHopAlpha     = regexp.MustCompile(`\(?[0-9]+([.,][0-9]+)?\s+aa\)?`)
	reHopAmount    = regexp.MustCompile(`/?\s*[0-9]+([.,][0-9]+)?\s+(grams|ounces)`)

	reTypeWord = regexp.MustCompile(`\s+type?\s+`)
)

// HopVariants expands a hop name.
var HopVariants = normalize.Chain(normalize.NumberVariants)

// HopClean prepares a raw hop name for matching. It drops producer
// prefixes and alpha acid or amount annotations.
func HopClean(raw string) string {
	s := strings.ToLower(raw)
	s = reHopEntity.ReplaceAllString(s, "'")
	s = reHopProducer.ReplaceAllString(s, "")
	s = reHopHallertau.ReplaceAllString(s, "hallertauer mittelfrüh")
	s = reHopAlpha.ReplaceAllString(s, "")
	s = reHopAmount.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// NewHopMapper creates a mapper of hop additions.
func NewHopMapper(hops []*schema.Hop) (*GenericMapper[*schema.Hop], error) {
	m := newGenericMapper[*schema.Hop](HopVariants,
		func(it Item) string { return HopClean(it.Name) }, false)
	if err := addSources(m, hops); err != nil {
		return nil, err
	}
	return m, nil
}

var fermentableChain = normalize.Chain(
	normalize.MaltVariants,
	normalize.CaraVariants,
	normalize.RomanNumeralVariants,
)

// FermentableVariants expands a fermentable name. Cara variants are
// built after malt variants.
func FermentableVariants(name string) []string {
	return fermentableChain(normalize.MaltNormalize(name))
}

// FermentableClean prepares a raw fermentable name for matching.
func FermentableClean(raw string) string {
	s := normalize.MaltNormalize(raw)
	s = reTypeWord.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NewFermentableMapper creates a mapper of fermentables. A name that has
// no exact match is tried once more with " malt" appended before
// substring search.
func NewFermentableMapper(
	fermentables []*schema.Fermentable,
) (*GenericMapper[*schema.Fermentable], error) {
	m := newGenericMapper[*schema.Fermentable](FermentableVariants,
		func(it Item) string { return FermentableClean(it.Name) }, false)
	m.exact = func(name string) []string {
		if strings.HasSuffix(name, " malt") {
			return nil
		}
		return []string{name + " malt"}
	}
	if err := addSources(m, fermentables); err != nil {
		return nil, err
	}
	return m, nil
}
