// Package formulas contains unit conversions and the published brewing
// formulas used to estimate gravity, color and bitterness of a recipe
// from its ingredients.
package formulas

import (
	"math"
	"regexp"
	"strings"
)

// SRMToEBC converts Standard Reference Method color to European Brewing
// Convention color.
func SRMToEBC(srm float64) float64 {
	return 1.97 * srm
}

// EBCToSRM converts EBC color to SRM.
func EBCToSRM(ebc float64) float64 {
	return ebc / 1.97
}

// LovibondToSRM converts degrees Lovibond to SRM.
func LovibondToSRM(lovibond float64) float64 {
	return 1.3546*lovibond - 0.76
}

// SRMToLovibond converts SRM to degrees Lovibond.
func SRMToLovibond(srm float64) float64 {
	return (srm + 0.76) / 1.3546
}

// LovibondToEBC converts degrees Lovibond to EBC.
func LovibondToEBC(lovibond float64) float64 {
	return SRMToEBC(LovibondToSRM(lovibond))
}

// EBCToLovibond converts EBC to degrees Lovibond.
func EBCToLovibond(ebc float64) float64 {
	return SRMToLovibond(EBCToSRM(ebc))
}

// PlatoToGravity converts degrees Plato to specific gravity.
func PlatoToGravity(plato float64) float64 {
	return 259.0 / (259.0 - plato)
}

// GravityToPlato converts specific gravity to degrees Plato.
func GravityToPlato(gravity float64) float64 {
	return 259.0 - (259.0 / gravity)
}

// ABV calculates alcohol by volume in percent.
func ABV(og, fg float64) float64 {
	return (og - fg) * 131.25
}

// FinalPlatoFromABV calculates final degrees Plato from ABV and original
// degrees Plato.
func FinalPlatoFromABV(abv, originalPlato float64) float64 {
	fg := PlatoToGravity(originalPlato) - abv/131.25
	return GravityToPlato(fg)
}

// FinalGravity applies apparent attenuation (percent) to og.
func FinalGravity(og, attenuation float64) float64 {
	return og - (og-1.0)*attenuation/100.0
}

// FluidOuncesToLiters converts US fluid ounces to liters.
func FluidOuncesToLiters(oz float64) float64 {
	return oz / 33.814
}

// OuncesToGrams converts ounces to grams.
func OuncesToGrams(oz float64) float64 {
	return oz * 28.3495
}

// FahrenheitToCelsius converts °F to °C.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32.0) * 5.0 / 9.0
}

// KilogramsToPounds converts kilograms to pounds.
func KilogramsToPounds(kg float64) float64 {
	return kg * 2.20462
}

// LitersToGallons converts liters to US gallons.
func LitersToGallons(liters float64) float64 {
	return liters * 0.264172
}

// YieldToPPG converts a fermentable yield (percent) to points per pound
// per gallon.
func YieldToPPG(yield float64) float64 {
	return yield * 0.46214
}

// GravityUnits returns gravity units a fermentable contributes to the
// given volume at 100% efficiency.
func GravityUnits(yield, grams, liters float64) float64 {
	ppg := YieldToPPG(yield)
	lbs := KilogramsToPounds(grams / 1000)
	return ppg * lbs / LitersToGallons(liters)
}

// MaltColorUnits returns the MCU contribution of a fermentable.
// 8.3454 converts kg/L to lb/gal.
func MaltColorUnits(grams, lovibond, liters float64) float64 {
	return (grams / 1000) * lovibond * 8.3454 / liters
}

// MoreySRM converts total malt color units to SRM.
func MoreySRM(mcu float64) float64 {
	return 1.4922 * math.Pow(mcu, 0.6859)
}

// TinsethIBU returns bitterness contributed by one hop addition.
// Amount is in grams, volume in liters, time in minutes.
func TinsethIBU(
	og, liters, alpha, grams, minutes float64,
	pellet bool,
) float64 {
	bigness := 1.65 * math.Pow(0.000125, og-1.0)
	boilTime := (1 - math.Exp(-0.04*minutes)) / 4.15
	mgPerLiter := alpha / 100.0 * grams * 1000 / liters
	util := 1.0
	if pellet {
		util = 1.15
	}
	return bigness * boilTime * mgPerLiter * util
}

// Addition tells when a fermentable enters the process.
type Addition int

const (
	Mash Addition = iota
	Steep
	Boil
)

func (a Addition) String() string {
	switch a {
	case Steep:
		return "steep"
	case Boil:
		return "boil"
	default:
		return "mash"
	}
}

var additionRules = []struct {
	re  *regexp.Regexp
	add Addition
}{
	{regexp.MustCompile(`mash`), Mash},
	{regexp.MustCompile(`steep`), Steep},
	{regexp.MustCompile(`boil`), Boil},
	{regexp.MustCompile(
		`biscuit|black|cara|chocolate|crystal|munich|roast|special|toast|victory|vienna`,
	), Steep},
	{regexp.MustCompile(
		`candi|candy|dme|dry|extract|honey|lme|liquid|sugar|syrup|turbinado`,
	), Boil},
}

// AdditionOf guesses the addition of a fermentable from its name.
// Explicit words take precedence, then known specialty grains and
// sugars; everything else is mashed.
func AdditionOf(name string) Addition {
	name = strings.ToLower(name)
	for _, v := range additionRules {
		if v.re.MatchString(name) {
			return v.add
		}
	}
	return Mash
}

// DefaultMashEfficiency is used when a recipe does not state one.
const DefaultMashEfficiency = 0.75

// Efficiency returns the extract efficiency (0..1) of an addition.
// mashEfficiency is used for mashed fermentables.
func (a Addition) Efficiency(mashEfficiency float64) float64 {
	switch a {
	case Steep:
		return 0.5
	case Mash:
		return mashEfficiency
	default:
		return 1.0
	}
}
