package schema

// Hop use.
const (
	HopUseMash      = "mash"
	HopUseFirstWort = "first_wort"
	HopUseBoil      = "boil"
	HopUseAroma     = "aroma"
	HopUseDryHop    = "dry_hop"
)

// Hop type.
const (
	HopTypeAroma       = "aroma"
	HopTypeBittering   = "bittering"
	HopTypeDualPurpose = "dual-purpose"
)

// Hop form. HopFormExtract is produced by some exchange formats but is not
// an accepted value of a recipe hop, so it does not survive validation.
const (
	HopFormPellet  = "pellet"
	HopFormPlug    = "plug"
	HopFormLeaf    = "leaf"
	HopFormExtract = "extract"
)

// Fermentable form.
const (
	FermentableGrain      = "grain"
	FermentableSugar      = "sugar"
	FermentableExtract    = "extract"
	FermentableDryExtract = "dry-extract"
	FermentableAdjunct    = "adjunct"
)

// Yeast type.
const (
	YeastAle       = "ale"
	YeastLager     = "lager"
	YeastWheat     = "wheat"
	YeastWine      = "wine"
	YeastChampagne = "champagne"
)

// Yeast form.
const (
	YeastLiquid  = "liquid"
	YeastDry     = "dry"
	YeastSlant   = "slant"
	YeastCulture = "culture"
)

// Yeast flocculation.
const (
	FlocculationLow      = "low"
	FlocculationMedium   = "medium"
	FlocculationHigh     = "high"
	FlocculationVeryHigh = "very-high"
)

// Kind names an ingredient or style kind handled by the mapping
// processor.
type Kind string

const (
	KindHop         Kind = "hop"
	KindFermentable Kind = "fermentable"
	KindYeast       Kind = "yeast"
	KindStyle       Kind = "style"
)

// Kinds lists all kinds in the order they are usually mapped.
var Kinds = []Kind{KindStyle, KindFermentable, KindHop, KindYeast}

// ParseKind converts a string (singular or plural) to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "hop", "hops":
		return KindHop, true
	case "fermentable", "fermentables", "malt", "malts":
		return KindFermentable, true
	case "yeast", "yeasts":
		return KindYeast, true
	case "style", "styles":
		return KindStyle, true
	}
	return "", false
}
