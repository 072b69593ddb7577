// Package schema provides database models for BrewDB: the curated
// catalog of canonical brewing entities and the recipes imported from
// exchange files.
package schema

import "strings"

// NameSource is implemented by catalog entities whose names seed the
// entity mapper.
type NameSource interface {
	// PrimaryName is the display name of the entity.
	PrimaryName() string

	// AlternateNames returns comma-separated lists of alternative names.
	AlternateNames() []string
}

// Style is a beer style. Styles without a parent are categories.
type Style struct {
	// ID is a short code of the style (e.g. "21a").
	ID string `gorm:"primaryKey;size:32"`

	// Name is the display name of the style.
	Name string `gorm:"size:255;not null"`

	// AltNames is a comma-separated list of alternative names.
	AltNames *string `gorm:"type:text"`

	// AltNamesExtra holds additional curated names, comma-separated.
	AltNamesExtra *string `gorm:"type:text"`

	// ParentID refers to the parent style or category.
	ParentID *string `gorm:"size:32;index"`

	// ABVMin is the lowest alcohol by volume of the style.
	ABVMin *float64
	// ABVMax is the highest alcohol by volume of the style.
	ABVMax *float64

	// IBUMin is the lowest bitterness of the style.
	IBUMin *float64
	// IBUMax is the highest bitterness of the style.
	IBUMax *float64

	// SRMMin is the lightest color of the style.
	SRMMin *float64
	// SRMMax is the darkest color of the style.
	SRMMax *float64

	// OGMin is the lowest original gravity of the style.
	OGMin *float64
	// OGMax is the highest original gravity of the style.
	OGMax *float64

	// FGMin is the lowest final gravity of the style.
	FGMin *float64
	// FGMax is the highest final gravity of the style.
	FGMax *float64
}

// PrimaryName implements NameSource.
func (s *Style) PrimaryName() string { return s.Name }

// AlternateNames implements NameSource.
func (s *Style) AlternateNames() []string {
	return altLists(s.AltNames, s.AltNamesExtra)
}

// IsCategory is true for top-level styles.
func (s *Style) IsCategory() bool {
	return s.ParentID == nil || *s.ParentID == ""
}

// Hop is a hop variety.
type Hop struct {
	// ID is a human-readable identifier derived from the name.
	ID string `gorm:"primaryKey;size:255"`

	// Name is the display name of the variety.
	Name string `gorm:"size:255;not null"`

	// AltNames is a comma-separated list of alternative names.
	AltNames *string `gorm:"type:text"`

	// AltNamesExtra holds additional curated names, comma-separated.
	AltNamesExtra *string `gorm:"type:text"`

	// Use is one of aroma, bittering or dual-purpose.
	Use *string `gorm:"size:16"`

	// Country of origin.
	Country *string `gorm:"size:255"`

	// AlphaMin is the lowest alpha acid content in percent.
	AlphaMin *float64
	// AlphaMax is the highest alpha acid content in percent.
	AlphaMax *float64
}

// PrimaryName implements NameSource.
func (h *Hop) PrimaryName() string { return h.Name }

// AlternateNames implements NameSource.
func (h *Hop) AlternateNames() []string {
	return altLists(h.AltNames, h.AltNamesExtra)
}

// Fermentable is a malt, sugar, extract or another fermentable.
type Fermentable struct {
	// ID is a human-readable identifier derived from the name.
	ID string `gorm:"primaryKey;size:255"`

	// Name is the display name of the fermentable.
	Name string `gorm:"size:255;not null"`

	// AltNames is a comma-separated list of alternative names.
	AltNames *string `gorm:"type:text"`

	// AltNamesExtra holds additional curated names, comma-separated.
	AltNamesExtra *string `gorm:"type:text"`

	// Category is one of grain, sugar, fruit or extract.
	Category *string `gorm:"size:16"`

	// Type is one of base, cara_crystal, toasted, roasted, other_malt,
	// adjunct or unmalted_adjunct.
	Type *string `gorm:"size:32"`

	// ColorEBC is a typical color of the fermentable.
	ColorEBC *float64
}

// PrimaryName implements NameSource.
func (f *Fermentable) PrimaryName() string { return f.Name }

// AlternateNames implements NameSource.
func (f *Fermentable) AlternateNames() []string {
	return altLists(f.AltNames, f.AltNamesExtra)
}

// Yeast is a commercial yeast product.
// The pair of Lab and ProductID is unique.
type Yeast struct {
	// ID is built from brand, name and product id.
	ID string `gorm:"primaryKey;size:255"`

	// Name is the product name.
	Name string `gorm:"size:255;not null"`

	// AltNames is a comma-separated list of alternative names.
	AltNames *string `gorm:"type:text"`

	// AltNamesExtra holds additional curated names, comma-separated.
	AltNamesExtra *string `gorm:"type:text"`

	// Lab is the laboratory producing the yeast.
	Lab string `gorm:"size:255;not null;uniqueIndex:idx_yeast_lab_product"`

	// AltLab is a comma-separated list of alternative laboratory names.
	AltLab *string `gorm:"type:text"`

	// Brand is the name the product is sold under, if it differs from Lab.
	Brand *string `gorm:"size:255"`

	// AltBrand is a comma-separated list of alternative brand names.
	AltBrand *string `gorm:"type:text"`

	// ProductID is the code of the product within the lab.
	ProductID *string `gorm:"size:64;uniqueIndex:idx_yeast_lab_product"`

	// AltProductID is a comma-separated list of alternative codes.
	AltProductID *string `gorm:"type:text"`

	// Type is one of ale, lager, wheat, brett-bacteria or wine-cider.
	Type *string `gorm:"size:16"`

	// Form is one of liquid, dry, slant or culture.
	Form *string `gorm:"size:16"`

	// AttenuationMin is the lowest apparent attenuation in percent.
	AttenuationMin *float64
	// AttenuationMax is the highest apparent attenuation in percent.
	AttenuationMax *float64
}

// PrimaryName implements NameSource.
func (y *Yeast) PrimaryName() string { return y.Name }

// AlternateNames implements NameSource.
func (y *Yeast) AlternateNames() []string {
	return altLists(y.AltNames, y.AltNamesExtra)
}

func altLists(lists ...*string) []string {
	var res []string
	for _, v := range lists {
		if v != nil && strings.TrimSpace(*v) != "" {
			res = append(res, *v)
		}
	}
	return res
}

// SplitNames splits a comma-separated list of names, trimming every
// entry and skipping empty ones.
func SplitNames(list string) []string {
	var res []string
	for _, v := range strings.Split(list, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}
