package schema

import "time"

// Recipe is an imported recipe. Its UID has the form "source:source_id".
//
// Numeric fields are optional. Validation rules live in `validate` tags
// and are checked by Validate before a recipe is written.
type Recipe struct {
	// UID is the unique identifier of the recipe, "source:source_id".
	UID string `gorm:"primaryKey;size:255" validate:"required,max=255"`

	// Source is the collection the recipe was imported from.
	Source string `gorm:"size:64;not null;index" validate:"required,max=64"`

	// SourceID identifies the recipe within its source.
	SourceID string `gorm:"size:255;not null" validate:"required,max=255"`

	Name   *string `gorm:"size:255" validate:"omitnil,max=255"`
	Author *string `gorm:"size:255" validate:"omitnil,max=255"`

	// Created is the creation date reported by the file.
	Created *time.Time `validate:"omitnil,recipedate"`

	// StyleRaw is the style name as written in the file.
	StyleRaw *string `gorm:"size:255" validate:"omitnil,max=255"`

	// StyleID links the recipe to a catalog style.
	StyleID *string `gorm:"size:32;index"`

	// ExtractEfficiency is the brewhouse efficiency in percent.
	ExtractEfficiency *float64 `validate:"omitnil,gt=0,lte=100"`

	OG            *float64 `validate:"omitnil,gte=0.95,lte=1.5"`
	FG            *float64 `validate:"omitnil,gte=0.95,lte=1.5"`
	OriginalPlato *float64 `validate:"omitnil,gt=0,lte=100"`
	FinalPlato    *float64 `validate:"omitnil,gt=0,lte=100"`
	ABV           *float64 `validate:"omitnil,gte=0,lte=100"`
	EBC           *float64 `validate:"omitnil,gt=0"`
	SRM           *float64 `validate:"omitnil,gt=0"`
	IBU           *float64 `validate:"omitnil,gt=0"`

	// Volumes are in liters.
	MashWater   *float64 `validate:"omitnil,gt=0"`
	SpargeWater *float64 `validate:"omitnil,gte=0"`
	CastOutWort *float64 `validate:"omitnil,gt=0"`

	// BoilingTime is in minutes.
	BoilingTime *float64 `validate:"omitnil,gte=0"`

	ImportedAt time.Time `gorm:"autoCreateTime"`

	Fermentables []RecipeFermentable `gorm:"foreignKey:RecipeUID;constraint:OnDelete:CASCADE" validate:"-"`
	Hops         []RecipeHop         `gorm:"foreignKey:RecipeUID;constraint:OnDelete:CASCADE" validate:"-"`
	Yeasts       []RecipeYeast       `gorm:"foreignKey:RecipeUID;constraint:OnDelete:CASCADE" validate:"-"`
}

// RecipeFermentable is a fermentable used in a recipe.
type RecipeFermentable struct {
	ID        string `gorm:"primaryKey;size:36"`
	RecipeUID string `gorm:"size:255;not null;index"`

	// Position keeps the order of the file.
	Position int

	// KindRaw is the fermentable name as written in the file.
	KindRaw string `gorm:"size:255;not null" validate:"max=255"`

	// KindID links the row to a catalog fermentable.
	KindID *string `gorm:"size:255;index"`

	Origin *string `gorm:"size:255" validate:"omitnil,max=255"`
	Form   *string `gorm:"size:16" validate:"omitnil,oneof=grain sugar extract dry-extract adjunct"`

	// Amount is in grams.
	Amount *float64 `validate:"omitnil,gt=0"`

	// AmountPercent is the share of Amount in all fermentables of the
	// recipe with a known amount.
	AmountPercent *float64 `validate:"omitnil,gt=0,lte=100"`

	Lovibond *float64 `validate:"omitnil,gt=0"`
	EBC      *float64 `validate:"omitnil,gt=0"`

	// Yield is the extract potential in percent.
	Yield *float64 `validate:"omitnil,gt=0"`
}

// RecipeHop is a hop addition of a recipe.
type RecipeHop struct {
	ID        string `gorm:"primaryKey;size:36"`
	RecipeUID string `gorm:"size:255;not null;index"`
	Position  int

	// KindRaw is the hop name as written in the file.
	KindRaw string `gorm:"size:255;not null" validate:"max=255"`

	// KindID links the row to a catalog hop.
	KindID *string `gorm:"size:255;index"`

	// Amount is in grams.
	Amount        *float64 `validate:"omitnil,gt=0"`
	AmountPercent *float64 `validate:"omitnil,gt=0,lte=100"`

	Use  *string `gorm:"size:16" validate:"omitnil,oneof=mash first_wort boil aroma dry_hop"`
	Type *string `gorm:"size:16" validate:"omitnil,oneof=aroma bittering dual-purpose"`
	Form *string `gorm:"size:16" validate:"omitnil,oneof=pellet plug leaf"`

	// Time is in minutes.
	Time *float64 `validate:"omitnil,gte=0"`

	Alpha         *float64 `validate:"omitnil,gt=0"`
	Beta          *float64 `validate:"omitnil,gt=0"`
	HSI           *float64 `validate:"omitnil,gt=0"`
	Humulene      *float64 `validate:"omitnil,gt=0"`
	Caryophyllene *float64 `validate:"omitnil,gt=0"`
	Cohumulone    *float64 `validate:"omitnil,gt=0"`
	Myrcene       *float64 `validate:"omitnil,gt=0"`

	Substitutes *string `gorm:"type:text" validate:"omitnil,max=255"`
}

// RecipeYeast is a yeast used in a recipe.
type RecipeYeast struct {
	ID        string `gorm:"primaryKey;size:36"`
	RecipeUID string `gorm:"size:255;not null;index"`
	Position  int

	// KindRaw is the yeast name as written in the file.
	KindRaw string `gorm:"size:255;not null" validate:"max=255"`

	// KindID links the row to a catalog yeast.
	KindID *string `gorm:"size:255;index"`

	Lab       *string `gorm:"size:255" validate:"omitnil,max=255"`
	ProductID *string `gorm:"size:32" validate:"omitnil,max=32"`

	Form *string `gorm:"size:16" validate:"omitnil,oneof=liquid dry slant culture"`
	Type *string `gorm:"size:16" validate:"omitnil,oneof=ale lager wheat wine champagne"`

	Amount         *float64 `validate:"omitnil,gt=0"`
	AmountIsWeight *bool

	AttenuationMin *float64 `validate:"omitnil,gt=0"`
	AttenuationMax *float64 `validate:"omitnil,gt=0"`

	// Temperatures are in °C.
	TemperatureMin *float64 `validate:"omitnil,gt=0"`
	TemperatureMax *float64 `validate:"omitnil,gt=0"`

	Flocculation *string `gorm:"size:16" validate:"omitnil,oneof=low medium high very-high"`
}
