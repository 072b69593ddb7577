package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate. Catalog
// tables come before recipes, recipes before ingredient rows.
func AllModels() []any {
	return []any{
		&Style{},
		&Hop{},
		&Fermentable{},
		&Yeast{},
		&Recipe{},
		&RecipeFermentable{},
		&RecipeHop{},
		&RecipeYeast{},
	}
}

// TableNames returns table names of all models in the order of
// AllModels.
func TableNames() []string {
	return []string{
		"styles",
		"hops",
		"fermentables",
		"yeasts",
		"recipes",
		"recipe_fermentables",
		"recipe_hops",
		"recipe_yeasts",
	}
}

// IngredientTable returns the table of recipe rows of a kind. Styles
// are linked from the recipes table.
func IngredientTable(kind Kind) string {
	switch kind {
	case KindHop:
		return "recipe_hops"
	case KindFermentable:
		return "recipe_fermentables"
	case KindYeast:
		return "recipe_yeasts"
	case KindStyle:
		return "recipes"
	}
	return ""
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
