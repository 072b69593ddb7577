package schema

import (
	"fmt"
	"strings"

	"github.com/gnames/brewdb/pkg/normalize"
	"github.com/gnames/gnuuid"
)

// CatalogID creates the identifier of a hop or a fermentable from its
// name.
func CatalogID(name string) string {
	return normalize.HumanReadableID(name)
}

// YeastID creates the identifier of a yeast. The product id is appended
// unless the name already contains it.
func YeastID(name, brand string, productID *string) string {
	combined := brand + " " + name
	if productID != nil && *productID != "" &&
		!strings.Contains(name, *productID) {
		combined += " " + *productID
	}
	return normalize.HumanReadableID(combined)
}

// BrandName returns the brand of a yeast, falling back to its lab.
func (y *Yeast) BrandName() string {
	if y.Brand != nil && *y.Brand != "" {
		return *y.Brand
	}
	return y.Lab
}

// RowID creates a deterministic identifier of an ingredient row.
func RowID(recipeUID string, kind Kind, position int) string {
	return gnuuid.New(fmt.Sprintf("%s|%s|%d", recipeUID, kind, position)).String()
}
