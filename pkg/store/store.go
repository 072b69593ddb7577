// Package store defines persistence contracts of BrewDB. Implementations
// live in internal packages; the loader and the mapping processor only
// see these interfaces.
package store

import (
	"context"

	"github.com/gnames/brewdb/pkg/mapping"
	"github.com/gnames/brewdb/pkg/schema"
)

// Store is the full set of operations of a connected database.
type Store interface {
	Session

	// Transaction runs fn in one database transaction. The transaction
	// is rolled back if fn returns an error.
	Transaction(ctx context.Context, fn func(tx Session) error) error

	// Close releases database connections.
	Close() error
}

// Session groups operations that can run inside a transaction.
type Session interface {
	CatalogReader
	CatalogWriter
	RecipeStore
	MappingStore
}

// SchemaManager creates and updates database tables.
type SchemaManager interface {
	// Migrate creates missing tables and columns.
	Migrate(ctx context.Context) error

	// HasTables is true if any BrewDB table exists.
	HasTables(ctx context.Context) (bool, error)

	// DropAll removes all BrewDB tables.
	DropAll(ctx context.Context) error
}

// CatalogReader loads the catalog snapshot mappers are built from.
type CatalogReader interface {
	LoadCatalog(ctx context.Context) (*mapping.Catalog, error)
}

// CatalogWriter inserts or updates catalog entities by id.
type CatalogWriter interface {
	SaveCatalog(ctx context.Context, cat *mapping.Catalog) error
}

// RecipeStore persists recipes together with their ingredient rows.
type RecipeStore interface {
	RecipeExists(ctx context.Context, uid string) (bool, error)

	// GetRecipe returns a recipe with ingredient rows in file order.
	GetRecipe(ctx context.Context, uid string) (*schema.Recipe, error)

	// DeleteRecipe removes a recipe and its ingredient rows.
	DeleteRecipe(ctx context.Context, uid string) error

	// SaveRecipe inserts a recipe and its ingredient rows.
	SaveRecipe(ctx context.Context, r *schema.Recipe) error
}

// Row is an ingredient row or a recipe seen by the mapping processor.
type Row struct {
	// ID is the row id, or the recipe UID for styles.
	ID string

	// KindID is the current mapping.
	KindID *string

	// Item is the raw data used for resolution.
	Item mapping.Item
}

// Update sets the catalog id of a row. A nil KindID clears the mapping.
type Update struct {
	ID     string
	KindID *string
}

// MappingStore reads rows to map and writes mapping results.
type MappingStore interface {
	// MappingRows returns rows of a kind. Unless all is true only rows
	// without a mapping are returned.
	MappingRows(ctx context.Context, kind schema.Kind, all bool) ([]Row, error)

	// UpdateKindID writes catalog ids of rows.
	UpdateKindID(ctx context.Context, kind schema.Kind, updates []Update) error

	// UnsetKindID clears the mapping of every row linked to a catalog
	// id and returns the number of changed rows.
	UnsetKindID(ctx context.Context, kind schema.Kind, id string) (int64, error)
}
