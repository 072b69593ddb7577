package iostore

import (
	"context"
	"errors"

	"github.com/gnames/brewdb/pkg/mapping"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/brewdb/pkg/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// catalogBatch is the number of catalog rows per INSERT statement.
const catalogBatch = 500

// session runs store operations on a connection or a transaction.
type session struct {
	db *gorm.DB
}

var _ store.Session = (*session)(nil)

// LoadCatalog reads all catalog entities ordered by id.
func (s *session) LoadCatalog(ctx context.Context) (*mapping.Catalog, error) {
	db := s.db.WithContext(ctx)
	var res mapping.Catalog
	if err := db.Order("id").Find(&res.Styles).Error; err != nil {
		return nil, QueryError("styles", err)
	}
	if err := db.Order("id").Find(&res.Hops).Error; err != nil {
		return nil, QueryError("hops", err)
	}
	if err := db.Order("id").Find(&res.Fermentables).Error; err != nil {
		return nil, QueryError("fermentables", err)
	}
	if err := db.Order("id").Find(&res.Yeasts).Error; err != nil {
		return nil, QueryError("yeasts", err)
	}
	return &res, nil
}

// SaveCatalog inserts catalog entities and overwrites existing ones
// with the same id.
func (s *session) SaveCatalog(ctx context.Context, cat *mapping.Catalog) error {
	db := s.db.WithContext(ctx)
	if err := upsert(db, cat.Styles); err != nil {
		return WriteError("styles", err)
	}
	if err := upsert(db, cat.Hops); err != nil {
		return WriteError("hops", err)
	}
	if err := upsert(db, cat.Fermentables); err != nil {
		return WriteError("fermentables", err)
	}
	if err := upsert(db, cat.Yeasts); err != nil {
		return WriteError("yeasts", err)
	}
	return nil
}

func upsert[T any](db *gorm.DB, rows []*T) error {
	if len(rows) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(rows, catalogBatch).Error
}

// RecipeExists checks if a recipe with the UID is stored.
func (s *session) RecipeExists(ctx context.Context, uid string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Recipe{}).
		Where("uid = ?", uid).Count(&count).Error
	if err != nil {
		return false, QueryError("recipes", err)
	}
	return count > 0, nil
}

// GetRecipe reads a recipe with its ingredient rows.
func (s *session) GetRecipe(ctx context.Context, uid string) (*schema.Recipe, error) {
	byPosition := func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	}

	var res schema.Recipe
	err := s.db.WithContext(ctx).
		Preload("Fermentables", byPosition).
		Preload("Hops", byPosition).
		Preload("Yeasts", byPosition).
		Where("uid = ?", uid).
		First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, RecipeNotFoundError(uid, err)
	}
	if err != nil {
		return nil, QueryError("recipes", err)
	}
	return &res, nil
}

// DeleteRecipe removes a recipe. Ingredient rows are removed
// explicitly, SQLite does not enforce foreign keys by default.
func (s *session) DeleteRecipe(ctx context.Context, uid string) error {
	db := s.db.WithContext(ctx)
	rows := []any{
		&schema.RecipeFermentable{},
		&schema.RecipeHop{},
		&schema.RecipeYeast{},
	}
	for _, v := range rows {
		if err := db.Where("recipe_uid = ?", uid).Delete(v).Error; err != nil {
			return WriteError("recipe ingredients", err)
		}
	}
	if err := db.Where("uid = ?", uid).Delete(&schema.Recipe{}).Error; err != nil {
		return WriteError("recipes", err)
	}
	return nil
}

// SaveRecipe inserts a recipe together with its ingredient rows.
func (s *session) SaveRecipe(ctx context.Context, r *schema.Recipe) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return WriteError("recipes", err)
	}
	return nil
}

// MappingRows reads rows of a kind in a stable order.
func (s *session) MappingRows(
	ctx context.Context,
	kind schema.Kind,
	all bool,
) ([]store.Row, error) {
	col, err := kindColumn(kind)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	if !all {
		db = db.Where(col.column + " IS NULL")
	}

	switch kind {
	case schema.KindHop:
		var rows []schema.RecipeHop
		err = db.Order("recipe_uid, position").Find(&rows).Error
		return ingredientRows(rows, err, func(v schema.RecipeHop) store.Row {
			return store.Row{ID: v.ID, KindID: v.KindID,
				Item: mapping.Item{Name: v.KindRaw}}
		})
	case schema.KindFermentable:
		var rows []schema.RecipeFermentable
		err = db.Order("recipe_uid, position").Find(&rows).Error
		return ingredientRows(rows, err, func(v schema.RecipeFermentable) store.Row {
			return store.Row{ID: v.ID, KindID: v.KindID,
				Item: mapping.Item{Name: v.KindRaw}}
		})
	case schema.KindYeast:
		var rows []schema.RecipeYeast
		err = db.Order("recipe_uid, position").Find(&rows).Error
		return ingredientRows(rows, err, func(v schema.RecipeYeast) store.Row {
			return store.Row{ID: v.ID, KindID: v.KindID,
				Item: mapping.Item{
					Name:      v.KindRaw,
					Lab:       deref(v.Lab),
					ProductID: deref(v.ProductID),
				}}
		})
	default:
		var rows []schema.Recipe
		err = db.Order("uid").Find(&rows).Error
		return ingredientRows(rows, err, func(v schema.Recipe) store.Row {
			return store.Row{ID: v.UID, KindID: v.StyleID,
				Item: mapping.Item{
					Name:       deref(v.StyleRaw),
					RecipeName: deref(v.Name),
					ABV:        v.ABV,
					IBU:        v.IBU,
					SRM:        v.SRM,
				}}
		})
	}
}

func ingredientRows[T any](
	rows []T,
	err error,
	conv func(T) store.Row,
) ([]store.Row, error) {
	if err != nil {
		return nil, QueryError("mapping rows", err)
	}
	res := make([]store.Row, len(rows))
	for i, v := range rows {
		res[i] = conv(v)
	}
	return res, nil
}

// UpdateKindID writes mappings row by row.
func (s *session) UpdateKindID(
	ctx context.Context,
	kind schema.Kind,
	updates []store.Update,
) error {
	col, err := kindColumn(kind)
	if err != nil {
		return err
	}
	db := s.db.WithContext(ctx)
	for _, v := range updates {
		err := db.Table(col.table).Where(col.key+" = ?", v.ID).
			Update(col.column, v.KindID).Error
		if err != nil {
			return WriteError(col.table, err)
		}
	}
	return nil
}

// UnsetKindID clears the mapping of all rows linked to a catalog id.
func (s *session) UnsetKindID(
	ctx context.Context,
	kind schema.Kind,
	id string,
) (int64, error) {
	col, err := kindColumn(kind)
	if err != nil {
		return 0, err
	}
	res := s.db.WithContext(ctx).Table(col.table).
		Where(col.column+" = ?", id).
		Update(col.column, nil)
	if res.Error != nil {
		return 0, WriteError(col.table, res.Error)
	}
	return res.RowsAffected, nil
}

// mappedColumn locates the catalog link of a kind.
type mappedColumn struct {
	table  string
	key    string
	column string
}

func kindColumn(kind schema.Kind) (mappedColumn, error) {
	table := schema.IngredientTable(kind)
	switch {
	case table == "":
		return mappedColumn{}, QueryError("rows of "+string(kind),
			errors.New("unknown kind"))
	case kind == schema.KindStyle:
		return mappedColumn{table: table, key: "uid", column: "style_id"}, nil
	default:
		return mappedColumn{table: table, key: "id", column: "kind_id"}, nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
