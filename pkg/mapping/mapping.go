// Package mapping resolves free-text ingredient and style names of
// imported recipes to canonical catalog entities.
//
// Every mapper indexes catalog names under their normalized variants
// once, at construction. Resolution tries exact variants first and then
// looks for indexed patterns inside the name, preferring patterns with
// more words and then longer ones. A name that resolves to nothing is a
// normal outcome, reported as false.
package mapping

import (
	"github.com/gnames/brewdb/pkg/normalize"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/patrickmn/go-cache"
)

// Catalog is a snapshot of catalog entities mappers are built from.
// Changing the catalog requires building new mappers.
type Catalog struct {
	Styles       []*schema.Style
	Hops         []*schema.Hop
	Fermentables []*schema.Fermentable
	Yeasts       []*schema.Yeast
}

// Item is the raw data of an ingredient row or a recipe.
type Item struct {
	// Name is the ingredient name as written, or the style of a recipe.
	Name string

	// RecipeName is the display name of a recipe.
	RecipeName string

	// Lab and ProductID describe a yeast.
	Lab       string
	ProductID string

	// ABV, IBU and SRM of a recipe are checked against style limits.
	ABV *float64
	IBU *float64
	SRM *float64
}

// Mapper resolves an item to a catalog entity.
type Mapper[T any] interface {
	Map(it Item) (T, bool)
}

type result[T any] struct {
	obj T
	ok  bool
}

// GenericMapper is a mapper over one NameObjectMap. Results are cached
// by the cleaned name, so the mapper is cheap to call for repeated
// names.
type GenericMapper[T comparable] struct {
	names *NameObjectMap[T]
	clean func(Item) string

	// exact lists more names to try for an exact match.
	exact func(name string) []string

	// exactOnly disables substring search.
	exactOnly bool

	cache *cache.Cache
}

func newGenericMapper[T comparable](
	variants normalize.VariantFunc,
	clean func(Item) string,
	ignoreAmbiguous bool,
) *GenericMapper[T] {
	return &GenericMapper[T]{
		names: NewNameObjectMap[T](variants, ignoreAmbiguous),
		clean: clean,
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// addSources indexes primary and alternate names of catalog entities.
func addSources[T interface {
	comparable
	schema.NameSource
}](g *GenericMapper[T], items []T) error {
	for _, v := range items {
		if err := g.names.Add(v.PrimaryName(), v); err != nil {
			return err
		}
		for _, list := range v.AlternateNames() {
			if err := g.addList(list, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// addList indexes every name of a comma-separated list.
func (g *GenericMapper[T]) addList(list string, obj T) error {
	for _, v := range schema.SplitNames(list) {
		if err := g.names.Add(v, obj); err != nil {
			return err
		}
	}
	return nil
}

// Names gives access to the underlying index.
func (g *GenericMapper[T]) Names() *NameObjectMap[T] {
	return g.names
}

// Map cleans the item name and resolves it.
func (g *GenericMapper[T]) Map(it Item) (T, bool) {
	name := g.clean(it)
	if v, ok := g.cache.Get(name); ok {
		res := v.(result[T])
		return res.obj, res.ok
	}

	obj, ok := g.resolve(name)
	g.cache.Set(name, result[T]{obj: obj, ok: ok}, cache.NoExpiration)
	return obj, ok
}

// Resolve maps a raw name.
func (g *GenericMapper[T]) Resolve(raw string) (T, bool) {
	return g.Map(Item{Name: raw, RecipeName: raw})
}

func (g *GenericMapper[T]) resolve(name string) (T, bool) {
	var zero T
	if name == "" {
		return zero, false
	}

	if obj, ok := g.names.Match(name); ok {
		return obj, true
	}
	if g.exact != nil {
		for _, v := range g.exact(name) {
			if obj, ok := g.names.Match(v); ok {
				return obj, true
			}
		}
	}
	if g.exactOnly {
		return zero, false
	}

	best, ok := Best(g.names.Candidates(name))
	if !ok || best.Ambiguous {
		return zero, false
	}
	return best.Object, true
}

// Chain tries mappers in order. The first match wins.
type Chain[T any] []Mapper[T]

// Map implements Mapper.
func (c Chain[T]) Map(it Item) (T, bool) {
	for _, m := range c {
		if obj, ok := m.Map(it); ok {
			return obj, true
		}
	}
	var zero T
	return zero, false
}
