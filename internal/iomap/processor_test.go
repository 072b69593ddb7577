package iomap_test

import (
	"context"
	"testing"

	"github.com/gnames/brewdb/internal/ioload"
	"github.com/gnames/brewdb/internal/iomap"
	"github.com/gnames/brewdb/internal/iostore"
	"github.com/gnames/brewdb/internal/iotesting"
	"github.com/gnames/brewdb/pkg/config"
	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/brewdb/pkg/format"
	"github.com/gnames/brewdb/pkg/mapping"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/brewdb/pkg/store"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func catalog() *mapping.Catalog {
	return &mapping.Catalog{
		Styles: []*schema.Style{
			{ID: "21", Name: "IPA"},
			{ID: "21A", Name: "American IPA", ParentID: ptr("21"),
				AltNames: ptr("West Coast IPA"),
				ABVMin:   ptr(5.5), ABVMax: ptr(7.5)},
			{ID: "21B", Name: "Specialty IPA", ParentID: ptr("21")},
			{ID: "21B-1", Name: "Black IPA", ParentID: ptr("21B")},
			{ID: "5", Name: "Pale Bitter European Beer"},
			{ID: "4A", Name: "Munich Helles", ParentID: ptr("5"),
				AltNames: ptr("Münchner Helles")},
		},
		Hops: []*schema.Hop{
			{ID: "cascade", Name: "Cascade"},
			{ID: "hallertauer-mittelfrueh", Name: "Hallertauer Mittelfrüh",
				AltNames: ptr("Hallertau Mittelfrueh, Hallertau Hallertauer")},
			{ID: "citra", Name: "Citra"},
		},
		Fermentables: []*schema.Fermentable{
			{ID: "pilsner-malt", Name: "Pilsner Malt", AltNames: ptr("Pils")},
			{ID: "munich-malt", Name: "Munich Malt",
				AltNames: ptr("Münchner Malt")},
		},
		Yeasts: []*schema.Yeast{
			{ID: "wyeast-london-esb-ale-1968", Name: "London ESB Ale",
				Lab: "Wyeast Labs", AltLab: ptr("Wyeast"), ProductID: ptr("1968")},
			{ID: "fermentis-safale-us-05", Name: "Safale US-05",
				Lab: "Fermentis", Brand: ptr("Safale"), ProductID: ptr("US-05")},
		},
	}
}

func openStore(t *testing.T, cat *mapping.Catalog) *iostore.DB {
	t.Helper()
	db := iotesting.OpenStore(t)
	require.NoError(t, db.SaveCatalog(context.Background(), cat))
	return db
}

func addRecipe(t *testing.T, db store.Store, uid string, res *format.ParseResult) {
	t.Helper()
	_, err := ioload.NewLoader(db).Import(context.Background(), uid, res)
	require.NoError(t, err)
}

func processor(db store.Store, opts ...config.Option) *iomap.Processor {
	cfg := config.New()
	cfg.Update(opts)
	return iomap.New(cfg, db)
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	return gnErr.Code
}

// kindIDs returns links of all rows of a kind in row order.
func kindIDs(t *testing.T, db store.Store, kind schema.Kind) []string {
	t.Helper()
	rows, err := db.MappingRows(context.Background(), kind, true)
	require.NoError(t, err)
	res := make([]string, len(rows))
	for i, v := range rows {
		if v.KindID != nil {
			res[i] = *v.KindID
		}
	}
	return res
}

func TestMapHops(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db := openStore(t, catalog())
	addRecipe(t, db, "test:1", &format.ParseResult{
		Hops: []format.HopDraft{
			{Kind: "Cascade (5.5 AA)"}, {Kind: "Hallertau"}, {Kind: "Mosaic"},
		},
	})
	addRecipe(t, db, "test:2", &format.ParseResult{
		Hops: []format.HopDraft{{Kind: "Citra / 28 grams"}},
	})

	p := processor(db, config.OptDatabaseBatchSize(2))
	stats, err := p.Map(ctx, schema.KindHop, false)
	require.NoError(t, err)
	assert.NotEmpty(stats.RunID)
	assert.Equal(4, stats.Total)
	assert.Equal(3, stats.Matched)
	assert.Equal(1, stats.Unmatched)
	assert.Equal(3, stats.Updated)
	assert.Equal(2, stats.Batches)
	assert.Equal(
		[]string{"cascade", "hallertauer-mittelfrueh", "", "citra"},
		kindIDs(t, db, schema.KindHop),
	)

	// only the unresolved row is left
	stats, err = p.Map(ctx, schema.KindHop, false)
	require.NoError(t, err)
	assert.Equal(1, stats.Total)
	assert.Equal(0, stats.Batches)

	// remapping all rows does not write unchanged links
	stats, err = p.Map(ctx, schema.KindHop, true)
	require.NoError(t, err)
	assert.Equal(4, stats.Total)
	assert.Equal(3, stats.Matched)
	assert.Equal(0, stats.Updated)
}

func TestMapFermentables(t *testing.T) {
	ctx := context.Background()
	db := openStore(t, catalog())
	addRecipe(t, db, "test:1", &format.ParseResult{
		Fermentables: []format.FermentableDraft{
			{Kind: "Pilsener", Amount: ptr(4000.0)},
			{Kind: "Münchner Malz", Amount: ptr(1000.0)},
			{Kind: "Rice Hulls"},
		},
	})

	stats, err := processor(db).Map(ctx, schema.KindFermentable, false)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Matched)
	assert.Equal(t, 1, stats.Batches)
	assert.Equal(t,
		[]string{"pilsner-malt", "munich-malt", ""},
		kindIDs(t, db, schema.KindFermentable),
	)
}

func TestMapYeasts(t *testing.T) {
	ctx := context.Background()
	db := openStore(t, catalog())
	addRecipe(t, db, "test:1", &format.ParseResult{
		Yeasts: []format.YeastDraft{
			{Kind: "London ESB", Lab: ptr("Wyeast"), ProductID: ptr("1968")},
			{Kind: "Safale US-05"},
			{Kind: "London ESB", Lab: ptr("Imperial")},
		},
	})

	stats, err := processor(db).Map(ctx, schema.KindYeast, false)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Matched)
	assert.Equal(t, 1, stats.Unmatched)
	assert.Equal(t,
		[]string{"wyeast-london-esb-ale-1968", "fermentis-safale-us-05", ""},
		kindIDs(t, db, schema.KindYeast),
	)
}

func TestMapStyles(t *testing.T) {
	ctx := context.Background()
	db := openStore(t, catalog())
	recipes := []struct {
		uid   string
		draft format.RecipeDraft
	}{
		{"test:1", format.RecipeDraft{Name: ptr("Pale"),
			StyleRaw: ptr("American IPA"), ABV: ptr(6.5)}},
		{"test:2", format.RecipeDraft{Name: ptr("Strong"),
			StyleRaw: ptr("American IPA"), ABV: ptr(12.0)}},
		{"test:3", format.RecipeDraft{Name: ptr("West Coast IPA")}},
		{"test:4", format.RecipeDraft{Name: ptr("Black IPA"),
			StyleRaw: ptr("Specialty IPA")}},
		{"test:5", format.RecipeDraft{Name: ptr("Hoppy American IPA")}},
		{"test:6", format.RecipeDraft{StyleRaw: ptr("Münchener Helles")}},
	}
	for _, v := range recipes {
		addRecipe(t, db, v.uid, &format.ParseResult{Recipe: v.draft})
	}

	stats, err := processor(db).Map(ctx, schema.KindStyle, false)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 4, stats.Matched)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, 1, stats.Unmatched)
	assert.Equal(t,
		[]string{"21A", "", "21A", "21B-1", "", "4A"},
		kindIDs(t, db, schema.KindStyle),
	)

	stats, err = processor(db, config.OptMappingFuzzyRecipeName(true)).
		Map(ctx, schema.KindStyle, false)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, "21A", kindIDs(t, db, schema.KindStyle)[4])

	rec, err := db.GetRecipe(ctx, "test:5")
	require.NoError(t, err)
	assert.Equal(t, "21A", *rec.StyleID)
}

func TestMapStylesLimitsDisabled(t *testing.T) {
	ctx := context.Background()
	db := openStore(t, catalog())
	addRecipe(t, db, "test:1", &format.ParseResult{
		Recipe: format.RecipeDraft{StyleRaw: ptr("American IPA"), ABV: ptr(12.0)},
	})

	stats, err := processor(db, config.OptStyleLimitsEnabled(false)).
		Map(ctx, schema.KindStyle, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, []string{"21A"}, kindIDs(t, db, schema.KindStyle))
}

func TestMapAll(t *testing.T) {
	ctx := context.Background()
	db := openStore(t, catalog())
	addRecipe(t, db, "test:1", &format.ParseResult{
		Recipe: format.RecipeDraft{StyleRaw: ptr("American IPA"), ABV: ptr(12.0)},
	})
	addRecipe(t, db, "test:2", &format.ParseResult{
		Recipe: format.RecipeDraft{Name: ptr("Hoppy American IPA")},
	})
	addRecipe(t, db, "test:3", &format.ParseResult{
		Recipe: format.RecipeDraft{StyleRaw: ptr("Munich Helles")},
	})

	err := db.UpdateKindID(ctx, schema.KindStyle, []store.Update{
		{ID: "test:1", KindID: ptr("21A")},
		{ID: "test:2", KindID: ptr("21B")},
		{ID: "test:3", KindID: ptr("21A")},
	})
	require.NoError(t, err)

	stats, err := processor(db).Map(ctx, schema.KindStyle, false)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)

	stats, err = processor(db).Map(ctx, schema.KindStyle, true)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Updated)
	// a rejected style is unlinked, an unresolved recipe keeps its link
	assert.Equal(t,
		[]string{"", "21B", "4A"},
		kindIDs(t, db, schema.KindStyle),
	)
}

func TestMapErrors(t *testing.T) {
	ctx := context.Background()

	cat := catalog()
	cat.Hops = append(cat.Hops, &schema.Hop{ID: "cascade-us", Name: "Cascade"})
	db := openStore(t, cat)
	addRecipe(t, db, "test:1", &format.ParseResult{
		Hops: []format.HopDraft{{Kind: "Cascade"}},
	})

	p := processor(db)
	_, err := p.Map(ctx, schema.KindHop, false)
	assert.Equal(t, errcode.MappingConflictError, errCode(t, err))
	assert.Equal(t, []string{""}, kindIDs(t, db, schema.KindHop))

	_, err = p.Map(ctx, schema.Kind("spice"), false)
	assert.Equal(t, errcode.MappingKindError, errCode(t, err))

	_, err = p.Unset(ctx, schema.Kind("spice"), "x")
	assert.Equal(t, errcode.MappingKindError, errCode(t, err))
}

func TestUnset(t *testing.T) {
	ctx := context.Background()
	db := openStore(t, catalog())
	addRecipe(t, db, "test:1", &format.ParseResult{
		Hops: []format.HopDraft{{Kind: "Cascade"}, {Kind: "Citra"}},
	})
	addRecipe(t, db, "test:2", &format.ParseResult{
		Hops: []format.HopDraft{{Kind: "US Cascade"}},
	})

	p := processor(db)
	_, err := p.Map(ctx, schema.KindHop, false)
	require.NoError(t, err)

	n, err := p.Unset(ctx, schema.KindHop, "cascade")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, []string{"", "citra", ""}, kindIDs(t, db, schema.KindHop))

	n, err = p.Unset(ctx, schema.KindHop, "cascade")
	require.NoError(t, err)
	assert.Zero(t, n)
}
