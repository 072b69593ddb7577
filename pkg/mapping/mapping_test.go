package mapping_test

import (
	"testing"

	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/brewdb/pkg/mapping"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func same(s string) []string { return []string{s} }

func TestCandidateWeight(t *testing.T) {
	tests := []struct {
		pattern string
		weight  int
	}{
		{"ipa", 1003},
		{"india pale ale hop", 1018},
		{"east_kent goldings", 2018},
		{"el dorado", 1009},
		{"münchner", 1008},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			c := mapping.Candidate[string]{Pattern: tt.pattern}
			assert.Equal(t, tt.weight, c.Weight())
		})
	}
}

func TestNameObjectMapRanking(t *testing.T) {
	assert := assert.New(t)
	m := mapping.NewNameObjectMap[string](same, false)
	require.NoError(t, m.Add("ipa", "E1"))
	require.NoError(t, m.Add("india pale ale hop", "E2"))

	cs := m.Candidates("best india pale ale hop ipa")
	require.Len(t, cs, 2)
	best, ok := mapping.Best(cs)
	assert.True(ok)
	assert.Equal("E2", best.Object)

	// equal weights go to the later candidate
	m = mapping.NewNameObjectMap[string](same, false)
	require.NoError(t, m.Add("abc", "X"))
	require.NoError(t, m.Add("xyz", "Y"))
	best, ok = mapping.Best(m.Candidates("abc xyz"))
	assert.True(ok)
	assert.Equal("Y", best.Object)

	// a longer one-word pattern beats a shorter two-word one
	m = mapping.NewNameObjectMap[string](same, false)
	require.NoError(t, m.Add("el dorado", "A"))
	require.NoError(t, m.Add("centennial", "B"))
	best, ok = mapping.Best(m.Candidates("el dorado centennial blend"))
	assert.True(ok)
	assert.Equal("B", best.Object)

	_, ok = mapping.Best[string](nil)
	assert.False(ok)
}

func TestNameObjectMapConflict(t *testing.T) {
	assert := assert.New(t)
	m := mapping.NewNameObjectMap[string](same, false)
	require.NoError(t, m.Add("cascade", "A"))
	require.NoError(t, m.Add("cascade", "A"))

	err := m.Add("cascade", "B")
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(errcode.MappingConflictError, gnErr.Code)
	assert.Equal([]any{"cascade", "B", "A"}, gnErr.Vars)

	m = mapping.NewNameObjectMap[string](same, true)
	require.NoError(t, m.Add("cascade", "A"))
	require.NoError(t, m.Add("cascade", "B"))
	require.NoError(t, m.Add("cascade", "A"))
	_, ok = m.Match("cascade")
	assert.False(ok)
	assert.Equal(1, m.Len())
}

func hops() []*schema.Hop {
	return []*schema.Hop{
		{ID: "cascade", Name: "Cascade"},
		{ID: "hallertauer-mittelfrueh", Name: "Hallertauer Mittelfrüh",
			AltNames: ptr("Hallertau Mittelfrueh, Hallertau Hallertauer")},
		{ID: "perle", Name: "Perle"},
		{ID: "magnum", Name: "Magnum", AltNamesExtra: ptr("Hallertauer Magnum")},
		{ID: "citra", Name: "Citra"},
	}
}

func TestHopMapper(t *testing.T) {
	m, err := mapping.NewHopMapper(hops())
	require.NoError(t, err)

	tests := []struct {
		raw string
		id  string
	}{
		{"Cascade", "cascade"},
		{"Hallertau", "hallertauer-mittelfrueh"},
		{"hallertauer", "hallertauer-mittelfrueh"},
		{"Hallertauer Mittelfruh", "hallertauer-mittelfrueh"},
		{"Cascade (5.5 AA)", "cascade"},
		{"Northern Brewer - Perle", "perle"},
		{"Citra / 28 grams", "citra"},
		{"US Magnum hops", "magnum"},
		{"Hallertauer Magnum", "magnum"},
		{"Hallertauer Magnum pellets", "magnum"},
		{"Mosaic", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			h, ok := m.Resolve(tt.raw)
			if tt.id == "" {
				assert.False(t, ok)
				assert.Nil(t, h)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.id, h.ID)
		})
	}
}

func TestHopMapperLongestPattern(t *testing.T) {
	m, err := mapping.NewHopMapper([]*schema.Hop{
		{ID: "el-dorado", Name: "El Dorado"},
		{ID: "centennial", Name: "Centennial"},
	})
	require.NoError(t, err)

	h, ok := m.Resolve("El Dorado Centennial Blend")
	require.True(t, ok)
	assert.Equal(t, "centennial", h.ID)
}

func TestHopMapperConflict(t *testing.T) {
	hs := append(hops(), &schema.Hop{ID: "cascade-2", Name: "Cascade"})
	_, err := mapping.NewHopMapper(hs)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.MappingConflictError, gnErr.Code)
}

func TestFermentableMapper(t *testing.T) {
	fs := []*schema.Fermentable{
		{ID: "pilsner-malt", Name: "Pilsner Malt", AltNames: ptr("Pils")},
		{ID: "caramunich-i", Name: "CaraMunich I"},
		{ID: "munich-malt", Name: "Munich Malt", AltNames: ptr("Münchner Malz")},
		{ID: "wheat-malt", Name: "Wheat Malt", AltNames: ptr("Weizen Malt")},
		{ID: "crystal-malt", Name: "Crystal Malt"},
	}
	m, err := mapping.NewFermentableMapper(fs)
	require.NoError(t, err)

	tests := []struct {
		raw string
		id  string
	}{
		{"Pilsener", "pilsner-malt"},
		{"Pilsner Malz", "pilsner-malt"},
		{"CaraMunich 1", "caramunich-i"},
		{"Münchener Malz", "munich-malt"},
		{"Muenchner Malz", "munich-malt"},
		{"Weizenmalz hell", "wheat-malt"},
		{"Cara Malt", "crystal-malt"},
		{"Munich Type Malt", "munich-malt"},
		{"Rice Hulls", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			f, ok := m.Resolve(tt.raw)
			if tt.id == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.id, f.ID)
		})
	}
}

func yeasts() []*schema.Yeast {
	return []*schema.Yeast{
		{ID: "wyeast-london-esb-ale-1968", Name: "London ESB Ale",
			Lab: "Wyeast Labs", AltLab: ptr("Wyeast"), ProductID: ptr("1968"),
			AltNames: ptr("House Ale")},
		{ID: "wyeast-american-ale-1056", Name: "American Ale",
			Lab: "Wyeast Labs", AltLab: ptr("Wyeast"), ProductID: ptr("1056"),
			AltNames: ptr("House Ale")},
		{ID: "wyeast-bohemian-lager", Name: "Bohemian Lager",
			Lab: "Wyeast Labs", AltLab: ptr("Wyeast")},
		{ID: "fermentis-safale-us-05", Name: "Safale US-05",
			Lab: "Fermentis", Brand: ptr("Safale"), ProductID: ptr("US-05")},
		{ID: "white-labs-california-ale-wlp001", Name: "California Ale",
			Lab: "White Labs", ProductID: ptr("WLP001")},
	}
}

func yeastChain(t *testing.T) mapping.Chain[*schema.Yeast] {
	ys := yeasts()
	brands, err := mapping.NewYeastBrandMapper(ys)
	require.NoError(t, err)
	byID, err := mapping.NewYeastProductIDMapper(brands, ys)
	require.NoError(t, err)
	byName, err := mapping.NewYeastProductNameMapper(brands, ys)
	require.NoError(t, err)
	return mapping.Chain[*schema.Yeast]{byID, byName}
}

func TestYeastMapper(t *testing.T) {
	chain := yeastChain(t)

	tests := []struct {
		msg string
		it  mapping.Item
		id  string
	}{
		{"brand alias and id in name",
			mapping.Item{Name: "Wyeast 1968 London ESB"},
			"wyeast-london-esb-ale-1968"},
		{"lab field",
			mapping.Item{Name: "London ESB", Lab: "Wyeast", ProductID: "1968"},
			"wyeast-london-esb-ale-1968"},
		{"product name",
			mapping.Item{Name: "American Ale", Lab: "Wyeast"},
			"wyeast-american-ale-1056"},
		{"product name without id",
			mapping.Item{Name: "Bohemian Lager Yeast", Lab: "Wyeast Labs"},
			"wyeast-bohemian-lager"},
		{"brand",
			mapping.Item{Name: "Safale US-05"},
			"fermentis-safale-us-05"},
		{"spelled product id",
			mapping.Item{Name: "California Ale", Lab: "White Labs", ProductID: "WLP 001"},
			"white-labs-california-ale-wlp001"},
		{"ambiguous name",
			mapping.Item{Name: "House Ale", Lab: "Wyeast"}, ""},
		{"brand without product",
			mapping.Item{Name: "Wyeast 9999 Mystery"}, ""},
		{"unknown brand",
			mapping.Item{Name: "London ESB", Lab: "Imperial"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			y, ok := chain.Map(tt.it)
			if tt.id == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.id, y.ID)
		})
	}
}

func styles() []*schema.Style {
	return []*schema.Style{
		{ID: "21", Name: "IPA"},
		{ID: "21A", Name: "American IPA", ParentID: ptr("21"),
			AltNames: ptr("West Coast IPA")},
		{ID: "21B", Name: "Specialty IPA", ParentID: ptr("21")},
		{ID: "21B-1", Name: "Black IPA", ParentID: ptr("21B")},
		{ID: "21B-2", Name: "Red IPA", ParentID: ptr("21B")},
		{ID: "5", Name: "Pale Bitter European Beer"},
		{ID: "5D", Name: "German Pils", ParentID: ptr("5"),
			AltNames: ptr("German Pilsner")},
		{ID: "4A", Name: "Munich Helles", ParentID: ptr("5"),
			AltNames: ptr("Münchner Helles")},
	}
}

func TestStyleMapper(t *testing.T) {
	m, err := mapping.NewStyleMapper(styles())
	require.NoError(t, err)

	tests := []struct {
		msg string
		it  mapping.Item
		id  string
	}{
		{"name", mapping.Item{Name: "American IPA"}, "21A"},
		{"expanded ipa", mapping.Item{Name: "American India Pale Ale"}, "21A"},
		{"lager", mapping.Item{Name: "German Lager"}, "5D"},
		{"muenchener", mapping.Item{Name: "Münchener Helles"}, "4A"},
		{"sub-style", mapping.Item{Name: "Specialty IPA", RecipeName: "Black IPA"},
			"21B-1"},
		{"sub-style needs exact name",
			mapping.Item{Name: "Specialty IPA", RecipeName: "My Black IPA"}, "21B"},
		{"category", mapping.Item{Name: "IPA"}, ""},
		{"empty", mapping.Item{RecipeName: "American IPA"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			s, ok := m.Map(tt.it)
			if tt.id == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.id, s.ID)
		})
	}
}

func TestRecipeNameStyleMapper(t *testing.T) {
	assert := assert.New(t)
	exact, err := mapping.NewRecipeNameStyleMapper(styles(), true)
	require.NoError(t, err)
	fuzzy, err := mapping.NewRecipeNameStyleMapper(styles(), false)
	require.NoError(t, err)

	s, ok := exact.Map(mapping.Item{RecipeName: "West Coast IPA"})
	assert.True(ok)
	assert.Equal("21A", s.ID)

	_, ok = exact.Map(mapping.Item{RecipeName: "Hoppy American IPA"})
	assert.False(ok)

	s, ok = fuzzy.Map(mapping.Item{RecipeName: "Hoppy American IPA"})
	assert.True(ok)
	assert.Equal("21A", s.ID)
}

func TestStyleLimits(t *testing.T) {
	ipa := &schema.Style{
		ABVMin: ptrF(5.5), ABVMax: ptrF(7.5),
		IBUMin: ptrF(40), IBUMax: ptrF(70),
		SRMMin: ptrF(6), SRMMax: ptrF(14),
	}
	stout := &schema.Style{SRMMin: ptrF(30), SRMMax: ptrF(40)}
	limits := mapping.DefaultStyleLimits()

	tests := []struct {
		msg   string
		style *schema.Style
		it    mapping.Item
		ok    bool
	}{
		{"no values", ipa, mapping.Item{}, true},
		{"inside", ipa, mapping.Item{ABV: ptrF(6.5), IBU: ptrF(55), SRM: ptrF(8)}, true},
		{"upper tolerance", ipa, mapping.Item{ABV: ptrF(8.2)}, true},
		{"too strong", ipa, mapping.Item{ABV: ptrF(8.3)}, false},
		{"too weak", ipa, mapping.Item{ABV: ptrF(4.9)}, false},
		{"too bitter", ipa, mapping.Item{IBU: ptrF(80)}, false},
		{"too dark", ipa, mapping.Item{SRM: ptrF(16)}, false},
		{"unbounded color", stout, mapping.Item{SRM: ptrF(60)}, true},
		{"too light", stout, mapping.Item{SRM: ptrF(26)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.ok, limits.Allows(tt.style, tt.it))
		})
	}

	limits.Enabled = false
	assert.True(t, limits.Allows(ipa, mapping.Item{ABV: ptrF(12)}))
}

func TestResolveDeterministic(t *testing.T) {
	names := []string{
		"Cascade", "Hallertau", "US Magnum hops", "Mosaic", "Citra / 28 grams",
	}
	m1, err := mapping.NewHopMapper(hops())
	require.NoError(t, err)
	m2, err := mapping.NewHopMapper(hops())
	require.NoError(t, err)

	for _, v := range names {
		h1, ok1 := m1.Resolve(v)
		h1again, ok1again := m1.Resolve(v)
		h2, ok2 := m2.Resolve(v)
		assert.Equal(t, ok1, ok1again, v)
		assert.Equal(t, ok1, ok2, v)
		if ok1 {
			assert.Same(t, h1, h1again, v)
			assert.Equal(t, h1.ID, h2.ID, v)
		}
	}
}

func ptr(s string) *string {
	return &s
}

func ptrF(f float64) *float64 {
	return &f
}
