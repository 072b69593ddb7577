package beerxml_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/brewdb/pkg/format"
	"github.com/gnames/brewdb/pkg/format/beerxml"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)
	data, err := os.ReadFile(filepath.Join("testdata", "muenchner-hell.xml"))
	require.NoError(t, err)

	p := beerxml.New()
	assert.Equal(format.BeerXML, p.Format())

	res, err := p.Parse(data)
	require.NoError(t, err)

	r := res.Recipe
	assert.Equal("Münchner Hell", *r.Name)
	assert.Equal("Max Mustermann", *r.Author)
	assert.Equal(time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC), *r.Created)
	assert.Equal("Munich Helles", *r.StyleRaw)
	assert.Equal(70.0, *r.ExtractEfficiency)
	assert.Equal(1.048, *r.OG)
	assert.Equal(1.01, *r.FG)
	assert.Equal(4.9, *r.ABV)
	assert.Equal(22.5, *r.IBU)
	assert.Equal(9.5, *r.EBC)
	assert.Nil(r.SRM)
	assert.Equal(20.0, *r.CastOutWort)
	assert.Equal(90.0, *r.BoilingTime)
	assert.Equal(16.0, *r.MashWater)
	assert.Equal(12.0, *r.SpargeWater)

	require.Len(t, res.Fermentables, 3)
	assert.Equal("Pilsner Malt", res.Fermentables[0].Kind)
	assert.Equal(4200.0, *res.Fermentables[0].Amount)
	assert.Equal("Germany", *res.Fermentables[0].Origin)
	assert.Equal(schema.FermentableAdjunct, *res.Fermentables[2].Form)
	assert.Nil(res.Fermentables[2].Yield)

	require.Len(t, res.Hops, 4)
	uses := make([]string, len(res.Hops))
	for i, v := range res.Hops {
		uses[i] = *v.Use
	}
	assert.Equal([]string{
		schema.HopUseBoil, schema.HopUseBoil,
		schema.HopUseAroma, schema.HopUseDryHop,
	}, uses)
	assert.Equal("Hallertauer Mittelfrüh", res.Hops[0].Kind)
	assert.Equal(30.0, *res.Hops[0].Amount)
	assert.Equal("Hersbrucker", *res.Hops[0].Substitutes)
	assert.Equal(schema.HopTypeDualPurpose, *res.Hops[1].Type)
	assert.Equal(schema.HopFormLeaf, *res.Hops[1].Form)
	assert.Equal(schema.HopFormExtract, *res.Hops[2].Form)
	assert.Nil(res.Hops[3].Form)

	require.Len(t, res.Yeasts, 1)
	y := res.Yeasts[0]
	assert.Equal("Wyeast", *y.Lab)
	assert.Equal("1968", *y.ProductID)
	assert.Equal(schema.YeastAle, *y.Type)
	assert.Equal(schema.YeastLiquid, *y.Form)
	assert.Equal(125.0, *y.Amount)
	assert.False(*y.AmountIsWeight)
	assert.Equal(69.0, *y.AttenuationMin)
	assert.Equal(69.0, *y.AttenuationMax)
	assert.Equal(schema.FlocculationVeryHigh, *y.Flocculation)
}

func TestParseColor(t *testing.T) {
	assert := assert.New(t)
	doc := `<RECIPES><RECIPE><NAME>Dark</NAME>
<BATCH_SIZE>19</BATCH_SIZE>
<FERMENTABLES><FERMENTABLE><NAME>Dark Crystal</NAME>
<AMOUNT>2.0</AMOUNT><COLOR>37</COLOR></FERMENTABLE></FERMENTABLES>
</RECIPE></RECIPES>`

	res, err := beerxml.New().Parse([]byte(doc))
	require.NoError(t, err)

	r := res.Recipe
	// 1.4922 * (2 kg * 37 °L * 8.3454 / 19 L) ^ 0.6859
	assert.InDelta(16.2501, *r.SRM, 1e-4)
	assert.Nil(r.EBC)
	// no yield, so gravity stays unknown
	assert.Nil(r.OG)
	assert.Nil(r.FG)
	assert.Nil(r.IBU)
}

func TestParseColorUnits(t *testing.T) {
	tests := []struct {
		color    string
		srm, ebc *float64
	}{
		{"12", ptr(12.0), nil},
		{"12.0 SRM", ptr(12.0), nil},
		{"23.6 EBC", nil, ptr(23.6)},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			doc := "<RECIPES><RECIPE><COLOR>" + tt.color +
				"</COLOR></RECIPE></RECIPES>"
			res, err := beerxml.New().Parse([]byte(doc))
			require.NoError(t, err)
			assert.Equal(t, tt.srm, res.Recipe.SRM)
			assert.Equal(t, tt.ebc, res.Recipe.EBC)
		})
	}
}

func TestParseProductID(t *testing.T) {
	tests := []struct {
		id  string
		res string
	}{
		{"1968.0", "1968"},
		{"WLP001", "WLP001"},
		{"-5", "-5"},
		{"1e30", "1e30"},
		{"9007199254740993", "9007199254740993"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			doc := "<RECIPES><RECIPE><YEASTS><YEAST><NAME>Ale</NAME><PRODUCT_ID>" +
				tt.id + "</PRODUCT_ID></YEAST></YEASTS></RECIPE></RECIPES>"
			res, err := beerxml.New().Parse([]byte(doc))
			require.NoError(t, err)
			require.Len(t, res.Yeasts, 1)
			require.NotNil(t, res.Yeasts[0].ProductID)
			assert.Equal(t, tt.res, *res.Yeasts[0].ProductID)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not xml", "BeerXML"},
		{"no container", "<RECIPE><NAME>A</NAME></RECIPE>"},
		{"no recipe", "<RECIPES></RECIPES>"},
		{"two recipes", "<RECIPES><RECIPE><NAME>A</NAME></RECIPE>" +
			"<RECIPE><NAME>B</NAME></RECIPE></RECIPES>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := beerxml.New().Parse([]byte(tt.doc))
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.MalformedInputError, gnErr.Code)
		})
	}
}

func ptr(f float64) *float64 {
	return &f
}
