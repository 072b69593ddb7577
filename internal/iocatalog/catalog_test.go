package iocatalog_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/brewdb/internal/iocatalog"
	"github.com/gnames/brewdb/internal/iotesting"
	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalogPath = filepath.Join("testdata", "catalog.yaml")

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	return gnErr.Code
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRead(t *testing.T) {
	assert := assert.New(t)
	cat, err := iocatalog.Read(catalogPath)
	require.NoError(t, err)

	require.Len(t, cat.Styles, 4)
	ipa := cat.Styles[1]
	assert.Equal("21A", ipa.ID)
	assert.Equal("21", *ipa.ParentID)
	assert.Equal("West Coast IPA", *ipa.AltNames)
	assert.Equal(7.5, *ipa.ABVMax)
	assert.InDelta(1.056, *ipa.OGMin, 1e-9)
	assert.InDelta(1.014, *ipa.FGMax, 1e-9)
	assert.True(cat.Styles[0].IsCategory())

	require.Len(t, cat.Hops, 3)
	assert.Equal("cascade", cat.Hops[0].ID)
	assert.Equal(7.0, *cat.Hops[0].AlphaMax)
	assert.Equal("hallertauer-mittelfrueh", cat.Hops[1].ID)
	assert.Equal("magnum", cat.Hops[2].ID)

	require.Len(t, cat.Fermentables, 2)
	assert.Equal("pilsner-malt", cat.Fermentables[0].ID)
	assert.Equal(3.5, *cat.Fermentables[0].ColorEBC)

	require.Len(t, cat.Yeasts, 2)
	assert.Equal("wyeast-labs-london-esb-ale-1968", cat.Yeasts[0].ID)
	assert.Equal("1968", *cat.Yeasts[0].ProductID)
	assert.Equal(71.0, *cat.Yeasts[0].AttenuationMax)
	assert.Equal("safale-safale-us-05", cat.Yeasts[1].ID)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		msg  string
		yaml string
		code gn.ErrorCode
	}{
		{"bad yaml", "styles: [", errcode.CatalogReadError},
		{"unknown parent",
			"styles:\n  - {id: 1A, name: Lite, parent: \"1\"}\n",
			errcode.CatalogSeedError},
		{"duplicate style",
			"styles:\n  - {id: \"1\", name: A}\n  - {id: \"01\", name: B}\n",
			errcode.CatalogSeedError},
		{"style without name",
			"styles:\n  - {id: \"1\"}\n", errcode.CatalogSeedError},
		{"hop without name",
			"hops:\n  - {use: aroma}\n", errcode.CatalogSeedError},
		{"duplicate hop",
			"hops:\n  - {name: Cascade}\n  - {name: cascade}\n",
			errcode.CatalogSeedError},
		{"yeast without lab",
			"yeasts:\n  - {name: US-05}\n", errcode.CatalogSeedError},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := iocatalog.Read(writeYAML(t, tt.yaml))
			assert.Equal(t, tt.code, errCode(t, err))
		})
	}

	_, err := iocatalog.Read("no-such-file.yaml")
	assert.Equal(t, errcode.CatalogReadError, errCode(t, err))
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	db := iotesting.OpenStore(t)

	s := iocatalog.New(db)
	_, err := s.Seed(ctx, catalogPath)
	require.NoError(t, err)

	// loading the same file again updates records
	_, err = s.Seed(ctx, catalogPath)
	require.NoError(t, err)

	cat, err := db.LoadCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, cat.Styles, 4)
	assert.Len(t, cat.Hops, 3)
	assert.Len(t, cat.Fermentables, 2)
	assert.Len(t, cat.Yeasts, 2)

	_, err = s.Seed(ctx, "no-such-file.yaml")
	assert.Equal(t, errcode.CatalogReadError, errCode(t, err))
}
