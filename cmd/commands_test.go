package cmd

import (
	"testing"

	"github.com/gnames/brewdb/pkg/schema"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		msg   string
		cmd   *cobra.Command
		use   string
		flags map[string]string
	}{
		{"import", getImportCmd(), "import FILE UID",
			map[string]string{"replace": "r", "format": "F"}},
		{"import-dir", getImportDirCmd(), "import-dir DIR SOURCE",
			map[string]string{"replace": "r", "format": "F", "jobs": "j"}},
		{"map", getMapCmd(), "map KIND",
			map[string]string{"all": "a", "fuzzy": "", "batch-size": "b"}},
		{"unset", getUnsetCmd(), "unset KIND ID", nil},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short)
			assert.Contains(t, tt.cmd.Long, "Examples:")
			assert.NotNil(t, tt.cmd.RunE)
			for name, short := range tt.flags {
				f := tt.cmd.Flags().Lookup(name)
				require.NotNil(t, f, "--%s flag should exist", name)
				assert.Equal(t, short, f.Shorthand)
			}
		})
	}
}

func TestCatalogCmd(t *testing.T) {
	cmd := getCatalogCmd()
	assert.Equal(t, "catalog", cmd.Use)

	load, _, err := cmd.Find([]string{"load"})
	require.NoError(t, err)
	assert.Equal(t, "load FILE", load.Use)
	assert.NotNil(t, load.RunE)
}

func TestMapKinds(t *testing.T) {
	tests := []struct {
		msg string
		arg string
		res []schema.Kind
		err bool
	}{
		{"all", "all", schema.Kinds, false},
		{"singular", "hop", []schema.Kind{schema.KindHop}, false},
		{"plural", "styles", []schema.Kind{schema.KindStyle}, false},
		{"malt", "malts", []schema.Kind{schema.KindFermentable}, false},
		{"unknown", "water", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res, err := mapKinds(tt.arg)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.res, res)
		})
	}
}
