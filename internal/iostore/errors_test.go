package iostore

import (
	"errors"
	"testing"

	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "brewdb", "postgres",
		originalErr)
	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 4)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

func TestErrors_Structure(t *testing.T) {
	originalErr := errors.New("boom")

	tests := []struct {
		name string
		err  error
		code gn.ErrorCode
		wrap bool
	}{
		{"unknown driver", UnknownDriverError("mysql"),
			errcode.DBConnectionError, false},
		{"gorm", GORMConnectionError("sqlite", originalErr),
			errcode.SchemaGORMConnectionError, true},
		{"migrate", MigrateSchemaError(originalErr),
			errcode.SchemaMigrateError, true},
		{"table check", TableCheckError(originalErr),
			errcode.DBTableCheckError, true},
		{"drop", DropTableError("hops", originalErr),
			errcode.DBDropTableError, true},
		{"query", QueryError("hops", originalErr),
			errcode.DBQueryError, true},
		{"write", WriteError("hops", originalErr),
			errcode.DBWriteError, true},
		{"not found", RecipeNotFoundError("test:1", originalErr),
			errcode.RecipeNotFoundError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			if tt.wrap {
				assert.ErrorIs(t, gnErr.Err, originalErr)
			}
		})
	}
}
