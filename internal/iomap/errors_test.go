package iomap

import (
	"errors"
	"testing"

	"github.com/gnames/brewdb/pkg/errcode"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingKindError_Structure(t *testing.T) {
	err := MappingKindError(schema.Kind("spice"))
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.MappingKindError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Contains(t, gnErr.Err.Error(), "spice")
}

func TestMappingBatchError_Structure(t *testing.T) {
	originalErr := errors.New("database is locked")

	err := MappingBatchError(schema.KindHop, 3, originalErr)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.MappingBatchError, gnErr.Code)
	assert.Equal(t, []any{3, schema.KindHop}, gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}
