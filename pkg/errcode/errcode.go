package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBDropTableError
	DBQueryError
	DBWriteError

	// Schema errors
	SchemaGORMConnectionError
	SchemaMigrateError

	// Format errors
	MalformedInputError
	UnknownFormatError

	// Loader errors
	InvalidUIDError
	FieldValidationError
	RecipeImportError
	RecipeNotFoundError

	// Mapping errors
	MappingConflictError
	MappingKindError
	MappingBatchError

	// Catalog errors
	CatalogReadError
	CatalogSeedError
)
