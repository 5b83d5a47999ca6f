package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrValidation is returned for malformed or missing dataset columns,
	// out-of-range values or parameters, and duplicate risk IDs.
	ErrValidation = goerr.New("validation error")

	// ErrEmptyDataset marks an aggregate requested over zero records. Views
	// degrade to "no data" instead of failing.
	ErrEmptyDataset = goerr.New("empty dataset")
)

// Context keys for error values
const (
	RiskIDKey    = "risk_id"
	FieldKey     = "field"
	ValueKey     = "value"
	IndexKey     = "index"
	ParameterKey = "parameter"
	ColumnKey    = "column"
	LineKey      = "line"
	SourceKey    = "source"
)
