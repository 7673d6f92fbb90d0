package types

import "errors"

// Input validation errors. Metric calls return these wrapped with context;
// callers test with errors.Is.
var (
	ErrUnknownColumn          = errors.New("unknown column")
	ErrEmptyTable             = errors.New("table has no rows")
	ErrDegenerateDistribution = errors.New("distribution has no populated categories")
	ErrDegenerateAssociation  = errors.New("association needs at least two categories per component")
	ErrEmptyComponent         = errors.New("component must name at least one column")
)

// Construction errors.
var (
	ErrUnknownMetric     = errors.New("unknown metric")
	ErrDuplicateMetric   = errors.New("duplicate metric")
	ErrRaggedTable       = errors.New("columns have different lengths")
	ErrDuplicateColumn   = errors.New("duplicate column name")
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrNegativeCount     = errors.New("count must not be negative")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrUnsupportedFormat = errors.New("unsupported input format")
)
