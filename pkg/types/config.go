package types

import "errors"

// Config holds presentation and sweep parameters shared by the CLI. DataDir
// is where imported SQLite databases are written; empty defers to the
// environment and platform default.
type Config struct {
	Precision int    `json:"precision" yaml:"precision"`
	Workers   int    `json:"workers" yaml:"workers"`
	Normalize string `json:"normalize" yaml:"normalize"`
	Sort      string `json:"sort" yaml:"sort"`
	Delimiter string `json:"delimiter" yaml:"delimiter"`
	DataDir   string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
}

// Normalisation axes for rendered result tables.
const (
	NormalizeNone = "none"
	NormalizeRows = "rows"
	NormalizeCols = "cols"
)

// Sort orders for rendered result tables.
const (
	SortNone       = "none"
	SortAscending  = "ascending"
	SortDescending = "descending"
)

// Config validation errors.
var (
	ErrPrecisionInvalid = errors.New("precision must be between 0 and 12")
	ErrWorkersInvalid   = errors.New("workers must not be negative")
	ErrNormalizeUnknown = errors.New("unknown normalize axis")
	ErrSortUnknown      = errors.New("unknown sort order")
	ErrDelimiterInvalid = errors.New("delimiter must be a single character")
)

var knownNormalize = map[string]bool{
	"":            true,
	NormalizeNone: true,
	NormalizeRows: true,
	NormalizeCols: true,
}

var knownSort = map[string]bool{
	"":             true,
	SortNone:       true,
	SortAscending:  true,
	SortDescending: true,
}

// DefaultConfig returns the settings used when no config file is present.
// Workers of zero means one worker per available CPU.
func DefaultConfig() Config {
	return Config{
		Precision: 3,
		Workers:   0,
		Normalize: NormalizeNone,
		Sort:      SortNone,
		Delimiter: ",",
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Precision < 0 || c.Precision > 12 {
		return ErrPrecisionInvalid
	}
	if c.Workers < 0 {
		return ErrWorkersInvalid
	}
	if !knownNormalize[c.Normalize] {
		return ErrNormalizeUnknown
	}
	if !knownSort[c.Sort] {
		return ErrSortUnknown
	}
	if len([]rune(c.Delimiter)) > 1 {
		return ErrDelimiterInvalid
	}
	return nil
}
