package types

// Table is a read-only categorical dataset. Each column holds one value per
// row and rows are positionally aligned across columns. Implementations must
// not change their contents while a metric call is in progress.
type Table interface {
	// Columns returns the column names in table order.
	Columns() []string

	// NumRows returns the number of observations.
	NumRows() int

	// Column returns the values of the named column. The returned slice is
	// shared with the table and must not be modified.
	// Returns ErrUnknownColumn if no column has that name.
	Column(name string) ([]string, error)
}
