package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Component names one or more table columns that together form a single
// categorical variable. With several columns each row resolves to the tuple
// of its values, in the order given.
type Component []string

// ParseComponent splits a comma-separated list of column names, trimming
// surrounding whitespace. Returns ErrEmptyComponent if no name remains.
func ParseComponent(spec string) (Component, error) {
	var c Component
	for name := range strings.SplitSeq(spec, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c = append(c, name)
	}
	if len(c) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyComponent, spec)
	}
	return c, nil
}

// Validate returns ErrEmptyComponent if the component names no column.
func (c Component) Validate() error {
	if len(c) == 0 {
		return ErrEmptyComponent
	}
	return nil
}

// String joins the column names with "+", e.g. "age+gender".
func (c Component) String() string {
	return strings.Join(c, "+")
}

// Category is the value a Component takes on one row. It wraps the tuple of
// raw column values together with a canonical key; two categories are equal
// exactly when their keys are equal, which happens exactly when their tuples
// are equal.
type Category struct {
	key    string
	values []string
}

// NewCategory builds the category for the given tuple of values.
func NewCategory(values ...string) Category {
	v := make([]string, len(values))
	copy(v, values)
	return Category{key: encodeKey(v), values: v}
}

// encodeKey length-prefixes every value so that no choice of raw values can
// make two different tuples share a key.
func encodeKey(values []string) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}

// Key returns the canonical key, suitable as a map key.
func (c Category) Key() string { return c.key }

// Arity returns the number of values in the tuple.
func (c Category) Arity() int { return len(c.values) }

// Values returns a copy of the value tuple.
func (c Category) Values() []string {
	v := make([]string, len(c.values))
	copy(v, c.values)
	return v
}

// Equal reports whether both categories hold the same tuple.
func (c Category) Equal(o Category) bool { return c.key == o.key }

// String renders a single-column category as its raw value and a composite
// category as a parenthesised tuple, e.g. "(30-39, female)".
func (c Category) String() string {
	if len(c.values) == 1 {
		return c.values[0]
	}
	return "(" + strings.Join(c.values, ", ") + ")"
}

// Labels renders each category with String.
func Labels(cats []Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.String()
	}
	return out
}
