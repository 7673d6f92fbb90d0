package types

import (
	"fmt"
	"iter"
)

// Entry pairs a metric name with its function.
type Entry[F any] struct {
	Name string
	Fn   F
}

// Registry is an ordered, immutable table of named metric functions. It is
// built once by NewRegistry and only read afterwards, so concurrent lookups
// need no locking.
type Registry[F any] struct {
	entries []Entry[F]
	index   map[string]int
}

// NewRegistry builds a registry from a fixed list of entries, preserving
// their order. It panics on an empty or repeated name: registries are
// declared statically and a bad table is a programming error.
func NewRegistry[F any](entries ...Entry[F]) Registry[F] {
	r := Registry[F]{
		entries: make([]Entry[F], len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.Name == "" {
			panic("types: registry entry with empty name")
		}
		if _, dup := r.index[e.Name]; dup {
			panic(fmt.Sprintf("types: duplicate registry entry %q", e.Name))
		}
		r.index[e.Name] = i
		r.entries[i] = e
	}
	return r
}

// Len returns the number of metrics.
func (r Registry[F]) Len() int { return len(r.entries) }

// Names returns the metric names in registry order.
func (r Registry[F]) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the metric registered under name, or ErrUnknownMetric.
func (r Registry[F]) Lookup(name string) (F, error) {
	i, ok := r.index[name]
	if !ok {
		var zero F
		return zero, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	return r.entries[i].Fn, nil
}

// All iterates over (name, metric) pairs in registry order.
func (r Registry[F]) All() iter.Seq2[string, F] {
	return func(yield func(string, F) bool) {
		for _, e := range r.entries {
			if !yield(e.Name, e.Fn) {
				return
			}
		}
	}
}

// Select returns a registry restricted to the named metrics, in the order
// given. Returns ErrUnknownMetric for a name that is not registered and
// ErrDuplicateMetric for a name given twice.
func (r Registry[F]) Select(names ...string) (Registry[F], error) {
	entries := make([]Entry[F], 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return Registry[F]{}, fmt.Errorf("%w: %q", ErrDuplicateMetric, name)
		}
		seen[name] = true
		fn, err := r.Lookup(name)
		if err != nil {
			return Registry[F]{}, err
		}
		entries = append(entries, Entry[F]{Name: name, Fn: fn})
	}
	return NewRegistry(entries...), nil
}
