// Package param implements the immutable parameter sets bound to module
// instances at configuration time. A Set is built once by the config loader
// and never mutated afterwards; modules read from it during construction via
// the typed Get accessor.
package param

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMissing is returned when a requested parameter is not in the set.
	ErrMissing = errors.New("parameter not found")

	// ErrTypeMismatch is returned when a parameter exists but its stored
	// type differs from the requested one.
	ErrTypeMismatch = errors.New("parameter type mismatch")
)

// Set is an immutable, string-keyed collection of typed configuration values.
type Set struct {
	values map[string]any
}

// FromMap builds a Set from the given values. The map is copied, so the
// caller may reuse it freely afterwards.
func FromMap(values map[string]any) *Set {
	copied := make(map[string]any, len(values))
	for name, v := range values {
		copied[name] = v
	}
	return &Set{values: copied}
}

// Has reports whether the named parameter exists in the set.
func (s *Set) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Names returns the sorted names of every parameter in the set.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named parameter as type T. It fails with ErrMissing if the
// parameter is absent and ErrTypeMismatch if the stored value is not a T.
func Get[T any](s *Set, name string) (T, error) {
	var zero T
	v, ok := s.values[name]
	if !ok {
		return zero, fmt.Errorf("parameter %q: %w", name, ErrMissing)
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("parameter %q: %w: stored value is %T", name, ErrTypeMismatch, v)
	}
	return typed, nil
}
