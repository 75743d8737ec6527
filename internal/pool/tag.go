package pool

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/vk/mcgridgo/internal/param"
)

// Tag is an unresolved reference to a value produced elsewhere in the
// pipeline. It holds target names only; Bind turns it into a resolved Input
// handle. The textual form is "owner::name", or "owner::name/i" to address
// one element of a vector-valued slot.
type Tag struct {
	Owner string
	Name  string
	Index int
}

// ParseTag parses the textual tag form. The element index is optional;
// Tag.Index is -1 when absent.
func ParseTag(raw string) (Tag, error) {
	owner, rest, found := strings.Cut(raw, "::")
	if !found || owner == "" || rest == "" {
		return Tag{}, fmt.Errorf("malformed input tag %q: want \"owner::name\"", raw)
	}
	tag := Tag{Owner: owner, Name: rest, Index: -1}
	if name, idx, found := strings.Cut(rest, "/"); found {
		i, err := strconv.Atoi(idx)
		if err != nil || i < 0 || name == "" {
			return Tag{}, fmt.Errorf("malformed input tag %q: bad element index", raw)
		}
		tag.Name = name
		tag.Index = i
	}
	return tag, nil
}

// Indexed reports whether the tag addresses one element of a vector slot.
func (t Tag) Indexed() bool {
	return t.Index >= 0
}

// String renders the tag back to its textual form.
func (t Tag) String() string {
	if t.Indexed() {
		return fmt.Sprintf("%s::%s/%d", t.Owner, t.Name, t.Index)
	}
	return t.Owner + "::" + t.Name
}

// TagParam reads the named string parameter from set and parses it as a Tag.
func TagParam(set *param.Set, name string) (Tag, error) {
	raw, err := param.Get[string](set, name)
	if err != nil {
		return Tag{}, err
	}
	tag, err := ParseTag(raw)
	if err != nil {
		return Tag{}, fmt.Errorf("parameter %q: %w", name, err)
	}
	return tag, nil
}

// Input is the resolved, read-only handle to a pool slot. It is created by
// Bind exactly once, before any Work call, and is valid for the pool's
// lifetime.
type Input[T any] struct {
	s     *slot
	index int
}

// Bind resolves tag against p and type-checks the target slot: the slot must
// hold a T, or a []T when the tag is indexed. It fails with ErrUnresolved if
// the slot was never produced and ErrTypeMismatch on a type conflict.
func Bind[T any](p *Pool, tag Tag) (*Input[T], error) {
	s, ok := p.lookup(tag.Owner, tag.Name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", tag, ErrUnresolved)
	}
	want := reflect.TypeFor[T]()
	if tag.Indexed() {
		if s.typ != reflect.SliceOf(want) {
			return nil, fmt.Errorf("%s: %w: slot holds %s, want []%s", tag, ErrTypeMismatch, s.typ, want)
		}
	} else if s.typ != want {
		return nil, fmt.Errorf("%s: %w: slot holds %s, want %s", tag, ErrTypeMismatch, s.typ, want)
	}
	return &Input[T]{s: s, index: tag.Index}, nil
}

// Get returns the slot's current value. Reading before the producer has run
// for the current point yields the zero value.
func (in *Input[T]) Get() T {
	var zero T
	if in.s.value == nil {
		return zero
	}
	if in.index >= 0 {
		vec := in.s.value.([]T)
		if in.index >= len(vec) {
			return zero
		}
		return vec[in.index]
	}
	return in.s.value.(T)
}
