// Package pool implements the per-evaluation value store through which
// modules exchange named, typed values. The pool owns all slot storage;
// producers hold exclusive Output write handles and consumers hold resolved
// Input read handles. Values are never reset between phase-space points: each
// producer overwrites its own slots on every invocation, and execution order
// across modules is the executor's responsibility, not the pool's.
package pool

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrDuplicateOutput is returned when a (owner, name) slot is produced twice.
	ErrDuplicateOutput = errors.New("output already produced")

	// ErrUnresolved is returned when an input tag targets a slot that was
	// never produced.
	ErrUnresolved = errors.New("input reference does not resolve")

	// ErrTypeMismatch is returned when a slot exists but its declared type
	// differs from the requested one.
	ErrTypeMismatch = errors.New("slot type mismatch")
)

// Pool owns the storage for every named value exchanged between modules
// during phase-space point evaluations. One Pool serves one evaluation
// pipeline; concurrent pipelines each get their own.
type Pool struct {
	slots []*slot
	index map[string]int
}

// slot is one named, typed value owned by exactly one producer.
type slot struct {
	owner string
	name  string
	typ   reflect.Type
	value any
}

// New creates an empty pool.
func New() *Pool {
	return &Pool{index: make(map[string]int)}
}

func slotKey(owner, name string) string {
	return owner + "::" + name
}

func (p *Pool) lookup(owner, name string) (*slot, bool) {
	i, ok := p.index[slotKey(owner, name)]
	if !ok {
		return nil, false
	}
	return p.slots[i], true
}

// Len reports the number of registered slots.
func (p *Pool) Len() int {
	return len(p.slots)
}

// Produce registers the (owner, name) slot with element type T and returns
// its exclusive write handle. Registering the same slot twice fails with
// ErrDuplicateOutput.
func Produce[T any](p *Pool, owner, name string) (*Output[T], error) {
	k := slotKey(owner, name)
	if _, exists := p.index[k]; exists {
		return nil, fmt.Errorf("%s: %w", k, ErrDuplicateOutput)
	}
	s := &slot{owner: owner, name: name, typ: reflect.TypeFor[T]()}
	p.index[k] = len(p.slots)
	p.slots = append(p.slots, s)
	return &Output[T]{s: s}, nil
}

// Output is the exclusive write handle to one pool slot. Only the producing
// module holds it.
type Output[T any] struct {
	s *slot
}

// Set overwrites the slot's current value.
func (o *Output[T]) Set(v T) {
	o.s.value = v
}
