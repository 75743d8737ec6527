// Package product implements a generic plumbing module multiplying two
// resolved scalars, typically a change-of-variables Jacobian and a matrix
// element weight, into a single integrand value.
package product

import (
	"github.com/vk/mcgridgo/internal/module"
	"github.com/vk/mcgridgo/internal/param"
	"github.com/vk/mcgridgo/internal/pool"
)

// Type is the registry name for this module.
const Type = "product"

// Product multiplies two resolved inputs into output "value".
type Product struct {
	lhs *pool.Input[float64]
	rhs *pool.Input[float64]

	value *pool.Output[float64]
}

// New resolves both factor references and produces the value slot.
func New(p *pool.Pool, name string, params *param.Set) (module.Module, error) {
	lhsTag, err := pool.TagParam(params, "lhs")
	if err != nil {
		return nil, err
	}
	rhsTag, err := pool.TagParam(params, "rhs")
	if err != nil {
		return nil, err
	}

	prod := &Product{}
	if prod.lhs, err = pool.Bind[float64](p, lhsTag); err != nil {
		return nil, err
	}
	if prod.rhs, err = pool.Bind[float64](p, rhsTag); err != nil {
		return nil, err
	}
	if prod.value, err = pool.Produce[float64](p, name, "value"); err != nil {
		return nil, err
	}
	return prod, nil
}

// Dimensions reports zero: the product consumes no sampler coordinate.
func (prod *Product) Dimensions() int {
	return 0
}

// Work multiplies the current factor values.
func (prod *Product) Work() {
	prod.value.Set(prod.lhs.Get() * prod.rhs.Get())
}

// Definition describes the module to the engine registry.
func Definition() *module.Definition {
	return &module.Definition{
		Type:        Type,
		Description: "Multiplies two resolved scalar values into a single output.",
		Inputs:      []string{"lhs", "rhs"},
		Outputs:     []string{"value"},
		New:         New,
	}
}
