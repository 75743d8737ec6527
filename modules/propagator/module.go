// Package propagator implements the relativistic Breit-Wigner propagator
// weight 1/((s - m²)² + m²Γ²) for a resolved invariant mass squared. Paired
// with the breitwigner generator's Jacobian it yields an exactly flat
// integrand, which is the canonical check that a peak has been mapped away.
package propagator

import (
	"github.com/vk/mcgridgo/internal/module"
	"github.com/vk/mcgridgo/internal/param"
	"github.com/vk/mcgridgo/internal/pool"
)

// Type is the registry name for this module.
const Type = "propagator"

// Weight is one configured propagator instance.
type Weight struct {
	mass  float64
	width float64

	s *pool.Input[float64]

	weight *pool.Output[float64]
}

// New binds the mass and width parameters, resolves the s reference, and
// produces the weight slot.
func New(p *pool.Pool, name string, params *param.Set) (module.Module, error) {
	mass, err := param.Get[float64](params, "mass")
	if err != nil {
		return nil, err
	}
	width, err := param.Get[float64](params, "width")
	if err != nil {
		return nil, err
	}
	tag, err := pool.TagParam(params, "s")
	if err != nil {
		return nil, err
	}

	w := &Weight{mass: mass, width: width}
	if w.s, err = pool.Bind[float64](p, tag); err != nil {
		return nil, err
	}
	if w.weight, err = pool.Produce[float64](p, name, "weight"); err != nil {
		return nil, err
	}
	return w, nil
}

// Dimensions reports zero: the propagator consumes no sampler coordinate.
func (w *Weight) Dimensions() int {
	return 0
}

// Work evaluates the propagator at the current invariant mass squared.
func (w *Weight) Work() {
	s := w.s.Get()
	d := s - w.mass*w.mass
	w.weight.Set(1 / (d*d + w.mass*w.mass*w.width*w.width))
}

// Definition describes the module to the engine registry.
func Definition() *module.Definition {
	return &module.Definition{
		Type:        Type,
		Description: "Evaluates the relativistic Breit-Wigner propagator weight at a resolved invariant mass squared.",
		Inputs:      []string{"s"},
		Outputs:     []string{"weight"},
		New:         New,
	}
}
