// Package breitwigner implements the Breit-Wigner change-of-variables
// module. It maps one uniform sample u in [0,1] into an invariant mass
// squared s distributed according to a relativistic Breit-Wigner resonance
// of mass m and width Γ, together with the Jacobian ds/du of the mapping:
//
//	y(u)  = -atan(m/Γ) + (π/2 + atan(m/Γ))·u
//	s(u)  = m·Γ·tan(y) + m²
//	ds/du = (π/2 + atan(m/Γ))·m·Γ / cos²(y)
//
// The substitution is the inverse CDF of the unnormalized Breit-Wigner
// density on s ∈ (0, ∞), so multiplying the integrand by the Jacobian
// removes the sharp 1/((s-m²)² + m²Γ²) propagator peak and leaves a nearly
// flat integrand over u.
package breitwigner

import (
	"math"

	"github.com/vk/mcgridgo/internal/module"
	"github.com/vk/mcgridgo/internal/param"
	"github.com/vk/mcgridgo/internal/pool"
)

// Type is the registry name for this module.
const Type = "breit_wigner"

// Generator is one configured Breit-Wigner instance. It consumes one
// integration dimension and keeps no state across invocations; Work is a
// pure function of mass, width, and the current sampled coordinate.
type Generator struct {
	mass  float64
	width float64

	psPoint *pool.Input[float64]

	s        *pool.Output[float64]
	jacobian *pool.Output[float64]
}

// New binds the mass and width parameters, produces the s and jacobian
// slots, and resolves the ps_point reference. Any missing or mistyped
// parameter, or an unresolvable ps_point tag, fails construction.
func New(p *pool.Pool, name string, params *param.Set) (module.Module, error) {
	mass, err := param.Get[float64](params, "mass")
	if err != nil {
		return nil, err
	}
	width, err := param.Get[float64](params, "width")
	if err != nil {
		return nil, err
	}
	tag, err := pool.TagParam(params, "ps_point")
	if err != nil {
		return nil, err
	}

	g := &Generator{mass: mass, width: width}
	if g.psPoint, err = pool.Bind[float64](p, tag); err != nil {
		return nil, err
	}
	if g.s, err = pool.Produce[float64](p, name, "s"); err != nil {
		return nil, err
	}
	if g.jacobian, err = pool.Produce[float64](p, name, "jacobian"); err != nil {
		return nil, err
	}
	return g, nil
}

// Dimensions reports the single uniform coordinate consumed per point.
func (g *Generator) Dimensions() int {
	return 1
}

// Work transforms the current sampled coordinate into s and its Jacobian.
// Callers must guarantee width > 0; a zero width divides by zero in the
// atan argument and is deliberately not defended here.
func (g *Generator) Work() {
	u := g.psPoint.Get()
	a := math.Atan(g.mass / g.width)
	r := math.Pi/2 + a
	y := -a + r*u
	cos := math.Cos(y)

	g.s.Set(g.mass*g.width*math.Tan(y) + g.mass*g.mass)
	g.jacobian.Set(r * g.mass * g.width / (cos * cos))
}

// Definition describes the module to the engine registry.
func Definition() *module.Definition {
	return &module.Definition{
		Type:        Type,
		Description: "Transforms a uniform sample into a Breit-Wigner distributed invariant mass squared plus the Jacobian of the transform.",
		Inputs:      []string{"ps_point"},
		Outputs:     []string{"s", "jacobian"},
		New:         New,
	}
}
