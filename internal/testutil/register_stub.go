package testutil

import (
	"github.com/vk/mcgridgo/internal/module"
	"github.com/vk/mcgridgo/internal/param"
	"github.com/vk/mcgridgo/internal/pool"
)

// constant produces a fixed scalar on every point and consumes no dimension.
type constant struct {
	value float64
	out   *pool.Output[float64]
}

func (c *constant) Dimensions() int { return 0 }
func (c *constant) Work()           { c.out.Set(c.value) }

// ConstantDefinition returns a stub module type "constant" producing the
// configured "value" parameter as output "value".
func ConstantDefinition() *module.Definition {
	return &module.Definition{
		Type:    "constant",
		Outputs: []string{"value"},
		New: func(p *pool.Pool, name string, params *param.Set) (module.Module, error) {
			value, err := param.Get[float64](params, "value")
			if err != nil {
				return nil, err
			}
			c := &constant{value: value}
			if c.out, err = pool.Produce[float64](p, name, "value"); err != nil {
				return nil, err
			}
			return c, nil
		},
	}
}

// scale multiplies its resolved source input by a fixed factor.
type scale struct {
	factor float64
	source *pool.Input[float64]
	out    *pool.Output[float64]
}

func (s *scale) Dimensions() int { return 0 }
func (s *scale) Work()           { s.out.Set(s.factor * s.source.Get()) }

// ScaleDefinition returns a stub module type "scale" producing
// "value" = factor * source.
func ScaleDefinition() *module.Definition {
	return &module.Definition{
		Type:    "scale",
		Inputs:  []string{"source"},
		Outputs: []string{"value"},
		New: func(p *pool.Pool, name string, params *param.Set) (module.Module, error) {
			factor, err := param.Get[float64](params, "factor")
			if err != nil {
				return nil, err
			}
			tag, err := pool.TagParam(params, "source")
			if err != nil {
				return nil, err
			}
			s := &scale{factor: factor}
			if s.source, err = pool.Bind[float64](p, tag); err != nil {
				return nil, err
			}
			if s.out, err = pool.Produce[float64](p, name, "value"); err != nil {
				return nil, err
			}
			return s, nil
		},
	}
}

// passthrough forwards one sampler coordinate, consuming one dimension.
type passthrough struct {
	psPoint *pool.Input[float64]
	out     *pool.Output[float64]
}

func (pt *passthrough) Dimensions() int { return 1 }
func (pt *passthrough) Work()           { pt.out.Set(pt.psPoint.Get()) }

// PassthroughDefinition returns a stub module type "passthrough" exposing
// its sampled coordinate as output "u".
func PassthroughDefinition() *module.Definition {
	return &module.Definition{
		Type:    "passthrough",
		Inputs:  []string{"ps_point"},
		Outputs: []string{"u"},
		New: func(p *pool.Pool, name string, params *param.Set) (module.Module, error) {
			tag, err := pool.TagParam(params, "ps_point")
			if err != nil {
				return nil, err
			}
			pt := &passthrough{}
			if pt.psPoint, err = pool.Bind[float64](p, tag); err != nil {
				return nil, err
			}
			if pt.out, err = pool.Produce[float64](p, name, "u"); err != nil {
				return nil, err
			}
			return pt, nil
		},
	}
}
