package executor

import (
	"fmt"
	"math/rand/v2"

	"github.com/vk/mcgridgo/internal/config"
	"github.com/vk/mcgridgo/internal/module"
	"github.com/vk/mcgridgo/internal/pool"
)

// evaluation is one worker's private pipeline: its own pool, its own module
// instances constructed in topological order, and the resolved integrand
// handle. Workers never share an evaluation.
type evaluation struct {
	modules   []module.Module
	point     *pool.Output[[]float64]
	integrand *pool.Input[float64]
	buf       []float64
	dims      int
}

// newEvaluation builds a fresh pipeline: sampler slot first, then every
// module instance in producer-before-consumer order so each constructor can
// resolve its input references against already-produced slots.
func (e *Executor) newEvaluation() (*evaluation, error) {
	p := pool.New()

	ev := &evaluation{}
	var err error
	if ev.point, err = pool.Produce[[]float64](p, config.SamplerOwner, config.SamplerValue); err != nil {
		return nil, err
	}

	for _, name := range e.order {
		inst := e.model.Instance(name)
		if inst == nil {
			return nil, fmt.Errorf("no module instance named '%s'", name)
		}
		def, ok := e.reg.Lookup(inst.Type)
		if !ok {
			return nil, fmt.Errorf("module instance '%s': unknown module type '%s'", inst.Name, inst.Type)
		}
		m, err := def.New(p, inst.Name, inst.Params)
		if err != nil {
			return nil, fmt.Errorf("failed to construct module instance '%s': %w", inst.Name, err)
		}
		ev.modules = append(ev.modules, m)
		ev.dims += m.Dimensions()
	}

	if err := e.checkSamplerIndices(ev.dims); err != nil {
		return nil, err
	}

	tag, err := pool.ParseTag(e.model.Run.Integrand)
	if err != nil {
		return nil, fmt.Errorf("run integrand: %w", err)
	}
	if ev.integrand, err = pool.Bind[float64](p, tag); err != nil {
		return nil, fmt.Errorf("run integrand: %w", err)
	}

	ev.buf = make([]float64, ev.dims)
	ev.point.Set(ev.buf)
	return ev, nil
}

// checkSamplerIndices verifies every sampler-targeting tag addresses a
// coordinate inside the pipeline's declared dimension count.
func (e *Executor) checkSamplerIndices(dims int) error {
	for _, inst := range e.model.Modules {
		def, ok := e.reg.Lookup(inst.Type)
		if !ok {
			continue
		}
		for _, input := range def.Inputs {
			tag, err := pool.TagParam(inst.Params, input)
			if err != nil {
				continue
			}
			if tag.Owner != config.SamplerOwner {
				continue
			}
			if !tag.Indexed() || tag.Index >= dims {
				return fmt.Errorf("module instance '%s', input '%s': tag '%s' must address a sampler coordinate below dimension count %d", inst.Name, input, tag, dims)
			}
		}
	}
	return nil
}

// evaluate runs one phase-space point: refill the sampler coordinates from
// the per-point sub-stream, run every module in order, read the integrand.
func (ev *evaluation) evaluate(seed uint64, index int) float64 {
	rng := rand.New(rand.NewPCG(seed, uint64(index)))
	for d := range ev.buf {
		ev.buf[d] = rng.Float64()
	}
	for _, m := range ev.modules {
		m.Work()
	}
	return ev.integrand.Get()
}
