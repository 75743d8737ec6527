// Package module defines the contract every computational unit in the
// pipeline implements, and the registry the engine instantiates them from.
//
// A module's lifecycle is strictly two-phase. Construction happens once per
// pipeline, before any evaluation: the factory binds every declared
// parameter, produces every output slot, and resolves every input reference,
// failing outright on a missing or mistyped parameter rather than running
// with defaults. After construction only Work is called, once per
// phase-space point, in producer-before-consumer order.
package module

import (
	"github.com/vk/mcgridgo/internal/param"
	"github.com/vk/mcgridgo/internal/pool"
)

// Module is one node in the computation pipeline.
type Module interface {
	// Dimensions reports how many independent uniform samples the module
	// consumes from the sampler for one phase-space point. The count is
	// fixed for the module's lifetime.
	Dimensions() int

	// Work executes one phase-space point: read the resolved inputs,
	// perform the computation, and overwrite every produced output slot.
	// All side effects go through the pool.
	Work()
}

// Factory constructs one module instance named name against p, binding
// parameters and resolving every input reference before returning.
type Factory func(p *pool.Pool, name string, params *param.Set) (Module, error)

// Definition describes a module type to the engine: the fixed type name used
// in configuration, which parameters hold input tags, which value names it
// produces, and how to build an instance.
type Definition struct {
	Type        string
	Description string
	Inputs      []string
	Outputs     []string
	New         Factory
}
