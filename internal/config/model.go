package config

import (
	"github.com/vk/mcgridgo/internal/param"
)

// Sampler slot identity. The executor owns this slot and refills it with the
// uniformly sampled coordinates before each phase-space point; module input
// tags address single coordinates as "sampler::point/i".
const (
	SamplerOwner = "sampler"
	SamplerValue = "point"
)

// Instance is the format-agnostic representation of one configured `module`
// block: a named instantiation of a registered module type with its bound
// parameters.
type Instance struct {
	Type   string
	Name   string
	Params *param.Set
}

// Run holds the integration run settings from the `run` block.
type Run struct {
	Points    int
	Seed      uint64
	Integrand string
	Workers   int
}

// Model is the unified, format-agnostic representation of one grid
// configuration: the module instances and the run settings.
type Model struct {
	Modules []*Instance
	Run     *Run
}

// Instance returns the named module instance, or nil if it is not declared.
func (m *Model) Instance(name string) *Instance {
	for _, inst := range m.Modules {
		if inst.Name == name {
			return inst
		}
	}
	return nil
}
