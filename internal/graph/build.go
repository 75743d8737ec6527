package graph

import (
	"context"
	"fmt"

	"github.com/vk/mcgridgo/internal/config"
	"github.com/vk/mcgridgo/internal/ctxlog"
	"github.com/vk/mcgridgo/internal/module"
	"github.com/vk/mcgridgo/internal/pool"
)

// Build derives the producer-before-consumer graph for the configured module
// instances. Tags targeting the sampler are roots and add no edge. The
// returned graph is cycle-checked.
func Build(ctx context.Context, model *config.Model, reg *module.Registry) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)

	g := New()
	for _, inst := range model.Modules {
		g.AddNode(inst.Name)
	}

	for _, inst := range model.Modules {
		def, ok := reg.Lookup(inst.Type)
		if !ok {
			return nil, fmt.Errorf("module instance '%s': unknown module type '%s'", inst.Name, inst.Type)
		}
		for _, input := range def.Inputs {
			tag, err := pool.TagParam(inst.Params, input)
			if err != nil {
				return nil, fmt.Errorf("module instance '%s': %w", inst.Name, err)
			}
			if tag.Owner == config.SamplerOwner {
				continue
			}
			if err := g.AddEdge(tag.Owner, inst.Name); err != nil {
				return nil, fmt.Errorf("module instance '%s', input '%s': %w", inst.Name, input, err)
			}
		}
	}

	if err := g.DetectCycles(); err != nil {
		return nil, err
	}

	logger.Debug("Dependency graph built.", "node_count", g.Len())
	return g, nil
}
