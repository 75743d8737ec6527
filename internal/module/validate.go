package module

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/mcgridgo/internal/config"
	"github.com/vk/mcgridgo/internal/ctxlog"
	"github.com/vk/mcgridgo/internal/pool"
)

// Validate performs a strict parity check between the loaded configuration
// and the registered module definitions before anything is constructed. It
// verifies that every instance's type is registered, that every declared
// input-tag parameter is present and parseable, and that every tag targets
// either the sampler or a declared output of a declared instance.
func (r *Registry) Validate(ctx context.Context, model *config.Model) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, inst := range model.Modules {
		def, ok := r.Lookup(inst.Type)
		if !ok {
			errs = append(errs, fmt.Sprintf("module instance '%s': unknown module type '%s'", inst.Name, inst.Type))
			continue
		}
		for _, input := range def.Inputs {
			tag, err := pool.TagParam(inst.Params, input)
			if err != nil {
				errs = append(errs, fmt.Sprintf("module instance '%s': %v", inst.Name, err))
				continue
			}
			if err := r.checkTarget(model, tag); err != nil {
				errs = append(errs, fmt.Sprintf("module instance '%s', input '%s': %v", inst.Name, input, err))
			}
		}
	}

	if model.Run != nil {
		tag, err := pool.ParseTag(model.Run.Integrand)
		if err != nil {
			errs = append(errs, fmt.Sprintf("run integrand: %v", err))
		} else if err := r.checkTarget(model, tag); err != nil {
			errs = append(errs, fmt.Sprintf("run integrand: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Configuration validation passed.", "instances", len(model.Modules))
	return nil
}

// checkTarget verifies that a tag addresses the sampler slot or a declared
// output of a declared module instance.
func (r *Registry) checkTarget(model *config.Model, tag pool.Tag) error {
	if tag.Owner == config.SamplerOwner {
		if tag.Name != config.SamplerValue {
			return fmt.Errorf("tag '%s': sampler produces only '%s'", tag, config.SamplerValue)
		}
		return nil
	}
	producer := model.Instance(tag.Owner)
	if producer == nil {
		return fmt.Errorf("tag '%s': no module instance named '%s'", tag, tag.Owner)
	}
	def, ok := r.Lookup(producer.Type)
	if !ok {
		return fmt.Errorf("tag '%s': producer has unknown module type '%s'", tag, producer.Type)
	}
	if !slices.Contains(def.Outputs, tag.Name) {
		return fmt.Errorf("tag '%s': module type '%s' does not produce '%s'", tag, producer.Type, tag.Name)
	}
	return nil
}
