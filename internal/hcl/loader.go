// Package hcl implements the HCL-backed config.Loader. Grid files declare
// `module "<type>" "<instance>"` blocks whose attributes become the
// instance's parameter set, plus a single `run` block with the integration
// settings.
package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/mcgridgo/internal/config"
	"github.com/vk/mcgridgo/internal/ctxlog"
	"github.com/vk/mcgridgo/internal/param"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// moduleBlock is the raw form of a `module` block; its attribute body is
// translated into a param.Set.
type moduleBlock struct {
	Type string   `hcl:"module_type,label"`
	Name string   `hcl:"instance_name,label"`
	Body hcl.Body `hcl:",remain"`
}

// runBlock is the raw form of the `run` block.
type runBlock struct {
	Points    int    `hcl:"points"`
	Seed      uint64 `hcl:"seed,optional"`
	Integrand string `hcl:"integrand"`
	Workers   int    `hcl:"workers,optional"`
}

// fileRoot decodes all recognized top-level blocks from one grid file.
type fileRoot struct {
	Modules []*moduleBlock `hcl:"module,block"`
	Runs    []*runBlock    `hcl:"run,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// Load parses every .hcl file under the given paths and merges the result
// into a single config.Model. Exactly one run block must be present across
// all files, and instance names must be unique.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := findHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl grid files found under %v", paths)
	}
	logger.Debug("Discovered grid files.", "count", len(files))

	model := &config.Model{}
	seen := make(map[string]string)
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, block := range root.Modules {
			if prev, dup := seen[block.Name]; dup {
				return nil, fmt.Errorf("duplicate module instance name '%s' (first declared in %s)", block.Name, prev)
			}
			seen[block.Name] = file

			params, err := decodeParams(block.Body)
			if err != nil {
				return nil, fmt.Errorf("module instance '%s' in %s: %w", block.Name, file, err)
			}
			model.Modules = append(model.Modules, &config.Instance{
				Type:   block.Type,
				Name:   block.Name,
				Params: params,
			})
		}

		for _, block := range root.Runs {
			if model.Run != nil {
				return nil, fmt.Errorf("duplicate run block in %s", file)
			}
			if block.Points <= 0 {
				return nil, fmt.Errorf("run block in %s: points must be positive", file)
			}
			if block.Integrand == "" {
				return nil, fmt.Errorf("run block in %s: integrand is required", file)
			}
			model.Run = &config.Run{
				Points:    block.Points,
				Seed:      block.Seed,
				Integrand: block.Integrand,
				Workers:   block.Workers,
			}
		}
	}

	if model.Run == nil {
		return nil, fmt.Errorf("no run block found in any grid file")
	}

	logger.Debug("HCL loading complete.", "modules", len(model.Modules), "points", model.Run.Points)
	return model, nil
}

// decodeParams evaluates every attribute of a module block body into a
// parameter set.
func decodeParams(body hcl.Body) (*param.Set, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to read module arguments: %w", diags)
	}

	values := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("argument '%s': %w", name, diags)
		}
		converted, err := ctyToGo(val)
		if err != nil {
			return nil, fmt.Errorf("argument '%s': %w", name, err)
		}
		values[name] = converted
	}
	return param.FromMap(values), nil
}

// findHCLFiles walks the given paths and returns a flat, de-duplicated list
// of all .hcl files found.
func findHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}

		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && filepath.Ext(p) == ".hcl" {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return allFiles, nil
}
