package module

import (
	"fmt"
	"log/slog"
	"sort"
)

// Registry maps module type names to their definitions. It is populated once
// at startup by an explicit bootstrap call (see internal/app), then read-only.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a module definition. Registering the same type name twice is
// a programmer error and panics.
func (r *Registry) Register(def *Definition) {
	if _, exists := r.defs[def.Type]; exists {
		panic(fmt.Sprintf("module definition with type '%s' already registered", def.Type))
	}
	slog.Debug("Registering module definition.", "type", def.Type)
	r.defs[def.Type] = def
}

// Lookup returns the definition for the given module type.
func (r *Registry) Lookup(moduleType string) (*Definition, bool) {
	def, ok := r.defs[moduleType]
	return def, ok
}

// Types returns the sorted list of registered module type names.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.defs))
	for t := range r.defs {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
