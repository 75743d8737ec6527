package config

import "context"

// Loader loads grid configuration from the given paths into the unified
// model. Implementations are format-specific; the rest of the engine only
// sees the Model.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}
