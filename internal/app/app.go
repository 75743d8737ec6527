package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/mcgridgo/internal/config"
	"github.com/vk/mcgridgo/internal/ctxlog"
	"github.com/vk/mcgridgo/internal/module"
)

// Config holds everything an App needs to run one integration.
type Config struct {
	GridPath   string
	LogFormat  string
	LogLevel   string
	OutputPath string

	// CLI overrides for the grid's run block; zero means "use the grid".
	Points  int
	Seed    uint64
	Workers int
}

// App encapsulates the engine's dependencies, configuration, and lifecycle.
// Each App owns an isolated logger and registry.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *module.Registry
	model    *config.Model
	config   *Config
}

// New constructs a fully initialized App: logger, populated registry, loaded
// and validated configuration model. When no module definitions are passed,
// the compiled-in core set is registered.
func New(ctx context.Context, outW io.Writer, appConfig *Config, loader config.Loader, defs ...*module.Definition) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.GridPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded into unified model.")

	applyOverrides(model, appConfig)

	reg := module.NewRegistry()
	if len(defs) == 0 {
		defs = coreDefinitions
	}
	for _, def := range defs {
		reg.Register(def)
	}
	logger.Debug("All module definitions registered.", "count", len(defs))

	if err := reg.Validate(ctx, model); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		model:    model,
		config:   appConfig,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *module.Registry {
	return a.registry
}

// Model returns the loaded configuration model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}

// applyOverrides lets explicit CLI flags win over the grid's run block.
func applyOverrides(model *config.Model, appConfig *Config) {
	if model.Run == nil {
		return
	}
	if appConfig.Points > 0 {
		model.Run.Points = appConfig.Points
	}
	if appConfig.Seed != 0 {
		model.Run.Seed = appConfig.Seed
	}
	if appConfig.Workers > 0 {
		model.Run.Workers = appConfig.Workers
	}
}
