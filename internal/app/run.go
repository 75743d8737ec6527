package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vk/mcgridgo/internal/ctxlog"
	"github.com/vk/mcgridgo/internal/executor"
	"github.com/vk/mcgridgo/internal/graph"
	"github.com/vk/mcgridgo/internal/store/sqlite"
)

// Run executes the loaded grid: build and order the dependency graph, run
// the integration, and optionally persist the run summary.
func (a *App) Run(ctx context.Context) (*executor.Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	g, err := graph.Build(ctx, a.model, a.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}
	order, err := g.TopoSort()
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Dependency graph ordered.", "order", order)

	workers := a.model.Run.Workers
	if workers < 1 {
		workers = 1
	}
	exec, err := executor.New(a.model, a.registry, order, workers)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now()
	result, err := exec.Run(ctx)
	if err != nil {
		return nil, err
	}

	if a.config.OutputPath != "" {
		if err := a.saveResult(ctx, startedAt, result); err != nil {
			return nil, err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return result, nil
}

// saveResult writes the run summary to the configured SQLite store.
func (a *App) saveResult(ctx context.Context, startedAt time.Time, result *executor.Result) error {
	st, err := sqlite.Open(a.config.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer st.Close()

	run := sqlite.Run{
		ID:         uuid.NewString(),
		StartedAt:  startedAt,
		GridPath:   a.config.GridPath,
		Points:     result.Points,
		Dimensions: result.Dimensions,
		Estimate:   result.Estimate,
		StdError:   result.StdError,
		Duration:   result.Elapsed,
	}
	if err := st.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("failed to persist run summary: %w", err)
	}
	a.logger.Info("Run summary persisted.", "run_id", run.ID, "path", a.config.OutputPath)
	return nil
}
