// Package executor drives an integration run: it feeds sampled phase-space
// points through the module pipeline and accumulates the integrand. Each
// worker owns a private pool and its own module instances, so points evaluate
// concurrently without any shared mutable state; the per-point sample stream
// depends only on (seed, point index), making the run deterministic for a
// given seed regardless of worker count.
package executor

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vk/mcgridgo/internal/config"
	"github.com/vk/mcgridgo/internal/ctxlog"
	"github.com/vk/mcgridgo/internal/module"
)

// Executor evaluates the configured number of phase-space points over a
// worker pool.
type Executor struct {
	model   *config.Model
	reg     *module.Registry
	order   []string
	workers int
	dims    int
}

// Result summarizes one integration run.
type Result struct {
	Points     int
	Dimensions int
	Estimate   float64
	StdError   float64
	Elapsed    time.Duration
}

// New prepares an executor for the given model, registry, and topological
// instance order. It constructs one probe pipeline immediately so that
// configuration and resolution errors surface before the run starts.
func New(model *config.Model, reg *module.Registry, order []string, workers int) (*Executor, error) {
	e := &Executor{model: model, reg: reg, order: order, workers: workers}

	probe, err := e.newEvaluation()
	if err != nil {
		return nil, err
	}
	e.dims = probe.dims

	return e, nil
}

// Dimensions reports the total number of integration dimensions consumed by
// the pipeline.
func (e *Executor) Dimensions() int {
	return e.dims
}

// Run evaluates run.Points phase-space points and returns the integral
// estimate with its standard error. It stops early on context cancellation.
func (e *Executor) Run(ctx context.Context) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	points := e.model.Run.Points
	workers := e.workers
	if workers < 1 {
		workers = 1
	}
	if workers > points {
		workers = points
	}
	logger.Debug("Executor starting run.", "points", points, "workers", workers, "dimensions", e.dims)

	indices := make(chan int)
	var mu sync.Mutex
	var n int
	var sum, sumSq float64

	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(indices)
		for i := 0; i < points; i++ {
			select {
			case indices <- i:
			case <-runCtx.Done():
				return runCtx.Err()
			}
		}
		return nil
	})

	seed := e.model.Run.Seed
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			ev, err := e.newEvaluation()
			if err != nil {
				return err
			}
			var localN int
			var localSum, localSumSq float64
			for i := range indices {
				f := ev.evaluate(seed, i)
				localN++
				localSum += f
				localSumSq += f * f
			}
			mu.Lock()
			n += localN
			sum += localSum
			sumSq += localSumSq
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("integration run failed: %w", err)
	}

	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	stdError := math.Sqrt(variance / float64(n))

	result := &Result{
		Points:     n,
		Dimensions: e.dims,
		Estimate:   mean,
		StdError:   stdError,
		Elapsed:    time.Since(start),
	}
	logger.Info("Integration finished.", "points", result.Points, "estimate", result.Estimate, "std_error", result.StdError, "elapsed", result.Elapsed)
	return result, nil
}
