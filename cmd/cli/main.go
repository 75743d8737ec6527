package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/mcgridgo/internal/app"
	"github.com/vk/mcgridgo/internal/cli"
	"github.com/vk/mcgridgo/internal/hcl"
)

// main is the entrypoint for the mcgridgo binary.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	opts, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	ctx := context.Background()

	if opts.History {
		return app.PrintHistory(ctx, outW, opts.Config.OutputPath)
	}

	loader := hcl.NewLoader()
	engine, err := app.New(ctx, outW, opts.Config, loader)
	if err != nil {
		return err
	}

	result, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(outW, "estimate = %.10g ± %.4g  (points=%d, dimensions=%d, elapsed=%s)\n",
		result.Estimate, result.StdError, result.Points, result.Dimensions, result.Elapsed)
	return nil
}
