// Package cli parses command-line arguments into an app.Config and maps
// usage errors to process exit codes.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/mcgridgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options is the parsed command line: the app configuration plus the
// mode flags that short-circuit a normal run.
type Options struct {
	Config  *app.Config
	History bool
}

// Parse processes command-line arguments. It returns the parsed options, a
// boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*Options, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("mcgridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
mcgridgo - A declarative Monte Carlo phase-space integration engine.

Usage:
  mcgridgo [options] [GRID_PATH]

Arguments:
  GRID_PATH
    Path to a single .hcl grid file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	gridFlag := flagSet.String("grid", "", "Path to the grid file or directory.")
	gFlag := flagSet.String("g", "", "Path to the grid file or directory (shorthand).")
	pointsFlag := flagSet.Int("points", 0, "Override the grid's phase-space point count. 0 uses the grid value.")
	seedFlag := flagSet.Uint64("seed", 0, "Override the grid's sampler seed. 0 uses the grid value.")
	workersFlag := flagSet.Int("workers", 0, "Override the grid's worker count. 0 uses the grid value.")
	outputFlag := flagSet.String("output", "", "Path to a SQLite database to persist the run summary. Empty disables persistence.")
	historyFlag := flagSet.Bool("history", false, "List recent persisted runs from the -output database and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *gridFlag != "" {
		path = *gridFlag
	} else if *gFlag != "" {
		path = *gFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Grid path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *historyFlag {
		if *outputFlag == "" {
			return nil, false, &ExitError{Code: 2, Message: "-history requires -output to name the run database"}
		}
	} else if path == "" {
		slog.Debug("No grid path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	if *pointsFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid points: must not be negative"}
	}
	if *workersFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid workers: must not be negative"}
	}
	slog.Debug("CLI parameter validation complete.")

	opts := &Options{
		Config: &app.Config{
			GridPath:   path,
			LogFormat:  logFormat,
			LogLevel:   logLevel,
			OutputPath: *outputFlag,
			Points:     *pointsFlag,
			Seed:       *seedFlag,
			Workers:    *workersFlag,
		},
		History: *historyFlag,
	}
	slog.Debug("CLI parser finished successfully.")
	return opts, false, nil
}
