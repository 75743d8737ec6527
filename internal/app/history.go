package app

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/mcgridgo/internal/store/sqlite"
)

// historyLimit caps how many persisted runs the history listing shows.
const historyLimit = 20

// PrintHistory lists the most recent persisted run summaries from the given
// store path, newest first.
func PrintHistory(ctx context.Context, outW io.Writer, storePath string) error {
	st, err := sqlite.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(outW, "no runs recorded")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(outW, "%s  %s  points=%d dims=%d estimate=%.6g ± %.3g  (%s)  %s\n",
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.ID,
			run.Points,
			run.Dimensions,
			run.Estimate,
			run.StdError,
			run.Duration,
			run.GridPath,
		)
	}
	return nil
}
