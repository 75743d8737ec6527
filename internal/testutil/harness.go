// Package testutil provides the in-process integration harness and stub
// module definitions used across the engine's tests.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/mcgridgo/internal/app"
	"github.com/vk/mcgridgo/internal/executor"
	"github.com/vk/mcgridgo/internal/hcl"
	"github.com/vk/mcgridgo/internal/module"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Result    *executor.Result
	Err       error
	App       *app.App
}

// RunIntegration writes the given grid files into a temp directory, boots an
// App over it with the provided module definitions, and runs it to
// completion. Startup and run errors end up in HarnessResult.Err rather than
// failing the test, so error-path tests can assert on them.
func RunIntegration(t *testing.T, files map[string]string, defs ...*module.Definition) *HarnessResult {
	t.Helper()
	return RunIntegrationWithContext(context.Background(), t, files, defs...)
}

// RunIntegrationWithContext is RunIntegration with a caller-supplied context.
func RunIntegrationWithContext(ctx context.Context, t *testing.T, files map[string]string, defs ...*module.Definition) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	appConfig := &app.Config{
		GridPath:  tmpDir,
		LogLevel:  "debug",
		LogFormat: "text",
	}

	logBuffer := &SafeBuffer{}

	testApp, err := app.New(ctx, logBuffer, appConfig, hcl.NewLoader(), defs...)
	if err != nil {
		return &HarnessResult{LogOutput: logBuffer.String(), Err: err}
	}

	result, err := testApp.Run(ctx)
	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Result:    result,
		Err:       err,
		App:       testApp,
	}
}
