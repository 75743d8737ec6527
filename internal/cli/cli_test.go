package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("full invocation", func(t *testing.T) {
		var out bytes.Buffer
		opts, exit, err := Parse([]string{
			"-grid", "grids/z.hcl",
			"-points", "5000",
			"-seed", "42",
			"-workers", "8",
			"-output", "runs.db",
			"-log-format", "json",
			"-log-level", "debug",
		}, &out)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "grids/z.hcl", opts.Config.GridPath)
		assert.Equal(t, 5000, opts.Config.Points)
		assert.Equal(t, uint64(42), opts.Config.Seed)
		assert.Equal(t, 8, opts.Config.Workers)
		assert.Equal(t, "runs.db", opts.Config.OutputPath)
		assert.Equal(t, "json", opts.Config.LogFormat)
		assert.Equal(t, "debug", opts.Config.LogLevel)
		assert.False(t, opts.History)
	})

	t.Run("positional grid path", func(t *testing.T) {
		var out bytes.Buffer
		opts, exit, err := Parse([]string{"grids"}, &out)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, "grids", opts.Config.GridPath)
	})

	t.Run("grid flag wins over positional", func(t *testing.T) {
		var out bytes.Buffer
		opts, _, err := Parse([]string{"-g", "a.hcl", "b.hcl"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", opts.Config.GridPath)
	})

	t.Run("no path prints usage and exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		opts, exit, err := Parse(nil, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, opts)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("history mode", func(t *testing.T) {
		var out bytes.Buffer
		opts, exit, err := Parse([]string{"-history", "-output", "runs.db"}, &out)
		require.NoError(t, err)
		require.False(t, exit)
		assert.True(t, opts.History)
		assert.Equal(t, "runs.db", opts.Config.OutputPath)
	})
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"history without output", []string{"-history"}, "-history requires -output"},
		{"bad log format", []string{"-log-format", "yaml", "grids"}, "invalid log-format"},
		{"bad log level", []string{"-log-level", "verbose", "grids"}, "invalid log-level"},
		{"negative points", []string{"-points", "-1", "grids"}, "invalid points"},
		{"negative workers", []string{"-workers", "-2", "grids"}, "invalid workers"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			_, exit, err := Parse(tc.args, &out)
			require.Error(t, err)
			assert.False(t, exit)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.True(t, strings.Contains(err.Error(), tc.want), "error %q should contain %q", err, tc.want)
		})
	}
}
