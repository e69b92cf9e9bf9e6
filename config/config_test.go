// SPDX-License-Identifier: MIT

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/lvsparse/config"
	"github.com/katalvlaran/lvsparse/dispatch"
	"github.com/katalvlaran/lvsparse/spgemm"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	c, err := config.FromEnv(env(nil))
	require.NoError(t, err)
	require.Equal(t, config.Default(), c)
	require.Equal(t, dispatch.BackendPool, c.Backend)
	require.Equal(t, 1e-10, c.Epsilon)
	require.Equal(t, slog.LevelInfo, c.LogLevel)
}

func TestFromEnv_AllSet(t *testing.T) {
	c, err := config.FromEnv(env(map[string]string{
		config.EnvBackend:  " Group ",
		config.EnvWorkers:  "3",
		config.EnvGrain:    "16",
		config.EnvEpsilon:  "1e-8",
		config.EnvMatch:    "linear",
		config.EnvStrategy: "GUSTAVSON",
		config.EnvLogLevel: "debug",
	}))
	require.NoError(t, err)
	require.Equal(t, &config.Config{
		Backend:  dispatch.BackendGroup,
		Workers:  3,
		Grain:    16,
		Epsilon:  1e-8,
		Match:    spgemm.MatchLinear,
		Strategy: spgemm.StrategyGustavson,
		LogLevel: slog.LevelDebug,
	}, c)
}

func TestFromEnv_Invalid(t *testing.T) {
	for name, value := range map[string]string{
		config.EnvBackend:  "cuda",
		config.EnvWorkers:  "-2",
		config.EnvGrain:    "many",
		config.EnvEpsilon:  "-1",
		config.EnvMatch:    "hash",
		config.EnvStrategy: "outer",
		config.EnvLogLevel: "loud",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.FromEnv(env(map[string]string{name: value}))
			require.ErrorIs(t, err, config.ErrInvalid)
			require.Contains(t, err.Error(), name)
		})
	}
	_, err := config.FromEnv(env(map[string]string{config.EnvEpsilon: "NaN"}))
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestLoad_DotEnvWalkUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"),
		[]byte("LVSPARSE_WORKERS=7\nLVSPARSE_STRATEGY=gustavson\n"), 0o644))

	// the process environment wins over the file
	t.Setenv(config.EnvStrategy, "dot")
	t.Setenv(config.EnvWorkers, "")
	require.NoError(t, os.Unsetenv(config.EnvWorkers))
	t.Chdir(nested)

	c, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 7, c.Workers)
	require.Equal(t, spgemm.StrategyDot, c.Strategy)
}

func TestOpenDispatcher(t *testing.T) {
	c := config.Default()
	c.Workers = 2
	d, closeFn, err := c.OpenDispatcher()
	require.NoError(t, err)
	require.Equal(t, 2, d.Workers())
	closeFn()

	c.Grain = 8
	d, closeFn, err = c.OpenDispatcher()
	require.NoError(t, err)
	require.IsType(t, &dispatch.Pool{}, d)
	closeFn()

	c.Backend = dispatch.BackendSerial
	d, closeFn, err = c.OpenDispatcher()
	require.NoError(t, err)
	require.Equal(t, 1, d.Workers())
	closeFn()

	e, err := spgemm.New(c.EngineOptions(d)...)
	require.NoError(t, err)
	require.Equal(t, c.Epsilon, e.Options().Epsilon())
}
