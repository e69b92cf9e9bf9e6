// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/lvsparse/config"
	"github.com/katalvlaran/lvsparse/telemetry"
)

// app is the state shared by all subcommands once the root pre-run resolved
// the configuration.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer

	// persistent flag values; applied over cfg only when set explicitly
	backend  string
	workers  int
	grain    int
	logLevel string
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:           "lvsparse",
		Short:         "Parallel sparse matrix-matrix multiplication on CSR matrices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd.Flags())
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.backend, "backend", "", "execution backend: pool, group or serial")
	pf.IntVar(&a.workers, "workers", 0, "worker count (0 = GOMAXPROCS)")
	pf.IntVar(&a.grain, "grain", 0, "pool work-stealing batch size (0 = static chunks)")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(
		newMultiplyCmd(a),
		newTransposeCmd(a),
		newConvertCmd(a),
		newSpyCmd(a),
		newDevicesCmd(a),
	)

	return root
}

// configure loads the environment and overlays explicitly set flags.
func (a *app) configure(fs *pflag.FlagSet) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	overlay := map[string]string{}
	if fs.Changed("backend") {
		overlay[config.EnvBackend] = a.backend
	}
	if fs.Changed("log-level") {
		overlay[config.EnvLogLevel] = a.logLevel
	}
	if len(overlay) > 0 {
		// reuse the environment parser for validation
		parsed, err := config.FromEnv(func(k string) string { return overlay[k] })
		if err != nil {
			return err
		}
		if _, ok := overlay[config.EnvBackend]; ok {
			cfg.Backend = parsed.Backend
		}
		if _, ok := overlay[config.EnvLogLevel]; ok {
			cfg.LogLevel = parsed.LogLevel
		}
	}
	if fs.Changed("workers") {
		cfg.Workers = max(a.workers, 0)
	}
	if fs.Changed("grain") {
		cfg.Grain = max(a.grain, 0)
	}

	a.cfg = cfg
	a.logger = telemetry.NewLogger(a.errOut, cfg.LogLevel)
	a.logger.Debug("config",
		slog.String("backend", cfg.Backend),
		slog.Int("workers", cfg.Workers),
		slog.Int("grain", cfg.Grain),
		slog.Float64("epsilon", cfg.Epsilon),
		slog.String("match", cfg.Match.String()),
		slog.String("strategy", cfg.Strategy.String()),
	)

	return nil
}
