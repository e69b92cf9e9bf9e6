// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvsparse/csr"
	"github.com/katalvlaran/lvsparse/csrio"
	"github.com/katalvlaran/lvsparse/spgemm"
	"github.com/katalvlaran/lvsparse/telemetry"
	"github.com/katalvlaran/lvsparse/verify"
)

type multiplyFlags struct {
	output    string
	epsilon   float64
	match     string
	strategy  string
	cache     bool
	parallelT bool
	verify    bool
	verifyTol float64
	print     bool
	metrics   bool
}

func newMultiplyCmd(a *app) *cobra.Command {
	var f multiplyFlags
	cmd := &cobra.Command{
		Use:   "multiply A [B]",
		Short: "Compute C = A×B (B defaults to A)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.multiply(cmd, args, &f)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "write C to this file (.bin = binary)")
	fs.Float64Var(&f.epsilon, "epsilon", 0, "structural-zero tolerance (default from config)")
	fs.StringVar(&f.match, "match", "", "row intersection: merge or linear")
	fs.StringVar(&f.strategy, "strategy", "", "algorithm: dot or gustavson")
	fs.BoolVar(&f.cache, "cache", false, "cache symbolic results instead of recomputing them")
	fs.BoolVar(&f.parallelT, "parallel-transpose", false, "transpose B on the dispatcher")
	fs.BoolVar(&f.verify, "verify", false, "compare C against a dense gonum reference")
	fs.Float64Var(&f.verifyTol, "verify-tol", 1e-9, "value tolerance for --verify")
	fs.BoolVar(&f.print, "print", false, "dump the arrays of C")
	fs.BoolVar(&f.metrics, "metrics", false, "print prometheus metrics after the run")

	return cmd
}

func (a *app) multiply(cmd *cobra.Command, args []string, f *multiplyFlags) error {
	fs := cmd.Flags()
	cfg := *a.cfg
	if fs.Changed("epsilon") {
		cfg.Epsilon = f.epsilon
	}
	var err error
	if fs.Changed("match") {
		if cfg.Match, err = spgemm.ParseMatch(f.match); err != nil {
			return err
		}
	}
	if fs.Changed("strategy") {
		if cfg.Strategy, err = spgemm.ParseStrategy(f.strategy); err != nil {
			return err
		}
	}

	left, err := csrio.ReadFile(args[0])
	if err != nil {
		return err
	}
	right := left
	if len(args) == 2 {
		if right, err = csrio.ReadFile(args[1]); err != nil {
			return err
		}
	}

	d, release, err := cfg.OpenDispatcher()
	if err != nil {
		return err
	}
	defer release()

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(reg)
	opts := append(cfg.EngineOptions(d),
		spgemm.WithCandidateCache(f.cache),
		spgemm.WithParallelTranspose(f.parallelT),
		spgemm.WithPhaseHook(telemetry.Hook(metrics, a.logger, nil)),
	)
	engine, err := spgemm.New(opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	c, err := engine.Multiply(cmd.Context(), left, right)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	a.logger.Info("multiply",
		slog.String("strategy", cfg.Strategy.String()),
		slog.Int("workers", d.Workers()),
		slog.Duration("elapsed", elapsed),
	)
	fmt.Fprintf(a.out, "C: %dx%d nnz=%d in %s\n", c.Rows(), c.Cols(), c.NNZ(), elapsed)

	if f.output != "" {
		if err = csrio.WriteFile(f.output, c); err != nil {
			return err
		}
	}
	if f.print {
		if err = csrio.Fprint(a.out, c); err != nil {
			return err
		}
	}
	if f.verify {
		if err = a.verify(left, right, c, cfg.Epsilon, f.verifyTol); err != nil {
			return err
		}
	}
	if f.metrics {
		return telemetry.WriteText(a.out, reg)
	}

	return nil
}

func (a *app) verify(left, right, c *csr.Matrix, eps, tol float64) error {
	want, err := verify.Reference(left, right, eps)
	if err != nil {
		return err
	}
	if err = verify.Compare(c, want, tol); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "verify: OK")

	return nil
}
