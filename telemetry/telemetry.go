// SPDX-License-Identifier: MIT

package telemetry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lvsparse/dispatch"
	"github.com/katalvlaran/lvsparse/spgemm"
)

// TracerName is the instrumentation scope used when Hook gets no tracer.
const TracerName = "github.com/katalvlaran/lvsparse/spgemm"

// Result labels of the multiplications counter.
const (
	ResultOK                = "ok"
	ResultDimensionMismatch = "dimension_mismatch"
	ResultCancelled         = "cancelled"
	ResultPanic             = "panic"
	ResultError             = "error"
)

// Metrics groups the prometheus collectors fed by Hook.
type Metrics struct {
	// PhaseDuration tracks wall time per phase (label "phase").
	PhaseDuration *prometheus.HistogramVec
	// Multiplications counts finished Multiply calls (label "result").
	Multiplications *prometheus.CounterVec
	// OutputNNZ tracks the number of stored entries of each product.
	OutputNNZ prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		PhaseDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lvsparse_spgemm_phase_duration_seconds",
			Help:    "SpGEMM phase duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12), // 10µs to ~40s
		}, []string{"phase"}),
		Multiplications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lvsparse_spgemm_multiplications_total",
			Help: "Total SpGEMM multiplications by result",
		}, []string{"result"}),
		OutputNNZ: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "lvsparse_spgemm_output_nnz",
			Help:    "Stored entries per SpGEMM product",
			Buckets: prometheus.ExponentialBuckets(1, 10, 10),
		}),
	}
}

// Hook returns a PhaseHook feeding m, logger and tracer. Any of them may be
// nil: a nil m or logger is skipped, a nil tracer uses the global provider.
func Hook(m *Metrics, logger *slog.Logger, tracer trace.Tracer) spgemm.PhaseHook {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}

	return func(ctx context.Context, ev spgemm.PhaseEvent) func(error) {
		phase := ev.Phase.String()
		start := time.Now()
		_, span := tracer.Start(ctx, "spgemm."+phase,
			trace.WithAttributes(
				attribute.String("phase", phase),
				attribute.Int("rows", ev.Rows),
				attribute.Int("nnz", ev.NNZ),
			),
		)

		return func(err error) {
			elapsed := time.Since(start)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			span.End()

			if m != nil {
				m.PhaseDuration.WithLabelValues(phase).Observe(elapsed.Seconds())
				switch ev.Phase {
				case spgemm.PhaseMultiply:
					m.Multiplications.WithLabelValues(Result(err)).Inc()
				case spgemm.PhaseNumeric:
					if err == nil {
						m.OutputNNZ.Observe(float64(ev.NNZ))
					}
				}
			}
			if logger != nil {
				attrs := []slog.Attr{
					slog.String("phase", phase),
					slog.Int("rows", ev.Rows),
					slog.Duration("elapsed", elapsed),
				}
				if ev.NNZ >= 0 {
					attrs = append(attrs, slog.Int("nnz", ev.NNZ))
				}
				if err != nil {
					attrs = append(attrs, slog.String("error", err.Error()))
				}
				logger.LogAttrs(ctx, slog.LevelDebug, "spgemm_phase", attrs...)
			}
		}
	}
}

// Result classifies a Multiply error into one of the Result* labels.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, spgemm.ErrDimensionMismatch):
		return ResultDimensionMismatch
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ResultCancelled
	case errors.Is(err, dispatch.ErrUnitPanicked):
		return ResultPanic
	default:
		return ResultError
	}
}

// NewLogger returns a text slog.Logger writing records at level and above.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WriteText gathers g and writes every metric family in the prometheus text
// exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}
