// Package telemetry observes spgemm engines from the outside.
//
// The core packages never log or export metrics; instead Hook returns a
// spgemm.PhaseHook that, for every phase of a multiplication:
//   - opens an OpenTelemetry span "spgemm.<Phase>" with rows/nnz attributes,
//     recording the error and status when the phase ends;
//   - observes the phase duration, counts multiplications by result and
//     records the size of each product in prometheus collectors (Metrics);
//   - logs a debug record through log/slog.
//
// NewLogger builds the text slog.Logger used by the CLI and WriteText dumps
// a prometheus registry in the text exposition format.
package telemetry
