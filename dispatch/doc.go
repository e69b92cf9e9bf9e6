// Package dispatch is the execution substrate for lvsparse's data-parallel
// kernels: bulk iteration over a contiguous index range with a blocking join.
//
// A Dispatcher exposes exactly what a row-parallel kernel needs:
//
//	(a) bulk parallel iteration over [0, n), delivered as contiguous [lo, hi) blocks
//	(b) shared read-only buffers: whatever slices the Body closure captures
//	(c) disjoint write targets: each block writes only cells of its own indices
//	(d) a blocking join: ParallelFor returns only after every block finished
//
// Backends:
//
//	Pool   — persistent workers, created once and reused across calls
//	Group  — per-call goroutines on golang.org/x/sync/errgroup
//	Serial — inline, single-threaded reference backend
//
// Any Body error or panic fails the whole ParallelFor call; callers must then
// discard everything the blocks wrote. Devices lists what the host offers
// (CPU features via golang.org/x/sys/cpu) and Open builds a backend by name.
package dispatch
