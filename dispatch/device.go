// SPDX-License-Identifier: MIT

package dispatch

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sys/cpu"
)

// Backend names accepted by Open.
const (
	BackendPool   = "pool"
	BackendGroup  = "group"
	BackendSerial = "serial"
)

// Kind classifies a Device.
type Kind int

const (
	// KindCPU is a host CPU driven by goroutines.
	KindCPU Kind = iota
	// KindReference is the single-threaded reference executor.
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindCPU:
		return "CPU"
	case KindReference:
		return "Reference"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Device describes an execution target available on this host.
type Device struct {
	Name         string   // human-readable name
	Backend      string   // backend name for Open
	Kind         Kind     // device class
	ComputeUnits int      // maximum useful workers
	Features     []string // detected SIMD/ISA features, sorted
}

func (d Device) String() string {
	return fmt.Sprintf("%s (%s, backend=%s, units=%d, features=[%s])",
		d.Name, d.Kind, d.Backend, d.ComputeUnits, strings.Join(d.Features, " "))
}

// Devices enumerates the execution targets of this host in a stable order:
// the pooled CPU, the goroutine-group CPU and the serial reference.
func Devices() []Device {
	units := runtime.GOMAXPROCS(0)
	features := cpuFeatures()
	name := fmt.Sprintf("%s/%s CPU", runtime.GOOS, runtime.GOARCH)

	return []Device{
		{Name: name + " (pool)", Backend: BackendPool, Kind: KindCPU, ComputeUnits: units, Features: features},
		{Name: name + " (group)", Backend: BackendGroup, Kind: KindCPU, ComputeUnits: units, Features: features},
		{Name: "serial reference", Backend: BackendSerial, Kind: KindReference, ComputeUnits: 1},
	}
}

// Select returns the device with the highest non-negative score. Ties keep
// the earlier device. A negative score rejects a device; if all are rejected
// Select returns ErrNoDevice.
func Select(devs []Device, score func(Device) int) (Device, error) {
	best, bestScore := -1, -1
	for i, d := range devs {
		if s := score(d); s >= 0 && s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return Device{}, ErrNoDevice
	}

	return devs[best], nil
}

// PreferParallel scores CPU devices by their compute units and rejects the
// reference executor.
func PreferParallel(d Device) int {
	if d.Kind != KindCPU {
		return -1
	}

	return d.ComputeUnits
}

// Open builds a Dispatcher for the named backend. workers <= 0 means
// GOMAXPROCS. The returned close function must be called when done (it is a
// no-op for backends without resources).
func Open(backend string, workers int) (Dispatcher, func(), error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendPool, "":
		p := NewPool(workers)
		return p, p.Close, nil
	case BackendGroup:
		return NewGroup(workers), func() {}, nil
	case BackendSerial:
		return Serial{}, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("Open(%q): %w", backend, ErrUnknownBackend)
	}
}

// cpuFeatures reports ISA extensions relevant to float64 kernels.
func cpuFeatures() []string {
	var fs []string
	add := func(ok bool, name string) {
		if ok {
			fs = append(fs, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE42, "sse4.2")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasFMA, "fma")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasFP, "fp")
		add(cpu.ARM64.HasSVE, "sve")
		add(cpu.ARM64.HasSVE2, "sve2")
	}
	sort.Strings(fs)

	return fs
}
