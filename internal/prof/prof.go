// Package prof wires optional pprof capture into the CLI.
package prof

import (
	"os"
	"runtime"
	"runtime/pprof"
)

// StartCPU begins CPU profiling into path and returns the stop function.
func StartCPU(path string) (func(), error) {
	f, err := os.Create(path) // #nosec G304 -- path comes from a CLI flag
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		_ = f.Close()
	}, nil
}

// WriteHeap captures a heap profile to path, after a GC so the numbers
// reflect live memory.
func WriteHeap(path string) error {
	f, err := os.Create(path) // #nosec G304 -- path comes from a CLI flag
	if err != nil {
		return err
	}
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
