// Package driver orchestrates region resolution over many unit bundles.
// Units are independent, so they are resolved concurrently; the pass itself
// stays strictly single-threaded within a unit.
package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"rill/internal/ast"
	"rill/internal/bundle"
	"rill/internal/defs"
	"rill/internal/diag"
	"rill/internal/region"
)

// Options configure a multi-unit run.
type Options struct {
	// Jobs limits concurrent units; 0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps the per-unit diagnostic bag; 0 means 100.
	MaxDiagnostics int
}

// UnitResult is the outcome for a single bundle, in input order.
type UnitResult struct {
	Path    string
	Files   []string // source paths in FileID order
	Builder *ast.Builder
	Unit    ast.NodeID
	Defs    defs.Map
	Regions *region.Map // nil when the unit failed
	Bag     *diag.Bag
	Err     error // load failure or fatal internal error
}

// ResolveUnits reads each bundle and runs region resolution over it.
// Per-unit failures are recorded in the corresponding UnitResult; an error
// is returned only for cancellation.
func ResolveUnits(ctx context.Context, paths []string, opts Options) ([]UnitResult, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}

	// Indices are unique per goroutine; no mutex needed.
	results := make([]UnitResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res := UnitResult{
				Path: path,
				Bag:  diag.NewBag(maxDiagnostics),
			}
			payload, err := bundle.Read(path)
			if err != nil {
				res.Err = err
				results[i] = res
				return nil
			}

			res.Files = payload.Files
			res.Builder, res.Unit, res.Defs = payload.Restore()
			reporter := diag.BagReporter{Bag: res.Bag}
			res.Regions, res.Err = region.Resolve(res.Builder, res.Unit, res.Defs, reporter)
			res.Bag.Sort()
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
