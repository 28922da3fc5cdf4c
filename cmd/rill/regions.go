package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rill/internal/diagfmt"
	"rill/internal/driver"
	"rill/internal/observ"
	"rill/internal/region"
	"rill/internal/source"
)

var regionsCmd = &cobra.Command{
	Use:   "regions <bundle>...",
	Short: "Resolve lifetime regions for parsed unit bundles",
	Long: `Reads unit bundles produced by the front end, builds the scope forest and
region assignments for each, and prints any diagnostics. With --emit, the
resolved region maps are written next to the inputs as build artifacts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRegions,
}

func init() {
	regionsCmd.Flags().Bool("dump", false, "print the scope forest of each unit")
	regionsCmd.Flags().String("emit", "", "directory to write region artifacts into")
	regionsCmd.Flags().Int("jobs", 0, "number of units resolved concurrently (0 = manifest or NumCPU)")
	regionsCmd.Flags().Bool("timings", false, "print per-phase timings")
}

func runRegions(cmd *cobra.Command, args []string) error {
	colorMode, _ := cmd.Flags().GetString("color")
	maxDiagnostics, _ := cmd.Flags().GetInt("max-diagnostics")
	dump, _ := cmd.Flags().GetBool("dump")
	emitDir, _ := cmd.Flags().GetString("emit")
	jobs, _ := cmd.Flags().GetInt("jobs")
	timings, _ := cmd.Flags().GetBool("timings")

	defaults := manifestDefaults()
	if maxDiagnostics == 0 {
		maxDiagnostics = defaults.Check.MaxDiagnostics
	}
	if jobs == 0 {
		jobs = defaults.Check.Jobs
	}

	colored := useColor(colorMode, os.Stdout)
	timer := observ.NewTimer()

	endResolve := timer.Begin("resolve")
	results, err := driver.ResolveUnits(cmd.Context(), args, driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
	})
	endResolve(fmt.Sprintf("%d units", len(args)))
	if err != nil {
		return err
	}

	endReport := timer.Begin("report")
	failed := false
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			failed = true
		}

		if res.Bag != nil && res.Bag.Len() > 0 {
			fs := fileSetFor(res.Files)
			diagfmt.Pretty(os.Stdout, res.Bag, fs, diagfmt.PrettyOpts{
				Color:       colored,
				ShowNotes:   true,
				ShowPreview: true,
			})
		}
		if res.Bag != nil && res.Bag.HasErrors() {
			failed = true
		}
		if res.Regions == nil {
			continue
		}

		if dump {
			fmt.Printf("-- %s\n", res.Path)
			diagfmt.Forest(os.Stdout, res.Regions, res.Builder, diagfmt.ForestOpts{Color: colored})
		}

		if emitDir != "" {
			out := artifactPath(emitDir, res.Path)
			if err := region.WriteArtifact(out, res.Regions); err != nil {
				fmt.Fprintf(os.Stderr, "%s: emit: %v\n", res.Path, err)
				failed = true
			}
		}
	}
	endReport("")

	if timings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	if failed {
		exitFailure()
	}
	return nil
}

// exitFailure flushes any active profile before the non-zero exit, since
// os.Exit skips the post-run hooks.
func exitFailure() {
	if stopCPUProfile != nil {
		stopCPUProfile()
	}
	os.Exit(1)
}

// fileSetFor loads the unit's source files so spans resolve to lines.
// Missing files degrade to empty virtual entries; positions still print.
func fileSetFor(paths []string) *source.FileSet {
	fs := source.NewFileSet()
	for _, path := range paths {
		if _, err := fs.Load(path); err != nil {
			fs.AddVirtual(path, nil)
		}
	}
	return fs
}

func artifactPath(dir, bundlePath string) string {
	base := filepath.Base(bundlePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+".regions")
}
