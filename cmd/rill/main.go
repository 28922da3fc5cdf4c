package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rill/internal/prof"
	"rill/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rill",
	Short: "Rill compiler middle-end tooling",
	Long:  `Rill region resolution: scope forests and lifetime regions for parsed unit bundles`,
}

var stopCPUProfile func()

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the rill version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Printf("rill %s", version.Version)
		if version.GitCommit != "" {
			fmt.Printf(" (%s)", version.GitCommit)
		}
		fmt.Println()
	},
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to show (0 = manifest or default)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to this file on exit")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if path, _ := cmd.Flags().GetString("cpuprofile"); path != "" {
			stop, err := prof.StartCPU(path)
			if err != nil {
				return err
			}
			stopCPUProfile = stop
		}
		return nil
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, _ []string) error {
		if stopCPUProfile != nil {
			stopCPUProfile()
		}
		if path, _ := cmd.Flags().GetString("memprofile"); path != "" {
			return prof.WriteHeap(path)
		}
		return nil
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the actual output device.
func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
