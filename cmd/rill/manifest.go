package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// manifest mirrors rill.toml, looked up from the working directory upward.
// All fields are optional; flags override manifest values.
type manifest struct {
	Package packageConfig `toml:"package"`
	Check   checkConfig   `toml:"check"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type checkConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
	Jobs           int `toml:"jobs"`
}

// findManifest walks from dir to the filesystem root looking for rill.toml.
func findManifest(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, "rill.toml")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func loadManifest(path string) (*manifest, error) {
	var cfg manifest
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// manifestDefaults loads the nearest manifest, or zero defaults when none
// exists or it cannot be read.
func manifestDefaults() manifest {
	wd, err := os.Getwd()
	if err != nil {
		return manifest{}
	}
	path, ok := findManifest(wd)
	if !ok {
		return manifest{}
	}
	cfg, err := loadManifest(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return manifest{}
	}
	return *cfg
}
