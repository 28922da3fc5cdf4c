package region

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"rill/internal/ast"
)

// ArtifactSchema is bumped whenever the serialized layout changes, so stale
// artifacts from older builds are rejected instead of misread.
const ArtifactSchema uint16 = 1

type artifactPayload struct {
	Schema          uint16
	Parents         map[ast.NodeID]ast.NodeID
	TypeRegions     map[ast.NodeID]Region
	InferredRegions map[ast.NodeID]Region
	LocalBlocks     map[ast.NodeID]ast.NodeID
	RvalueBlocks    map[ast.NodeID]ast.NodeID
}

// WriteArtifact serializes the map for downstream passes and incremental
// builds. The write is atomic: a temp file in the target directory is
// renamed over the destination.
func WriteArtifact(path string, m *Map) error {
	if m == nil {
		return fmt.Errorf("region: nil map")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name()) //nolint:errcheck // best-effort cleanup after rename

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(artifactPayload{
		Schema:          ArtifactSchema,
		Parents:         m.Parents,
		TypeRegions:     m.TypeRegions,
		InferredRegions: m.InferredRegions,
		LocalBlocks:     m.LocalBlocks,
		RvalueBlocks:    m.RvalueBlocks,
	}); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadArtifact deserializes a map written by WriteArtifact, rejecting
// mismatched schema versions.
func ReadArtifact(path string) (*Map, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var payload artifactPayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("region: decode artifact %s: %w", path, err)
	}
	if payload.Schema != ArtifactSchema {
		return nil, fmt.Errorf("region: artifact %s has schema %d, want %d", path, payload.Schema, ArtifactSchema)
	}

	m := NewMap()
	if payload.Parents != nil {
		m.Parents = payload.Parents
	}
	if payload.TypeRegions != nil {
		m.TypeRegions = payload.TypeRegions
	}
	if payload.InferredRegions != nil {
		m.InferredRegions = payload.InferredRegions
	}
	if payload.LocalBlocks != nil {
		m.LocalBlocks = payload.LocalBlocks
	}
	if payload.RvalueBlocks != nil {
		m.RvalueBlocks = payload.RvalueBlocks
	}
	return m, nil
}
