package region

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"rill/internal/ast"
)

func TestArtifactRoundtrip(t *testing.T) {
	m := NewMap()
	m.Parents[ast.NodeID(4)] = ast.NodeID(2)
	m.TypeRegions[ast.NodeID(7)] = SelfRegion()
	m.InferredRegions[ast.NodeID(8)] = ParamRegion(3)
	m.LocalBlocks[ast.NodeID(9)] = ast.NodeID(4)
	m.RvalueBlocks[ast.NodeID(10)] = ast.NodeID(4)

	path := filepath.Join(t.TempDir(), "out", "main.regions")
	if err := WriteArtifact(path, m); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadArtifact(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Parents[ast.NodeID(4)] != ast.NodeID(2) {
		t.Errorf("parents lost: %v", got.Parents)
	}
	if got.TypeRegions[ast.NodeID(7)] != SelfRegion() {
		t.Errorf("type regions lost: %v", got.TypeRegions)
	}
	if got.InferredRegions[ast.NodeID(8)] != ParamRegion(3) {
		t.Errorf("inferred regions lost: %v", got.InferredRegions)
	}
	if got.LocalBlocks[ast.NodeID(9)] != ast.NodeID(4) {
		t.Errorf("local blocks lost: %v", got.LocalBlocks)
	}
	if got.RvalueBlocks[ast.NodeID(10)] != ast.NodeID(4) {
		t.Errorf("rvalue blocks lost: %v", got.RvalueBlocks)
	}
}

func TestArtifactRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stale.regions")
	raw, err := msgpack.Marshal(artifactPayload{Schema: ArtifactSchema + 1})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := ReadArtifact(path); err == nil {
		t.Fatal("expected a schema mismatch error")
	}
}

func TestReadArtifactMissingFile(t *testing.T) {
	if _, err := ReadArtifact(filepath.Join(t.TempDir(), "absent.regions")); err == nil {
		t.Fatal("expected an error for a missing artifact")
	}
}
