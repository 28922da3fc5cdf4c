package region

import (
	"testing"

	"rill/internal/ast"
)

// forest builds:
//
//	1 (root)
//	├── 2
//	│   ├── 3
//	│   └── 4
//	└── 5
//	9 (root)
func forest() *Map {
	m := NewMap()
	m.Parents[ast.NodeID(2)] = ast.NodeID(1)
	m.Parents[ast.NodeID(3)] = ast.NodeID(2)
	m.Parents[ast.NodeID(4)] = ast.NodeID(2)
	m.Parents[ast.NodeID(5)] = ast.NodeID(1)
	return m
}

func TestContains(t *testing.T) {
	m := forest()
	cases := []struct {
		name         string
		outer, inner ast.NodeID
		want         bool
	}{
		{"reflexive", 3, 3, true},
		{"direct child", 2, 3, true},
		{"transitive", 1, 3, true},
		{"inverted", 3, 1, false},
		{"siblings", 3, 4, false},
		{"other branch", 5, 3, false},
		{"separate roots", 1, 9, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.Contains(tc.outer, tc.inner); got != tc.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tc.outer, tc.inner, got, tc.want)
			}
		})
	}
}

func TestNearestCommonAncestor(t *testing.T) {
	m := forest()
	cases := []struct {
		name  string
		a, b  ast.NodeID
		want  ast.NodeID
		found bool
	}{
		{"same scope", 3, 3, 3, true},
		{"siblings", 3, 4, 2, true},
		{"cousins", 3, 5, 1, true},
		{"ancestor of", 2, 3, ast.NoNodeID, false},
		{"descendant of", 3, 2, ast.NoNodeID, false},
		{"different roots", 3, 9, ast.NoNodeID, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := m.NearestCommonAncestor(tc.a, tc.b)
			if found != tc.found || got != tc.want {
				t.Errorf("NearestCommonAncestor(%d, %d) = (%d, %v), want (%d, %v)",
					tc.a, tc.b, got, found, tc.want, tc.found)
			}
		})
	}
}
