package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rill/internal/ast"
	"rill/internal/region"
)

var (
	rootStyle  = lipgloss.NewStyle().Bold(true)
	blockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	otherStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// Forest renders the scope forest as an indented tree, one root per
// top-level item, children in NodeID order (which is allocation order, so
// the dump is deterministic).
func Forest(w io.Writer, m *region.Map, b *ast.Builder, opts ForestOpts) {
	children := make(map[ast.NodeID][]ast.NodeID, len(m.Parents))
	isChild := make(map[ast.NodeID]bool, len(m.Parents))
	for child, parent := range m.Parents {
		children[parent] = append(children[parent], child)
		isChild[child] = true
	}
	for _, kids := range children {
		sort.Slice(kids, func(i, j int) bool { return kids[i] < kids[j] })
	}

	// Roots are parents that are nobody's child.
	roots := make([]ast.NodeID, 0, 4)
	for parent := range children {
		if !isChild[parent] {
			roots = append(roots, parent)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	for _, root := range roots {
		dumpScope(w, root, 0, children, b, opts)
	}
	fmt.Fprintf(w, "%d scopes, %d locals, %d rvalues\n",
		len(m.Parents)+len(roots), len(m.LocalBlocks), len(m.RvalueBlocks))
}

func dumpScope(w io.Writer, id ast.NodeID, depth int, children map[ast.NodeID][]ast.NodeID, b *ast.Builder, opts ForestOpts) {
	label := scopeLabel(id, b)
	if opts.Color {
		switch {
		case depth == 0:
			label = rootStyle.Render(label)
		case b.Kind(id) == ast.NodeBlock:
			label = blockStyle.Render(label)
		default:
			label = otherStyle.Render(label)
		}
	}
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), label)
	for _, child := range children[id] {
		dumpScope(w, child, depth+1, children, b, opts)
	}
}

func scopeLabel(id ast.NodeID, b *ast.Builder) string {
	kind := b.Kind(id)
	switch kind {
	case ast.NodeFn:
		if fn, ok := b.Fn(id); ok {
			return fmt.Sprintf("fn %s #%d", b.Name(fn.Name), uint32(id))
		}
	case ast.NodeEnum:
		if enum, ok := b.Enum(id); ok {
			return fmt.Sprintf("enum %s #%d", b.Name(enum.Name), uint32(id))
		}
	}
	return fmt.Sprintf("%s #%d", kind, uint32(id))
}
