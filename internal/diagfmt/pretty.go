package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rill/internal/diag"
	"rill/internal/source"
)

// Pretty renders diagnostics in a human-readable form. It walks bag.Items()
// as-is (call bag.Sort() beforehand). For each diagnostic it prints
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed, when ShowPreview is set, by the source line with a ^~~~
// underline over the primary span, and then the notes in the same format.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	paint := sevPaint(d.Severity, opts.Color)
	start, _ := fs.Resolve(d.Primary)
	path := "<unknown>"
	if f := fs.Get(d.Primary.File); f != nil {
		path = f.Path
	}

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col,
		paint(d.Severity.String()), d.Code.String(), d.Message)

	if opts.ShowPreview {
		preview(w, d.Primary, fs, paint)
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			noteStart, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "%s:%d:%d: note: %s\n", path, noteStart.Line, noteStart.Col, note.Msg)
		}
	}
}

// preview prints the first line covered by the span with an underline.
func preview(w io.Writer, span source.Span, fs *source.FileSet, paint func(...interface{}) string) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, _ := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}

	fmt.Fprintf(w, "  %s\n", line)

	// Widths are measured on the rendered text, so tabs and wide runes keep
	// the caret aligned.
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(line[:col])

	spanned := int(span.Len())
	if spanned <= 0 {
		spanned = 1
	}
	if col+spanned > len(line) {
		spanned = len(line) - col
		if spanned <= 0 {
			spanned = 1
		}
	}
	width := runewidth.StringWidth(line[col:min(col+spanned, len(line))])
	if width < 1 {
		width = 1
	}

	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), paint(underline))
}

func sevPaint(sev diag.Severity, enabled bool) func(...interface{}) string {
	if !enabled {
		return fmt.Sprint
	}
	switch sev {
	case diag.SevBug:
		return color.New(color.FgRed, color.Bold, color.Underline).SprintFunc()
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case diag.SevWarning:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgCyan).SprintFunc()
	}
}
