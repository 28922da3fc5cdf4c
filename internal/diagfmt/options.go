package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	ShowNotes   bool
	ShowPreview bool // print the offending source line with a caret
}

// ForestOpts configures the scope forest dump.
type ForestOpts struct {
	Color bool
}
