package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
)

// Pretty renders the bag's diagnostics for a terminal. The bag is expected
// to be sorted. Each diagnostic prints as
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//
// followed by the source line with a caret underline, then notes and fix
// titles when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fileSet *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fileSet, opts)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fileSet *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		formatLocation(d.Primary, fileSet, opts.PathMode),
		severityLabel(d.Severity, opts.Color),
		codeLabel(d.Code, opts.Color),
		d.Message)
	printContext(w, d.Primary, fileSet, opts.Color)
	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "%s: note: %s\n", formatLocation(n.Span, fileSet, opts.PathMode), n.Msg)
		}
	}
	if opts.ShowFixes {
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			fmt.Fprintf(w, "  fix: %s (%s)\n", f.Title, f.Applicability)
		}
	}
}

func formatLocation(sp source.Span, fileSet *source.FileSet, mode PathMode) string {
	file := fileSet.Get(sp.File)
	var path string
	switch mode {
	case PathModeAbsolute:
		path = file.FormatPath("absolute", "")
	case PathModeRelative:
		path = file.FormatPath("relative", fileSet.BaseDir())
	case PathModeBasename:
		path = file.FormatPath("basename", "")
	default:
		path = file.FormatPath("auto", "")
	}
	start, _ := fileSet.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// printContext shows the first line of the span with a caret underline.
func printContext(w io.Writer, sp source.Span, fileSet *source.FileSet, colored bool) {
	file := fileSet.Get(sp.File)
	start, end := fileSet.Resolve(sp)
	line := file.GetLine(start.Line)
	if line == "" && sp.Len() == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	underlineLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		underlineLen = int(end.Col - start.Col)
	} else if end.Line > start.Line {
		underlineLen = len(line) - int(start.Col) + 1
	}
	if underlineLen < 1 {
		underlineLen = 1
	}
	// mirror tabs so the caret lines up under tab-indented code
	var padB strings.Builder
	for i := 0; i < int(start.Col)-1 && i < len(line); i++ {
		if line[i] == '\t' {
			padB.WriteByte('\t')
		} else {
			padB.WriteByte(' ')
		}
	}
	pad := padB.String()
	marker := "^"
	if underlineLen > 1 {
		marker += strings.Repeat("~", underlineLen-1)
	}
	if colored {
		marker = color.New(color.FgHiGreen, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", pad, marker)
}

func severityLabel(sev diag.Severity, colored bool) string {
	s := sev.String()
	if !colored {
		return s
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(s)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(s)
	default:
		return color.New(color.FgCyan).Sprint(s)
	}
}

func codeLabel(code diag.Code, colored bool) string {
	id := code.ID()
	if !colored {
		return id
	}
	return color.New(color.Bold).Sprint(id)
}
