package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
)

// LocationJSON is a file location in JSON output.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is an attached note in JSON output.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// FixEditJSON is a single text edit in JSON output.
type FixEditJSON struct {
	Location LocationJSON `json:"location"`
	NewText  string       `json:"new_text"`
	OldText  string       `json:"old_text,omitempty"`
}

// FixJSON is a fix suggestion in JSON output.
type FixJSON struct {
	Title         string        `json:"title"`
	Applicability string        `json:"applicability"`
	Edits         []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON is one diagnostic in JSON output.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON output.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(span source.Span, fileSet *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	file := fileSet.Get(span.File)
	var path string
	switch pathMode {
	case PathModeAbsolute:
		path = file.FormatPath("absolute", "")
	case PathModeRelative:
		path = file.FormatPath("relative", fileSet.BaseDir())
	case PathModeBasename:
		path = file.FormatPath("basename", "")
	default:
		path = file.FormatPath("auto", "")
	}

	loc := LocationJSON{
		File:      path,
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if includePositions {
		startPos, endPos := fileSet.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput assembles the JSON structure without serializing.
func BuildDiagnosticsOutput(bag *diag.Bag, fileSet *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := 0; i < maxItems; i++ {
		d := items[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Primary, fileSet, opts.PathMode, opts.IncludePositions),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{
					Message:  n.Msg,
					Location: makeLocation(n.Span, fileSet, opts.PathMode, opts.IncludePositions),
				})
			}
		}
		if opts.IncludeFixes {
			for _, f := range d.Fixes {
				fj := FixJSON{
					Title:         f.Title,
					Applicability: f.Applicability.String(),
				}
				for _, e := range f.Edits {
					fj.Edits = append(fj.Edits, FixEditJSON{
						Location: makeLocation(e.Span, fileSet, opts.PathMode, opts.IncludePositions),
						NewText:  e.NewText,
						OldText:  e.OldText,
					})
				}
				dj.Fixes = append(dj.Fixes, fj)
			}
		}
		diagnostics = append(diagnostics, dj)
	}
	return DiagnosticsOutput{Diagnostics: diagnostics, Count: len(diagnostics)}
}

// JSON writes the bag as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fileSet *source.FileSet, opts JSONOpts) error {
	out := BuildDiagnosticsOutput(bag, fileSet, opts)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
