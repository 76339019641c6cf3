// Package fix applies the text edits attached to diagnostics.
package fix

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
)

// Options controls which fixes are applied and how.
type Options struct {
	// DryRun computes the changes without writing files.
	DryRun bool
	// Heuristic also applies FixApplicabilitySafeWithHeuristics fixes.
	Heuristic bool
	// Accept filters diagnostics; nil accepts everything fixable.
	Accept func(d diag.Diagnostic) bool
}

// FileChange is the outcome for one file.
type FileChange struct {
	FileID     source.FileID
	Path       string
	Applied    int
	Skipped    int
	NewContent []byte
	Written    bool
}

// Result summarizes a fix run.
type Result struct {
	Changes []FileChange
	Applied int
	Skipped int
}

type candidate struct {
	diag  diag.Diagnostic
	edits []diag.TextEdit
}

// Apply selects one fix per fixable diagnostic, resolves conflicts, rewrites
// the affected files, and writes them atomically unless DryRun is set.
// Virtual files are rewritten in memory only.
func Apply(fileSet *source.FileSet, diags []diag.Diagnostic, opts Options) (Result, error) {
	byFile := map[source.FileID][]candidate{}
	var res Result
	for _, d := range diags {
		if !d.HasFixes() {
			continue
		}
		if opts.Accept != nil && !opts.Accept(d) {
			continue
		}
		f, ok := selectFix(d, opts.Heuristic)
		if !ok {
			res.Skipped++
			continue
		}
		edits := make([]diag.TextEdit, len(f.Edits))
		copy(edits, f.Edits)
		sort.Slice(edits, func(i, j int) bool { return edits[i].Span.Start < edits[j].Span.Start })
		byFile[d.Primary.File] = append(byFile[d.Primary.File], candidate{diag: d, edits: edits})
	}

	ids := make([]source.FileID, 0, len(byFile))
	for id := range byFile {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		change, err := applyFile(fileSet, id, byFile[id], opts)
		if err != nil {
			return res, err
		}
		res.Applied += change.Applied
		res.Skipped += change.Skipped
		res.Changes = append(res.Changes, change)
	}
	return res, nil
}

// selectFix picks the first fix whose applicability is allowed.
func selectFix(d diag.Diagnostic, heuristic bool) (diag.Fix, bool) {
	for _, f := range d.Fixes {
		if len(f.Edits) == 0 {
			continue
		}
		if f.Applicability == diag.FixApplicabilityAlwaysSafe || heuristic {
			return f, true
		}
	}
	return diag.Fix{}, false
}

func applyFile(fileSet *source.FileSet, id source.FileID, cands []candidate, opts Options) (FileChange, error) {
	file := fileSet.Get(id)
	change := FileChange{FileID: id, Path: file.Path}

	// deterministic: candidates in span order, first claim wins
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].edits[0].Span.Start < cands[j].edits[0].Span.Start
	})

	var accepted []diag.TextEdit
	for _, c := range cands {
		if !editsValid(file.Content, c.edits) || editsConflict(accepted, c.edits) {
			change.Skipped++
			continue
		}
		accepted = append(accepted, c.edits...)
		change.Applied++
	}
	if len(accepted) == 0 {
		change.NewContent = file.Content
		return change, nil
	}

	// apply back to front so earlier offsets stay valid
	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Span.Start > accepted[j].Span.Start })
	content := append([]byte(nil), file.Content...)
	for _, e := range accepted {
		content = append(content[:e.Span.Start], append([]byte(e.NewText), content[e.Span.End:]...)...)
	}
	change.NewContent = content

	if opts.DryRun || file.Flags&source.FileVirtual != 0 {
		return change, nil
	}
	if err := writeAtomic(file.Path, restoreFlavor(content, file.Flags)); err != nil {
		return change, fmt.Errorf("failed to write %s: %w", file.Path, err)
	}
	change.Written = true
	return change, nil
}

// restoreFlavor re-applies the line endings and BOM the file had on disk.
// Loading normalizes to LF without BOM; writing that back verbatim would
// rewrite every line of a CRLF file.
func restoreFlavor(content []byte, flags source.FileFlags) []byte {
	if flags&source.FileNormalizedCRLF != 0 {
		content = bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	}
	if flags&source.FileHadBOM != 0 {
		content = append([]byte{0xEF, 0xBB, 0xBF}, content...)
	}
	return content
}

// editsValid checks bounds and the OldText guards against stale spans.
func editsValid(content []byte, edits []diag.TextEdit) bool {
	for i, e := range edits {
		if e.Span.Start > e.Span.End || int(e.Span.End) > len(content) {
			return false
		}
		if e.OldText != "" && string(content[e.Span.Start:e.Span.End]) != e.OldText {
			return false
		}
		if i > 0 && e.Span.Start < edits[i-1].Span.End {
			return false
		}
	}
	return true
}

// editsConflict reports whether any new edit overlaps an accepted one.
// Insertions at the same point also conflict; order would be ambiguous.
func editsConflict(accepted, edits []diag.TextEdit) bool {
	for _, e := range edits {
		for _, a := range accepted {
			if e.Span.Start < a.Span.End && a.Span.Start < e.Span.End {
				return true
			}
			if e.Span.Start == a.Span.Start && e.Span.Len() == 0 && a.Span.Len() == 0 {
				return true
			}
		}
	}
	return false
}

func writeAtomic(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".luastyle-*.tmp")
	if err != nil {
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
