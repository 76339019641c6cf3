package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/source"
)

// LineLength limits the display width of each line. Width is measured in
// terminal columns (runewidth), with tabs advancing to the next indent stop,
// so CJK text and emoji count correctly.
type LineLength struct{}

func (LineLength) Name() string                   { return "line-length" }
func (LineLength) Code() diag.Code                { return diag.StyLineLength }
func (LineLength) DefaultSeverity() diag.Severity { return diag.SevWarning }
func (LineLength) Doc() string {
	return "lines must not exceed the configured display width (default 100)"
}

func (r LineLength) Check(ctx *Context) {
	max := ctx.Config.Style.MaxLineLength
	tabWidth := ctx.Config.Style.IndentWidth
	rc := ctx.RuleConfig()
	skipComments := rc.IgnoreComments != nil && *rc.IgnoreComments
	skipLong := rc.IgnoreLongStrings != nil && *rc.IgnoreLongStrings

	protected := protectedSpans(ctx)
	commentLines := map[uint32]bool{}
	if skipComments {
		commentLines = wholeCommentLines(ctx)
	}

	ctx.Lines(func(lineNum int, line []byte, sp source.Span) {
		if skipLong && lineIsContinuation(protected, sp.Start) {
			return
		}
		if skipComments && commentLines[sp.Start] {
			return
		}
		width, overflowAt := displayWidth(line, tabWidth, max)
		if width <= max {
			return
		}
		over := span(sp.File, sp.Start+overflowAt, sp.End)
		ctx.Report(over, fmt.Sprintf("line is %d columns, limit is %d", width, max)).Emit()
	})
}

// displayWidth returns the total width and the byte offset where the limit
// was first exceeded.
func displayWidth(line []byte, tabWidth, limit int) (int, uint32) {
	col := 0
	overflowAt := uint32(len(line))
	for i := 0; i < len(line); {
		var w int
		var size int
		if line[i] == '\t' {
			w = tabWidth - col%tabWidth
			size = 1
		} else {
			r, n := utf8.DecodeRune(line[i:])
			w = runewidth.RuneWidth(r)
			size = n
		}
		if col <= limit && col+w > limit && overflowAt == uint32(len(line)) {
			overflowAt = uint32(i)
		}
		col += w
		i += size
	}
	return col, overflowAt
}

// wholeCommentLines marks lines whose only content is a comment.
func wholeCommentLines(ctx *Context) map[uint32]bool {
	lines := map[uint32]bool{}
	for i := range ctx.Tokens {
		for _, tr := range ctx.Tokens[i].Leading {
			if !tr.IsComment() {
				continue
			}
			lineStart := lineStartOf(ctx.File.Content, tr.Span.Start)
			prefix := ctx.File.Content[lineStart:tr.Span.Start]
			if len(strings.TrimLeft(string(prefix), " \t")) == 0 {
				lines[lineStart] = true
			}
		}
	}
	return lines
}

func lineStartOf(content []byte, off uint32) uint32 {
	for off > 0 && content[off-1] != '\n' {
		off--
	}
	return off
}
