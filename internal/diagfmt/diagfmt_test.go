package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/diagfmt"
	"github.com/dgxo/luastyle/internal/lexer"
	"github.com/dgxo/luastyle/internal/source"
)

func demoBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.lua", []byte("local a = 1;\nlocal b = 2\n"))
	bag := diag.NewBag(100)
	sp := source.Span{File: id, Start: 11, End: 12}
	d := diag.New(diag.SevWarning, diag.StySemicolon, sp, "semicolon statement terminator").
		WithNote(sp, "drop it").
		WithFix("remove semicolon", diag.TextEdit{Span: sp, NewText: "", OldText: ";"})
	bag.Add(d)
	bag.Sort()
	return bag, fs
}

func TestPretty(t *testing.T) {
	bag, fs := demoBag(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{
		PathMode:  diagfmt.PathModeBasename,
		ShowNotes: true,
		ShowFixes: true,
	})
	out := buf.String()
	for _, want := range []string{
		"demo.lua:1:12: warning STY3007: semicolon statement terminator",
		"local a = 1;",
		"^",
		"note: drop it",
		"fix: remove semicolon",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrettyUnderlineAlignment(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.lua", []byte("local abc = 1\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.StyNaming, source.Span{File: id, Start: 6, End: 9}, "bad name"))
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{PathMode: diagfmt.PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("short output:\n%s", buf.String())
	}
	// caret row: six spaces then ^~~ under "abc"
	if lines[2] != "        ^~~" {
		t.Errorf("underline %q", lines[2])
	}
}

func TestJSON(t *testing.T) {
	bag, fs := demoBag(t)
	var buf bytes.Buffer
	err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         diagfmt.PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})
	if err != nil {
		t.Fatal(err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count=%d diags=%d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "STY3007" || d.Severity != "warning" {
		t.Errorf("code=%q severity=%q", d.Code, d.Severity)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 12 {
		t.Errorf("location %+v", d.Location)
	}
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Errorf("notes=%d fixes=%d", len(d.Notes), len(d.Fixes))
	}
	if d.Fixes[0].Edits[0].OldText != ";" {
		t.Errorf("edit %+v", d.Fixes[0].Edits[0])
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.lua", []byte("x\ny\nz\n"))
	bag := diag.NewBag(10)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.New(diag.SevWarning, diag.StyNaming, source.Span{File: id, Start: i, End: i + 1}, "m"))
	}
	bag.Sort()
	var buf bytes.Buffer
	if err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{Max: 2}); err != nil {
		t.Fatal(err)
	}
	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 {
		t.Errorf("count=%d, want 2", out.Count)
	}
	if bag.Len() != 3 {
		t.Error("bag must not be truncated by output")
	}
}

func TestSarif(t *testing.T) {
	bag, fs := demoBag(t)
	var buf bytes.Buffer
	err := diagfmt.Sarif(&buf, bag, fs, diagfmt.SarifRunMeta{ToolName: "luastyle", ToolVersion: "1.0.0"})
	if err != nil {
		t.Fatal(err)
	}
	var log map[string]any
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatal(err)
	}
	if log["version"] != "2.1.0" {
		t.Errorf("version %v", log["version"])
	}
	out := buf.String()
	for _, want := range []string{`"ruleId": "STY3007"`, `"level": "warning"`, `"name": "luastyle"`, `"startLine": 1`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.lua", []byte("local a = 1\n"))
	file := fs.Get(id)
	toks := lexer.Tokenize(file, lexer.Options{})

	var pretty bytes.Buffer
	if err := diagfmt.FormatTokensPretty(&pretty, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := pretty.String()
	for _, want := range []string{"local", `"a"`, "NumberLit", "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty dump missing %q:\n%s", want, out)
		}
	}

	var jsonBuf bytes.Buffer
	if err := diagfmt.FormatTokensJSON(&jsonBuf, toks); err != nil {
		t.Fatal(err)
	}
	var dump []diagfmt.TokenOutput
	if err := json.Unmarshal(jsonBuf.Bytes(), &dump); err != nil {
		t.Fatal(err)
	}
	if len(dump) != len(toks) {
		t.Errorf("dumped %d tokens, lexed %d", len(dump), len(toks))
	}
}
