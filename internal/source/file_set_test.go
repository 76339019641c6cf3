package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetAddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.lua", []byte("local x = 1\nreturn x\n"))

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Error("virtual file must carry FileVirtual flag")
	}
	if len(f.LineIdx) != 2 {
		t.Errorf("LineIdx length = %d, want 2", len(f.LineIdx))
	}

	got, ok := fs.GetByPath("test.lua")
	if !ok || got.ID != id {
		t.Errorf("GetByPath = %v, %v; want id %d", got, ok, id)
	}
}

func TestFileSetLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.lua")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("local a = 1\r\nreturn a\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	f := fs.Get(id)
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF")
	}
	if string(f.Content) != "local a = 1\nreturn a\n" {
		t.Errorf("content = %q", f.Content)
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.lua", []byte("ab\ncd\n"))

	start, end := fs.Resolve(Span{File: id, Start: 3, End: 5})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("start = %d:%d, want 2:1", start.Line, start.Col)
	}
	if end.Line != 2 || end.Col != 3 {
		t.Errorf("end = %d:%d, want 2:3", end.Line, end.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.lua", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	tests := []struct {
		num  uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.num); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.num, got, tt.want)
		}
	}
}

func TestLineSpan(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("t.lua", []byte("aa\nbbb\n"))
	f := fs.Get(id)

	sp := f.LineSpan(2)
	if sp.Start != 3 || sp.End != 6 {
		t.Errorf("LineSpan(2) = %v, want 3-6", sp)
	}
}
