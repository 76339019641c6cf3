package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/rules"
	"github.com/dgxo/luastyle/internal/source"
)

// Bump when the payload format changes.
const cacheSchemaVersion uint16 = 1

// Digest is a cache key.
type Digest = [32]byte

// DiskCache stores per-file lint results under the user cache directory.
// A hit skips lexing, parsing, and rule execution. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is the serialized result for one (file, config, rules) key.
// Spans are stored as offsets and rebound to the current FileID on load.
type cachePayload struct {
	Schema uint16
	Diags  []cachedDiagnostic
}

type cachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []cachedNote
	Fixes    []cachedFix
}

type cachedNote struct {
	Message string
	Start   uint32
	End     uint32
}

type cachedFix struct {
	Title         string
	Applicability uint8
	Edits         []cachedEdit
}

type cachedEdit struct {
	Start   uint32
	End     uint32
	NewText string
	OldText string
}

// OpenDiskCache initializes the cache at the standard XDG location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes the cache at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey derives the lookup key for a file's lint result. Any input that
// can change the diagnostics must contribute.
func CacheKey(contentHash Digest, configHash string) Digest {
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], cacheSchemaVersion)
	h.Write(schema[:])
	h.Write(contentHash[:])
	h.Write([]byte(configHash))
	h.Write([]byte(rules.Version))
	var key Digest
	copy(key[:], h.Sum(nil))
	return key
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Put serializes the diagnostics for key, writing atomically.
func (c *DiskCache) Put(key Digest, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachePayload{Schema: cacheSchemaVersion}
	for _, d := range diags {
		payload.Diags = append(payload.Diags, freezeDiagnostic(d))
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmpPath := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, p); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Get loads the diagnostics for key, rebinding spans to fileID. The second
// return is false on a miss.
func (c *DiskCache) Get(key Digest, fileID source.FileID) ([]diag.Diagnostic, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	diags := make([]diag.Diagnostic, 0, len(payload.Diags))
	for _, cd := range payload.Diags {
		diags = append(diags, thawDiagnostic(cd, fileID))
	}
	return diags, true, nil
}

// DropAll removes every cache entry, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "files"))
}

func freezeDiagnostic(d diag.Diagnostic) cachedDiagnostic {
	cd := cachedDiagnostic{
		Severity: uint8(d.Severity),
		Code:     uint16(d.Code),
		Message:  d.Message,
		Start:    d.Primary.Start,
		End:      d.Primary.End,
	}
	for _, n := range d.Notes {
		cd.Notes = append(cd.Notes, cachedNote{Message: n.Msg, Start: n.Span.Start, End: n.Span.End})
	}
	for _, f := range d.Fixes {
		cf := cachedFix{Title: f.Title, Applicability: uint8(f.Applicability)}
		for _, e := range f.Edits {
			cf.Edits = append(cf.Edits, cachedEdit{
				Start: e.Span.Start, End: e.Span.End,
				NewText: e.NewText, OldText: e.OldText,
			})
		}
		cd.Fixes = append(cd.Fixes, cf)
	}
	return cd
}

func thawDiagnostic(cd cachedDiagnostic, fileID source.FileID) diag.Diagnostic {
	sp := func(start, end uint32) source.Span {
		return source.Span{File: fileID, Start: start, End: end}
	}
	d := diag.Diagnostic{
		Severity: diag.Severity(cd.Severity),
		Code:     diag.Code(cd.Code),
		Message:  cd.Message,
		Primary:  sp(cd.Start, cd.End),
	}
	for _, n := range cd.Notes {
		d.Notes = append(d.Notes, diag.Note{Msg: n.Message, Span: sp(n.Start, n.End)})
	}
	for _, f := range cd.Fixes {
		df := diag.Fix{Title: f.Title, Applicability: diag.FixApplicability(f.Applicability)}
		for _, e := range f.Edits {
			df.Edits = append(df.Edits, diag.TextEdit{
				Span: sp(e.Start, e.End), NewText: e.NewText, OldText: e.OldText,
			})
		}
		d.Fixes = append(d.Fixes, df)
	}
	return d
}
