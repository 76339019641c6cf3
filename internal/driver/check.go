// Package driver orchestrates linting: loading, lexing, parsing, rule
// execution, caching, and parallel fan-out over paths.
package driver

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dgxo/luastyle/internal/config"
	"github.com/dgxo/luastyle/internal/diag"
	"github.com/dgxo/luastyle/internal/lexer"
	"github.com/dgxo/luastyle/internal/parser"
	"github.com/dgxo/luastyle/internal/rules"
	"github.com/dgxo/luastyle/internal/source"
	"github.com/dgxo/luastyle/internal/token"
)

// Options configures a lint run.
type Options struct {
	Config         *config.Config
	Registry       *rules.Registry
	MaxDiagnostics int
	Jobs           int
	// Cache is optional; nil disables caching.
	Cache *DiskCache
	// CacheWarn receives non-fatal cache failure notices; nil discards them.
	CacheWarn io.Writer
}

func (o *Options) config() *config.Config {
	if o.Config != nil {
		return o.Config
	}
	def := config.Default()
	return &def
}

func (o *Options) registry() *rules.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return rules.DefaultRegistry()
}

func (o *Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return 1000
}

// FileResult is the outcome for a single file.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Tokens    []token.Token
	Bag       *diag.Bag
	FromCache bool
}

// CheckFile lints one already-loaded file: lex, parse, rules, then sort and
// dedup. It never touches the cache.
func CheckFile(fileSet *source.FileSet, fileID source.FileID, opts Options) FileResult {
	file := fileSet.Get(fileID)
	bag := diag.NewBag(opts.maxDiagnostics())
	reporter := diag.BagReporter{Bag: bag}

	tokens := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
	chunk := parser.New(tokens, fileID, reporter).ParseChunk()
	opts.registry().Run(file, tokens, chunk, opts.config(), reporter)

	bag.Sort()
	bag.Dedup()
	return FileResult{Path: file.Path, FileID: fileID, Tokens: tokens, Bag: bag}
}

// ListLuaFiles returns the sorted *.lua and *.luau files under dir.
func ListLuaFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".lua") || strings.HasSuffix(path, ".luau") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExpandPaths resolves a mix of files and directories into a sorted,
// deduplicated file list.
func ExpandPaths(paths []string) ([]string, error) {
	seen := map[string]struct{}{}
	var files []string
	add := func(p string) {
		if _, dup := seen[p]; !dup {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("cannot stat %s: %w", p, err)
		}
		if info.IsDir() {
			sub, err := ListLuaFiles(p)
			if err != nil {
				return nil, fmt.Errorf("failed to walk %s: %w", p, err)
			}
			for _, f := range sub {
				add(f)
			}
			continue
		}
		add(p)
	}
	sort.Strings(files)
	return files, nil
}

// CheckPaths lints files and directories in parallel. Results come back in
// path order regardless of scheduling.
func CheckPaths(ctx context.Context, paths []string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ExpandPaths(paths)
	if err != nil {
		return nil, nil, err
	}

	baseDir, _ := os.Getwd()
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// load up front; FileSet is not written to concurrently
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	var warnMu sync.Mutex
	warnf := func(format string, args ...any) {
		if opts.CacheWarn == nil {
			return
		}
		warnMu.Lock()
		fmt.Fprintf(opts.CacheWarn, format, args...)
		warnMu.Unlock()
	}

	configHash := opts.config().Hash()

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.New(diag.SevError, diag.IOReadError, source.Span{},
					"failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, Bag: bag}
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)

			var key Digest
			if opts.Cache != nil {
				key = CacheKey(file.Hash, configHash)
				cached, hit, err := opts.Cache.Get(key, fileID)
				if err != nil {
					warnf("luastyle: cache read for %s failed: %v\n", path, err)
				} else if hit {
					bag := diag.NewBag(opts.maxDiagnostics())
					for _, d := range cached {
						bag.Add(d)
					}
					results[i] = FileResult{Path: path, FileID: fileID, Bag: bag, FromCache: true}
					return nil
				}
			}

			res := CheckFile(fileSet, fileID, opts)
			if opts.Cache != nil {
				if err := opts.Cache.Put(key, res.Bag.Items()); err != nil {
					warnf("luastyle: cache write for %s failed: %v\n", path, err)
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// MergeBags combines per-file bags into one sorted bag for rendering.
func MergeBags(results []FileResult, maxDiagnostics int) *diag.Bag {
	merged := diag.NewBag(maxDiagnostics)
	for _, r := range results {
		if r.Bag != nil {
			merged.Merge(r.Bag)
		}
	}
	merged.Sort()
	return merged
}
