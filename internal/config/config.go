// Package config loads and validates luastyle.toml.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dgxo/luastyle/internal/diag"
)

// FileName is the manifest file discovered by walking up from the start
// directory.
const FileName = "luastyle.toml"

// Style holds the [style] table.
type Style struct {
	Indent        string `toml:"indent"`
	IndentWidth   int    `toml:"indent-width"`
	MaxLineLength int    `toml:"max-line-length"`
	Quote         string `toml:"quote"`
}

// RuleConfig holds one [rules.<name>] table. Pointer fields distinguish
// "unset" from an explicit value.
type RuleConfig struct {
	Enabled           *bool  `toml:"enabled"`
	Severity          string `toml:"severity"`
	IgnoreComments    *bool  `toml:"ignore-comments"`
	IgnoreLongStrings *bool  `toml:"ignore-long-strings"`
}

// Config is the effective configuration for a run.
type Config struct {
	Style Style                 `toml:"style"`
	Rules map[string]RuleConfig `toml:"rules"`

	// Path is where the config was loaded from; empty for defaults.
	Path string `toml:"-"`
}

// Default returns the configuration used when no luastyle.toml exists.
func Default() Config {
	return Config{
		Style: Style{
			Indent:        "tab",
			IndentWidth:   4,
			MaxLineLength: 100,
			Quote:         "double",
		},
		Rules: map[string]RuleConfig{},
	}
}

// Find walks up from startDir looking for luastyle.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads and validates the manifest at path.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the manifest near startDir, falling back to
// defaults when none exists.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	switch c.Style.Indent {
	case "tab", "space":
	default:
		return fmt.Errorf("[style].indent must be \"tab\" or \"space\", got %q", c.Style.Indent)
	}
	if c.Style.IndentWidth < 1 || c.Style.IndentWidth > 16 {
		return fmt.Errorf("[style].indent-width must be between 1 and 16, got %d", c.Style.IndentWidth)
	}
	if c.Style.MaxLineLength < 1 {
		return fmt.Errorf("[style].max-line-length must be positive, got %d", c.Style.MaxLineLength)
	}
	switch c.Style.Quote {
	case "double", "single":
	default:
		return fmt.Errorf("[style].quote must be \"double\" or \"single\", got %q", c.Style.Quote)
	}
	for name, rc := range c.Rules {
		if rc.Severity != "" {
			if _, err := diag.ParseSeverity(rc.Severity); err != nil {
				return fmt.Errorf("[rules.%s].severity: %w", name, err)
			}
		}
	}
	return nil
}

// CheckRuleNames rejects [rules.<name>] tables that do not match a
// registered rule. The caller supplies the registry's names so the package
// stays independent of the rule set.
func (c *Config) CheckRuleNames(known []string) error {
	set := make(map[string]struct{}, len(known))
	for _, n := range known {
		set[n] = struct{}{}
	}
	var bad []string
	for name := range c.Rules {
		if _, ok := set[name]; !ok {
			bad = append(bad, name)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("%s: unknown rules: %s", c.sourceName(), strings.Join(bad, ", "))
	}
	return nil
}

func (c *Config) sourceName() string {
	if c.Path != "" {
		return c.Path
	}
	return FileName
}

// Rule returns the per-rule overrides for name; the zero value when unset.
func (c *Config) Rule(name string) RuleConfig {
	return c.Rules[name]
}

// RuleEnabled reports whether a rule runs, given its registry default.
func (c *Config) RuleEnabled(name string) bool {
	if rc, ok := c.Rules[name]; ok && rc.Enabled != nil {
		return *rc.Enabled
	}
	return true
}

// RuleSeverity returns the configured severity or fallback.
func (c *Config) RuleSeverity(name string, fallback diag.Severity) diag.Severity {
	if rc, ok := c.Rules[name]; ok && rc.Severity != "" {
		if sev, err := diag.ParseSeverity(rc.Severity); err == nil {
			return sev
		}
	}
	return fallback
}

// Hash returns a stable digest of the effective configuration. It feeds the
// cache key, so any observable setting must contribute.
func (c *Config) Hash() string {
	h := sha256.New()
	fmt.Fprintf(h, "style|%s|%d|%d|%s\n",
		c.Style.Indent, c.Style.IndentWidth, c.Style.MaxLineLength, c.Style.Quote)
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rc := c.Rules[name]
		fmt.Fprintf(h, "rule|%s|%s|%s|%s|%s\n",
			name, boolPtrKey(rc.Enabled), rc.Severity,
			boolPtrKey(rc.IgnoreComments), boolPtrKey(rc.IgnoreLongStrings))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func boolPtrKey(b *bool) string {
	if b == nil {
		return "-"
	}
	if *b {
		return "t"
	}
	return "f"
}

// Starter is the manifest written by `luastyle init`.
const Starter = `# luastyle configuration
# See ` + "`luastyle rules`" + ` for the full rule list.

[style]
indent = "tab"
indent-width = 4
max-line-length = 100
quote = "double"

# Per-rule overrides:
#
# [rules.line-length]
# enabled = true
# severity = "warning"
# ignore-comments = false
`
