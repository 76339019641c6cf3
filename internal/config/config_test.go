package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgxo/luastyle/internal/config"
	"github.com/dgxo/luastyle/internal/diag"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	if cfg.Style.Indent != "tab" {
		t.Errorf("indent %q", cfg.Style.Indent)
	}
	if cfg.Style.MaxLineLength != 100 {
		t.Errorf("max-line-length %d", cfg.Style.MaxLineLength)
	}
	if cfg.Style.Quote != "double" {
		t.Errorf("quote %q", cfg.Style.Quote)
	}
	if !cfg.RuleEnabled("semicolon") {
		t.Error("rules enabled by default")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[style]
indent = "space"
indent-width = 2

[rules.line-length]
enabled = false

[rules.semicolon]
severity = "error"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Style.Indent != "space" || cfg.Style.IndentWidth != 2 {
		t.Errorf("style not applied: %+v", cfg.Style)
	}
	// untouched keys keep their defaults
	if cfg.Style.MaxLineLength != 100 {
		t.Errorf("max-line-length %d, want default 100", cfg.Style.MaxLineLength)
	}
	if cfg.RuleEnabled("line-length") {
		t.Error("line-length should be disabled")
	}
	if got := cfg.RuleSeverity("semicolon", diag.SevWarning); got != diag.SevError {
		t.Errorf("severity %v, want error", got)
	}
	if got := cfg.RuleSeverity("naming", diag.SevWarning); got != diag.SevWarning {
		t.Errorf("unconfigured rule should keep its fallback, got %v", got)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantSub string
	}{
		{"bad indent", "[style]\nindent = \"banana\"\n", "indent"},
		{"bad quote", "[style]\nquote = \"triple\"\n", "quote"},
		{"bad width", "[style]\nindent-width = 0\n", "indent-width"},
		{"bad severity", "[rules.semicolon]\nseverity = \"fatal\"\n", "severity"},
		{"unknown key", "[style]\ntabs = true\n", "unknown keys"},
		{"bad toml", "[style\n", "TOML"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.content)
			_, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[style]\nindent = \"tab\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path, ok, err := config.Find(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("manifest not found from nested directory")
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want file under %q", path, root)
	}
}

func TestDiscoverFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" {
		t.Errorf("expected defaults, loaded %q", cfg.Path)
	}
	if cfg.Style.MaxLineLength != 100 {
		t.Error("defaults not applied")
	}
}

func TestCheckRuleNames(t *testing.T) {
	cfg := config.Default()
	cfg.Rules = map[string]config.RuleConfig{
		"semicolon":  {},
		"imaginary":  {},
		"also-wrong": {},
	}
	err := cfg.CheckRuleNames([]string{"semicolon", "naming"})
	if err == nil {
		t.Fatal("expected error for unknown rules")
	}
	if !strings.Contains(err.Error(), "also-wrong, imaginary") {
		t.Errorf("unknown rules should be sorted in the message: %q", err)
	}
	if err := cfg.CheckRuleNames([]string{"semicolon", "imaginary", "also-wrong"}); err != nil {
		t.Errorf("all known, got %v", err)
	}
}

func TestHashTracksSettings(t *testing.T) {
	a := config.Default()
	b := config.Default()
	if a.Hash() != b.Hash() {
		t.Error("identical configs must hash equal")
	}
	b.Style.MaxLineLength = 80
	if a.Hash() == b.Hash() {
		t.Error("style change must change the hash")
	}
	c := config.Default()
	on := true
	c.Rules = map[string]config.RuleConfig{"semicolon": {Enabled: &on}}
	if a.Hash() == c.Hash() {
		t.Error("rule override must change the hash")
	}
}

func TestStarterParses(t *testing.T) {
	path := writeManifest(t, t.TempDir(), config.Starter)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("starter manifest must load cleanly: %v", err)
	}
	if cfg.Style.Quote != "double" {
		t.Errorf("quote %q", cfg.Style.Quote)
	}
}
