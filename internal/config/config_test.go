package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fernandezvara/passcheck"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "passcheck.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if len(cfg.Strength.Tiers) != 4 || cfg.Strength.Tiers[3].Label != "Strong" || cfg.Strength.Tiers[3].MinLength != 12 {
		t.Errorf("unexpected default tiers: %+v", cfg.Strength.Tiers)
	}
	if cfg.Generator != passcheck.DefaultGeneratorOptions() {
		t.Errorf("generator = %+v", cfg.Generator)
	}
	if cfg.Wordlists.Source != "embedded" || cfg.DefaultListSize() != passcheck.List10K {
		t.Errorf("wordlists = %+v", cfg.Wordlists)
	}
	if sizes := cfg.PreloadSizes(); len(sizes) != 1 || sizes[0] != passcheck.List10K {
		t.Errorf("preload = %v", sizes)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  environment: production
strength:
  tiers:
    - {id: 0, label: "Bad", min_length: 0, min_diversity: 0}
    - {id: 1, label: "Good", min_length: 16, min_diversity: 3}
  requirements:
    require_symbol: true
    min_number_count: 2
generator:
  length: 24
  include_symbols: false
wordlists:
  source: dir
  dir: /var/lib/passcheck
  default_size: 100k
  preload: [10k, 100k]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9090 || !cfg.IsProduction() {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Generator.Length != 24 || cfg.Generator.IncludeSymbols || !cfg.Generator.IncludeLowercase {
		t.Errorf("generator = %+v", cfg.Generator)
	}
	if cfg.DefaultListSize() != passcheck.List100K || len(cfg.PreloadSizes()) != 2 {
		t.Errorf("wordlists = %+v", cfg.Wordlists)
	}

	policy := cfg.Policy()
	if got := policy.Check("abcdefghijklmnopqrst1!"); got.ID != 0 {
		t.Errorf("min number count should force tier 0, got %d", got.ID)
	}
	if got := policy.Check("abcdefghijklmnopq12!"); got.ID != 1 || got.Value != "Good" {
		t.Errorf("got %d/%s, want 1/Good", got.ID, got.Value)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PASSCHECK_SERVER_PORT", "7070")
	t.Setenv("PASSCHECK_STRENGTH_REQUIREMENTS_REQUIRE_NUMBER", "true")
	t.Setenv("PASSCHECK_WORDLISTS_PRELOAD", "10k,1m")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070", cfg.Server.Port)
	}
	if !cfg.Strength.Requirements.RequireNumber {
		t.Error("require_number override not applied")
	}
	if sizes := cfg.PreloadSizes(); len(sizes) != 2 || sizes[1] != passcheck.List1M {
		t.Errorf("preload = %v", sizes)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad port", "server: {port: 70000}", "Port"},
		{"bad source", "wordlists: {source: ftp}", "Source"},
		{"dir without path", "wordlists: {source: dir}", "Dir"},
		{"bad size", "wordlists: {default_size: 5k}", "DefaultSize"},
		{"bad log level", "log: {level: loud}", "Level"},
		{"redis without addr", "wordlists: {source: redis, redis: {addr: ''}}", "redis.addr"},
		{"s3 without bucket", "wordlists: {source: s3}", "s3.bucket"},
		{"negative length", "generator: {length: -4}", "generator length"},
		{"oversized length", "generator: {length: 5000}", "generator length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_InvalidTiers(t *testing.T) {
	path := writeConfig(t, `
strength:
  tiers:
    - {id: 0, label: "Bad", min_length: 4, min_diversity: 0}
`)
	_, err := Load(path)
	if !errors.Is(err, passcheck.ErrInvalidTiers) {
		t.Errorf("Load() error = %v, want ErrInvalidTiers", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
