package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mlab-site/labpubs/internal/normalize"
)

const sampleYAML = `researchmap:
  author_id: takumae80
  timeout: 10s
owner:
  - name: Takuya Maekawa
  - name: 前川 卓也
  - name: Maekawa
    match: contains
snapshot: public/pubs.json
log:
  level: debug
`

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Researchmap.AuthorID != "takumae80" {
		t.Errorf("AuthorID = %q", cfg.Researchmap.AuthorID)
	}
	if cfg.Researchmap.APIBase != DefaultAPIBase {
		t.Errorf("APIBase = %q, want default", cfg.Researchmap.APIBase)
	}
	if cfg.Researchmap.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", cfg.Researchmap.Limit, DefaultLimit)
	}
	if cfg.Researchmap.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Researchmap.Timeout)
	}
	if len(cfg.Owner) != 3 || cfg.Owner[2].Mode != normalize.MatchContains {
		t.Errorf("Owner = %+v", cfg.Owner)
	}
	if cfg.Snapshot != "public/pubs.json" {
		t.Errorf("Snapshot = %q", cfg.Snapshot)
	}
	if cfg.Index != DefaultIndex {
		t.Errorf("Index = %q, want default", cfg.Index)
	}
	if cfg.MissingDate != normalize.DefaultMissingDate {
		t.Errorf("MissingDate = %q", cfg.MissingDate)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if cfg.Snapshot != DefaultSnapshot {
		t.Errorf("Snapshot = %q, want default", cfg.Snapshot)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should require an author id")
	}
}

func TestParse_UnknownKey(t *testing.T) {
	if _, err := Parse([]byte("snapshop: x.json\n")); err == nil {
		t.Error("Parse() should reject unknown keys")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"limit", func(c *Config) { c.Researchmap.Limit = 5000 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"log format", func(c *Config) { c.Log.Format = "xml" }},
		{"owner mode", func(c *Config) { c.Owner = normalize.Matchers{{Name: "A", Mode: "fuzzy"}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Researchmap.AuthorID = "x"
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAuthorID: "someone",
		EnvSnapshot: "/tmp/p.json",
		EnvLogLevel: "warn",
		EnvLimit:    "100",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	if cfg.Researchmap.AuthorID != "someone" || cfg.Snapshot != "/tmp/p.json" || cfg.Log.Level != "warn" || cfg.Researchmap.Limit != 100 {
		t.Errorf("ApplyEnv() = %+v", cfg)
	}
	if cfg.Researchmap.APIBase != DefaultAPIBase {
		t.Errorf("unset variables should not override, APIBase = %q", cfg.Researchmap.APIBase)
	}

	env[EnvLimit] = "many"
	if err := cfg.ApplyEnv(lookup); err == nil {
		t.Error("ApplyEnv() should reject a non-numeric limit")
	}
}

func TestFindProject(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(Path(root), []byte(sampleYAML), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	nested := filepath.Join(root, "src", "data")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	got, err := FindProject(nested)
	if err != nil {
		t.Fatalf("FindProject() error = %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("FindProject() = %q, want %q", got, want)
	}
}

func TestFindProject_NotFound(t *testing.T) {
	if _, err := FindProject(t.TempDir()); err == nil {
		t.Error("FindProject() should fail outside a project")
	}
}

func TestLoad_ResolvesPaths(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(Path(root), []byte(sampleYAML), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	abs, _ := filepath.Abs(root)
	if cfg.Root() != abs {
		t.Errorf("Root() = %q, want %q", cfg.Root(), abs)
	}
	if got := cfg.SnapshotPath(); got != filepath.Join(abs, "public", "pubs.json") {
		t.Errorf("SnapshotPath() = %q", got)
	}
	if got := cfg.IndexPath(); got != filepath.Join(abs, DefaultIndex) {
		t.Errorf("IndexPath() = %q", got)
	}

	cfg.Snapshot = "/srv/site/pubs.json"
	if got := cfg.SnapshotPath(); got != "/srv/site/pubs.json" {
		t.Errorf("absolute SnapshotPath() = %q", got)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	cfg := Default()
	cfg.Researchmap.AuthorID = "takumae80"
	cfg.Owner = normalize.Matchers{{Name: "Takuya Maekawa", Mode: normalize.MatchExact}}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.Researchmap != cfg.Researchmap {
		t.Errorf("Researchmap = %+v, want %+v", loaded.Researchmap, cfg.Researchmap)
	}
	if len(loaded.Owner) != 1 || loaded.Owner[0] != cfg.Owner[0] {
		t.Errorf("Owner = %+v", loaded.Owner)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("ExpandPath(~/x) = %q", got)
	}
	if got := ExpandPath("/abs"); got != "/abs" {
		t.Errorf("ExpandPath(/abs) = %q", got)
	}
}
