// Package config handles the project configuration stored in labpubs.yml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mlab-site/labpubs/internal/normalize"
	"github.com/mlab-site/labpubs/internal/snapshot"
)

const (
	// ConfigFile is the project configuration file name.
	ConfigFile = "labpubs.yml"

	DefaultAPIBase  = "https://api.researchmap.jp"
	DefaultLimit    = 500
	DefaultTimeout  = 30 * time.Second
	DefaultSnapshot = snapshot.DefaultPath
	DefaultIndex    = ".labpubs/cache/publications.db"
)

// Environment variables that override the file.
const (
	EnvAuthorID = "LABPUBS_AUTHOR_ID"
	EnvAPIBase  = "LABPUBS_API_BASE"
	EnvSnapshot = "LABPUBS_SNAPSHOT"
	EnvLogLevel = "LABPUBS_LOG_LEVEL"
	EnvLimit    = "LABPUBS_LIMIT"
)

// ErrNotFound is returned when no labpubs.yml is found.
var ErrNotFound = errors.New("not in a labpubs project (no " + ConfigFile + " found)")

// Config is the resolved project configuration.
type Config struct {
	Researchmap ResearchmapConfig  `yaml:"researchmap"`
	Owner       normalize.Matchers `yaml:"owner"`
	MissingDate string             `yaml:"missing_date,omitempty"`
	Snapshot    string             `yaml:"snapshot"` // relative to the project root unless absolute
	Index       string             `yaml:"index"`    // SQLite query index, relative like Snapshot
	Log         LogConfig          `yaml:"log"`

	root string
}

// ResearchmapConfig selects the author and API endpoint.
type ResearchmapConfig struct {
	AuthorID string        `yaml:"author_id"`
	APIBase  string        `yaml:"api_base,omitempty"`
	Limit    int           `yaml:"limit,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text, json
}

// Default returns a configuration with every default applied and no author.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Researchmap.APIBase == "" {
		c.Researchmap.APIBase = DefaultAPIBase
	}
	if c.Researchmap.Limit <= 0 {
		c.Researchmap.Limit = DefaultLimit
	}
	if c.Researchmap.Timeout <= 0 {
		c.Researchmap.Timeout = DefaultTimeout
	}
	if c.MissingDate == "" {
		c.MissingDate = normalize.DefaultMissingDate
	}
	if c.Snapshot == "" {
		c.Snapshot = DefaultSnapshot
	}
	if c.Index == "" {
		c.Index = DefaultIndex
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Path returns the path to labpubs.yml from a root path.
func Path(root string) string {
	return filepath.Join(root, ConfigFile)
}

// IsProject checks if the given path contains a labpubs.yml.
func IsProject(root string) bool {
	info, err := os.Stat(Path(root))
	return err == nil && !info.IsDir()
}

// FindProject walks up from the given path to find a labpubs project.
func FindProject(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsProject(abs) {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNotFound
		}
		abs = parent
	}
}

// Load reads labpubs.yml from the project root and applies defaults.
func Load(root string) (*Config, error) {
	return LoadFile(Path(root))
}

// LoadFile reads a configuration file. Relative paths inside it are resolved
// against the file's directory.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}
	cfg.root = abs
	return cfg, nil
}

// Parse decodes configuration YAML and applies defaults. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// ApplyEnv overrides configuration values from the environment. lookup is
// usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAuthorID); ok && v != "" {
		c.Researchmap.AuthorID = v
	}
	if v, ok := lookup(EnvAPIBase); ok && v != "" {
		c.Researchmap.APIBase = v
	}
	if v, ok := lookup(EnvSnapshot); ok && v != "" {
		c.Snapshot = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLimit); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLimit, err)
		}
		c.Researchmap.Limit = n
	}
	return nil
}

// Validate checks the values needed to run the fetch pipeline.
func (c *Config) Validate() error {
	if c.Researchmap.AuthorID == "" {
		return fmt.Errorf("researchmap.author_id is required (or set %s)", EnvAuthorID)
	}
	if c.Researchmap.Limit <= 0 || c.Researchmap.Limit > 1000 {
		return fmt.Errorf("researchmap.limit must be between 1 and 1000, got %d", c.Researchmap.Limit)
	}
	if err := c.Owner.Validate(); err != nil {
		return err
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level: %s (valid: debug, info, warn, error)", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format: %s (valid: text, json)", c.Log.Format)
	}
	return nil
}

// Root returns the project root the configuration was loaded from.
func (c *Config) Root() string {
	return c.root
}

// SetRoot sets the directory relative paths resolve against.
func (c *Config) SetRoot(root string) {
	c.root = root
}

// SnapshotPath returns the absolute snapshot path.
func (c *Config) SnapshotPath() string {
	return c.resolve(c.Snapshot)
}

// IndexPath returns the absolute query index path.
func (c *Config) IndexPath() string {
	return c.resolve(c.Index)
}

func (c *Config) resolve(p string) string {
	p = ExpandPath(p)
	if filepath.IsAbs(p) || c.root == "" {
		return p
	}
	return filepath.Join(c.root, p)
}

// Save writes the configuration as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
