// Package config loads rule configuration from sharplint.toml or
// .sharplint.yaml, found by walking up from the analysed directory.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// FileNames are the configuration files looked for in every directory, in
// priority order.
var FileNames = []string{"sharplint.toml", ".sharplint.yaml", ".sharplint.yml"}

var (
	// ErrUnknownKey reports a configuration key that no setting uses.
	ErrUnknownKey = errors.New("unknown configuration key")
	// ErrUnsupportedFormat reports a configuration file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
)

// RuleConfig is the per-rule section. A nil Enabled keeps the rule on.
type RuleConfig struct {
	Enabled  *bool  `toml:"enabled" yaml:"enabled"`
	Severity string `toml:"severity" yaml:"severity"`
}

// Config is the whole configuration file.
type Config struct {
	// Path is the file the configuration was read from; empty for defaults.
	Path string `toml:"-" yaml:"-"`

	Rules          map[string]RuleConfig `toml:"rules" yaml:"rules"`
	TestAttributes []string              `toml:"test_attributes" yaml:"test_attributes"`
	Jobs           int                   `toml:"jobs" yaml:"jobs"`
	MaxDiagnostics int                   `toml:"max_diagnostics" yaml:"max_diagnostics"`

	// Exclude holds doublestar patterns matched against slash-separated
	// paths relative to the configuration directory.
	Exclude []string `toml:"exclude" yaml:"exclude"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Rules: map[string]RuleConfig{}}
}

// Dir returns the directory relative paths in the configuration refer to.
func (c Config) Dir() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Excluded reports whether file (absolute or relative to the working
// directory) matches an exclude pattern.
func (c Config) Excluded(file string) bool {
	if len(c.Exclude) == 0 {
		return false
	}
	rel := file
	if dir := c.Dir(); dir != "" {
		if abs, err := filepath.Abs(file); err == nil {
			if r, err := filepath.Rel(dir, abs); err == nil {
				rel = r
			}
		}
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range c.Exclude {
		if matchExclude(pattern, rel) {
			return true
		}
	}
	return false
}

// matchExclude matches a doublestar pattern against a slash-separated path.
// Patterns without a slash also match the base name at any depth; a trailing
// slash excludes the whole directory.
func matchExclude(pattern, rel string) bool {
	if prefix, isDir := strings.CutSuffix(pattern, "/"); isDir {
		pattern = prefix + "/**"
	}
	if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		if ok, err := doublestar.Match(pattern, path.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

// Find walks up from startDir to locate a configuration file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and reads the configuration for startDir; defaults when there
// is none.
func Load(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads one configuration file; the format follows the extension.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		cfg, err = decodeTOML(data)
	case ".yaml", ".yml":
		cfg, err = decodeYAML(data)
	default:
		return Config{}, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Rules == nil {
		cfg.Rules = map[string]RuleConfig{}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	cfg.Path = path
	return cfg, nil
}

func decodeTOML(data []byte) (Config, error) {
	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func decodeYAML(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Default(), nil // пустой файл
		}
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) && slices.ContainsFunc(typeErr.Errors, func(msg string) bool {
			return strings.Contains(msg, "not found in type")
		}) {
			return Config{}, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(typeErr.Errors, "; "))
		}
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}
