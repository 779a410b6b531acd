// Package config loads vyp settings from vyparse.toml or vyparse.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/vyparse/format"
)

// FileNames are the names Discover looks for, in order.
var FileNames = []string{"vyparse.toml", "vyparse.yaml", "vyparse.yml"}

// ErrNotFound is returned by Discover when no configuration file exists.
var ErrNotFound = errors.New("no configuration file found")

// Config holds the complete vyp configuration
type Config struct {
	Log   LogConfig   `toml:"log" yaml:"log"`
	Parse ParseConfig `toml:"parse" yaml:"parse"`
	LSP   LSPConfig   `toml:"lsp" yaml:"lsp"`
}

// LogConfig controls commonlog output
type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

// ParseConfig controls the ASDL parser and output
type ParseConfig struct {
	MaxInputBytes int    `toml:"max_input_bytes" yaml:"max_input_bytes"`
	Format        string `toml:"format" yaml:"format"`
	Trace         bool   `toml:"trace" yaml:"trace"`
}

// LSPConfig holds the identity the language server reports
type LSPConfig struct {
	Name    string `toml:"name" yaml:"name"`
	Version string `toml:"version" yaml:"version"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			MaxInputBytes: 8 << 20,
			Format:        "json",
		},
		LSP: LSPConfig{
			Name:    "vyparse",
			Version: "0.1.0",
		},
	}
}

// Load reads the file at path on top of Default. The syntax is chosen by
// extension: .toml, .yaml or .yml.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover walks from dir up to the file system root and returns the path
// of the first configuration file it finds.
func Discover(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Parse.MaxInputBytes < 0 {
		return fmt.Errorf("parse.max_input_bytes must not be negative, got %d", c.Parse.MaxInputBytes)
	}
	if !slices.Contains(format.Names, c.Parse.Format) {
		return fmt.Errorf("parse.format %q is not one of %s", c.Parse.Format, strings.Join(format.Names, ", "))
	}
	if c.LSP.Name == "" {
		return errors.New("lsp.name must not be empty")
	}
	return nil
}

// LogFile returns the configured log file, or nil for standard error.
func (c *Config) LogFile() *string {
	if c.Log.File == "" {
		return nil
	}
	path := c.Log.File
	return &path
}
