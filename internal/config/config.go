package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sokinpui/reconcile/internal/merge"
	"github.com/sokinpui/reconcile/internal/state"
)

// DefaultSeparator matches a line of three or more '=' characters.
const DefaultSeparator = `(?m)^={3,}[ \t]*(?:\r?\n|$)`

// FileConfig holds settings loaded from reconcile.yml.
type FileConfig struct {
	HistoryLimit int    `yaml:"historyLimit,omitempty"`
	Separator    string `yaml:"separator,omitempty"`
	Reason       string `yaml:"reason,omitempty"`
}

// Load reads reconcile.yml or reconcile.yaml from dir. A missing file yields
// the defaults, not an error.
func Load(dir string) (*FileConfig, error) {
	for _, name := range []string{"reconcile.yml", "reconcile.yaml"} {
		cfg, err := LoadFile(filepath.Join(dir, name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return Defaults(), nil
}

// LoadFile reads a config file from path and fills in defaults for any
// missing key.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	if cfg.HistoryLimit < 0 {
		return nil, fmt.Errorf("invalid config file %s: historyLimit must not be negative", path)
	}
	cfg.fill()
	return &cfg, nil
}

// Defaults returns the built-in settings.
func Defaults() *FileConfig {
	cfg := &FileConfig{}
	cfg.fill()
	return cfg
}

func (c *FileConfig) fill() {
	if c.HistoryLimit == 0 {
		c.HistoryLimit = state.DefaultLimit
	}
	if c.Separator == "" {
		c.Separator = DefaultSeparator
	}
	if c.Reason == "" {
		c.Reason = merge.DefaultReason
	}
}
