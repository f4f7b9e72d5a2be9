// Package config loads optional tool settings from a .pnpm-extra.toml file
// at the workspace root. All settings have working defaults; the file is
// not required.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/pnpm-extra/pnpm-extra/pkg/errors"
)

// FileName is the per-workspace configuration file.
const FileName = ".pnpm-extra.toml"

type Config struct {
	Tree      Tree      `toml:"tree"`
	Catalog   Catalog   `toml:"catalog"`
	Registry  Registry  `toml:"registry"`
	Formatter Formatter `toml:"formatter"`
}

// Tree controls which dependency kinds contribute edges to the
// inverse dependency tree.
type Tree struct {
	Dev      bool `toml:"dev"`
	Peer     bool `toml:"peer"`
	Optional bool `toml:"optional"`
}

type Catalog struct {
	// Default catalog name used when the command line names none.
	Name string `toml:"name"`
}

type Registry struct {
	URL      string        `toml:"url"`
	CacheTTL time.Duration `toml:"cache_ttl"`
}

type Formatter struct {
	// Command run on pnpm-workspace.yaml after a catalog edit. The file
	// path is appended as the final argument.
	Command []string `toml:"command"`
	Disable bool     `toml:"disable"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Tree:     Tree{Dev: true, Peer: true, Optional: true},
		Registry: Registry{CacheTTL: time.Hour},
		Formatter: Formatter{
			Command: []string{"pnpm", "exec", "prettier", "--write"},
		},
	}
}

// Load reads .pnpm-extra.toml from root, falling back to [Default] when the
// file does not exist.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading %s", path)
	}

	cfg := Default()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing %s", path)
	}
	if len(cfg.Formatter.Command) == 0 {
		cfg.Formatter.Command = Default().Formatter.Command
	}
	if cfg.Registry.CacheTTL == 0 {
		cfg.Registry.CacheTTL = time.Hour
	}
	return cfg, nil
}
