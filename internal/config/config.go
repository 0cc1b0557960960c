package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all configurable paths and run settings.
type Config struct {
	// AssetDir is the directory holding the document and its buffer files.
	// Outputs land here too unless OutputDir overrides it.
	AssetDir  string `toml:"asset_dir"`
	Document  string `toml:"document"`
	OutputDir string `toml:"output_dir"`

	// Batch settings
	Workers int `toml:"workers"`

	Verbose bool `toml:"verbose"`
}

// Load reads a TOML config file. Fields not set in the file keep their zero
// values; Resolve fills those in afterwards.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetDir  string
	Document  string
	OutputDir string
	Workers   int
	Verbose   bool
}

// Resolve applies flag overrides and fills any remaining empty fields with
// defaults: the working directory as asset dir, the first .gltf found there
// as document, outputs next to the document.
func (c *Config) Resolve(flags Flags) {
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.Document != "" {
		c.Document = flags.Document
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Verbose {
		c.Verbose = true
	}

	if c.AssetDir == "" {
		c.AssetDir, _ = os.Getwd()
	}
	if c.Document == "" {
		c.Document = findDocument(c.AssetDir)
	} else if !filepath.IsAbs(c.Document) {
		c.Document = filepath.Join(c.AssetDir, c.Document)
	}
	if c.OutputDir == "" {
		c.OutputDir = c.AssetDir
	} else if !filepath.IsAbs(c.OutputDir) {
		c.OutputDir = filepath.Join(c.AssetDir, c.OutputDir)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// findDocument returns the lexically first .gltf file in dir, or "".
func findDocument(dir string) string {
	matches, err := filepath.Glob(filepath.Join(dir, "*.gltf"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	return matches[0]
}
