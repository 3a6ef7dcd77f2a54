package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file searched for by LoadConfig
const FileName = "lcmgen.yaml"

// Config represents the lcmgen.yaml configuration file
type Config struct {
	Language string     `yaml:"language"`
	Schema   []string   `yaml:"schema"`
	Output   string     `yaml:"output"`
	Go       GoConfig   `yaml:"go"`
	Rust     RustConfig `yaml:"rust"`
}

// GoConfig contains Go backend configuration
type GoConfig struct {
	ImportPrefix   string `yaml:"import_prefix"`
	RuntimeImport  string `yaml:"runtime_import"`
	FileName       string `yaml:"file_name"`
	DefaultPackage string `yaml:"default_package"`
}

// RustConfig contains Rust backend configuration
type RustConfig struct {
	FileName string `yaml:"file_name"`
}

// Default returns the configuration used when no lcmgen.yaml exists
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// LoadConfig loads lcmgen.yaml from the current directory or a parent directory.
// Relative paths in the file are resolved against the directory it was found in.
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	config.resolve(filepath.Dir(path))

	return &config, nil
}

// ErrNotFound is returned when no configuration file exists in the searched directories
var ErrNotFound = errors.New("no " + FileName + " found")

// loadConfigFromDir searches for lcmgen.yaml in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w in %s or any parent directory", ErrNotFound, startDir)
}

func (c *Config) applyDefaults() {
	if c.Language == "" {
		c.Language = "go"
	}
}

// resolve makes relative schema and output paths relative to dir
func (c *Config) resolve(dir string) {
	for i, s := range c.Schema {
		c.Schema[i] = join(dir, s)
	}

	if c.Output != "" {
		c.Output = join(dir, c.Output)
	}
}

func join(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(dir, path)
}

// Validate checks that the configuration can drive a generation run
func (c *Config) Validate() error {
	var errs []error

	if len(c.Schema) == 0 {
		errs = append(errs, errors.New("no schema files configured"))
	}

	if c.Output == "" {
		errs = append(errs, errors.New("no output directory configured"))
	} else if info, err := os.Stat(c.Output); err == nil && !info.IsDir() {
		errs = append(errs, fmt.Errorf("output %s is not a directory", c.Output))
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, fmt.Errorf("invalid output %s: %w", c.Output, err))
	}

	return errors.Join(errs...)
}

// FileNameFor returns the configured aggregate file name for a language, or
// "" to keep the backend default.
func (c *Config) FileNameFor(language string) string {
	switch language {
	case "go":
		return c.Go.FileName
	case "rust", "rs":
		return c.Rust.FileName
	default:
		return ""
	}
}
