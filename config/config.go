// Package config reads the optional mig configuration file and .env files.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"gopkg.in/yaml.v3"
)

const (
	// LocalFileName is looked up in the working directory before the XDG location.
	LocalFileName = "mig.yaml"

	DefaultDir      = "migrations"
	DefaultLogLevel = "info"
)

// Config holds the settings that can also be given on the command line. Empty
// fields are unset.
type Config struct {
	Driver   string `yaml:"driver,omitempty"`
	DSN      string `yaml:"dsn,omitempty"`
	Dir      string `yaml:"dir,omitempty"`
	Table    string `yaml:"table,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`

	fs   vfs.FileSystem
	path string
}

func NewConfig(fs vfs.FileSystem, path string) *Config {
	return &Config{fs: fs, path: path}
}

// Load reads and parses the configuration file. A missing or empty file leaves
// every field unset.
func (c *Config) Load() error {
	data, err := vfs.ReadFile(c.fs, c.path)
	if err != nil {
		if vfs.IsErrNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed reading configuration file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err = decoder.Decode(c); err != nil {
		return fmt.Errorf("failed parsing configuration file %s: %w", c.path, err)
	}

	return nil
}

func (c *Config) Path() string {
	return c.path
}

// SetDefaults fills the fields that weren't set already.
func (c *Config) SetDefaults() {
	if c.Dir == "" {
		c.Dir = DefaultDir
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// DefaultPath returns ./mig.yaml when it exists, $XDG_CONFIG_HOME/mig/config.yaml
// otherwise.
func DefaultPath(fs vfs.FileSystem) string {
	if fi, err := fs.Stat(LocalFileName); err == nil && !fi.IsDir() {
		return LocalFileName
	}

	return filepath.Join(xdg.ConfigHome, "mig", "config.yaml")
}

// LoadEnv exports the variables of the given .env files. Missing files are skipped
// and variables already present in the environment are never overridden.
func LoadEnv(fs vfs.FileSystem, files ...string) error {
	for _, file := range files {
		data, err := vfs.ReadFile(fs, file)
		if err != nil {
			if vfs.IsErrNotExist(err) {
				continue
			}
			return fmt.Errorf("failed reading %s: %w", file, err)
		}

		vars, err := godotenv.Parse(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed parsing %s: %w", file, err)
		}

		for key, value := range vars {
			if _, ok := os.LookupEnv(key); ok {
				continue
			}
			if err = os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed setting %s: %w", key, err)
			}
		}
	}

	return nil
}
