package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/lmpdump/internal/dump"
	"github.com/san-kum/lmpdump/internal/histo"
)

const (
	DefaultDir       = "dumps"
	DefaultDataDir   = ".lmpdump"
	DefaultComponent = "vx"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Dir       string `yaml:"dir" env:"LMPDUMP_DIR"`
	Prefix    string `yaml:"prefix" env:"LMPDUMP_PREFIX"`
	Component string `yaml:"component" env:"LMPDUMP_COMPONENT"`
	Bins      int    `yaml:"bins" env:"LMPDUMP_BINS"`
	Stride    int    `yaml:"stride" env:"LMPDUMP_STRIDE"`
	DataDir   string `yaml:"data_dir" env:"LMPDUMP_DATA"`
	Verbose   bool   `yaml:"verbose" env:"LMPDUMP_VERBOSE"`
}

func DefaultConfig() *Config {
	return &Config{
		Dir:       DefaultDir,
		Prefix:    dump.DefaultPrefix,
		Component: DefaultComponent,
		Bins:      histo.DefaultBins,
		Stride:    histo.DefaultStride,
		DataDir:   DefaultDataDir,
	}
}

// Load reads the YAML file at path over the defaults and then applies
// LMPDUMP_* environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ParseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Write prints cfg as YAML.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(cfg)
}

func (c *Config) Validate() error {
	if _, err := dump.ParseComponent(c.Component); err != nil {
		return err
	}
	if c.Bins <= 0 {
		return fmt.Errorf("%w: bins must be positive, got %d", ErrInvalid, c.Bins)
	}
	if c.Stride <= 0 {
		return fmt.Errorf("%w: stride must be positive, got %d", ErrInvalid, c.Stride)
	}
	return nil
}
