package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Convert holds the per-file conversion settings.
type Convert struct {
	SourceEncoding string `toml:"source_encoding"`
	TargetEncoding string `toml:"target_encoding"`
	FoldWidth      int    `toml:"fold_width"`
}

// Batch holds the directory conversion settings.
type Batch struct {
	SourceDir      string   `toml:"source_dir"`
	DestinationDir string   `toml:"destination_dir"`
	Workers        int      `toml:"workers"`
	IncludeHidden  bool     `toml:"include_hidden"`
	Extensions     []string `toml:"extensions"`
	StopOnError    bool     `toml:"stop_on_error"`
	Lock           bool     `toml:"lock"`
}

// Logging holds logger settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	Convert Convert `toml:"convert"`
	Batch   Batch   `toml:"batch"`
	Logging Logging `toml:"logging"`
}

const (
	defaultSourceEncoding = "cp1047"
	defaultTargetEncoding = "utf-8"
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
)

// DefaultConfig returns the EBCDIC to host encoding setup.
func DefaultConfig() *Config {
	return &Config{
		Convert: Convert{
			SourceEncoding: defaultSourceEncoding,
			TargetEncoding: defaultTargetEncoding,
		},
		Batch: Batch{
			Workers: runtime.NumCPU(),
			Lock:    true,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// DefaultConfigPath is where LoadConfig looks when no path is given.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "charset-convertor", "config.toml"), nil
}

// LoadConfig reads path on top of the defaults. An empty path means the
// default location, which may be absent; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		p, err := DefaultConfigPath()
		if err != nil {
			return cfg, cfg.finish()
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("open config: %w", err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) finish() error {
	c.normalize()
	return c.Validate()
}

func (c *Config) normalize() {
	c.Convert.SourceEncoding = strings.TrimSpace(c.Convert.SourceEncoding)
	c.Convert.TargetEncoding = strings.TrimSpace(c.Convert.TargetEncoding)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if c.Batch.Workers == 0 {
		c.Batch.Workers = runtime.NumCPU()
	}
	c.Batch.SourceDir = strings.TrimSpace(c.Batch.SourceDir)
	c.Batch.DestinationDir = strings.TrimSpace(c.Batch.DestinationDir)
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.Convert.SourceEncoding == "" {
		return fmt.Errorf("convert.source_encoding: %w", ErrRequired)
	}
	if c.Convert.TargetEncoding == "" {
		return fmt.Errorf("convert.target_encoding: %w", ErrRequired)
	}
	if c.Convert.FoldWidth < 0 {
		return fmt.Errorf("convert.fold_width: %w: %d", ErrInvalidValue, c.Convert.FoldWidth)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers: %w: %d", ErrInvalidValue, c.Batch.Workers)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: %w: %q", ErrInvalidValue, c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: %w: %q", ErrInvalidValue, c.Logging.Level)
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

var (
	// ErrRequired marks a missing mandatory setting.
	ErrRequired = errors.New("value is required")
	// ErrInvalidValue marks a setting outside its allowed range.
	ErrInvalidValue = errors.New("invalid value")
)
