package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mode selects how forgiving ingestion is about absent or empty nodes.
type Mode string

const (
	// ModeLoose ignores absent values and empty records.
	ModeLoose Mode = "loose"
	// ModeStrict rejects absent values and empty relationship candidates.
	ModeStrict Mode = "strict"
)

// Config carries the key-naming conventions and strictness used by
// classification, loading and relationship inference.
type Config struct {
	Mode        Mode   `yaml:"mode"`
	IDKey       string `yaml:"id_key"`
	MetadataKey string `yaml:"metadata_key"`
	DataKey     string `yaml:"data_key"`
}

// DefaultConfig returns the default conventions: loose mode, `_k` identity,
// `_metadata` metadata and `data` record keys.
func DefaultConfig() Config {
	return Config{
		Mode:        ModeLoose,
		IDKey:       "_k",
		MetadataKey: "_metadata",
		DataKey:     "data",
	}
}

// Strict reports whether strict mode is active.
func (c Config) Strict() bool {
	return c.Mode == ModeStrict
}

// Validate checks that every key name is set and the mode is known.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeLoose, ModeStrict:
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", c.Mode, ModeLoose, ModeStrict)
	}
	if c.IDKey == "" {
		return fmt.Errorf("id key cannot be empty")
	}
	if c.MetadataKey == "" {
		return fmt.Errorf("metadata key cannot be empty")
	}
	if c.DataKey == "" {
		return fmt.Errorf("data key cannot be empty")
	}
	return nil
}

// LoadConfig reads a YAML config file and overlays it on DefaultConfig.
// Fields absent from the file keep their default value.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
