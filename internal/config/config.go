package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	AllowAutoCreateNamespaces bool     `json:"allowAutoCreateNamespaces" yaml:"allowAutoCreateNamespaces" env:"ALLOW_AUTO_CREATE_NAMESPACES"`
	DefaultNamespaceName      string   `json:"defaultNamespaceName" yaml:"defaultNamespaceName" env:"DEFAULT_NAMESPACE_NAME"`
	NamespaceNameRegex        string   `json:"namespaceNameRegex" yaml:"namespaceNameRegex" env:"NAMESPACE_NAME_REGEX"`
	MaxNamespaces             int      `json:"maxNamespaces" yaml:"maxNamespaces" env:"MAX_NAMESPACES"`
	AllowedNamespaces         []string `json:"allowedNamespaces" yaml:"allowedNamespaces" env:"ALLOWED_NAMESPACES" envSeparator:","`
	// RecordChanges appends every registry mutation to the namespace change log.
	RecordChanges bool `json:"recordChanges" yaml:"recordChanges" env:"RECORD_CHANGES"`
	// MaxFilterLength caps the size of CEL list filters; 0 disables the cap.
	MaxFilterLength int `json:"maxFilterLength" yaml:"maxFilterLength" env:"MAX_FILTER_LENGTH"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		AllowAutoCreateNamespaces: true,
		DefaultNamespaceName:      "default",
		NamespaceNameRegex:        "[a-z0-9-_]{1,64}",
		RecordChanges:             true,
		MaxFilterLength:           1024,
	}
}

// Validate checks values that would otherwise fail at first use.
func (c Config) Validate() error {
	if c.DefaultNamespaceName == "" {
		return fmt.Errorf("defaultNamespaceName must not be empty")
	}
	if c.NamespaceNameRegex != "" {
		if _, err := regexp.Compile(c.NamespaceNameRegex); err != nil {
			return fmt.Errorf("namespaceNameRegex: %w", err)
		}
	}
	if c.MaxNamespaces < 0 {
		return fmt.Errorf("maxNamespaces must be >= 0")
	}
	return nil
}

// Load reads configuration from a JSON or YAML file (by extension), layered
// over Default(). If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse yaml config: %w", err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse json config: %w", err)
		}
	}
	return cfg, nil
}
