// Package config loads service and plugin settings from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "UNILABEL_"

// PluginConfig is the per-plugin configuration a content type reads once at
// construction.
type PluginConfig struct {
	Active    bool `yaml:"active" env:"ACTIVE"`
	ShowIntro bool `yaml:"showintro" env:"SHOWINTRO"`
}

// Provider resolves plugin configuration by namespace.
type Provider interface {
	Plugin(namespace string) PluginConfig
}

// Static is a Provider backed by a fixed map.
type Static map[string]PluginConfig

// Plugin implements Provider. Unknown namespaces are inactive.
func (s Static) Plugin(namespace string) PluginConfig {
	return s[namespace]
}

// Config is the service configuration.
type Config struct {
	DatabasePath    string `yaml:"database_path" env:"DB_PATH"`
	TemplatesDir    string `yaml:"templates_dir" env:"TEMPLATES_DIR"`
	TemplatesReload bool   `yaml:"templates_reload" env:"TEMPLATES_RELOAD"`
	Locale          string `yaml:"locale" env:"LOCALE"`
	HTTPAddr        string `yaml:"http_addr" env:"HTTP_ADDR"`
	RoutePath       string `yaml:"route_path" env:"ROUTE_PATH"`
	LogLevel        string `yaml:"log_level" env:"LOG_LEVEL"`

	Plugins map[string]PluginConfig `yaml:"plugins" env:"-"`
	Labels  []LabelConfig           `yaml:"labels" env:"-"`
}

// LabelConfig describes a host label for standalone use, where no host
// course database exists to resolve it from.
type LabelConfig struct {
	ID          int64  `yaml:"id"`
	Course      int64  `yaml:"course"`
	Name        string `yaml:"name"`
	Intro       string `yaml:"intro"`
	IntroFormat int    `yaml:"introformat"`
	CourseModID int64  `yaml:"cmid"`
}

// Label returns the configured label with id.
func (c Config) Label(id int64) (LabelConfig, bool) {
	for _, label := range c.Labels {
		if label.ID == id {
			return label, true
		}
	}
	return LabelConfig{}, false
}

var _ Provider = Config{}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		DatabasePath: "unilabel.db",
		Locale:       "en-US",
		HTTPAddr:     ":8080",
		RoutePath:    "/unilabel",
		LogLevel:     "info",
		Plugins:      map[string]PluginConfig{},
	}
}

// Plugin implements Provider.
func (c Config) Plugin(namespace string) PluginConfig {
	return c.Plugins[namespace]
}

// Load reads path (optional) over the defaults and then applies environment
// overrides. Plugin overrides use UNILABEL_<NAMESPACE>_ACTIVE and
// UNILABEL_<NAMESPACE>_SHOWINTRO for every configured namespace plus the
// namespaces listed in known.
func Load(path string, known ...string) (Config, error) {
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return Config{}, fmt.Errorf("config: file %q not found", path)
		case err != nil:
			return Config{}, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	if err := ParseEnv(&cfg, EnvPrefix); err != nil {
		return Config{}, err
	}

	if cfg.Plugins == nil {
		cfg.Plugins = map[string]PluginConfig{}
	}
	for _, namespace := range known {
		if _, ok := cfg.Plugins[namespace]; !ok {
			cfg.Plugins[namespace] = PluginConfig{}
		}
	}
	for namespace, plugin := range cfg.Plugins {
		if err := ParseEnv(&plugin, PluginEnvPrefix(namespace)); err != nil {
			return Config{}, err
		}
		cfg.Plugins[namespace] = plugin
	}

	return cfg, nil
}

// PluginEnvPrefix returns the environment prefix of a plugin namespace.
func PluginEnvPrefix(namespace string) string {
	return EnvPrefix + strings.ToUpper(strings.TrimSpace(namespace)) + "_"
}

// ParseEnv applies environment variables under prefix to target. Fields whose
// variables are unset keep their current values.
func ParseEnv(target any, prefix string) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: prefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
