// Package config loads CLI configuration with viper. Precedence is
// defaults < config file < QUILL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/quillkit/quill/export"
	"github.com/quillkit/quill/storage"
)

// ConfigOption describes one configuration key: its default value and
// the comment emitted into generated config files.
type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their
// meanings. This is the single source of truth for default values and
// generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "output.path", Default: storage.DefaultPath, Comment: "Where saved documents are written"},
		{Key: "output.format", Default: "text", Comment: "Default export format: text, markdown, html or json"},

		{Key: "storage.backend", Default: "file", Comment: "Persistence backend: file, db or memory"},

		{Key: "preview.style", Default: "dracula", Comment: "Glamour style used by compose --preview"},
		{Key: "preview.width", Default: 80, Comment: "Word wrap column used by compose --preview"},
	}
}

// applyDefaults seeds viper with defaults defined in GetConfigOptions.
// This centralizes default values and descriptions in one place.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided viper instance is mutated with defaults, file contents,
// and environment overrides.
func Load(v *viper.Viper) error {
	// Configure search paths unless SetConfigFile was provided upstream,
	// in which case it takes precedence and these are skipped.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "quill"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "quill"))
		}
		v.AddConfigPath(".")
	}

	// Apply centralized defaults (lowest precedence)
	applyDefaults(v)

	// Read config file if present (overrides defaults)
	_ = v.ReadInConfig()

	// Environment variables: QUILL_* (highest among these sources)
	v.SetEnvPrefix("quill")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

// Validate reports configuration values that cannot work. All problems
// are collected into a single error so the user sees every one at once.
func Validate(v *viper.Viper) error {
	var problems []string

	if strings.TrimSpace(v.GetString("output.path")) == "" {
		problems = append(problems, "output.path is required")
	}
	if _, err := export.ParseFormat(v.GetString("output.format")); err != nil {
		problems = append(problems, fmt.Sprintf("output.format %q is not a known export format", v.GetString("output.format")))
	}
	switch backend := v.GetString("storage.backend"); backend {
	case "file", "db", "memory":
	default:
		problems = append(problems, fmt.Sprintf("storage.backend %q must be file, db or memory", backend))
	}
	if v.GetInt("preview.width") <= 0 {
		problems = append(problems, "preview.width must be greater than 0")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "quill", "config.toml")
}
