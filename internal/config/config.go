// Package config provides configuration management for mdreveal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/mdreveal/pkg/deck"
)

// Config holds the mdreveal configuration.
type Config struct {
	Theme          string `yaml:"theme,omitempty"`
	Transition     string `yaml:"transition,omitempty"`
	Stylesheet     string `yaml:"stylesheet,omitempty"`
	HighlightStyle string `yaml:"highlight_style,omitempty"`
	RevealURL      string `yaml:"reveal_url,omitempty"`

	SlideNumbers bool `yaml:"slide_numbers,omitempty"`
	// Controls and Progress default to on when unset.
	Controls *bool `yaml:"controls,omitempty"`
	Progress *bool `yaml:"progress,omitempty"`

	// Header and Footer add decoration elements to every slide; Footer also
	// turns on the page footer.
	Header bool `yaml:"header,omitempty"`
	Footer bool `yaml:"footer,omitempty"`

	TitleSlideTemplate string `yaml:"title_slide_template,omitempty"`
	FooterTemplate     string `yaml:"footer_template,omitempty"`
}

// Validate checks the theme, transition and highlight style names.
func (c *Config) Validate() error {
	if err := deck.ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := deck.ValidateTransition(c.Transition); err != nil {
		return err
	}
	return deck.ValidateHighlightStyle(c.HighlightStyle)
}

// DeckOptions converts the configuration into deck options.
func (c *Config) DeckOptions() deck.Options {
	opts := deck.DefaultOptions()
	if c.Theme != "" {
		opts.Theme = c.Theme
	}
	if c.Transition != "" {
		opts.Transition = c.Transition
	}
	if c.HighlightStyle != "" {
		opts.HighlightStyle = c.HighlightStyle
	}
	if c.RevealURL != "" {
		opts.RevealURL = c.RevealURL
	}
	if c.Controls != nil {
		opts.Controls = *c.Controls
	}
	if c.Progress != nil {
		opts.Progress = *c.Progress
	}
	opts.Stylesheet = c.Stylesheet
	opts.SlideNumbers = c.SlideNumbers
	opts.Footer = c.Footer
	opts.TitleSlideTemplate = c.TitleSlideTemplate
	opts.FooterTemplate = c.FooterTemplate
	return opts
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Boolean variables that do not parse are ignored.
func (c *Config) LoadFromEnv() {
	if theme := os.Getenv("MDREVEAL_THEME"); theme != "" {
		c.Theme = theme
	}
	if transition := os.Getenv("MDREVEAL_TRANSITION"); transition != "" {
		c.Transition = transition
	}
	if stylesheet := os.Getenv("MDREVEAL_STYLESHEET"); stylesheet != "" {
		c.Stylesheet = stylesheet
	}
	if style := os.Getenv("MDREVEAL_HIGHLIGHT_STYLE"); style != "" {
		c.HighlightStyle = style
	}
	// REVEAL_JS_URL is shared with other reveal.js tooling.
	if url := getEnvWithFallback("MDREVEAL_REVEAL_URL", "REVEAL_JS_URL"); url != "" {
		c.RevealURL = url
	}
	if v, ok := envBool("MDREVEAL_SLIDE_NUMBERS"); ok {
		c.SlideNumbers = v
	}
	if v, ok := envBool("MDREVEAL_CONTROLS"); ok {
		c.Controls = &v
	}
	if v, ok := envBool("MDREVEAL_PROGRESS"); ok {
		c.Progress = &v
	}
	if v, ok := envBool("MDREVEAL_HEADER"); ok {
		c.Header = v
	}
	if v, ok := envBool("MDREVEAL_FOOTER"); ok {
		c.Footer = v
	}
}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

func envBool(name string) (bool, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "mdreveal", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".mdreveal", "config.yml")
	}

	return filepath.Join(home, ".config", "mdreveal", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file gives an empty configuration; a file that exists
// but does not parse is an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}

// ResolvePath returns path, or the default location when it is empty.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	return DefaultConfigPath()
}
