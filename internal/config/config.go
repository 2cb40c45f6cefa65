package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/1broseidon/winshift/internal/geom"
)

const DefaultLogLevel = "warn"

// Placement is a named rectangle in fractions of a display's usable area.
type Placement struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Percent converts p to display-relative coordinates.
func (p Placement) Percent() geom.PercentRect {
	return geom.Percent(p.X, p.Y, p.Width, p.Height)
}

// Config is the effective configuration after defaults and includes.
type Config struct {
	// Display overrides $DISPLAY when non-empty.
	Display string `yaml:"display,omitempty"`
	// XAuthority overrides $XAUTHORITY when non-empty.
	XAuthority string `yaml:"xauthority,omitempty"`
	LogLevel   string `yaml:"log_level"`
	// LogFile switches logging from stderr to JSON lines in this file.
	LogFile       string `yaml:"log_file,omitempty"`
	RespectStruts bool   `yaml:"respect_struts"`
	NotifyOnError bool   `yaml:"notify_on_error"`
	// PaletteBackend is auto, rofi, fuzzel, wofi or dmenu.
	PaletteBackend       string               `yaml:"palette_backend"`
	PaletteFuzzyMatching bool                 `yaml:"palette_fuzzy_matching"`
	Placements           map[string]Placement `yaml:"placements,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       DefaultLogLevel,
		RespectStruts:  true,
		PaletteBackend: "auto",
		Placements:     map[string]Placement{},
	}
}

// CustomPlacements returns the configured placements keyed by name.
func (c *Config) CustomPlacements() map[string]geom.PercentRect {
	out := make(map[string]geom.PercentRect, len(c.Placements))
	for name, p := range c.Placements {
		out[name] = p.Percent()
	}
	return out
}

// ValidationError points at the offending key and, when known, where it was
// set.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}

	switch c.PaletteBackend {
	case "auto", "rofi", "fuzzel", "wofi", "dmenu":
	default:
		return &ValidationError{Path: "palette_backend", Err: fmt.Errorf("palette_backend must be one of: auto, rofi, fuzzel, wofi, dmenu")}
	}

	names := make([]string, 0, len(c.Placements))
	for name := range c.Placements {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := "placements." + name
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "placements", Err: fmt.Errorf("placement name must not be empty")}
		}
		if name != strings.ToLower(name) || strings.ContainsAny(name, ", \t") {
			return &ValidationError{Path: path, Err: fmt.Errorf("placement names must be lowercase without commas or spaces")}
		}
		p := c.Placements[name]
		if p.Width <= 0 || p.Height <= 0 {
			return &ValidationError{Path: path, Err: fmt.Errorf("width and height must be > 0")}
		}
	}
	return nil
}
