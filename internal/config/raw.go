package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawConfig mirrors one YAML file. Nil fields were not set in that file.
type RawConfig struct {
	Include              IncludeList          `yaml:"include"`
	Display              *string              `yaml:"display"`
	XAuthority           *string              `yaml:"xauthority"`
	LogLevel             *string              `yaml:"log_level"`
	LogFile              *string              `yaml:"log_file"`
	RespectStruts        *bool                `yaml:"respect_struts"`
	NotifyOnError        *bool                `yaml:"notify_on_error"`
	PaletteBackend       *string              `yaml:"palette_backend"`
	PaletteFuzzyMatching *bool                `yaml:"palette_fuzzy_matching"`
	Placements           map[string]Placement `yaml:"placements"`
}

// merge layers overlay on top of c. Placements merge by name.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.LogFile != nil {
		out.LogFile = overlay.LogFile
	}
	if overlay.RespectStruts != nil {
		out.RespectStruts = overlay.RespectStruts
	}
	if overlay.NotifyOnError != nil {
		out.NotifyOnError = overlay.NotifyOnError
	}
	if overlay.PaletteBackend != nil {
		out.PaletteBackend = overlay.PaletteBackend
	}
	if overlay.PaletteFuzzyMatching != nil {
		out.PaletteFuzzyMatching = overlay.PaletteFuzzyMatching
	}
	if len(overlay.Placements) > 0 {
		merged := make(map[string]Placement, len(c.Placements)+len(overlay.Placements))
		for name, p := range c.Placements {
			merged[name] = p
		}
		for name, p := range overlay.Placements {
			merged[name] = p
		}
		out.Placements = merged
	}
	return out
}

// effective applies raw on top of the defaults.
func (c RawConfig) effective() *Config {
	cfg := DefaultConfig()
	if c.Display != nil {
		cfg.Display = *c.Display
	}
	if c.XAuthority != nil {
		cfg.XAuthority = *c.XAuthority
	}
	if c.LogLevel != nil {
		cfg.LogLevel = *c.LogLevel
	}
	if c.LogFile != nil {
		cfg.LogFile = *c.LogFile
	}
	if c.RespectStruts != nil {
		cfg.RespectStruts = *c.RespectStruts
	}
	if c.NotifyOnError != nil {
		cfg.NotifyOnError = *c.NotifyOnError
	}
	if c.PaletteBackend != nil {
		cfg.PaletteBackend = *c.PaletteBackend
	}
	if c.PaletteFuzzyMatching != nil {
		cfg.PaletteFuzzyMatching = *c.PaletteFuzzyMatching
	}
	for name, p := range c.Placements {
		cfg.Placements[name] = p
	}
	return cfg
}
