package config

import "fmt"

// IsValid returns true if the format is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatOutline, FormatStats:
		return true
	default:
		return false
	}
}

// IsValid returns true if the color mode is known.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// ParseColorMode parses a --color value. The empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	if s == "" {
		return ColorAuto, nil
	}
	mode := ColorMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("unknown color mode %q; valid modes: auto, always, never", s)
	}
	return mode, nil
}
