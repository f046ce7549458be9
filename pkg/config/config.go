// Package config defines core configuration types for yamllex.
// These types are pure data structures with no dependency on a config loader.
package config

import "strings"

// OutputFormat specifies how analyzed files are printed.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatOutline OutputFormat = "outline"
	FormatStats   OutputFormat = "stats"
)

// ColorMode controls colorized output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// MarkdownConfig controls analysis of YAML embedded in Markdown files.
type MarkdownConfig struct {
	// Enabled includes .md files and analyzes their front matter and
	// yaml code blocks.
	Enabled *bool `mapstructure:"enabled" yaml:"enabled,omitempty"`

	// DetectUntagged also analyzes fenced blocks without an info string
	// whose body is detected as YAML.
	DetectUntagged *bool `mapstructure:"detect_untagged" yaml:"detect_untagged,omitempty"`
}

// Config is the root configuration structure for yamllex.
type Config struct {
	// Keywords replaces the analyzer's default keyword list when set.
	Keywords []string `mapstructure:"keywords" yaml:"keywords,omitempty"`

	// ExtraKeywords are added to the keyword list in effect.
	ExtraKeywords []string `mapstructure:"extra_keywords" yaml:"extra_keywords,omitempty"`

	// Theme maps style names (e.g. "Key", "Comment") to colors.
	Theme map[string]string `mapstructure:"theme" yaml:"theme,omitempty"`

	// Markdown configures the Markdown embedding.
	Markdown MarkdownConfig `mapstructure:"markdown" yaml:"markdown,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Gutter prints fold markers beside highlighted output.
	Gutter *bool `mapstructure:"gutter" yaml:"gutter,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// Color controls colorized output.
	Color ColorMode `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Theme: make(map[string]string),
		Markdown: MarkdownConfig{
			Enabled:        boolPtr(true),
			DetectUntagged: boolPtr(false),
		},
		Gutter: boolPtr(false),
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
		Color:  ColorAuto,
	}
}

// MarkdownEnabled reports whether Markdown files are analyzed.
func (c *Config) MarkdownEnabled() bool {
	return c != nil && c.Markdown.Enabled != nil && *c.Markdown.Enabled
}

// DetectUntagged reports whether untagged fenced blocks are classified.
func (c *Config) DetectUntagged() bool {
	return c != nil && c.Markdown.DetectUntagged != nil && *c.Markdown.DetectUntagged
}

// GutterEnabled reports whether the fold gutter is printed.
func (c *Config) GutterEnabled() bool {
	return c != nil && c.Gutter != nil && *c.Gutter
}

// WordList returns the keyword list in effect as a space separated
// string: Keywords (or defaults when unset) followed by ExtraKeywords.
func (c *Config) WordList(defaults string) string {
	if c == nil {
		return defaults
	}

	words := strings.Fields(defaults)
	if c.Keywords != nil {
		words = c.Keywords
	}
	words = append(words[:len(words):len(words)], c.ExtraKeywords...)
	return strings.Join(words, " ")
}

func boolPtr(b bool) *bool {
	return &b
}
