package configloader

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/yamllex/pkg/config"
	"github.com/yaklabco/yamllex/pkg/lexer"
	yamllexer "github.com/yaklabco/yamllex/pkg/lexer/yaml"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "theme.Key").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// hexColor matches #rgb and #rrggbb colors.
//
//nolint:gochecknoglobals // Read-only compiled pattern.
var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// maxANSIColor is the largest ANSI 256 palette index.
const maxANSIColor = 255

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, outline, stats", cfg.Format),
		})
	}

	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateTheme(cfg, yamllexer.Module(), result)
	validateKeywords("keywords", cfg.Keywords, result)
	validateKeywords("extra_keywords", cfg.ExtraKeywords, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateTheme checks theme keys against the analyzer's styles and
// theme values against the accepted color syntax.
func validateTheme(cfg *config.Config, module *lexer.Module, result *ValidationResult) {
	for name, color := range cfg.Theme {
		if _, exists := module.StyleByName(name); !exists {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "theme." + name,
				Value:   name,
				Message: fmt.Sprintf("unknown style %q; it will be ignored", name),
			})
		}

		if !IsValidColor(color) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "theme." + name,
				Value:   color,
				Message: fmt.Sprintf("invalid color %q; use an ANSI number 0-255 or #rrggbb", color),
			})
		}
	}
}

// validateKeywords rejects entries the space separated word list cannot
// carry and warns about entries too long to ever match.
func validateKeywords(field string, words []string, result *ValidationResult) {
	for i, word := range words {
		switch {
		case word == "" || strings.ContainsAny(word, " \t\r\n"):
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Value:   word,
				Message: "keywords must be non-empty and contain no whitespace",
			})
		case len(word) > lexer.MaxKeywordLen:
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Value:   word,
				Message: fmt.Sprintf("keyword %q is longer than %d bytes and never matches", word, lexer.MaxKeywordLen),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		_, err := filepath.Match(pattern, "")
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidColor reports whether s is an ANSI 256 index or a hex color.
func IsValidColor(s string) bool {
	if hexColor.MatchString(s) {
		return true
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= maxANSIColor
}
