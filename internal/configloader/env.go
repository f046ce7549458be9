package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/yamllex/pkg/config"
)

// envVarPrefix is the prefix for all yamllex environment variables.
const envVarPrefix = "YAMLLEX_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"KEYWORDS":                 {field: "keywords", typ: envTypeSlice},
	"EXTRA_KEYWORDS":           {field: "extra_keywords", typ: envTypeSlice},
	"MARKDOWN_ENABLED":         {field: "markdown.enabled", typ: envTypeBool},
	"MARKDOWN_DETECT_UNTAGGED": {field: "markdown.detect_untagged", typ: envTypeBool},
	"GUTTER":                   {field: "gutter", typ: envTypeBool},
	"JOBS":                     {field: "jobs", typ: envTypeInt},
	"FORMAT":                   {field: "format", typ: envTypeString},
	"COLOR":                    {field: "color", typ: envTypeString},
	"IGNORE":                   {field: "ignore", typ: envTypeSlice},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with YAMLLEX_ (e.g., YAMLLEX_GUTTER).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		parts := parseSliceValue(value)
		return setSliceField(cfg, mapping.field, parts)
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "markdown.enabled":
		cfg.Markdown.Enabled = &value
	case "markdown.detect_untagged":
		cfg.Markdown.DetectUntagged = &value
	case "gutter":
		cfg.Gutter = &value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "keywords":
		cfg.Keywords = value
	case "extra_keywords":
		cfg.ExtraKeywords = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"YAMLLEX_KEYWORDS":                 "Comma-separated keyword list replacing the defaults",
		"YAMLLEX_EXTRA_KEYWORDS":           "Comma-separated keywords added to the list",
		"YAMLLEX_MARKDOWN_ENABLED":         "Analyze YAML inside Markdown: true or false",
		"YAMLLEX_MARKDOWN_DETECT_UNTAGGED": "Classify untagged code blocks: true or false",
		"YAMLLEX_GUTTER":                   "Print the fold gutter: true or false",
		"YAMLLEX_JOBS":                     "Number of parallel workers (0 = auto)",
		"YAMLLEX_FORMAT":                   "Output format: text, json, outline, or stats",
		"YAMLLEX_COLOR":                    "Color mode: auto, always, or never",
		"YAMLLEX_IGNORE":                   "Comma-separated list of ignore patterns",
	}
}
