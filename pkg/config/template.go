package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every style of the theme with its default color.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// Styles is the theme palette written by a full template, in order.
	Styles []StyleColor
}

// StyleColor pairs a style name with its default color.
type StyleColor struct {
	Name  string
	Color string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Keywords highlighted as Keyword. Unset keeps the built-in list:
#   true false yes no on off y n null ~ .inf .nan
# keywords:
#   - true
#   - false

# Keywords added to the list in effect
# extra_keywords:
#   - maybe

# Analyze YAML front matter and yaml code blocks in Markdown files
markdown:
  enabled: true
  # Also analyze fenced blocks without a language that look like YAML
  detect_untagged: false

# Print fold markers beside highlighted output
gutter: false

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)

	if !opts.Full {
		buf.WriteString(`
# Style colors (ANSI 256 numbers or #rrggbb)
# theme:
#   Key: "39"
#   Comment: "#6a737d"
`)
		return buf.Bytes(), nil
	}

	buf.WriteString("\n# Style colors (ANSI 256 numbers or #rrggbb)\ntheme:\n")
	for _, sc := range opts.Styles {
		if sc.Color == "" {
			fmt.Fprintf(&buf, "  # %s: \"\"\n", sc.Name)
			continue
		}
		fmt.Fprintf(&buf, "  %s: %q\n", sc.Name, sc.Color)
	}

	return buf.Bytes(), nil
}

// templateToJSON renders the template settings as JSON. JSON has no
// comments, so only the values are written.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	cfg := map[string]any{
		"markdown": map[string]any{
			"enabled":         true,
			"detect_untagged": false,
		},
		"gutter": false,
		"ignore": []string{},
	}

	if opts.Full {
		theme := make(map[string]string, len(opts.Styles))
		for _, sc := range opts.Styles {
			if sc.Color != "" {
				theme[sc.Name] = sc.Color
			}
		}
		cfg["theme"] = theme
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# yamllex configuration
# See: https://github.com/yaklabco/yamllex`
}
