package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/yamllex/pkg/config"
	"github.com/yaklabco/yamllex/pkg/lexer"
)

// defaultColors maps style names to ANSI 256 colors. Styles not listed
// render uncolored.
//
//nolint:gochecknoglobals // Read-only lookup table.
var defaultColors = map[string]string{
	"Operator":       "8",
	"Number":         "13",
	"DateTime":       "13",
	"Identifier":     "14",
	"Key":            "12",
	"Keyword":        "11",
	"Reference":      "5",
	"Tag":            "6",
	"VerbatimTag":    "6",
	"SingleQuoted":   "10",
	"DoubleQuoted":   "10",
	"Escape":         "3",
	"Comment":        "242",
	"DocumentMarker": "9",
	"Directive":      "9",
	"TextBlock":      "2",
}

// DefaultColor returns the built-in color of a style, or "".
func DefaultColor(name string) string {
	return defaultColors[name]
}

// DefaultTheme lists every style of module with its built-in color, in
// the module's style order.
func DefaultTheme(module *lexer.Module) []config.StyleColor {
	theme := make([]config.StyleColor, 0, len(module.Styles))
	for _, info := range module.Styles {
		theme = append(theme, config.StyleColor{Name: info.Name, Color: defaultColors[info.Name]})
	}
	return theme
}

// Palette maps the styles of one module to lipgloss styles.
type Palette struct {
	module *lexer.Module
	styles map[lexer.Style]lipgloss.Style
	plain  lipgloss.Style
}

// NewPalette builds the palette for module. Theme entries override the
// built-in colors; an empty color removes the color. Theme keys are
// matched case-insensitively and unknown names are ignored.
func NewPalette(renderer *lipgloss.Renderer, module *lexer.Module, theme map[string]string) *Palette {
	plain := renderer.NewStyle().TabWidth(lipgloss.NoTabConversion)

	overrides := make(map[lexer.Style]string, len(theme))
	for name, color := range theme {
		if style, ok := module.StyleByName(name); ok {
			overrides[style] = color
		}
	}

	palette := &Palette{
		module: module,
		styles: make(map[lexer.Style]lipgloss.Style, len(module.Styles)),
		plain:  plain,
	}
	for _, info := range module.Styles {
		color, ok := overrides[info.Style]
		if !ok {
			color = defaultColors[info.Name]
		}
		if color == "" {
			palette.styles[info.Style] = plain
			continue
		}
		palette.styles[info.Style] = plain.Foreground(lipgloss.Color(color))
	}
	return palette
}

// Style returns the lipgloss style for a token style.
func (p *Palette) Style(style lexer.Style) lipgloss.Style {
	if s, ok := p.styles[style]; ok {
		return s
	}
	return p.plain
}

// Render styles text. Each line is rendered on its own so newlines
// pass through untouched.
func (p *Palette) Render(style lexer.Style, text string) string {
	s := p.Style(style)

	var builder strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			builder.WriteByte('\n')
		}
		if line != "" {
			builder.WriteString(s.Render(line))
		}
	}
	return builder.String()
}

// Named returns the lipgloss style for a style name.
func (p *Palette) Named(name string) lipgloss.Style {
	if style, ok := p.module.StyleByName(name); ok {
		return p.Style(style)
	}
	return p.plain
}
