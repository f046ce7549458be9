// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/yaklabco/yamllex/pkg/config"
)

// Styles contains the styled renderers for CLI chrome: headers,
// gutters, summaries and tables. Token colors live in a Palette.
type Styles struct {
	// File and section headers
	FilePath lipgloss.Style
	Section  lipgloss.Style
	Location lipgloss.Style

	// Fold gutter
	GutterNumber lipgloss.Style
	GutterHeader lipgloss.Style
	GutterBody   lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style
	Warning      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableBar       lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewRenderer returns a renderer for w with a fixed color profile:
// ANSI256 when colorEnabled, plain ASCII otherwise. Detection is left
// to IsColorEnabled so that "always" works on pipes.
func NewRenderer(w io.Writer, colorEnabled bool) *lipgloss.Renderer {
	renderer := lipgloss.NewRenderer(w)
	if colorEnabled {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return renderer
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	return NewStylesWithRenderer(NewRenderer(os.Stdout, colorEnabled))
}

// NewStylesWithRenderer creates Styles bound to renderer.
func NewStylesWithRenderer(renderer *lipgloss.Renderer) *Styles {
	style := func() lipgloss.Style { return renderer.NewStyle() }
	color := func(c string) lipgloss.Style { return renderer.NewStyle().Foreground(lipgloss.Color(c)) }

	return &Styles{
		FilePath: style().Bold(true),
		Section:  color("14"),
		Location: color("8"),

		GutterNumber: color("8"),
		GutterHeader: color("12").Bold(true),
		GutterBody:   color("8"),

		SummaryTitle: style().Bold(true),
		SummaryValue: style(),
		Success:      color("10").Bold(true),
		Failure:      color("9").Bold(true),
		Warning:      color("11").Bold(true),

		TableHeader:    color("7").Bold(true),
		TableSeparator: color("8"),
		TableBar:       color("12"),

		Dim:  color("8"),
		Bold: style().Bold(true),
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode config.ColorMode, writer io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
