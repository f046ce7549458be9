package pretty

import (
	"fmt"
	"strconv"

	"github.com/yaklabco/yamllex/pkg/lexer"
)

// Fold gutter markers.
const (
	GutterHeaderMark = "-"
	GutterBodyMark   = "|"
	GutterNoneMark   = " "
)

// GutterWidth returns the width of line numbers for lineCount lines.
func GutterWidth(lineCount int) int {
	return len(strconv.Itoa(max(1, lineCount)))
}

// FormatGutter formats the gutter for a 0-based line: the 1-based line
// number right-aligned to width and a fold marker. Headers get
// GutterHeaderMark; lines nested under a header get GutterBodyMark.
func (s *Styles) FormatGutter(line, width int, level lexer.FoldLevel) string {
	number := s.GutterNumber.Render(fmt.Sprintf("%*d", width, line+1))

	var mark string
	switch {
	case level.IsHeader():
		mark = s.GutterHeader.Render(GutterHeaderMark)
	case level.Level() > 0 && !level.IsWhite():
		mark = s.GutterBody.Render(GutterBodyMark)
	default:
		mark = GutterNoneMark
	}

	return number + " " + mark + " "
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, sections int) string {
	header := s.FilePath.Render(path)
	if sections > 1 {
		header += s.Dim.Render(fmt.Sprintf(" (%d sections)", sections))
	}
	return header
}

// FormatSectionHeader formats the header of an embedded section: its
// kind, the 1-based line it starts on and the fence info if any.
func (s *Styles) FormatSectionHeader(kind string, startLine int, info string) string {
	label := kind
	if info != "" {
		label += " " + info
	}
	return s.Section.Render(label) + s.Location.Render(fmt.Sprintf(" @ line %d", startLine+1))
}
