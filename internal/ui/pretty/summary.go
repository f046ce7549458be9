package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/yamllex/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files, 120 lines, 2 sections, 14 folds, 1 skipped".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesProcessed == 0 && stats.FilesErrored == 0 {
		return s.Dim.Render(fmt.Sprintf("No YAML found (%d %s checked)",
			stats.FilesDiscovered, plural(stats.FilesDiscovered, wordFile, wordFiles))) + "\n"
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("%d %s", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))),
		fmt.Sprintf("%d %s", stats.Lines, plural(stats.Lines, "line", "lines")),
	}
	if stats.Sections != stats.FilesProcessed {
		parts = append(parts, fmt.Sprintf("%d %s", stats.Sections, plural(stats.Sections, "section", "sections")))
	}
	parts = append(parts, fmt.Sprintf("%d %s", stats.FoldHeaders, plural(stats.FoldHeaders, "fold", "folds")))

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-18s %s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files analyzed", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesSkipped > 0 {
		row("Files skipped", s.Warning.Render(strconv.Itoa(stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		row("Files failed", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	builder.WriteString("\n")

	row("Sections", s.SummaryValue.Render(strconv.Itoa(stats.Sections)))
	row("Lines", s.SummaryValue.Render(strconv.Itoa(stats.Lines)))
	row("Bytes", s.SummaryValue.Render(strconv.Itoa(stats.Bytes)))
	row("Fold headers", s.SummaryValue.Render(strconv.Itoa(stats.FoldHeaders)))

	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Some files could not be read"))
	} else {
		builder.WriteString(s.Success.Render("Done"))
	}
	builder.WriteString("\n")

	return builder.String()
}
