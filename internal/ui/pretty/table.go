package pretty

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/yamllex/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	minNameWidth     = 14
	bytesWidth       = 9
	shareWidth       = 6
	minBarWidth      = 10
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
	barRune          = "#"
)

// StyleRow is one row of the style breakdown table.
type StyleRow struct {
	Name  string
	Bytes int
	Share float64
}

// TableFormatter formats run statistics as styled tables.
type TableFormatter struct {
	styles    *Styles
	palette   *Palette
	termWidth int
}

// NewTableFormatter creates a new table formatter. A nil palette leaves
// style names uncolored.
func NewTableFormatter(styles *Styles, palette *Palette, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		palette:   palette,
		termWidth: termWidth,
	}
}

// StyleRows returns the per-style byte counts of stats, largest first,
// ties broken by name.
func StyleRows(stats runner.Stats) []StyleRow {
	rows := make([]StyleRow, 0, len(stats.BytesByStyle))
	for name, n := range stats.BytesByStyle {
		if n == 0 {
			continue
		}
		share := 0.0
		if stats.Bytes > 0 {
			share = float64(n) / float64(stats.Bytes)
		}
		rows = append(rows, StyleRow{Name: name, Bytes: n, Share: share})
	}
	slices.SortFunc(rows, func(a, b StyleRow) int {
		if c := cmp.Compare(b.Bytes, a.Bytes); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return rows
}

// FormatStyleTable formats the per-style breakdown of stats.
func (t *TableFormatter) FormatStyleTable(stats runner.Stats) string {
	rows := StyleRows(stats)
	if len(rows) == 0 {
		return ""
	}

	nameWidth := minNameWidth
	for _, row := range rows {
		nameWidth = max(nameWidth, len(row.Name))
	}
	barWidth := max(minBarWidth, t.termWidth-nameWidth-bytesWidth-shareWidth-3*tablePadding-1)
	totalWidth := 1 + nameWidth + bytesWidth + shareWidth + barWidth + 3*tablePadding

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %*s  %*s  %s", nameWidth, "STYLE", bytesWidth, "BYTES", shareWidth, "SHARE", "")
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.separator(totalWidth, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		name := fmt.Sprintf("%-*s", nameWidth, row.Name)
		if t.palette != nil {
			name = t.palette.Named(row.Name).Render(name)
		}
		bar := strings.Repeat(barRune, max(1, int(row.Share*float64(barWidth))))
		builder.WriteString(fmt.Sprintf(" %s  %*d  %5.1f%%  %s\n",
			name, bytesWidth, row.Bytes, row.Share*100, t.styles.TableBar.Render(bar)))
	}

	builder.WriteString(t.separator(totalWidth, heavySeparator))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(" %-*s  %*d\n", nameWidth, "Total", bytesWidth, stats.Bytes))

	return builder.String()
}

// FormatFileTable formats one row per analyzed section of file.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	if len(file.Sections) == 0 {
		return ""
	}

	const (
		kindWidth = 12
		numWidth  = 7
	)
	totalWidth := 1 + kindWidth + 4*numWidth + 4*tablePadding

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %*s  %*s  %*s  %*s",
		kindWidth, "SECTION", numWidth, "LINE", numWidth, "LINES", numWidth, "BYTES", numWidth, "FOLDS")
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.separator(totalWidth, lightSeparator))
	builder.WriteString("\n")

	for _, section := range file.Sections {
		buf := section.Buffer
		folds := 0
		for line := range buf.LineCount() {
			if buf.FoldLevel(line).IsHeader() {
				folds++
			}
		}
		builder.WriteString(fmt.Sprintf(" %-*s  %*d  %*d  %*d  %*d\n",
			kindWidth, truncateString(string(section.Kind), kindWidth),
			numWidth, section.StartLine+1,
			numWidth, runner.TextLines(buf),
			numWidth, buf.Length(),
			numWidth, folds,
		))
	}

	return builder.String()
}

func (t *TableFormatter) separator(width int, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, width))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// TruncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func TruncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
