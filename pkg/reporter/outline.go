package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/yamllex/internal/ui/pretty"
	"github.com/yaklabco/yamllex/pkg/document"
	"github.com/yaklabco/yamllex/pkg/runner"
)

// outlineIndent is the indentation per nesting level.
const outlineIndent = "  "

// OutlineEntry is one fold header placed in the outline tree.
type OutlineEntry struct {
	Region document.Region

	// Depth is the number of enclosing regions.
	Depth int

	// Text is the header line with surrounding whitespace removed.
	Text string
}

// BuildOutline nests the fold regions of buf into a tree, in line order.
func BuildOutline(buf *document.Buffer) []OutlineEntry {
	regions := buf.Outline()
	entries := make([]OutlineEntry, 0, len(regions))

	// Stack of EndLines of the open regions.
	var open []int
	for _, region := range regions {
		for len(open) > 0 && open[len(open)-1] < region.StartLine {
			open = open[:len(open)-1]
		}
		entries = append(entries, OutlineEntry{
			Region: region,
			Depth:  len(open),
			Text:   strings.TrimSpace(string(buf.Line(region.StartLine))),
		})
		open = append(open, region.EndLine)
	}
	return entries
}

// OutlineReporter prints the fold headers of each section as an
// indented tree of line numbers and header text.
type OutlineReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewOutlineReporter creates a new outline reporter.
func NewOutlineReporter(opts Options) *OutlineReporter {
	renderer := pretty.NewRenderer(opts.Writer, pretty.IsColorEnabled(opts.Color, opts.Writer))
	return &OutlineReporter{
		opts:   opts,
		styles: pretty.NewStylesWithRenderer(renderer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *OutlineReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("report cancelled: %w", err)
		}

		path := r.opts.displayPath(file.Path)
		if file.Error != nil {
			reportFileError(r.opts.ErrorWriter, path, file.Error)
			continue
		}
		if len(file.Sections) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Sections)))
		for _, section := range file.Sections {
			if section.Kind != runner.SectionFile {
				fmt.Fprintln(r.bw, outlineIndent+r.styles.FormatSectionHeader(string(section.Kind), section.StartLine, section.Info))
			}
			r.writeOutline(section)
		}
	}

	return sectionCount(result), nil
}

func (r *OutlineReporter) writeOutline(section runner.Section) {
	entries := BuildOutline(section.Buffer)
	if len(entries) == 0 {
		return
	}

	last := entries[len(entries)-1].Region.EndLine
	width := pretty.GutterWidth(section.StartLine + last + 1)

	for _, entry := range entries {
		start := section.StartLine + entry.Region.StartLine + 1
		end := section.StartLine + entry.Region.EndLine + 1
		fmt.Fprintf(r.bw, "%s%s %s%s\n",
			outlineIndent,
			r.styles.Location.Render(fmt.Sprintf("%*d-%-*d", width, start, width, end)),
			strings.Repeat(outlineIndent, entry.Depth),
			entry.Text,
		)
	}
}
