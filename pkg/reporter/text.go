package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/yamllex/internal/ui/pretty"
	"github.com/yaklabco/yamllex/pkg/document"
	"github.com/yaklabco/yamllex/pkg/runner"
)

// TextReporter re-prints each analyzed section with every span rendered
// in the color of its style.
type TextReporter struct {
	opts    Options
	palette func(*document.Buffer) *pretty.Palette
	styles  *pretty.Styles
	bw      *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	renderer := pretty.NewRenderer(opts.Writer, pretty.IsColorEnabled(opts.Color, opts.Writer))

	// One palette per module; every section of a run normally shares one.
	palettes := make(map[string]*pretty.Palette)
	paletteFor := func(buf *document.Buffer) *pretty.Palette {
		module := buf.Module()
		palette, ok := palettes[module.Name]
		if !ok {
			palette = pretty.NewPalette(renderer, module, opts.Theme)
			palettes[module.Name] = palette
		}
		return palette
	}

	return &TextReporter{
		opts:    opts,
		palette: paletteFor,
		styles:  pretty.NewStylesWithRenderer(renderer),
		bw:      bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to analyze."))
		}
		return 0, nil
	}

	multiFile := len(result.Files) > 1
	printed := false
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("report cancelled: %w", err)
		}

		path := r.opts.displayPath(file.Path)
		switch {
		case file.Error != nil:
			reportFileError(r.opts.ErrorWriter, path, file.Error)
			continue
		case file.Skipped:
			if r.opts.ShowSkipped {
				fmt.Fprintln(r.bw, r.styles.Dim.Render(path+": skipped, not YAML"))
			}
			continue
		case len(file.Sections) == 0:
			continue
		}

		if multiFile || len(file.Sections) > 1 {
			if printed {
				fmt.Fprintln(r.bw)
			}
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Sections)))
		}
		printed = true

		for _, section := range file.Sections {
			if section.Kind != runner.SectionFile {
				fmt.Fprintln(r.bw, r.styles.FormatSectionHeader(string(section.Kind), section.StartLine, section.Info))
			}
			r.writeSection(section)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return sectionCount(result), nil
}

// writeSection prints the section line by line, clipping spans at line
// terminators so the gutter can be written at each line start.
func (r *TextReporter) writeSection(section runner.Section) {
	buf := section.Buffer
	if buf.Length() == 0 {
		return
	}
	palette := r.palette(buf)
	text := buf.Text()

	lines := runner.TextLines(buf)
	width := pretty.GutterWidth(section.StartLine + lines)

	for line := range lines {
		info, _ := buf.LineInfo(line)

		if r.opts.Gutter {
			r.bw.WriteString(r.styles.FormatGutter(section.StartLine+line, width, buf.FoldLevel(line)))
		}

		for _, span := range buf.LineSpans(line) {
			end := min(span.End, info.NewlineStart)
			if end <= span.Start {
				continue
			}
			r.bw.WriteString(palette.Render(span.Style, string(text[span.Start:end])))
		}

		if info.EndOffset > info.NewlineStart {
			r.bw.Write(text[info.NewlineStart:info.EndOffset])
		} else {
			// Unterminated last line.
			r.bw.WriteByte('\n')
		}
	}
}
