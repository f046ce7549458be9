package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/yamllex/internal/ui/pretty"
	yamllexer "github.com/yaklabco/yamllex/pkg/lexer/yaml"
	"github.com/yaklabco/yamllex/pkg/runner"
)

// StatsReporter prints per-style byte counts as a table, followed by
// the run summary.
type StatsReporter struct {
	opts   Options
	styles *pretty.Styles
	table  *pretty.TableFormatter
	bw     *bufio.Writer
}

// NewStatsReporter creates a new stats reporter.
func NewStatsReporter(opts Options) *StatsReporter {
	renderer := pretty.NewRenderer(opts.Writer, pretty.IsColorEnabled(opts.Color, opts.Writer))
	styles := pretty.NewStylesWithRenderer(renderer)
	palette := pretty.NewPalette(renderer, yamllexer.Module(), opts.Theme)

	return &StatsReporter{
		opts:   opts,
		styles: styles,
		table:  pretty.NewTableFormatter(styles, palette, opts.TermWidth),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *StatsReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		if file.Error != nil {
			reportFileError(r.opts.ErrorWriter, r.opts.displayPath(file.Path), file.Error)
		}
	}

	if table := r.table.FormatStyleTable(result.Stats); table != "" {
		fmt.Fprint(r.bw, table)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	}

	return sectionCount(result), nil
}
