// Package reporter renders analyzed files: styled source, JSON records,
// fold outlines and style statistics.
package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/yamllex/pkg/runner"
)

// Reporter formats and writes analysis results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of sections reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = io.Discard
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatOutline:
		return NewOutlineReporter(opts), nil
	case FormatStats:
		return NewStatsReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// sectionCount returns the number of analyzed sections in result.
func sectionCount(result *runner.Result) int {
	if result == nil {
		return 0
	}
	n := 0
	for _, file := range result.Files {
		n += len(file.Sections)
	}
	return n
}

// reportFileError writes a per-file error line.
func reportFileError(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "%s: error: %v\n", path, err)
}
