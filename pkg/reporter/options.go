package reporter

import (
	"io"
	"os"
	"path/filepath"

	"github.com/yaklabco/yamllex/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for per-file errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	Color config.ColorMode

	// Theme overrides token colors by style name.
	Theme map[string]string

	// Gutter prefixes text output with line numbers and fold markers.
	Gutter bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// ShowSkipped lists files that were not recognized as YAML.
	ShowSkipped bool

	// Compact uses minified JSON.
	Compact bool

	// TermWidth bounds table output. Zero uses a default.
	TermWidth int

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       config.ColorAuto,
		ShowSummary: true,
	}
}

// displayPath makes path relative to WorkingDir when possible.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil || !filepath.IsLocal(rel) {
		return path
	}
	return rel
}
