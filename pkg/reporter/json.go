package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/yamllex/pkg/document"
	yamllexer "github.com/yaklabco/yamllex/pkg/lexer/yaml"
	"github.com/yaklabco/yamllex/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string     `json:"version"`
	Files   []JSONFile `json:"files"`
	Summary JSONStats  `json:"summary"`
}

// JSONFile represents a single file's results.
type JSONFile struct {
	Path     string        `json:"path"`
	Sections []JSONSection `json:"sections"`
	Skipped  bool          `json:"skipped,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// JSONSection is one analyzed document. Span offsets and line numbers
// are relative to the section; Offset and StartLine place it in the file.
type JSONSection struct {
	Kind      string     `json:"kind"`
	Offset    int        `json:"offset"`
	StartLine int        `json:"startLine"`
	Info      string     `json:"info,omitempty"`
	Spans     []JSONSpan `json:"spans"`
	Lines     []JSONLine `json:"lines"`
}

// JSONSpan is a styled byte range.
type JSONSpan struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Style string `json:"style"`
}

// JSONLine is the per-line record: indentation, line kind and fold level.
type JSONLine struct {
	Line   int    `json:"line"`
	Indent int    `json:"indent"`
	Kind   string `json:"kind,omitempty"`
	Level  int    `json:"level"`
	Header bool   `json:"header,omitempty"`
	White  bool   `json:"white,omitempty"`
}

// JSONStats contains aggregate statistics.
type JSONStats struct {
	FilesDiscovered int            `json:"filesDiscovered"`
	FilesProcessed  int            `json:"filesProcessed"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesErrored    int            `json:"filesErrored"`
	Sections        int            `json:"sections"`
	Lines           int            `json:"lines"`
	Bytes           int            `json:"bytes"`
	FoldHeaders     int            `json:"foldHeaders"`
	BytesByStyle    map[string]int `json:"bytesByStyle"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return sectionCount(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFile, 0),
		Summary: JSONStats{BytesByStyle: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONStats{
		FilesDiscovered: stats.FilesDiscovered,
		FilesProcessed:  stats.FilesProcessed,
		FilesSkipped:    stats.FilesSkipped,
		FilesErrored:    stats.FilesErrored,
		Sections:        stats.Sections,
		Lines:           stats.Lines,
		Bytes:           stats.Bytes,
		FoldHeaders:     stats.FoldHeaders,
		BytesByStyle:    stats.BytesByStyle,
	}
	if output.Summary.BytesByStyle == nil {
		output.Summary.BytesByStyle = make(map[string]int)
	}

	output.Files = make([]JSONFile, 0, len(result.Files))
	for _, file := range result.Files {
		jsonFile := JSONFile{
			Path:     r.opts.displayPath(file.Path),
			Sections: make([]JSONSection, 0, len(file.Sections)),
			Skipped:  file.Skipped,
		}
		if file.Error != nil {
			jsonFile.Error = file.Error.Error()
		}

		for _, section := range file.Sections {
			jsonFile.Sections = append(jsonFile.Sections, buildSection(section))
		}

		output.Files = append(output.Files, jsonFile)
	}

	return output
}

func buildSection(section runner.Section) JSONSection {
	buf := section.Buffer
	module := buf.Module()

	spans := buf.Spans()
	out := JSONSection{
		Kind:      string(section.Kind),
		Offset:    section.Offset,
		StartLine: section.StartLine,
		Info:      section.Info,
		Spans:     make([]JSONSpan, 0, len(spans)),
		Lines:     lineRecords(buf, module.Name == yamllexer.Name),
	}
	for _, span := range spans {
		out.Spans = append(out.Spans, JSONSpan{Start: span.Start, End: span.End, Style: module.StyleName(span.Style)})
	}
	return out
}

// lineRecords returns one record per text line. Line kinds are only
// known for YAML line states.
func lineRecords(buf *document.Buffer, yamlStates bool) []JSONLine {
	lines := runner.TextLines(buf)
	if buf.Length() == 0 {
		lines = 0
	}

	records := make([]JSONLine, 0, lines)
	for line := range lines {
		level := buf.FoldLevel(line)
		record := JSONLine{
			Line:   line,
			Level:  level.Level(),
			Header: level.IsHeader(),
			White:  level.IsWhite(),
		}
		if yamlStates {
			state := yamllexer.DecodeLineState(buf.LineState(line))
			record.Indent = state.Indent
			record.Kind = state.Kind.String()
		} else {
			record.Indent = leadingSpaces(buf.Line(line))
		}
		records = append(records, record)
	}
	return records
}

func leadingSpaces(line []byte) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}
