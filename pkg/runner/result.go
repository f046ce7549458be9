package runner

import (
	"github.com/yaklabco/yamllex/pkg/document"
	"github.com/yaklabco/yamllex/pkg/markdown"
)

// SectionKind tells what part of a file a Section covers.
type SectionKind string

const (
	// SectionFile is a whole YAML file.
	SectionFile SectionKind = "file"

	// SectionFrontMatter is Markdown front matter.
	SectionFrontMatter = SectionKind(markdown.KindFrontMatter)

	// SectionCodeBlock is a yaml fenced code block in Markdown.
	SectionCodeBlock = SectionKind(markdown.KindCodeBlock)
)

// Section is one analyzed YAML document within a file.
type Section struct {
	Kind SectionKind

	// StartLine is the 0-based line of the file where the section begins.
	StartLine int

	// Offset is the byte offset of the section within the file.
	Offset int

	// Info is the fence info string of a code block.
	Info string

	// Buffer holds the section's content, styles and fold levels.
	Buffer *document.Buffer
}

// FileOutcome is the analysis of one file.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Sections are the analyzed documents, in file order. A Markdown
	// file without YAML has none.
	Sections []Section

	// Skipped is set when the file was not recognized as YAML.
	Skipped bool

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully analyzed.
	FilesProcessed int

	// FilesSkipped is the number of files not recognized as YAML.
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// Sections is the number of analyzed documents.
	Sections int

	// Lines is the number of analyzed lines.
	Lines int

	// Bytes is the number of analyzed bytes.
	Bytes int

	// BytesByStyle maps style names to byte counts.
	BytesByStyle map[string]int

	// FoldHeaders is the number of lines that open a fold.
	FoldHeaders int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || len(r.Errors) > 0
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		BytesByStyle: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.FilesErrored++
		return
	case outcome.Skipped:
		r.Stats.FilesSkipped++
		return
	}

	r.Stats.FilesProcessed++

	for _, section := range outcome.Sections {
		r.Stats.add(section.Buffer)
	}
}

// add counts one analyzed buffer.
func (s *Stats) add(buf *document.Buffer) {
	s.Sections++
	s.Lines += TextLines(buf)
	s.Bytes += buf.Length()

	module := buf.Module()
	for _, span := range buf.Spans() {
		s.BytesByStyle[module.StyleName(span.Style)] += span.Len()
	}

	for line := range buf.LineCount() {
		if buf.FoldLevel(line).IsHeader() {
			s.FoldHeaders++
		}
	}
}

// TextLines counts lines the way an editor shows them: a final newline
// does not start another line.
func TextLines(buf *document.Buffer) int {
	n := buf.LineCount()
	if n > 1 && buf.LineStart(n-1) == buf.Length() {
		n--
	}
	return n
}
