// Package document is the host side of the analyzers: an in-memory text
// buffer that stores a style per byte, a line state and fold level per
// line, and the watermark up to which styling is valid. Edits invalidate
// from the edited line onward; styling is brought up to date lazily and
// incrementally from the first invalid line.
//
// A Buffer is not safe for concurrent use.
package document

import (
	"github.com/yaklabco/yamllex/pkg/lexer"
	"github.com/yaklabco/yamllex/pkg/lexer/yaml"
)

// Buffer holds a document and everything the analyzer persists about it.
type Buffer struct {
	content []byte
	lines   []LineInfo

	styles     []lexer.Style
	lineStates []uint32
	foldLevels []lexer.FoldLevel

	// endStyled is the offset up to which styles and line states are
	// valid. It is always a line start.
	endStyled int

	module   *lexer.Module
	keywords lexer.KeywordSet
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithModule selects the analyzer. The default is the YAML analyzer.
func WithModule(m *lexer.Module) Option {
	return func(b *Buffer) {
		if m != nil {
			b.module = m
		}
	}
}

// WithKeywords sets the keyword list. The default is the analyzer's own
// DefaultKeywords.
func WithKeywords(k lexer.KeywordSet) Option {
	return func(b *Buffer) {
		b.keywords = k
	}
}

// New creates a buffer holding a copy of content. Nothing is styled until
// EnsureStyled or Restyle is called.
func New(content []byte, opts ...Option) *Buffer {
	b := &Buffer{}
	for _, opt := range opts {
		opt(b)
	}
	if b.module == nil {
		b.module = yaml.Module()
	}
	if b.keywords == nil {
		b.keywords = lexer.NewWordList(b.module.DefaultKeywords)
	}

	b.content = append([]byte(nil), content...)
	b.lines = buildLines(b.content)
	b.styles = make([]lexer.Style, len(b.content))
	b.lineStates = make([]uint32, len(b.lines))
	b.foldLevels = make([]lexer.FoldLevel, len(b.lines))
	return b
}

// Module returns the analyzer driving the buffer.
func (b *Buffer) Module() *lexer.Module {
	return b.module
}

// Length returns the document size in bytes.
func (b *Buffer) Length() int {
	return len(b.content)
}

// ByteAt returns the byte at pos, or 0 outside the buffer.
func (b *Buffer) ByteAt(pos int) byte {
	if pos < 0 || pos >= len(b.content) {
		return 0
	}
	return b.content[pos]
}

// Text returns the buffer content. The slice must not be modified.
func (b *Buffer) Text() []byte {
	return b.content
}

// EndStyled returns the offset up to which styling is valid.
func (b *Buffer) EndStyled() int {
	return b.endStyled
}

// LineState returns the packed state stored for line, or 0.
func (b *Buffer) LineState(line int) uint32 {
	if line < 0 || line >= len(b.lineStates) {
		return 0
	}
	return b.lineStates[line]
}

// SetLineState stores the packed state for line.
func (b *Buffer) SetLineState(line int, state uint32) {
	if line >= 0 && line < len(b.lineStates) {
		b.lineStates[line] = state
	}
}

// StyleAt returns the style of the byte at pos. Unstyled bytes report 0.
func (b *Buffer) StyleAt(pos int) lexer.Style {
	if pos < 0 || pos >= len(b.styles) {
		return 0
	}
	return b.styles[pos]
}

// ApplySpans stores the styles of spans.
func (b *Buffer) ApplySpans(spans []lexer.Span) {
	for _, span := range spans {
		start := max(span.Start, 0)
		end := min(span.End, len(b.styles))
		for pos := start; pos < end; pos++ {
			b.styles[pos] = span.Style
		}
	}
}

// FoldLevel returns the fold record of line.
func (b *Buffer) FoldLevel(line int) lexer.FoldLevel {
	if line < 0 || line >= len(b.foldLevels) {
		return lexer.FoldLevelBase
	}
	return b.foldLevels[line]
}

// SetFoldLevel stores the fold record of line.
func (b *Buffer) SetFoldLevel(line int, level lexer.FoldLevel) {
	if line >= 0 && line < len(b.foldLevels) {
		b.foldLevels[line] = level
	}
}
