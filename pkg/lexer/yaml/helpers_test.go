package yaml_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/yamllex/pkg/document"
	"github.com/yaklabco/yamllex/pkg/lexer"
	"github.com/yaklabco/yamllex/pkg/lexer/yaml"
)

type token struct {
	Text  string
	Style string
}

// styled runs a full scan of src through a document buffer.
func styled(t *testing.T, src string) *document.Buffer {
	t.Helper()

	buf := document.New([]byte(src))
	buf.Restyle()
	require.Equal(t, len(src), buf.EndStyled())
	return buf
}

func tokens(t *testing.T, src string) []token {
	t.Helper()

	buf := styled(t, src)
	var toks []token
	for _, span := range buf.Spans() {
		toks = append(toks, token{Text: src[span.Start:span.End], Style: yaml.StyleName(span.Style)})
	}
	return toks
}

// styleOf returns the style name of every byte of the first occurrence of
// sub in src, or the first differing one.
func styleOf(t *testing.T, buf *document.Buffer, src, sub string) string {
	t.Helper()

	at := strings.Index(src, sub)
	require.GreaterOrEqual(t, at, 0, "%q not in %q", sub, src)

	style := buf.StyleAt(at)
	for pos := at + 1; pos < at+len(sub); pos++ {
		if buf.StyleAt(pos) != style {
			return yaml.StyleName(style) + "+" + yaml.StyleName(buf.StyleAt(pos))
		}
	}
	return yaml.StyleName(style)
}

func lineStates(buf *document.Buffer) []yaml.LineState {
	states := make([]yaml.LineState, buf.LineCount())
	for line := range states {
		states[line] = yaml.DecodeLineState(buf.LineState(line))
	}
	return states
}

func byteStyles(spans []lexer.Span) []lexer.Style {
	var styles []lexer.Style
	for _, span := range spans {
		for range span.Len() {
			styles = append(styles, span.Style)
		}
	}
	return styles
}
