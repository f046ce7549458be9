package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/yamllex/pkg/document"
	"github.com/yaklabco/yamllex/pkg/lexer"
	"github.com/yaklabco/yamllex/pkg/lexer/yaml"
)

func TestScanStyles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		sub   string
		style string
	}{
		{name: "plain key", src: "foo: bar\n", sub: "foo", style: "Key"},
		{name: "key colon", src: "foo: bar\n", sub: ":", style: "Operator"},
		{name: "plain value", src: "foo: bar\n", sub: "bar", style: "PlainText"},
		{name: "key at end of line", src: "foo:\n  bar: 1\n", sub: "foo", style: "Key"},
		{name: "nested key", src: "foo:\n  bar: 1\n", sub: "bar", style: "Key"},
		{name: "single quoted key", src: "'foo': bar\n", sub: "'foo'", style: "Key"},
		{name: "double quoted key", src: "\"foo\" : bar\n", sub: "\"foo\"", style: "Key"},
		{name: "colon after quoted key", src: "'foo': bar\n", sub: ":", style: "Operator"},
		{name: "single quoted value", src: "k: 'v a l'\n", sub: "'v a l'", style: "SingleQuoted"},
		{name: "double quoted value", src: "k: \"v\"\n", sub: "\"v\"", style: "DoubleQuoted"},
		{name: "integer", src: "n: 42\n", sub: "42", style: "Number"},
		{name: "float", src: "n: 1.5e+3\n", sub: "1.5e+3", style: "Number"},
		{name: "leading dot number", src: "n: .5\n", sub: ".5", style: "Number"},
		{name: "negative sign", src: "n: -7\n", sub: "-", style: "Operator"},
		{name: "date", src: "d: 2001-12-14\n", sub: "2001-12-14", style: "DateTime"},
		{name: "timestamp", src: "d: 2001-12-14 21:59:43.10 -5\n", sub: "2001-12-14 21:59:43.10 -5", style: "DateTime"},
		{name: "number then text", src: "v: 42 apples\n", sub: "42 apples", style: "PlainText"},
		{name: "numeric key", src: "200: ok\n", sub: "200", style: "Key"},
		{name: "keyword", src: "v: true\n", sub: "true", style: "Keyword"},
		{name: "keyword any case", src: "v: NULL\n", sub: "NULL", style: "Keyword"},
		{name: "keyword with comment", src: "v: yes # ok\n", sub: "yes", style: "Keyword"},
		{name: "special float", src: "v: .inf\n", sub: ".inf", style: "Keyword"},
		{name: "negative special float", src: "v: -.inf\n", sub: ".inf", style: "Keyword"},
		{name: "non keyword", src: "v: truth\n", sub: "truth", style: "PlainText"},
		{name: "keyword as key", src: "true: 1\n", sub: "true", style: "Key"},
		{name: "keyword followed by text", src: "v: no way\n", sub: "no way", style: "PlainText"},
		{name: "anchor", src: "a: &base x\n", sub: "&base", style: "Reference"},
		{name: "alias", src: "b: *base\n", sub: "*base", style: "Reference"},
		{name: "bare ampersand", src: "b: & x\n", sub: "&", style: "PlainText"},
		{name: "tag", src: "t: !!str 1\n", sub: "!!str", style: "Tag"},
		{name: "local tag", src: "t: !local x\n", sub: "!local", style: "Tag"},
		{name: "verbatim tag", src: "t: !<tag:yaml.org,2002:str> x\n", sub: "!<tag:yaml.org,2002:str>", style: "VerbatimTag"},
		{name: "directive", src: "%YAML 1.2\n---\n", sub: "%YAML 1.2", style: "Directive"},
		{name: "comment line", src: "# hello: world\n", sub: "# hello: world", style: "Comment"},
		{name: "trailing comment", src: "k: v # note\n", sub: "# note", style: "Comment"},
		{name: "hash inside text", src: "k: a#b\n", sub: "a#b", style: "PlainText"},
		{name: "sequence dash", src: "- item\n", sub: "-", style: "Operator"},
		{name: "plain dash word", src: "k: -x\n", sub: "-x", style: "PlainText"},
		{name: "flow indicator", src: "k: [a]\n", sub: "[", style: "Operator"},
		{name: "at sign", src: "k: @x\n", sub: "@", style: "Operator"},
		{name: "block scalar header", src: "k: |\n  text\n", sub: "|", style: "TextBlock"},
		{name: "folded scalar header", src: "k: >-\n  text\n", sub: ">-", style: "TextBlock"},
		{name: "document start", src: "---\nk: v\n", sub: "---", style: "DocumentMarker"},
		{name: "document end", src: "k: v\n...\n", sub: "...", style: "DocumentMarker"},
		{name: "marker followed by text", src: "---foo\n", sub: "---foo", style: "PlainText"},
		{name: "marker followed by word", src: "--- x\n", sub: "---", style: "PlainText"},
		{name: "indented marker", src: "k: v\n  ---\n", sub: "---", style: "DocumentMarker"},
		{name: "marker after text", src: "k: ---\n", sub: "---", style: "PlainText"},
		{name: "value after quoted key", src: "'foo': bar\n", sub: "bar", style: "PlainText"},
		{name: "value on unterminated line", src: "foo: bar", sub: "bar", style: "PlainText"},
		{name: "keyword on unterminated line", src: "foo: true", sub: "true", style: "Keyword"},
		{name: "number on unterminated line", src: "n: 42", sub: "42", style: "Number"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			buf := styled(t, testCase.src)
			assert.Equal(t, testCase.style, styleOf(t, buf, testCase.src, testCase.sub))
		})
	}
}

func TestScanFlowMapping(t *testing.T) {
	t.Parallel()

	src := "{a: 1, b: 2}\n"
	assert.Equal(t, []token{
		{Text: "{", Style: "Operator"},
		{Text: "a", Style: "Key"},
		{Text: ":", Style: "Operator"},
		{Text: " ", Style: "Default"},
		{Text: "1", Style: "Number"},
		{Text: ",", Style: "Operator"},
		{Text: " ", Style: "Default"},
		{Text: "b", Style: "Key"},
		{Text: ":", Style: "Operator"},
		{Text: " ", Style: "Default"},
		{Text: "2", Style: "Number"},
		{Text: "}", Style: "Operator"},
		{Text: "\n", Style: "Default"},
	}, tokens(t, src))

	states := lineStates(styled(t, src))
	assert.Equal(t, 0, states[0].Depth)
}

func TestScanFlowDepthAcrossLines(t *testing.T) {
	t.Parallel()

	src := "{a: [1,\n  2]}\nb: c\n"
	buf := styled(t, src)
	states := lineStates(buf)

	assert.Equal(t, 2, states[0].Depth)
	assert.Equal(t, 0, states[1].Depth)
	assert.Equal(t, "Number", styleOf(t, buf, src, "2"))
	assert.Equal(t, "Key", styleOf(t, buf, src, "b"))
}

func TestScanFlowPlainText(t *testing.T) {
	t.Parallel()

	src := "[one two, three]\n"
	buf := styled(t, src)

	assert.Equal(t, "PlainText", styleOf(t, buf, src, "one two"))
	assert.Equal(t, "Operator", styleOf(t, buf, src, ","))
	assert.Equal(t, "Operator", styleOf(t, buf, src, "]"))
}

func TestScanUnbalancedFlowClampsAtZero(t *testing.T) {
	t.Parallel()

	states := lineStates(styled(t, "]]\n}\nk: v\n"))
	for _, st := range states {
		assert.Equal(t, 0, st.Depth)
	}
}

func TestScanDocumentMarkerResetsDepth(t *testing.T) {
	t.Parallel()

	src := "k: [1,\n---\nn: v\n"
	buf := styled(t, src)
	states := lineStates(buf)

	assert.Equal(t, 1, states[0].Depth)
	assert.Equal(t, 0, states[1].Depth)
	assert.Equal(t, yaml.LineDocumentStart, states[1].Kind)
	assert.Equal(t, "Key", styleOf(t, buf, src, "n"))
}

func TestScanIndentedDocumentMarker(t *testing.T) {
	t.Parallel()

	src := "  ---\n  ...\n"
	buf := styled(t, src)
	states := lineStates(buf)

	assert.Equal(t, []token{
		{Text: "  ", Style: "Default"},
		{Text: "---\n", Style: "DocumentMarker"},
		{Text: "  ", Style: "Default"},
		{Text: "...\n", Style: "DocumentMarker"},
	}, tokens(t, src))
	assert.Equal(t, yaml.LineDocumentStart, states[0].Kind)
	assert.Equal(t, yaml.LineDocumentEnd, states[1].Kind)
}

func TestScanEscapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		expect []token
	}{
		{
			name: "doubled single quote",
			src:  "'it''s'\n",
			expect: []token{
				{Text: "'it", Style: "SingleQuoted"},
				{Text: "''", Style: "Escape"},
				{Text: "s'", Style: "SingleQuoted"},
				{Text: "\n", Style: "Default"},
			},
		},
		{
			name: "simple escape",
			src:  "\"a\\nb\"\n",
			expect: []token{
				{Text: "\"a", Style: "DoubleQuoted"},
				{Text: "\\n", Style: "Escape"},
				{Text: "b\"", Style: "DoubleQuoted"},
				{Text: "\n", Style: "Default"},
			},
		},
		{
			name: "hex escape",
			src:  "\"\\x41z\"\n",
			expect: []token{
				{Text: "\"", Style: "DoubleQuoted"},
				{Text: "\\x41", Style: "Escape"},
				{Text: "z\"", Style: "DoubleQuoted"},
				{Text: "\n", Style: "Default"},
			},
		},
		{
			name: "short unicode escape",
			src:  "\"\\u12g\"\n",
			expect: []token{
				{Text: "\"", Style: "DoubleQuoted"},
				{Text: "\\u12", Style: "Escape"},
				{Text: "g\"", Style: "DoubleQuoted"},
				{Text: "\n", Style: "Default"},
			},
		},
		{
			name: "escaped quote",
			src:  "\"\\\"\"\n",
			expect: []token{
				{Text: "\"", Style: "DoubleQuoted"},
				{Text: "\\\"", Style: "Escape"},
				{Text: "\"", Style: "DoubleQuoted"},
				{Text: "\n", Style: "Default"},
			},
		},
		{
			name: "consecutive escapes",
			src:  "\"\\\\\\t\"\n",
			expect: []token{
				{Text: "\"", Style: "DoubleQuoted"},
				{Text: "\\\\\\t", Style: "Escape"},
				{Text: "\"", Style: "DoubleQuoted"},
				{Text: "\n", Style: "Default"},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expect, tokens(t, testCase.src))
		})
	}
}

func TestScanBlockScalar(t *testing.T) {
	t.Parallel()

	src := "text: |\n  line one\n  line two\nnext: value\n"
	buf := styled(t, src)

	assert.Equal(t, "Key", styleOf(t, buf, src, "text"))
	assert.Equal(t, "TextBlock", styleOf(t, buf, src, "|\n  line one\n  line two\n"))
	assert.Equal(t, "Key", styleOf(t, buf, src, "next"))

	states := lineStates(buf)
	assert.Equal(t, 0, states[0].Indent)
	assert.Equal(t, 1, states[1].Indent)
	assert.Equal(t, 1, states[2].Indent)
	assert.Equal(t, 0, states[3].Indent)
	assert.Equal(t, 0, states[3].BlockIndent)
}

func TestScanBlockScalarIndented(t *testing.T) {
	t.Parallel()

	src := "a:\n  b: >\n    x: 1\n\n   # y\n  c: 2\n"
	buf := styled(t, src)
	states := lineStates(buf)

	assert.Equal(t, "TextBlock", styleOf(t, buf, src, "x: 1"))
	assert.Equal(t, "TextBlock", styleOf(t, buf, src, "# y"))
	assert.Equal(t, "Key", styleOf(t, buf, src, "c"))

	assert.Equal(t, 2, states[1].BlockIndent)
	assert.Equal(t, 2, states[1].Indent)
	assert.Equal(t, 3, states[2].Indent)
	assert.Equal(t, 3, states[3].Indent, "blank lines stay inside the scalar")
	assert.Equal(t, yaml.LineNone, states[3].Kind)
	assert.Equal(t, 3, states[4].Indent)
	assert.Equal(t, 2, states[5].Indent)
}

func TestScanBlockScalarKeepsBlankLinesAtTopLevel(t *testing.T) {
	t.Parallel()

	states := lineStates(styled(t, "k: |\n  a\n\n  b\nz: 1\n"))
	assert.Equal(t, 1, states[2].Indent)
	assert.Equal(t, yaml.LineNone, states[2].Kind)
}

func TestScanLineKinds(t *testing.T) {
	t.Parallel()

	src := "%YAML 1.2\n---\n# note\n\nk: v\n  # indented\n...\n"
	states := lineStates(styled(t, src))

	kinds := make([]yaml.LineKind, 0, len(states))
	for _, st := range states {
		kinds = append(kinds, st.Kind)
	}
	assert.Equal(t, []yaml.LineKind{
		yaml.LineNone,
		yaml.LineDocumentStart,
		yaml.LineComment,
		yaml.LineBlank,
		yaml.LineNone,
		yaml.LineComment,
		yaml.LineDocumentEnd,
		yaml.LineNone,
	}, kinds)
	assert.Equal(t, 2, states[5].Indent)
}

func TestScanIndentRecords(t *testing.T) {
	t.Parallel()

	states := lineStates(styled(t, "a:\n  b:\n    - c\n   \n"))
	assert.Equal(t, 0, states[0].Indent)
	assert.Equal(t, 2, states[1].Indent)
	assert.Equal(t, 4, states[2].Indent)
	assert.Equal(t, 0, states[3].Indent)
	assert.Equal(t, yaml.LineBlank, states[3].Kind)
}

func TestScanUnterminatedLastLine(t *testing.T) {
	t.Parallel()

	src := "a:\n  b"
	buf := styled(t, src)
	states := lineStates(buf)

	assert.Equal(t, 2, states[1].Indent)
	assert.Equal(t, yaml.LineNone, states[1].Kind)
	assert.True(t, lexer.ValidateSpans(buf.Spans(), 0, len(src)))
	assert.Equal(t, "PlainText", styleOf(t, buf, src, "b"))
}

func TestScanWithoutKeywords(t *testing.T) {
	t.Parallel()

	src := "v: true\n"
	doc := document.New([]byte(src))
	res := yaml.New(yaml.Options{}).Scan(doc, 0, doc.Length(), yaml.Resume{})

	styles := byteStyles(res.Spans)
	require.Len(t, styles, len(src))
	assert.Equal(t, yaml.StylePlainText, styles[3])
}

func TestScanCustomKeywords(t *testing.T) {
	t.Parallel()

	src := "v: maybe\n"
	doc := document.New([]byte(src))
	lex := yaml.New(yaml.Options{Keywords: lexer.NewWordList("maybe")})
	res := lex.Scan(doc, 0, doc.Length(), yaml.Resume{})

	assert.Equal(t, yaml.StyleKeyword, byteStyles(res.Spans)[3])
}

func TestScanResultEnd(t *testing.T) {
	t.Parallel()

	src := "k: \"open\nstill\"\n"
	doc := document.New([]byte(src))
	lex := yaml.New(yaml.Options{})

	first := lex.Scan(doc, 0, doc.LineStart(1), yaml.Resume{})
	require.Len(t, first.Lines, 1)
	assert.Equal(t, yaml.StyleDoubleQuoted, first.End.Style)
	assert.Equal(t, first.Lines[0].State, first.End.Prev)
}

func TestScanIdempotent(t *testing.T) {
	t.Parallel()

	src := "a: 1\nb:\n  - 'x'\n  - {c: d}\n# end\n"
	buf := styled(t, src)
	spans := buf.Spans()
	states := lineStates(buf)

	buf.Restyle()
	assert.Equal(t, spans, buf.Spans())
	assert.Equal(t, states, lineStates(buf))
}
