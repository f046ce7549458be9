// Package markdown finds the YAML embedded in Markdown documents: front
// matter at the top of the file and fenced code blocks tagged yaml or
// yml. Untagged fences can optionally be classified by content.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/yamllex/pkg/langdetect"
)

// Kind tells where an embedded block came from.
type Kind string

const (
	KindFrontMatter Kind = "front-matter"
	KindCodeBlock   Kind = "code-block"
)

// Block is one embedded YAML document. Offsets are into the Markdown
// content; the body of a fenced block inside a container keeps the
// container's indentation on every line.
type Block struct {
	Kind Kind

	// StartOffset is the start of the first body line.
	StartOffset int

	// EndOffset is the end of the body, including its final newline.
	EndOffset int

	// StartLine is the 0-based line of StartOffset.
	StartLine int

	// Info is the fence info string, empty for front matter and
	// untagged fences.
	Info string
}

// Body returns the block's bytes within content.
func (b Block) Body(content []byte) []byte {
	return content[b.StartOffset:b.EndOffset]
}

// Options controls extraction.
type Options struct {
	// DetectUntagged includes fences without an info string whose body
	// is detected as YAML.
	DetectUntagged bool
}

// Extract returns the YAML blocks of content in document order.
func Extract(content []byte, opts Options) []Block {
	var blocks []Block

	fmEnd := 0
	if fm, end, ok := frontMatter(content); ok {
		blocks = append(blocks, fm)
		fmEnd = end
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(content))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		if block, ok := fencedBlock(fence, content, opts); ok && block.StartOffset >= fmEnd {
			blocks = append(blocks, block)
		}
		return ast.WalkSkipChildren, nil
	})

	return blocks
}

// IsYAMLInfo reports whether a fence info string names YAML.
func IsYAMLInfo(info string) bool {
	lang, _, _ := strings.Cut(strings.TrimSpace(info), " ")
	lang = strings.ToLower(lang)
	return lang == "yaml" || lang == "yml"
}

func fencedBlock(fence *ast.FencedCodeBlock, content []byte, opts Options) (Block, bool) {
	lines := fence.Lines()
	if lines.Len() == 0 {
		return Block{}, false
	}

	start := lineStart(content, lines.At(0).Start)
	end := lines.At(lines.Len() - 1).Stop

	var info string
	if fence.Info != nil {
		info = strings.TrimSpace(string(fence.Info.Value(content)))
	}

	switch {
	case IsYAMLInfo(info):
	case info == "" && opts.DetectUntagged:
		if langdetect.Detect(content[start:end]) != langdetect.LangYAML {
			return Block{}, false
		}
	default:
		return Block{}, false
	}

	return Block{
		Kind:        KindCodeBlock,
		StartOffset: start,
		EndOffset:   end,
		StartLine:   bytes.Count(content[:start], []byte("\n")),
		Info:        info,
	}, true
}

// frontMatter matches a "---" line at the very start of content closed
// by a "---" or "..." line. It returns the body block and the offset
// just past the closing line.
func frontMatter(content []byte) (Block, int, bool) {
	first, rest, ok := cutLine(content)
	if !ok || string(trimEOL(first)) != "---" {
		return Block{}, 0, false
	}

	bodyStart := len(first)
	pos := bodyStart
	for len(rest) > 0 {
		line, next, _ := cutLine(rest)
		if marker := string(trimEOL(line)); marker == "---" || marker == "..." {
			if pos == bodyStart {
				return Block{}, 0, false
			}
			return Block{
				Kind:        KindFrontMatter,
				StartOffset: bodyStart,
				EndOffset:   pos,
				StartLine:   1,
			}, pos + len(line), true
		}
		pos += len(line)
		rest = next
	}

	return Block{}, 0, false
}

// cutLine splits off the first line of b including its newline. ok is
// false when b has no newline.
func cutLine(b []byte) (line, rest []byte, ok bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return b, nil, false
	}
	return b[:i+1], b[i+1:], true
}

func trimEOL(line []byte) []byte {
	return bytes.TrimRight(line, "\r\n")
}

func lineStart(content []byte, pos int) int {
	return bytes.LastIndexByte(content[:pos], '\n') + 1
}
