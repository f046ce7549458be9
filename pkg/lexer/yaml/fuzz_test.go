package yaml_test

import (
	"testing"

	"github.com/yaklabco/yamllex/pkg/document"
	"github.com/yaklabco/yamllex/pkg/lexer"
	"github.com/yaklabco/yamllex/pkg/lexer/yaml"
)

// FuzzScan fuzzes the tokenizer with random input.
func FuzzScan(f *testing.F) {
	seeds := []string{
		"",
		"key: value",
		"'quoted': \"double\\x41\"",
		"{a: [1, 2], b: {c: d}}",
		"text: |\n  block\n\n  more\nnext: 1",
		"---\n%YAML 1.2\n...",
		"---foo",
		"- &a !!str x\n- *a",
		"t: !<tag:yaml.org,2002:str> x",
		"d: 2001-12-14 21:59:43.10 -5",
		"\"\\",
		"'",
		"!<",
		"line1\r\nline2\r\n",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		doc := document.New(data)
		lex := yaml.New(yaml.Options{Keywords: lexer.NewWordList(yaml.DefaultKeywords)})

		// Scan should never panic.
		res := lex.Scan(doc, 0, doc.Length(), yaml.Resume{})

		// Spans should be contiguous and cover the input.
		if !lexer.ValidateSpans(res.Spans, 0, len(data)) {
			t.Errorf("spans are not valid for input of length %d", len(data))
		}

		// Every line whose end was reached has exactly one record, in order.
		for i, rec := range res.Lines {
			if rec.Line != i {
				t.Errorf("record %d is for line %d", i, rec.Line)
			}
		}
	})
}

// FuzzResume verifies that resuming at a line boundary matches a full scan.
func FuzzResume(f *testing.F) {
	f.Add([]byte("a: [1,\n  2]\n\"x\\\ny\"\n"), uint8(1))
	f.Add([]byte("k: |\n  t\nz: 1\n"), uint8(2))

	f.Fuzz(func(t *testing.T, data []byte, split uint8) {
		doc := document.New(data)
		lex := yaml.New(yaml.Options{})

		whole := lex.Scan(doc, 0, doc.Length(), yaml.Resume{})

		at := doc.LineStart(int(split) % doc.LineCount())
		first := lex.Scan(doc, 0, at, yaml.Resume{})
		second := lex.Scan(doc, at, doc.Length()-at, first.End)

		if got, want := len(first.Lines)+len(second.Lines), len(whole.Lines); got != want {
			t.Fatalf("line records: got %d, want %d", got, want)
		}
		for i, rec := range append(first.Lines, second.Lines...) {
			if rec != whole.Lines[i] {
				t.Errorf("line %d: got %v, want %v", i, rec.State, whole.Lines[i].State)
			}
		}
	})
}
