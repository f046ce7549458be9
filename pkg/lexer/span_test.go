package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/yamllex/pkg/lexer"
)

func TestSpanSink(t *testing.T) {
	t.Parallel()

	var sink lexer.SpanSink
	sink.ColourTo(0, 3, 1)
	sink.ColourTo(3, 5, 1)
	sink.ColourTo(5, 5, 2)
	sink.ColourTo(5, 6, 2)

	assert.Equal(t, []lexer.Span{
		{Start: 0, End: 5, Style: 1},
		{Start: 5, End: 6, Style: 2},
	}, sink.Spans())
}

func TestSpanMethods(t *testing.T) {
	t.Parallel()

	span := lexer.Span{Start: 2, End: 5}
	assert.Equal(t, 3, span.Len())
	assert.False(t, span.IsEmpty())
	assert.True(t, span.Contains(2))
	assert.True(t, span.Contains(4))
	assert.False(t, span.Contains(5))
	assert.True(t, lexer.Span{Start: 4, End: 4}.IsEmpty())
}

func TestValidateSpans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		spans  []lexer.Span
		start  int
		end    int
		expect bool
	}{
		{name: "empty range", start: 3, end: 3, expect: true},
		{name: "empty spans non-empty range", start: 0, end: 1, expect: false},
		{
			name:   "contiguous",
			spans:  []lexer.Span{{Start: 0, End: 2}, {Start: 2, End: 4}},
			end:    4,
			expect: true,
		},
		{
			name:  "gap",
			spans: []lexer.Span{{Start: 0, End: 2}, {Start: 3, End: 4}},
			end:   4,
		},
		{
			name:  "short",
			spans: []lexer.Span{{Start: 0, End: 2}},
			end:   4,
		},
		{
			name:  "empty span",
			spans: []lexer.Span{{Start: 0, End: 2}, {Start: 2, End: 2}, {Start: 2, End: 4}},
			end:   4,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expect, lexer.ValidateSpans(testCase.spans, testCase.start, testCase.end))
		})
	}
}
