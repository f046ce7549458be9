package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/yamllex/internal/ui/pretty"
	"github.com/yaklabco/yamllex/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		FilesProcessed: 10,
		Sections:       12,
		Lines:          340,
		Bytes:          9001,
		FoldHeaders:    41,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files analyzed:")
	assert.Contains(t, result, "340")
	assert.Contains(t, result, "9001")
	assert.Contains(t, result, "Fold headers:")
	assert.Contains(t, result, "Done")
	assert.NotContains(t, result, "Files skipped:")
}

func TestFormatSummary_WithFailures(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{FilesProcessed: 1, FilesSkipped: 2, FilesErrored: 1})

	assert.Contains(t, result, "Files skipped:")
	assert.Contains(t, result, "Files failed:")
	assert.Contains(t, result, "Some files could not be read")
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "nothing found",
			stats: runner.Stats{FilesDiscovered: 1},
			want:  "No YAML found (1 file checked)\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesDiscovered: 1, FilesProcessed: 1, Sections: 1, Lines: 1, FoldHeaders: 1},
			want:  "1 file, 1 line, 1 fold\n",
		},
		{
			name: "sections and skips",
			stats: runner.Stats{
				FilesDiscovered: 4, FilesProcessed: 2, FilesSkipped: 1, FilesErrored: 1,
				Sections: 5, Lines: 30, FoldHeaders: 6,
			},
			want: "2 files, 30 lines, 5 sections, 6 folds, 1 skipped, 1 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
