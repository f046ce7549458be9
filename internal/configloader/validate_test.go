package configloader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/yamllex/pkg/config"
)

func asValidationError(err error, target **ValidationError) bool {
	return errors.As(err, target)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      *config.Config
		errors   []string
		warnings []string
	}{
		{name: "nil", cfg: nil},
		{name: "defaults", cfg: config.NewConfig()},
		{
			name:   "bad format",
			cfg:    &config.Config{Format: "sarif"},
			errors: []string{"format"},
		},
		{
			name:   "bad color mode",
			cfg:    &config.Config{Color: "sometimes"},
			errors: []string{"color"},
		},
		{
			name:   "negative jobs",
			cfg:    &config.Config{Jobs: -1},
			errors: []string{"jobs"},
		},
		{
			name: "theme colors",
			cfg: &config.Config{Theme: map[string]string{
				"Key": "39", "Comment": "#abc", "Number": "#A0b1C2",
			}},
		},
		{
			name:   "ansi out of range",
			cfg:    &config.Config{Theme: map[string]string{"Key": "256"}},
			errors: []string{"theme.Key"},
		},
		{
			name:     "unknown style",
			cfg:      &config.Config{Theme: map[string]string{"Sparkle": "1"}},
			warnings: []string{"theme.Sparkle"},
		},
		{
			name:   "keyword with space",
			cfg:    &config.Config{Keywords: []string{"two words"}},
			errors: []string{"keywords[0]"},
		},
		{
			name:   "empty extra keyword",
			cfg:    &config.Config{ExtraKeywords: []string{"ok", ""}},
			errors: []string{"extra_keywords[1]"},
		},
		{
			name:     "keyword too long",
			cfg:      &config.Config{Keywords: []string{"abcdefghijklmnop"}},
			warnings: []string{"keywords[0]"},
		},
		{
			name:   "bad glob",
			cfg:    &config.Config{Ignore: []string{"ok/**", "[unclosed"}},
			errors: []string{"ignore[1]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(tt.cfg)

			var gotErrors, gotWarnings []string
			for _, e := range result.Errors {
				gotErrors = append(gotErrors, e.Field)
			}
			for _, w := range result.Warnings {
				gotWarnings = append(gotWarnings, w.Field)
			}

			assert.Equal(t, tt.errors, gotErrors)
			assert.Equal(t, tt.warnings, gotWarnings)
			assert.Equal(t, len(tt.errors) == 0, result.Valid())
		})
	}
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	result := ValidateWithFile(&config.Config{Jobs: -2}, "/etc/yamllex/config.yaml")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "/etc/yamllex/config.yaml: jobs: jobs must be >= 0 (0 means auto)", result.Errors[0].Error())
	assert.Equal(t, []string{"error: " + result.Errors[0].Error()}, result.AllMessages())
}

func TestValidationErrorWithLine(t *testing.T) {
	t.Parallel()

	err := &ValidationError{FilePath: "a.yml", Line: 3, Field: "gutter", Message: "bad"}
	assert.Equal(t, "a.yml:3: gutter: bad", err.Error())
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	yes, no := true, false

	base := config.NewConfig()
	base.Theme["Key"] = "1"
	base.Ignore = []string{"a"}

	file := &config.Config{
		Theme:    map[string]string{"Comment": "2"},
		Markdown: config.MarkdownConfig{Enabled: &no},
		Keywords: []string{"on"},
	}
	cli := &config.Config{
		Gutter: &yes,
		Ignore: []string{},
		Jobs:   3,
	}

	got := MergeAll(base, file, cli)

	assert.Equal(t, map[string]string{"Key": "1", "Comment": "2"}, got.Theme)
	assert.False(t, got.MarkdownEnabled())
	assert.False(t, got.DetectUntagged())
	assert.True(t, got.GutterEnabled())
	assert.Equal(t, []string{"on"}, got.Keywords)
	assert.Empty(t, got.Ignore)
	assert.Equal(t, 3, got.Jobs)
	assert.Equal(t, config.FormatText, got.Format)

	// Inputs are not modified.
	assert.Equal(t, map[string]string{"Key": "1"}, base.Theme)
	assert.True(t, base.MarkdownEnabled())

	assert.Nil(t, MergeAll())
	assert.Same(t, base, MergeAll(base))
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "YAMLLEX_GUTTER", GetEnvVarName("gutter"))
	assert.Empty(t, GetEnvVarName("nope"))

	listed := ListEnvVars()
	for suffix := range envMappings {
		assert.Contains(t, listed, envVarPrefix+suffix)
	}
}
