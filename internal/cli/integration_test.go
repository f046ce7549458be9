package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/yamllex/internal/cli"
	"github.com/yaklabco/yamllex/pkg/config"
	"github.com/yaklabco/yamllex/pkg/fsutil"
	"github.com/yaklabco/yamllex/pkg/reporter"
)

const testManifest = `# deployment
spec:
  template:
    containers:
      - name: web
        image: nginx
`

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// emptyConfig writes a config file that pins the run to defaults.
func emptyConfig(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), ".yamllex.yml", "gutter: false\n")
}

// execute runs the root command with args and returns stdout, stderr
// and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_HighlightReprintsSource(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "deploy.yaml", testManifest)

	stdout, _, err := execute(t, "highlight",
		"--config", emptyConfig(t),
		"--color", "never",
		"--no-summary",
		file,
	)
	require.NoError(t, err)
	assert.Equal(t, testManifest, stdout)
}

func TestIntegration_HighlightColor(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "deploy.yaml", testManifest)

	stdout, _, err := execute(t, "highlight",
		"--config", emptyConfig(t),
		"--color", "always",
		"--no-summary",
		file,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "\x1b[")
}

func TestIntegration_HighlightGutter(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "a.yaml", "a:\n  b: 1\nc: 2\n")

	stdout, _, err := execute(t, "highlight",
		"--config", emptyConfig(t),
		"--color", "never",
		"--no-summary",
		"--gutter",
		file,
	)
	require.NoError(t, err)
	assert.Equal(t, "1 - a:\n2 |   b: 1\n3   c: 2\n", stdout)
}

func TestIntegration_HighlightSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "a: 1\n")
	writeFile(t, dir, "nested/b.yml", "b:\n  c: 2\n")

	stdout, _, err := execute(t, "highlight",
		"--config", emptyConfig(t),
		"--color", "never",
		dir,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 files")
	assert.Contains(t, stdout, "3 lines")
}

func TestIntegration_HighlightMarkdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeFile(t, dir, "README.md", "---\ntitle: x\n---\n\n# Title\n\n```yaml\nkey: value\n```\n")

	tests := []struct {
		name        string
		args        []string
		sections    int
		wantSkipped bool
	}{
		{name: "markdown enabled", sections: 2},
		{name: "markdown disabled", args: []string{"--no-markdown"}, wantSkipped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"highlight",
				"--config", emptyConfig(t),
				"--format", "json",
			}, tt.args...)
			args = append(args, doc)

			stdout, _, err := execute(t, args...)
			require.NoError(t, err)

			var out reporter.JSONOutput
			require.NoError(t, json.Unmarshal([]byte(stdout), &out))
			require.Len(t, out.Files, 1)
			assert.Len(t, out.Files[0].Sections, tt.sections)
			assert.Equal(t, tt.wantSkipped, out.Files[0].Skipped)
		})
	}
}

func TestIntegration_ExtraKeywords(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "a.yaml", "a: maybe\n")

	styleOf := func(args ...string) string {
		t.Helper()
		all := append([]string{"highlight", "--config", emptyConfig(t), "--format", "json"}, args...)
		stdout, _, err := execute(t, append(all, file)...)
		require.NoError(t, err)

		var out reporter.JSONOutput
		require.NoError(t, json.Unmarshal([]byte(stdout), &out))
		require.Len(t, out.Files, 1)
		require.Len(t, out.Files[0].Sections, 1)
		for _, span := range out.Files[0].Sections[0].Spans {
			if span.Start == 3 {
				return span.Style
			}
		}
		return ""
	}

	assert.Equal(t, "PlainText", styleOf())
	assert.Equal(t, "Keyword", styleOf("--extra-keywords", "maybe"))
}

func TestIntegration_ConfigFileKeywords(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "a.yaml", "a: yes\n")
	cfgFile := writeFile(t, dir, "custom.yml", "keywords:\n  - true\n  - false\n")

	stdout, _, err := execute(t, "highlight", "--config", cfgFile, "--format", "json", file)
	require.NoError(t, err)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Zero(t, out.Summary.BytesByStyle["Keyword"], "yes is not a keyword once the list is replaced")
}

func TestIntegration_Fold(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "a.yaml", "spec:\n  template:\n    containers:\n      - name: web\n")

	stdout, _, err := execute(t, "fold",
		"--config", emptyConfig(t),
		"--color", "never",
		file,
	)
	require.NoError(t, err)
	// Paths outside the working directory are printed as given.
	assert.Equal(t, file+"\n  1-4 spec:\n  2-4   template:\n  3-4     containers:\n", stdout)
}

func TestIntegration_FoldIgnoresFormatFromEnvironment(t *testing.T) {
	// Not parallel: sets an environment variable.
	t.Setenv("YAMLLEX_FORMAT", "json")

	file := writeFile(t, t.TempDir(), "a.yaml", "a:\n  b: 1\n")

	stdout, _, err := execute(t, "fold", "--config", emptyConfig(t), "--color", "never", file)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, file+"\n"), "got %q", stdout)
}

func TestIntegration_Stats(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "a.yaml", testManifest)

	stdout, _, err := execute(t, "highlight",
		"--config", emptyConfig(t),
		"--color", "never",
		"--format", "stats",
		file,
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "STYLE")
	assert.Contains(t, stdout, "Key")
	assert.Contains(t, stdout, "Comment")
	assert.Contains(t, stdout, "Total")
}

func TestIntegration_MissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.yaml")

	_, _, err := execute(t, "highlight",
		"--config", emptyConfig(t),
		"--color", "never",
		missing,
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, cli.ExitIOError, cli.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestIntegration_InvalidFormat(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "a.yaml", "a: 1\n")

	_, _, err := execute(t, "highlight", "--config", emptyConfig(t), "--format", "sarif", file)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_InvalidColor(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "a.yaml", "a: 1\n")

	_, _, err := execute(t, "highlight", "--config", emptyConfig(t), "--color", "sometimes", file)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestIntegration_BrokenConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := writeFile(t, dir, "a.yaml", "a: 1\n")
	cfgFile := writeFile(t, dir, "bad.yml", "keywords: [unterminated\n")

	_, _, err := execute(t, "highlight", "--config", cfgFile, file)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_Styles(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "styles",
		"--config", emptyConfig(t),
		"--color", "never",
		"--theme", "Key=#ff0000",
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Greater(t, len(lines), 1)
	assert.Contains(t, lines[0], "STYLE")
	assert.Contains(t, stdout, "DocumentMarker")
	assert.Contains(t, stdout, "TextBlock")

	for _, line := range lines {
		if strings.Contains(line, " Key ") {
			assert.Contains(t, line, "#ff0000")
		}
		if strings.Contains(line, " Default ") {
			assert.Contains(t, line, "-")
		}
	}
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		args   []string
		output string
		check  func(t *testing.T, content []byte)
	}{
		{
			name:   "minimal yaml",
			output: ".yamllex.yml",
			check: func(t *testing.T, content []byte) {
				t.Helper()
				cfg, err := config.FromYAML(content)
				require.NoError(t, err)
				assert.True(t, cfg.MarkdownEnabled())
			},
		},
		{
			name:   "full yaml lists styles",
			args:   []string{"--full"},
			output: ".yamllex.yml",
			check: func(t *testing.T, content []byte) {
				t.Helper()
				cfg, err := config.FromYAML(content)
				require.NoError(t, err)
				assert.Equal(t, "12", cfg.Theme["Key"])
			},
		},
		{
			name:   "json",
			args:   []string{"--format", "json"},
			output: "config.json",
			check: func(t *testing.T, content []byte) {
				t.Helper()
				assert.True(t, json.Valid(content))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.output)
			args := append([]string{"init", "--output", path}, tt.args...)

			_, _, err := execute(t, args...)
			require.NoError(t, err)

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			tt.check(t, content)
		})
	}
}

func TestIntegration_InitExistingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, ".yamllex.yml", "gutter: true\n")

	// Not a terminal: no prompt, refuse.
	_, _, err := execute(t, "init", "--output", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gutter: true\n", string(content))

	_, _, err = execute(t, "init", "--force", "--output", path)
	require.NoError(t, err)

	backup, err := os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "gutter: true\n", string(backup))

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "markdown:")
}

func TestIntegration_InitInvalidFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.toml")
	_, _, err := execute(t, "init", "--format", "toml", "--output", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
	assert.NoFileExists(t, path)
}

// syncBuffer is a bytes.Buffer safe for one writer and one reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestIntegration_Watch(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "live.yaml", "a: 1\n")

	cmd := cli.NewRootCommand(testInfo())
	var stdout syncBuffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"watch",
		"--config", emptyConfig(t),
		"--color", "never",
		"--debounce", "20ms",
		file,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "a: 1\n")
	}, 5*time.Second, 10*time.Millisecond)

	// The watcher starts after the first print; keep writing until the
	// change is picked up. Identical rewrites are not printed again.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(file, []byte("a: 2\nb: 3\n"), 0o644)
		return strings.Contains(stdout.String(), "a: 2\nb: 3\n")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	assert.Equal(t, 1, strings.Count(stdout.String(), "a: 2\nb: 3\n"))
}

func TestIntegration_WatchRejectsStats(t *testing.T) {
	t.Parallel()

	file := writeFile(t, t.TempDir(), "a.yaml", "a: 1\n")

	_, _, err := execute(t, "watch", "--config", emptyConfig(t), "--format", "stats", file)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestIntegration_WatchNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "hello\n")

	_, _, err := execute(t, "watch", "--config", emptyConfig(t), dir)
	require.ErrorIs(t, err, cli.ErrNothingToWatch)
}
