package watch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/yamllex/internal/watch"
	"github.com/yaklabco/yamllex/pkg/config"
	"github.com/yaklabco/yamllex/pkg/fsutil"
	"github.com/yaklabco/yamllex/pkg/runner"
)

func newSession() (*watch.Session, *runner.Runner) {
	r := runner.New(config.NewConfig())
	return watch.NewSession(r, watch.NewStore(0, 0)), r
}

func TestSession_RefreshAppliesEdit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "values.yaml")
	before := "a: 1\nb:\n  c: 2\nd: |\n  text\ne: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(before), 0o600))

	session, r := newSession()
	ctx := context.Background()

	_, err := session.Open(ctx, path)
	require.NoError(t, err)

	after := "a: 1\nb:\n  c: 3\nd: |\n  text\ne: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(after), 0o600))

	update, err := session.Refresh(ctx, path)
	require.NoError(t, err)
	require.True(t, update.Changed)
	assert.Equal(t, 13, update.Edit.Start)
	assert.Equal(t, 2, update.Rescan.FromLine, "styling resumes at the edited line")
	assert.Equal(t, after, string(update.Buffer.Text()))

	fresh := r.Analyze([]byte(after))
	assert.Equal(t, fresh.Spans(), update.Buffer.Spans(), "incremental result matches a full analysis")
	for line := range fresh.LineCount() {
		assert.Equal(t, fresh.FoldLevel(line), update.Buffer.FoldLevel(line), "line %d", line)
	}
}

func TestSession_RefreshUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))

	session, _ := newSession()
	ctx := context.Background()

	_, err := session.Open(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))
	update, err := session.Refresh(ctx, path)
	require.NoError(t, err)
	assert.False(t, update.Changed)
}

func TestSession_RefreshUnknownPathOpens(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "new.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x: y\n"), 0o600))

	session, _ := newSession()
	update, err := session.Refresh(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, update.Changed)
	assert.Equal(t, "x: y\n", string(update.Buffer.Text()))
}

func TestSession_RefreshDeletedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "gone.yaml")
	require.NoError(t, os.WriteFile(path, []byte("x: y\n"), 0o600))

	session, _ := newSession()
	ctx := context.Background()
	_, err := session.Open(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	_, err = session.Refresh(ctx, path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fsutil.ErrNotFound))
}

func TestSession_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0o600))

	session, _ := newSession()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan watch.Update, 4)
	done := make(chan error, 1)
	go func() {
		done <- session.Watch(ctx, watch.Config{Paths: []string{path}, Debounce: 20 * time.Millisecond}, func(u watch.Update) {
			updates <- u
		})
	}()

	select {
	case u := <-updates:
		assert.Equal(t, "a: 1\n", string(u.Buffer.Text()))
	case <-time.After(2 * time.Second):
		t.Fatal("no initial update")
	}

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("a: 1\nb: 2\n"), 0o600))

	select {
	case u := <-updates:
		assert.Equal(t, "a: 1\nb: 2\n", string(u.Buffer.Text()))
		assert.Equal(t, 1, u.Rescan.FromLine)
	case <-time.After(2 * time.Second):
		t.Fatal("no update after write")
	}

	cancel()
	require.NoError(t, <-done)
}
