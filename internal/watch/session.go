// Package watch keeps analyzed YAML documents up to date as their files
// change on disk, re-lexing only from the first edited line.
package watch

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/yamllex/internal/logging"
	"github.com/yaklabco/yamllex/pkg/document"
	"github.com/yaklabco/yamllex/pkg/fsutil"
	"github.com/yaklabco/yamllex/pkg/runner"
)

// Update describes one refresh of a watched document.
type Update struct {
	Path string

	// Buffer is the refreshed document.
	Buffer *document.Buffer

	// Changed is false when the file was rewritten with identical content.
	Changed bool

	// Edit is the replacement applied to the previous content.
	Edit Edit

	// Rescan is the work EnsureStyled did after the edit.
	Rescan document.Rescan
}

// Session analyzes watched files and applies their changes
// incrementally.
type Session struct {
	runner *runner.Runner
	store  *Store
}

// NewSession creates a session analyzing with r and keeping documents
// in store.
func NewSession(r *runner.Runner, store *Store) *Session {
	return &Session{runner: r, store: store}
}

// Open reads and fully analyzes path, replacing any stored document.
func (s *Session) Open(ctx context.Context, path string) (*document.Buffer, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	buf := s.runner.Analyze(content)
	s.store.Put(path, &Document{buffer: buf, info: info})

	logging.FromContext(ctx).Debug("opened",
		logging.FieldPath, path,
		logging.FieldBytes, buf.Length(),
		logging.FieldLines, runner.TextLines(buf),
	)
	return buf, nil
}

// Refresh re-reads path and applies the difference to its document as
// one edit. Styling resumes at the edited line. A path not in the store
// is opened from scratch.
func (s *Session) Refresh(ctx context.Context, path string) (Update, error) {
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)

	doc, ok := s.store.Get(path)
	if !ok {
		buf, err := s.Open(ctx, path)
		if err != nil {
			return Update{}, err
		}
		rescan := document.Rescan{Lines: buf.LineCount()}
		return Update{Path: path, Buffer: buf, Changed: true, Rescan: rescan}, nil
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()

	content, info, changed, err := fsutil.Reload(ctx, doc.info)
	if err != nil {
		if errors.Is(err, fsutil.ErrNotFound) {
			s.store.Delete(path)
		}
		return Update{}, fmt.Errorf("refresh %s: %w", path, err)
	}
	s.store.Touch(path)

	if !changed {
		logger.Debug("content unchanged")
		return Update{Path: path, Buffer: doc.buffer}, nil
	}

	edit := ComputeEdit(doc.buffer.Text(), content)
	if err := doc.buffer.Replace(edit.Start, edit.OldLen, edit.Text); err != nil {
		return Update{}, fmt.Errorf("apply edit to %s: %w", path, err)
	}
	doc.info = info

	rescan := doc.buffer.EnsureStyled(doc.buffer.Length())

	logger.Info("restyled",
		logging.FieldEditStart, edit.Start,
		logging.FieldEditOld, edit.OldLen,
		logging.FieldEditNew, len(edit.Text),
		logging.FieldFromLine, rescan.FromLine,
		logging.FieldLines, rescan.Lines,
	)

	return Update{
		Path:    path,
		Buffer:  doc.buffer,
		Changed: true,
		Edit:    edit,
		Rescan:  rescan,
	}, nil
}

// Watch opens every path, then refreshes each one as it changes and
// passes the result to onUpdate until ctx is done. Refresh failures are
// logged and watching continues.
func (s *Session) Watch(ctx context.Context, cfg Config, onUpdate func(Update)) error {
	logger := logging.FromContext(ctx)

	for _, path := range cfg.Paths {
		buf, err := s.Open(ctx, path)
		if err != nil {
			return err
		}
		onUpdate(Update{
			Path:    path,
			Buffer:  buf,
			Changed: true,
			Rescan:  document.Rescan{Lines: buf.LineCount()},
		})
	}

	watcher, err := NewWatcher(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Stop() }()

	changes, err := watcher.Start()
	if err != nil {
		return err
	}

	logger.Info("watching", logging.FieldFiles, len(cfg.Paths))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watcher.Errors():
			logger.Warn("watch error", logging.FieldError, err)
		case path := <-changes:
			update, err := s.Refresh(ctx, path)
			if err != nil {
				logger.Warn("refresh failed", logging.FieldError, err)
				continue
			}
			if update.Changed {
				onUpdate(update)
			}
		}
	}
}
