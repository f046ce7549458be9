package watch

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yaklabco/yamllex/pkg/document"
	"github.com/yaklabco/yamllex/pkg/fsutil"
)

// Store lifetimes. Watched documents are refreshed on every change;
// a document untouched for DefaultExpiration is dropped and rebuilt
// from disk on the next change.
const (
	DefaultExpiration      = 30 * time.Minute
	DefaultCleanupInterval = 10 * time.Minute
)

// Document is the analyzed state of one watched file.
type Document struct {
	mu     sync.Mutex
	buffer *document.Buffer
	info   *fsutil.FileInfo
}

// Buffer returns the document buffer. Callers must not use it while a
// refresh of the same document may run.
func (d *Document) Buffer() *document.Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buffer
}

// Store keeps analyzed documents by path.
type Store struct {
	cache *gocache.Cache
}

// NewStore creates a store with the given expiration and cleanup
// interval. Zero values use the defaults.
func NewStore(expiration, cleanup time.Duration) *Store {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	if cleanup <= 0 {
		cleanup = DefaultCleanupInterval
	}
	return &Store{cache: gocache.New(expiration, cleanup)}
}

// Get returns the document for path.
func (s *Store) Get(path string) (*Document, bool) {
	value, found := s.cache.Get(path)
	if !found {
		return nil, false
	}
	doc, ok := value.(*Document)
	return doc, ok
}

// Put stores doc under path with the default expiration.
func (s *Store) Put(path string, doc *Document) {
	s.cache.Set(path, doc, gocache.DefaultExpiration)
}

// Touch extends the lifetime of the document for path.
func (s *Store) Touch(path string) {
	if doc, ok := s.Get(path); ok {
		s.Put(path, doc)
	}
}

// Delete removes the document for path.
func (s *Store) Delete(path string) {
	s.cache.Delete(path)
}

// Len returns the number of stored documents, including expired ones
// not yet cleaned up.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
