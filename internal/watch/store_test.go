package watch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/yamllex/pkg/document"
)

func TestStore(t *testing.T) {
	t.Parallel()

	store := NewStore(0, 0)
	_, ok := store.Get("a.yaml")
	assert.False(t, ok)

	doc := &Document{buffer: document.New([]byte("a: 1\n"))}
	store.Put("a.yaml", doc)

	got, ok := store.Get("a.yaml")
	require.True(t, ok)
	assert.Same(t, doc, got)
	assert.Equal(t, 1, store.Len())

	store.Delete("a.yaml")
	_, ok = store.Get("a.yaml")
	assert.False(t, ok)
}

func TestStoreExpiration(t *testing.T) {
	t.Parallel()

	store := NewStore(20*time.Millisecond, time.Hour)
	store.Put("a.yaml", &Document{})

	time.Sleep(40 * time.Millisecond)
	_, ok := store.Get("a.yaml")
	assert.False(t, ok, "expired documents are not returned")
}
