package session

import "sync"

// ResourceTable tracks every issued binary-data handle (photo and recording
// URLs) keyed by evidence id, so any path that discards an item can release
// its backing resource explicitly. Release is idempotent per id.
type ResourceTable struct {
	mu      sync.Mutex
	entries map[string]string // evidence id -> resource URL
	release func(url string) error
}

// NewResourceTable creates a table that invokes release when a handle is dropped.
// A nil release func makes releases no-ops (useful for tests).
func NewResourceTable(release func(url string) error) *ResourceTable {
	return &ResourceTable{
		entries: make(map[string]string),
		release: release,
	}
}

// Register records the resource handle owned by an evidence item
func (t *ResourceTable) Register(id, url string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = url
}

// Release frees the handle owned by id, if any. Unknown ids are no-ops.
func (t *ResourceTable) Release(id string) error {
	t.mu.Lock()
	url, ok := t.entries[id]
	if ok {
		delete(t.entries, id)
	}
	t.mu.Unlock()

	if !ok || t.release == nil {
		return nil
	}
	return t.release(url)
}

// Tracked reports whether an id currently owns a handle
func (t *ResourceTable) Tracked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.entries[id]
	return ok
}

// Len returns the number of live handles
func (t *ResourceTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
