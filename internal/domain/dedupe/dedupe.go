// Package dedupe tracks which player ids have already been taken in a run.
package dedupe

import (
	"sync"
	"sync/atomic"
)

// Deduper records seen ids so a player is picked at most once.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(id string) bool

	// Unrecord forgets id, e.g. when a player is deselected.
	Unrecord(id string)

	// Seen reports whether id is recorded without recording it.
	Seen(id string) bool

	Size() int64
}

// inMemoryDeduper implements Deduper with a mutex-guarded map.
type inMemoryDeduper struct {
	mu   sync.RWMutex
	seen map[string]struct{}
	size atomic.Int64
	hint int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}

	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{}, d.hint)
	return d
}

// SeenAndRecord implements Deduper.
func (d *inMemoryDeduper) SeenAndRecord(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}
	d.seen[id] = struct{}{}
	d.size.Add(1)
	return false
}

// Unrecord implements Deduper.
func (d *inMemoryDeduper) Unrecord(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		delete(d.seen, id)
		d.size.Add(-1)
	}
}

// Seen implements Deduper.
func (d *inMemoryDeduper) Seen(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, exists := d.seen[id]
	return exists
}

// Size returns the current number of recorded ids.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
