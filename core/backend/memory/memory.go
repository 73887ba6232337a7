// Package memory provides an in-process Backend backed by a map.
package memory

import (
	"context"
	"sync"

	"pathsync/core/backend"
	"pathsync/core/path"
)

type record[T any] struct {
	path path.FilePath
	item T
}

// Backend stores entries in a map keyed by path.FilePath.Key.
// Readers run concurrently; writers are exclusive.
type Backend[T any] struct {
	mu      sync.RWMutex
	entries map[string]record[T]
	clone   func(T) T
}

var _ backend.Backend[string] = (*Backend[string])(nil)

// New creates an empty backend. Items are copied by assignment.
func New[T any]() *Backend[T] {
	return NewWithClone[T](nil)
}

// NewWithClone creates an empty backend that copies every item passing in or out
// with clone. Use it for item types holding references (slices, maps, pointers).
func NewWithClone[T any](clone func(T) T) *Backend[T] {
	return &Backend[T]{
		entries: make(map[string]record[T]),
		clone:   clone,
	}
}

func (b *Backend[T]) copyItem(item T) T {
	if b.clone == nil {
		return item
	}
	return b.clone(item)
}

// Set implements backend.Backend.
func (b *Backend[T]) Set(ctx context.Context, p path.FilePath, item *T) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	key := p.Key()

	b.mu.Lock()
	defer b.mu.Unlock()

	prev, found := b.entries[key]
	if item == nil {
		delete(b.entries, key)
	} else {
		b.entries[key] = record[T]{path: p, item: b.copyItem(*item)}
	}
	if !found {
		return zero, false, nil
	}
	return prev.item, true, nil
}

// Get implements backend.Backend.
func (b *Backend[T]) Get(ctx context.Context, p path.FilePath) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, found := b.entries[p.Key()]
	if !found {
		return zero, false, nil
	}
	return b.copyItem(rec.item), true, nil
}

// List implements backend.Backend.
func (b *Backend[T]) List(ctx context.Context, depth path.Depth, scope path.FolderPath) ([]backend.Entry[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	entries := make([]backend.Entry[T], 0)
	for _, rec := range b.entries {
		if !path.InScope(depth, scope, rec.path.Folder()) {
			continue
		}
		entries = append(entries, backend.Entry[T]{Path: rec.path, Item: b.copyItem(rec.item)})
	}
	return entries, nil
}

// Len returns the number of stored entries.
func (b *Backend[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Clear removes every entry.
func (b *Backend[T]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.entries)
}
