package backend

import (
	"context"
	"slices"

	"pathsync/core/path"
)

// Entry is a single stored item together with its path.
type Entry[T any] struct {
	Path path.FilePath
	Item T
}

// Backend is a hierarchical key/value store.
//
// Implementations own their storage and are safe for concurrent use.
type Backend[T any] interface {
	// Set writes item at p, or deletes the entry when item is nil.
	// It returns the value stored before the call and whether one existed.
	Set(ctx context.Context, p path.FilePath, item *T) (previous T, found bool, err error)

	// Get returns the item stored at p. A missing entry is reported with found == false.
	Get(ctx context.Context, p path.FilePath) (item T, found bool, err error)

	// List returns every entry whose folder satisfies path.InScope(depth, scope, folder).
	// The order of the result is unspecified.
	List(ctx context.Context, depth path.Depth, scope path.FolderPath) ([]Entry[T], error)
}

// Insert stores item at p.
func Insert[T any](ctx context.Context, b Backend[T], p path.FilePath, item T) (T, bool, error) {
	return b.Set(ctx, p, &item)
}

// Remove deletes the entry at p.
func Remove[T any](ctx context.Context, b Backend[T], p path.FilePath) (T, bool, error) {
	return b.Set(ctx, p, nil)
}

// SortEntries orders entries by path in place.
func SortEntries[T any](entries []Entry[T]) {
	slices.SortFunc(entries, func(a, b Entry[T]) int {
		return a.Path.Compare(b.Path)
	})
}

// Paths returns the path of each entry, in order.
func Paths[T any](entries []Entry[T]) []path.FilePath {
	paths := make([]path.FilePath, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths
}
