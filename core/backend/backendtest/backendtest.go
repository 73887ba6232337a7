// Package backendtest holds the behavioral suite shared by every backend.Backend implementation.
package backendtest

import (
	"context"
	"testing"

	"pathsync/core/backend"
	"pathsync/core/path"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty backend for a single subtest.
type Factory func(t *testing.T) backend.Backend[string]

func file(segments ...string) path.FilePath {
	p, err := path.FilePathFromSegments(segments)
	if err != nil {
		panic(err)
	}
	return p
}

// Run exercises the Set, Get and List semantics every backend must share.
func Run(t *testing.T, newBackend Factory) {
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		b := newBackend(t)
		item, found, err := b.Get(ctx, file("folder", "missing"))
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, item)
	})

	t.Run("InsertThenGet", func(t *testing.T) {
		b := newBackend(t)
		prev, found, err := backend.Insert(ctx, b, file("folder", "item"), "v1")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, prev)

		item, found, err := b.Get(ctx, file("folder", "item"))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v1", item)
	})

	t.Run("OverwriteReturnsPrevious", func(t *testing.T) {
		b := newBackend(t)
		_, _, err := backend.Insert(ctx, b, file("folder", "item"), "v1")
		require.NoError(t, err)

		prev, found, err := backend.Insert(ctx, b, file("folder", "item"), "v2")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v1", prev)

		item, _, err := b.Get(ctx, file("folder", "item"))
		require.NoError(t, err)
		assert.Equal(t, "v2", item)
	})

	t.Run("RemoveReturnsPrevious", func(t *testing.T) {
		b := newBackend(t)
		_, _, err := backend.Insert(ctx, b, file("folder", "item"), "v1")
		require.NoError(t, err)

		prev, found, err := backend.Remove(ctx, b, file("folder", "item"))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v1", prev)

		_, found, err = b.Get(ctx, file("folder", "item"))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("RemoveMissing", func(t *testing.T) {
		b := newBackend(t)
		_, found, err := backend.Remove(ctx, b, file("nothing", "here"))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("EmptyValue", func(t *testing.T) {
		b := newBackend(t)
		_, _, err := backend.Insert(ctx, b, file("folder", "empty"), "")
		require.NoError(t, err)

		item, found, err := b.Get(ctx, file("folder", "empty"))
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "", item)
	})

	t.Run("ListDepth", func(t *testing.T) {
		b := newBackend(t)
		seed := map[string]path.FilePath{
			"root":   file("top"),
			"direct": file("folder", "a"),
			"deep":   file("folder", "sub", "b"),
			"other":  file("folderx", "c"),
			"deeper": file("folder", "sub", "inner", "d"),
		}
		for value, p := range seed {
			_, _, err := backend.Insert(ctx, b, p, value)
			require.NoError(t, err)
		}

		tests := []struct {
			name  string
			depth path.Depth
			scope path.FolderPath
			want  []string
		}{
			{"SimpleFolder", path.Simple, path.NewFolderPath("folder"), []string{"folder/a"}},
			{"RecursiveFolder", path.Recursive, path.NewFolderPath("folder"), []string{"folder/a", "folder/sub/b", "folder/sub/inner/d"}},
			{"SimpleRoot", path.Simple, path.Root(), []string{"/top"}},
			{"RecursiveRoot", path.Recursive, path.Root(), []string{"/top", "folder/a", "folder/sub/b", "folder/sub/inner/d", "folderx/c"}},
			{"SimpleSub", path.Simple, path.NewFolderPath("folder", "sub"), []string{"folder/sub/b"}},
			{"MissingScope", path.Recursive, path.NewFolderPath("nope"), []string{}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				entries, err := b.List(ctx, tt.depth, tt.scope)
				require.NoError(t, err)
				backend.SortEntries(entries)

				got := make([]string, 0, len(entries))
				for _, e := range entries {
					got = append(got, e.Path.String())
					assert.Equal(t, seed[e.Item], e.Path)
				}
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("SpecialCharacters", func(t *testing.T) {
		b := newBackend(t)
		odd := file("50% off", "under_score", "a b!c", "näme?x=1")
		plain := file("50X off", "underXscore", "a b!c", "other")

		_, _, err := backend.Insert(ctx, b, odd, "odd")
		require.NoError(t, err)
		_, _, err = backend.Insert(ctx, b, plain, "plain")
		require.NoError(t, err)

		item, found, err := b.Get(ctx, odd)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "odd", item)

		entries, err := b.List(ctx, path.Recursive, path.NewFolderPath("50% off"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].Path.Equal(odd))

		entries, err = b.List(ctx, path.Simple, path.NewFolderPath("50% off", "under_score", "a b!c"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "odd", entries[0].Item)
	})
}
