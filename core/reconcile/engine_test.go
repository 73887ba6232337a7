package reconcile

import (
	"context"
	"errors"
	"testing"

	"pathsync/core/backend"
	"pathsync/core/backend/memory"
	"pathsync/core/backend/mocks"
	"pathsync/core/path"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func file(t *testing.T, segments ...string) path.FilePath {
	t.Helper()
	p, err := path.FilePathFromSegments(segments)
	require.NoError(t, err)
	return p
}

func newMemoryPair(t *testing.T, opts ...Option) (*memory.Backend[string], *memory.Backend[string], *SyncDb[string]) {
	t.Helper()
	local := memory.New[string]()
	remote := memory.New[string]()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	db, err := New[string](local, remote, opts...)
	require.NoError(t, err)
	return local, remote, db
}

func listAll(t *testing.T, b backend.Backend[string]) []backend.Entry[string] {
	t.Helper()
	entries, err := b.List(context.Background(), path.Recursive, path.Root())
	require.NoError(t, err)
	backend.SortEntries(entries)
	return entries
}

func TestNew(t *testing.T) {
	_, err := New[string](nil, memory.New[string]())
	assert.ErrorIs(t, err, ErrNilBackend)

	_, err = New[string](memory.New[string](), nil)
	assert.ErrorIs(t, err, ErrNilBackend)

	local := memory.New[string]()
	remote := memory.New[string]()
	db, err := New[string](local, remote, WithConcurrency(0))
	require.NoError(t, err)
	assert.Equal(t, 1, db.concurrency)
	assert.Same(t, local, db.Local())
	assert.Same(t, remote, db.Remote())
}

func TestDecide(t *testing.T) {
	p := path.NewFilePath(path.NewFolderPath("folder"), "item")

	tests := []struct {
		name        string
		local       string
		localFound  bool
		remote      string
		remoteFound bool
		want        ActionType
	}{
		{"BothEqual", "a", true, "a", true, ActionNone},
		{"BothEqualEmpty", "", true, "", true, ActionNone},
		{"BothDiffer", "A", true, "B", true, ActionOverwriteLocal},
		{"LocalOnly", "a", true, "", false, ActionPushRemote},
		{"LocalOnlyEmptyValue", "", true, "", false, ActionPushRemote},
		{"RemoteOnly", "", false, "b", true, ActionPullLocal},
		{"Neither", "", false, "", false, ActionVanished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := decide(p, tt.local, tt.localFound, tt.remote, tt.remoteFound)
			assert.Equal(t, tt.want, action.Type)
			assert.True(t, action.Path.Equal(p))
			assert.NotEmpty(t, action.Reason)
		})
	}
}

func TestSyncFile(t *testing.T) {
	ctx := context.Background()

	t.Run("TieBreakRemoteWins", func(t *testing.T) {
		local, remote, db := newMemoryPair(t)
		p := file(t, "folder", "item")
		_, _, _ = backend.Insert(ctx, local, p, "A")
		_, _, _ = backend.Insert(ctx, remote, p, "B")

		action, err := db.SyncFile(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, ActionOverwriteLocal, action.Type)

		for _, b := range []backend.Backend[string]{local, remote} {
			item, found, err := b.Get(ctx, p)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, "B", item)
		}
	})

	t.Run("PushRemote", func(t *testing.T) {
		local, remote, db := newMemoryPair(t)
		p := file(t, "item")
		_, _, _ = backend.Insert(ctx, local, p, "v")

		action, err := db.SyncFile(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, ActionPushRemote, action.Type)

		item, found, _ := remote.Get(ctx, p)
		assert.True(t, found)
		assert.Equal(t, "v", item)
	})

	t.Run("PullLocal", func(t *testing.T) {
		local, remote, db := newMemoryPair(t)
		p := file(t, "a", "b", "item")
		_, _, _ = backend.Insert(ctx, remote, p, "v")

		action, err := db.SyncFile(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, ActionPullLocal, action.Type)

		item, found, _ := local.Get(ctx, p)
		assert.True(t, found)
		assert.Equal(t, "v", item)
	})

	t.Run("VanishedWritesNothing", func(t *testing.T) {
		local, remote, db := newMemoryPair(t)

		action, err := db.SyncFile(ctx, file(t, "ghost"))
		require.NoError(t, err)
		assert.Equal(t, ActionVanished, action.Type)
		assert.Equal(t, 0, local.Len())
		assert.Equal(t, 0, remote.Len())
	})

	t.Run("DryRun", func(t *testing.T) {
		local, remote, db := newMemoryPair(t, WithDryRun(true))
		p := file(t, "item")
		_, _, _ = backend.Insert(ctx, local, p, "v")

		action, err := db.SyncFile(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, ActionPushRemote, action.Type)
		assert.Equal(t, 0, remote.Len())
	})
}

func TestSyncFolder_EndToEnd(t *testing.T) {
	ctx := context.Background()
	local, remote, db := newMemoryPair(t)

	item1 := file(t, "folder", "item1")
	item2 := file(t, "folder", "item2")
	_, _, err := backend.Insert(ctx, local, item1, "store me")
	require.NoError(t, err)
	_, _, err = backend.Insert(ctx, remote, item2, "store me, too")
	require.NoError(t, err)

	report, err := db.SyncFolder(ctx, path.Recursive, path.Root())
	require.NoError(t, err)
	assert.True(t, report.Complete)
	assert.False(t, report.DryRun)
	assert.Equal(t, Summary{Total: 2, PushedRemote: 1, PulledLocal: 1}, report.Summary)
	require.Len(t, report.Actions, 2)
	assert.Equal(t, ActionPushRemote, report.Actions[0].Type)
	assert.Equal(t, ActionPullLocal, report.Actions[1].Type)

	want := []backend.Entry[string]{
		{Path: item1, Item: "store me"},
		{Path: item2, Item: "store me, too"},
	}
	assert.Equal(t, want, listAll(t, local))
	assert.Equal(t, want, listAll(t, remote))
}

func TestSyncFolder_Idempotent(t *testing.T) {
	ctx := context.Background()
	local, remote, db := newMemoryPair(t)

	_, _, _ = backend.Insert(ctx, local, file(t, "a", "x"), "1")
	_, _, _ = backend.Insert(ctx, local, file(t, "a", "y"), "local")
	_, _, _ = backend.Insert(ctx, remote, file(t, "a", "y"), "remote")
	_, _, _ = backend.Insert(ctx, remote, file(t, "b", "z"), "3")

	_, err := db.SyncFolder(ctx, path.Recursive, path.Root())
	require.NoError(t, err)
	first := listAll(t, local)

	report, err := db.SyncFolder(ctx, path.Recursive, path.Root())
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 3, Unchanged: 3}, report.Summary)
	assert.Equal(t, first, listAll(t, local))
	assert.Equal(t, first, listAll(t, remote))
}

func TestSyncFolder_ScopeLeavesOutsideUntouched(t *testing.T) {
	ctx := context.Background()
	local, remote, db := newMemoryPair(t)

	_, _, _ = backend.Insert(ctx, local, file(t, "folder", "a"), "a")
	_, _, _ = backend.Insert(ctx, local, file(t, "folder", "sub", "b"), "b")
	_, _, _ = backend.Insert(ctx, local, file(t, "other", "c"), "c")

	report, err := db.SyncFolder(ctx, path.Simple, path.NewFolderPath("folder"))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.PushedRemote)

	entries := listAll(t, remote)
	require.Len(t, entries, 1)
	assert.Equal(t, "folder/a", entries[0].Path.String())

	_, err = db.SyncFolder(ctx, path.Recursive, path.NewFolderPath("folder"))
	require.NoError(t, err)
	assert.Len(t, listAll(t, remote), 2)

	_, found, err := remote.Get(ctx, file(t, "other", "c"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSyncFolder_ScopeReadsOnlyListedPaths(t *testing.T) {
	ctx := context.Background()
	scope := path.NewFolderPath("folder")

	inside := file(t, "folder", "a")
	outside := file(t, "elsewhere", "b")

	local := new(mocks.Backend)
	remote := new(mocks.Backend)

	local.On("List", mock.Anything, path.Simple, scope).
		Return([]backend.Entry[string]{{Path: inside, Item: "a"}, {Path: outside, Item: "b"}}, nil)
	remote.On("List", mock.Anything, path.Simple, scope).
		Return([]backend.Entry[string]{}, nil)

	local.On("Get", mock.Anything, inside).Return("a", true, nil)
	remote.On("Get", mock.Anything, inside).Return("", false, nil)
	remote.On("Set", mock.Anything, inside, mock.MatchedBy(func(item *string) bool {
		return item != nil && *item == "a"
	})).Return("", false, nil)

	db, err := New[string](local, remote, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	report, err := db.SyncFolder(ctx, path.Simple, scope)
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 1, PushedRemote: 1}, report.Summary)

	local.AssertExpectations(t)
	remote.AssertExpectations(t)
	local.AssertNotCalled(t, "Get", mock.Anything, outside)
	remote.AssertNotCalled(t, "Get", mock.Anything, outside)
	remote.AssertNotCalled(t, "Set", mock.Anything, outside, mock.Anything)
}

func TestSyncFolder_DryRunNeverWrites(t *testing.T) {
	ctx := context.Background()
	local, remote, db := newMemoryPair(t, WithDryRun(true))

	_, _, _ = backend.Insert(ctx, local, file(t, "a"), "1")
	_, _, _ = backend.Insert(ctx, local, file(t, "b"), "local")
	_, _, _ = backend.Insert(ctx, remote, file(t, "b"), "remote")
	_, _, _ = backend.Insert(ctx, remote, file(t, "c"), "3")

	beforeLocal := listAll(t, local)
	beforeRemote := listAll(t, remote)

	report, err := db.SyncFolder(ctx, path.Recursive, path.Root())
	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.True(t, report.Complete)
	assert.Equal(t, Summary{Total: 3, PushedRemote: 1, OverwrittenLocal: 1, PulledLocal: 1}, report.Summary)
	assert.Equal(t, beforeLocal, listAll(t, local))
	assert.Equal(t, beforeRemote, listAll(t, remote))
}

func TestSyncFolder_ListFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")

	local := new(mocks.Backend)
	remote := new(mocks.Backend)
	local.On("List", mock.Anything, path.Recursive, path.Root()).Return([]backend.Entry[string]{}, nil)
	remote.On("List", mock.Anything, path.Recursive, path.Root()).Return(nil, boom)

	db, err := New[string](local, remote)
	require.NoError(t, err)

	report, err := db.SyncFolder(ctx, path.Recursive, path.Root())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var syncErr *SyncError
	require.ErrorAs(t, err, &syncErr)
	assert.Equal(t, "list", syncErr.Op)
	assert.Equal(t, SideRemote, syncErr.Side)

	require.NotNil(t, report)
	assert.False(t, report.Complete)
	assert.Empty(t, report.Actions)
}
