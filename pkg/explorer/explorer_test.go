package explorer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/stefanwatt/mini.files/pkg/files"
	"github.com/stefanwatt/mini.files/pkg/files/osfile"
	"github.com/stefanwatt/mini.files/pkg/listing"
	"github.com/stefanwatt/mini.files/pkg/pathindex"
)

// newTestExplorer builds an explorer over a real temp directory:
//
//	<root>/work/sub/
//	<root>/work/a.txt
//	<root>/work/b.txt
//
// Soft deletes are staged under <root>/trash.
func newTestExplorer(t *testing.T, opts ...Option) (*Explorer, string) {
	t.Helper()
	root := t.TempDir()
	work := filepath.Join(root, "work")
	assert.NoError(t, os.MkdirAll(filepath.Join(work, "sub"), 0o755))
	for _, name := range []string{"a.txt", "b.txt"} {
		assert.NoError(t, os.WriteFile(filepath.Join(work, name), []byte(name), 0o644))
	}
	store := osfile.NewStore("/", osfile.WithTrashDir(filepath.Join(root, "trash")))
	return New(store, pathindex.New(), opts...), work
}

func workBuffer(t *testing.T, e *Explorer, work string) *MemoryBuffer {
	t.Helper()
	view, ok := e.View(work)
	assert.True(t, ok)
	return view.Buffer.(*MemoryBuffer)
}

func entryByName(t *testing.T, e *Explorer, dir, name string) listing.Entry {
	t.Helper()
	view, ok := e.View(dir)
	assert.True(t, ok)
	for _, entry := range view.Entries() {
		if entry.Name == name {
			return entry
		}
	}
	t.Fatalf("no entry %q in %s", name, dir)
	return listing.Entry{}
}

func lineIndex(t *testing.T, lines []string, substr string) int {
	t.Helper()
	for i, l := range lines {
		if strings.Contains(l, substr) {
			return i
		}
	}
	t.Fatalf("no line containing %q", substr)
	return -1
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("directory_opens_centered_with_placeholder", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))
		assert.Equal(t, StateOpen, e.State())
		assert.Equal(t, []string{filepath.Dir(work), work, ""}, e.Branch())
		assert.Equal(t, 1, e.FocusDepth())

		view, ok := e.View(work)
		assert.True(t, ok)
		names := make([]string, 0, 3)
		for _, entry := range view.Entries() {
			names = append(names, entry.Name)
		}
		assert.Equal(t, []string{"sub", "a.txt", "b.txt"}, names)
	})

	t.Run("file_opens_with_parent_focused", func(t *testing.T) {
		e, work := newTestExplorer(t)
		target := filepath.Join(work, "a.txt")
		assert.NoError(t, e.Open(ctx, target))
		assert.Equal(t, []string{filepath.Dir(work), work, target}, e.Branch())
		assert.Equal(t, work, e.Branch()[e.FocusDepth()])
	})

	t.Run("second_open_rejected", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))
		assert.Error(t, e.Open(ctx, work))
	})

	t.Run("missing_target", func(t *testing.T) {
		e, work := newTestExplorer(t)
		err := e.Open(ctx, filepath.Join(work, "nope"))
		assert.True(t, files.IsNotFound(err))
		assert.Equal(t, StateClosed, e.State())
	})
}

func TestNavigate(t *testing.T) {
	ctx := context.Background()

	t.Run("in_descends_into_directory", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))
		// Default cursor resolves to line 0: the sub directory.
		assert.NoError(t, e.NavigateIn(ctx))
		assert.Equal(t, []string{work, filepath.Join(work, "sub"), ""}, e.Branch())
	})

	t.Run("in_hands_files_to_callback", func(t *testing.T) {
		var opened string
		e, work := newTestExplorer(t, OnOpenFile(func(p string) { opened = p }))
		assert.NoError(t, e.Open(ctx, work))
		view, _ := e.View(work)
		view.Cursor = CursorAt(1, 0) // a.txt
		before := e.Branch()
		assert.NoError(t, e.NavigateIn(ctx))
		assert.Equal(t, filepath.Join(work, "a.txt"), opened)
		assert.Equal(t, before, e.Branch())
	})

	t.Run("out_prepends_parent_and_recenters", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))
		assert.NoError(t, e.NavigateIn(ctx)) // [work, work/sub, ""]
		assert.NoError(t, e.NavigateOut(ctx))
		assert.Equal(t, []string{filepath.Dir(work), work, filepath.Join(work, "sub")}, e.Branch())
		assert.Equal(t, 1, e.FocusDepth())
	})

	t.Run("out_at_filesystem_root_is_a_no_op", func(t *testing.T) {
		e, _ := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, "/"))
		assert.Equal(t, []string{"/", "/", ""}, e.Branch())
		assert.NoError(t, e.NavigateOut(ctx))
		assert.Equal(t, []string{"/", "/", ""}, e.Branch())
	})

	t.Run("closed_explorer", func(t *testing.T) {
		e, _ := newTestExplorer(t)
		assert.IsError(t, e.NavigateIn(ctx), ErrClosed)
		assert.IsError(t, e.NavigateOut(ctx), ErrClosed)
	})
}

func TestSyncCursor(t *testing.T) {
	ctx := context.Background()

	t.Run("appends_preview_column", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))
		assert.NoError(t, e.SyncCursor(ctx, 1, 0, 0)) // sub
		assert.Equal(t, []string{filepath.Dir(work), work, filepath.Join(work, "sub")}, e.Branch())
	})

	t.Run("moving_cursor_replaces_preview", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))
		assert.NoError(t, e.SyncCursor(ctx, 1, 0, 0))
		assert.NoError(t, e.SyncCursor(ctx, 1, 1, 0)) // a.txt
		preview := filepath.Join(work, "a.txt")
		assert.Equal(t, preview, e.Branch()[2])
		// File previews get no directory view.
		_, ok := e.View(preview)
		assert.False(t, ok)
	})

	t.Run("preview_disabled_just_truncates", func(t *testing.T) {
		e, work := newTestExplorer(t, WithPreview(false))
		assert.NoError(t, e.Open(ctx, work))
		assert.NoError(t, e.SyncCursor(ctx, 1, 0, 0))
		assert.Equal(t, []string{filepath.Dir(work), work}, e.Branch())
	})

	t.Run("notify_settles_inline_without_delay", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))
		e.NotifyCursor(1, 0, 0)
		assert.Equal(t, filepath.Join(work, "sub"), e.Branch()[2])
	})

	t.Run("notify_coalesces_bursts", func(t *testing.T) {
		// The dispatch hands the settle callback back to this
		// goroutine, the way a host event loop would.
		dispatched := make(chan func(), 1)
		e, work := newTestExplorer(t,
			WithSettleDelay(50*time.Millisecond),
			WithDispatch(func(f func()) { dispatched <- f }),
		)
		assert.NoError(t, e.Open(ctx, work))
		e.NotifyCursor(1, 0, 0)
		e.NotifyCursor(1, 1, 0)
		settle := <-dispatched
		settle()
		// Only the last position of the burst settled.
		assert.Equal(t, filepath.Join(work, "a.txt"), e.Branch()[2])
		select {
		case <-dispatched:
			t.Fatal("burst settled more than once")
		default:
		}
	})
}

func TestSynchronize(t *testing.T) {
	ctx := context.Background()

	t.Run("rename_keeps_id", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))
		oldID := entryByName(t, e, work, "a.txt").ID

		mb := workBuffer(t, e, work)
		lines := mb.ReadLines()
		i := lineIndex(t, lines, "a.txt")
		lines[i] = strings.Replace(lines[i], "a.txt", "renamed.txt", 1)
		mb.SetText(lines)

		assert.NoError(t, e.Synchronize(ctx))
		_, err := os.Stat(filepath.Join(work, "renamed.txt"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(work, "a.txt"))
		assert.True(t, os.IsNotExist(err))
		assert.Equal(t, oldID, entryByName(t, e, work, "renamed.txt").ID)
	})

	t.Run("create_and_soft_delete", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))

		mb := workBuffer(t, e, work)
		lines := mb.ReadLines()
		i := lineIndex(t, lines, "b.txt")
		lines = append(lines[:i], lines[i+1:]...)
		lines = append(lines, "newdir/", "note.txt")
		mb.SetText(lines)

		assert.NoError(t, e.Synchronize(ctx))
		info, err := os.Stat(filepath.Join(work, "newdir"))
		assert.NoError(t, err)
		assert.True(t, info.IsDir())
		_, err = os.Stat(filepath.Join(work, "note.txt"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(work, "b.txt"))
		assert.True(t, os.IsNotExist(err))
		// The delete was staged, not destroyed.
		_, err = os.Stat(filepath.Join(filepath.Dir(work), "trash", "b.txt"))
		assert.NoError(t, err)
	})

	t.Run("move_into_subdirectory", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))

		mb := workBuffer(t, e, work)
		lines := mb.ReadLines()
		i := lineIndex(t, lines, "a.txt")
		lines[i] = strings.Replace(lines[i], "a.txt", "sub/a.txt", 1)
		mb.SetText(lines)

		assert.NoError(t, e.Synchronize(ctx))
		_, err := os.Stat(filepath.Join(work, "sub", "a.txt"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(work, "a.txt"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("collision_reported_without_data_loss", func(t *testing.T) {
		var msgs []string
		e, work := newTestExplorer(t, WithNotifier(func(format string, args ...any) {
			msgs = append(msgs, fmt.Sprintf(format, args...))
		}))
		assert.NoError(t, e.Open(ctx, work))

		mb := workBuffer(t, e, work)
		lines := mb.ReadLines()
		i := lineIndex(t, lines, "a.txt")
		lines[i] = strings.Replace(lines[i], "a.txt", "b.txt", 1)
		mb.SetText(lines)

		assert.NoError(t, e.Synchronize(ctx))
		assert.Equal(t, 1, len(msgs))
		// Both files survive the rejected rename.
		_, err := os.Stat(filepath.Join(work, "a.txt"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(work, "b.txt"))
		assert.NoError(t, err)
	})

	t.Run("declined_confirmation_restores_buffer", func(t *testing.T) {
		e, work := newTestExplorer(t, WithConfirmer(ConfirmFunc(func(string) bool { return false })))
		assert.NoError(t, e.Open(ctx, work))

		mb := workBuffer(t, e, work)
		lines := mb.ReadLines()
		i := lineIndex(t, lines, "b.txt")
		mb.SetText(append(lines[:i], lines[i+1:]...))

		assert.NoError(t, e.Synchronize(ctx))
		_, err := os.Stat(filepath.Join(work, "b.txt"))
		assert.NoError(t, err)
		assert.False(t, mb.IsModified())
		assert.NotEqual(t, -1, lineIndex(t, mb.ReadLines(), "b.txt"))
	})

	t.Run("unmodified_buffers_are_a_no_op", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))
		actions, err := e.Plan(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, len(actions))
	})
}

func TestCloseAndReopen(t *testing.T) {
	ctx := context.Background()

	t.Run("cursor_survives_as_entry_name", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))
		view, _ := e.View(work)
		view.Cursor = CursorAt(2, 0) // b.txt
		assert.NoError(t, e.Close(ctx))
		assert.Equal(t, StateClosed, e.State())

		assert.NoError(t, e.Open(ctx, work))
		view, _ = e.View(work)
		assert.Equal(t, CursorCoordinate, view.Cursor.Kind)
		assert.Equal(t, 2, view.Cursor.Line)
	})

	t.Run("modified_buffer_needs_confirmation", func(t *testing.T) {
		discard := false
		e, work := newTestExplorer(t, WithConfirmer(ConfirmFunc(func(string) bool { return discard })))
		assert.NoError(t, e.Open(ctx, work))

		mb := workBuffer(t, e, work)
		mb.SetText(append(mb.ReadLines(), "pending.txt"))

		assert.NoError(t, e.Close(ctx))
		assert.Equal(t, StateOpen, e.State())

		discard = true
		assert.NoError(t, e.Close(ctx))
		assert.Equal(t, StateClosed, e.State())
	})

	t.Run("close_when_closed_is_a_no_op", func(t *testing.T) {
		e, _ := newTestExplorer(t)
		assert.NoError(t, e.Close(ctx))
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("vanished_column_is_dropped", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))
		assert.NoError(t, e.SyncCursor(ctx, 1, 0, 0)) // preview work/sub
		assert.NoError(t, os.RemoveAll(filepath.Join(work, "sub")))
		assert.NoError(t, e.Refresh(ctx))
		assert.Equal(t, []string{filepath.Dir(work), work}, e.Branch())
		assert.Equal(t, StateOpen, e.State())
	})

	t.Run("all_columns_gone_is_corrupted_state", func(t *testing.T) {
		e, work := newTestExplorer(t)
		assert.NoError(t, e.Open(ctx, work))
		assert.NoError(t, os.RemoveAll(filepath.Dir(work)))
		err := e.Refresh(ctx)
		assert.True(t, errors.Is(err, ErrCorruptedState))
		assert.Equal(t, StateClosed, e.State())
	})
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	a, workA := newTestExplorer(t)
	b, workB := newTestExplorer(t)
	assert.NoError(t, a.Open(ctx, workA))
	assert.NoError(t, b.Open(ctx, workB))
	reg.Put("tab-1", a)
	reg.Put("tab-2", b)
	assert.Equal(t, 2, reg.Len())

	got, ok := reg.Get("tab-1")
	assert.True(t, ok)
	assert.True(t, got == a)

	reg.CloseAll(ctx)
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, StateClosed, a.State())
	assert.Equal(t, StateClosed, b.State())
}
