package explorer

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func existsIn(alive ...string) func(string) bool {
	set := map[string]bool{}
	for _, p := range alive {
		set[p] = true
	}
	return func(p string) bool { return set[p] }
}

func TestBranch(t *testing.T) {
	t.Run("focus_is_middle_slot", func(t *testing.T) {
		b := NewBranch("/a", "/a/b", "")
		assert.Equal(t, 1, b.Focus())
		assert.Equal(t, "/a/b", b.Anchor())
	})

	t.Run("prepend_truncates_from_left_and_recenters", func(t *testing.T) {
		b := NewBranch("/a/b", "/a/b/c", "/a/b/c/d")
		b.Prepend("/a")
		assert.Equal(t, []string{"/a", "/a/b", "/a/b/c"}, b.Paths())
		assert.Equal(t, 1, b.Focus())
	})

	t.Run("append_shifts_left_at_capacity", func(t *testing.T) {
		b := NewBranch("/a", "/a/b", "/a/b/c")
		b.Append("/a/b/c/d")
		assert.Equal(t, []string{"/a/b", "/a/b/c", "/a/b/c/d"}, b.Paths())
	})

	t.Run("truncate_after", func(t *testing.T) {
		b := NewBranch("/a", "/a/b", "/a/b/c")
		b.TruncateAfter(1)
		assert.Equal(t, []string{"/a", "/a/b"}, b.Paths())
		assert.Equal(t, 1, b.Focus())
	})
}

func TestParentOf(t *testing.T) {
	assert.Equal(t, "/", parentOf("/"))
	assert.Equal(t, "/", parentOf("/a"))
	assert.Equal(t, "/a", parentOf("/a/b"))
	assert.Equal(t, "/a", parentOf("/a/b/"))
}

func TestBranchNormalize(t *testing.T) {
	t.Run("keeps_placeholder", func(t *testing.T) {
		b := NewBranch("/a", "/a/b", "")
		changed := b.Normalize(existsIn("/a", "/a/b"))
		assert.False(t, changed)
		assert.Equal(t, 3, b.Depth())
	})

	t.Run("drops_dead_path_and_everything_right_of_it", func(t *testing.T) {
		b := NewBranch("/a", "/a/b", "/a/b/c")
		changed := b.Normalize(existsIn("/a"))
		assert.True(t, changed)
		assert.Equal(t, []string{"/a"}, b.Paths())
		assert.Equal(t, 0, b.Focus())
	})

	t.Run("idempotent", func(t *testing.T) {
		b := NewBranch("/a", "/a/b", "/a/b/c")
		exists := existsIn("/a", "/a/b")
		_ = b.Normalize(exists)
		paths := b.Paths()
		changed := b.Normalize(exists)
		assert.False(t, changed)
		assert.Equal(t, paths, b.Paths())
	})

	t.Run("all_dead_leaves_zero_columns", func(t *testing.T) {
		b := NewBranch("/a", "/a/b", "")
		_ = b.Normalize(existsIn())
		assert.Equal(t, 0, b.Depth())
	})
}
