package explorer

import (
	"path"
	"strings"
)

// MaxColumns is the number of columns displayed at once: parent,
// current and preview.
const MaxColumns = 3

// placeholder marks the rightmost slot when no preview is shown.
const placeholder = ""

// Branch is the ordered left-to-right sequence of paths displayed as
// columns. Adjacent slots hold parent and child (or the preview
// relationship); only the rightmost slot may be the placeholder.
type Branch struct {
	paths []string
	focus int
}

func NewBranch(paths ...string) *Branch {
	b := &Branch{paths: make([]string, len(paths))}
	copy(b.paths, paths)
	if len(b.paths) > MaxColumns {
		b.paths = b.paths[:MaxColumns]
	}
	b.focus = len(b.paths) / 2
	return b
}

func (b *Branch) Depth() int {
	return len(b.paths)
}

func (b *Branch) Focus() int {
	return b.focus
}

// Paths returns a copy of the column paths.
func (b *Branch) Paths() []string {
	paths := make([]string, len(b.paths))
	copy(paths, b.paths)
	return paths
}

func (b *Branch) At(depth int) string {
	if depth < 0 || depth >= len(b.paths) {
		return placeholder
	}
	return b.paths[depth]
}

// Anchor is the focused column's path; it keys the session history.
func (b *Branch) Anchor() string {
	return b.At(b.focus)
}

// TruncateAfter drops every column to the right of depth.
func (b *Branch) TruncateAfter(depth int) {
	if depth < 0 {
		depth = 0
	}
	if depth+1 < len(b.paths) {
		b.paths = b.paths[:depth+1]
	}
	b.clampFocus()
}

// Append adds a new rightmost column, shifting the branch left when it
// would exceed MaxColumns.
func (b *Branch) Append(p string) {
	b.paths = append(b.paths, p)
	if len(b.paths) > MaxColumns {
		b.paths = b.paths[len(b.paths)-MaxColumns:]
	}
	b.clampFocus()
}

// Prepend inserts a new leftmost column, truncating from the left to
// MaxColumns, and re-centers focus on the new middle slot.
func (b *Branch) Prepend(p string) {
	b.paths = append([]string{p}, b.paths...)
	if len(b.paths) > MaxColumns {
		b.paths = b.paths[:MaxColumns]
	}
	b.focus = len(b.paths) / 2
}

func (b *Branch) clampFocus() {
	if b.focus >= len(b.paths) {
		b.focus = len(b.paths) - 1
	}
	if b.focus < 0 {
		b.focus = 0
	}
}

// Normalize drops columns whose paths no longer exist on disk,
// together with everything to their right, and clamps focus into
// range. The rightmost placeholder is kept. Normalizing an
// already-normalized branch is a no-op; it reports whether anything
// changed. A branch left with zero columns is corrupted state.
func (b *Branch) Normalize(exists func(p string) bool) bool {
	for i, p := range b.paths {
		if p == placeholder && i == len(b.paths)-1 {
			break
		}
		if !exists(p) {
			b.paths = b.paths[:i]
			b.clampFocus()
			return true
		}
	}
	return false
}

// parentOf returns the parent directory of p, or p itself at the root.
func parentOf(p string) string {
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return path.Dir(p)
}
