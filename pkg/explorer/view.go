package explorer

import (
	"github.com/stefanwatt/mini.files/pkg/listing"
	"github.com/stefanwatt/mini.files/pkg/pathindex"
)

// DirectoryView is the per-path view state retained across navigation:
// the buffer handle, the cursor and the baseline child ids the diff
// engine reconciles against. One view exists per distinct displayed
// path; re-entering a path in the same session reuses its view.
type DirectoryView struct {
	Path   string
	Buffer Buffer
	Cursor Cursor

	known   *OrderedSet[pathindex.ID]
	entries []listing.Entry
}

func newDirectoryView(path string, buffer Buffer) *DirectoryView {
	return &DirectoryView{
		Path:   path,
		Buffer: buffer,
		known:  NewOrderedSet[pathindex.ID](),
	}
}

// SetEntries renders fresh listing entries into the buffer and resets
// the baseline snapshot. A named cursor is resolved to a coordinate
// here, against the new lines.
func (v *DirectoryView) SetEntries(entries []listing.Entry, prefixer Prefixer) {
	v.entries = entries
	v.known = NewOrderedSet[pathindex.ID]()
	lines := make([]string, len(entries))
	for i, e := range entries {
		v.known.Add(e.ID)
		lines[i] = FormatLine(e.ID, prefixer.Prefix(e), e.Name, e.IsDir())
	}
	v.Buffer.Render(lines)
	if v.Cursor.Kind != CursorUnset {
		v.Cursor = CursorAt(v.Cursor.resolveLine(entries), 0)
	}
}

// Entries returns the entries rendered at the last refresh.
func (v *DirectoryView) Entries() []listing.Entry {
	return v.entries
}

// EntryAt maps a buffer line index to its entry.
func (v *DirectoryView) EntryAt(line int) (listing.Entry, bool) {
	if line < 0 || line >= len(v.entries) {
		return listing.Entry{}, false
	}
	return v.entries[line], true
}

// CursorEntry resolves the current cursor to an entry.
func (v *DirectoryView) CursorEntry() (listing.Entry, bool) {
	return v.EntryAt(v.Cursor.resolveLine(v.entries))
}

// Diffs runs the diff engine over the buffer. It returns nothing when
// the buffer carries no unsaved modifications.
func (v *DirectoryView) Diffs(index *pathindex.Index) []Diff {
	if v.Buffer == nil || !v.Buffer.IsModified() {
		return nil
	}
	return DiffLines(index, v.Path, v.Buffer.ReadLines(), v.known.Values())
}

// captureCursorName freezes the cursor into a restartable entry-name
// token before the buffer handle is released.
func (v *DirectoryView) captureCursorName() {
	if entry, ok := v.CursorEntry(); ok {
		v.Cursor = CursorOn(entry.Name)
	} else {
		v.Cursor = Cursor{}
	}
}
