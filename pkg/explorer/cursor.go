package explorer

import "github.com/stefanwatt/mini.files/pkg/listing"

type CursorKind int

const (
	CursorUnset CursorKind = iota
	CursorCoordinate
	CursorNamed
)

// Cursor is a tagged variant: a concrete line/column pair while a view
// is displayed, or an entry-name token that survives a close/reopen
// cycle (directory contents may change between sessions, so raw
// coordinates would go stale). A named cursor is resolved back to a
// coordinate only at render time.
type Cursor struct {
	Kind CursorKind
	Line int
	Col  int
	Name string
}

func CursorAt(line, col int) Cursor {
	return Cursor{Kind: CursorCoordinate, Line: line, Col: col}
}

func CursorOn(name string) Cursor {
	return Cursor{Kind: CursorNamed, Name: name}
}

// resolveLine maps the cursor onto a line index of the given entries,
// scanning for the named entry when needed. Falls back to line 0.
func (c Cursor) resolveLine(entries []listing.Entry) int {
	switch c.Kind {
	case CursorCoordinate:
		if c.Line >= 0 && c.Line < len(entries) {
			return c.Line
		}
		if n := len(entries); n > 0 && c.Line >= n {
			return n - 1
		}
	case CursorNamed:
		for i, e := range entries {
			if e.Name == c.Name {
				return i
			}
		}
	}
	return 0
}
