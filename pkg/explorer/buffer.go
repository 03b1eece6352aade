package explorer

import "strings"

// Buffer is the text representation of one directory listing, owned by
// the host editor. The user edits it freely; the diff engine reads it
// back through this interface.
type Buffer interface {
	Render(lines []string)
	ReadLines() []string
	IsModified() bool
}

// BufferFactory produces a buffer for a directory view.
type BufferFactory func(dirPath string) Buffer

// MemoryBuffer is an in-process Buffer used when no editor buffer is
// attached. IsModified compares against the last rendered text.
type MemoryBuffer struct {
	rendered string
	current  string
}

func NewMemoryBuffer() *MemoryBuffer {
	return &MemoryBuffer{}
}

func (b *MemoryBuffer) Render(lines []string) {
	b.rendered = strings.Join(lines, "\n")
	b.current = b.rendered
}

func (b *MemoryBuffer) ReadLines() []string {
	if b.current == "" {
		return nil
	}
	return strings.Split(b.current, "\n")
}

func (b *MemoryBuffer) IsModified() bool {
	return b.current != b.rendered
}

// SetText replaces the buffer content, simulating user edits.
func (b *MemoryBuffer) SetText(lines []string) {
	b.current = strings.Join(lines, "\n")
}
