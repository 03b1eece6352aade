package explorer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stefanwatt/mini.files/pkg/pathindex"
)

// Buffer line format: /<id>/<prefix>/<name>, id in a fixed-width
// zero-padded decimal field. A trailing path separator on <name> marks
// a directory; it is the sole signal distinguishing "create directory"
// from "create file" for paths that did not exist before.
const idFieldWidth = 8

// Line is one parsed buffer line. Lines produced by the listing always
// carry an id; user-typed new lines do not, and their whole text is the
// entry name.
type Line struct {
	ID    pathindex.ID
	HasID bool
	Name  string
}

// FormatLine encodes an entry line. Directories get a trailing
// separator on the name.
func FormatLine(id pathindex.ID, prefix, name string, isDir bool) string {
	if isDir {
		name += "/"
	}
	return fmt.Sprintf("/%0*d/%s/%s", idFieldWidth, int(id), prefix, name)
}

// ParseLine decodes one buffer line. It returns ok=false for blank
// lines, which are ignored entirely. Any digit run between the first
// two separators is accepted as an id, so hand-edited ids still
// resolve; anything else makes the whole line a literal new name.
func ParseLine(raw string) (Line, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Line{}, false
	}
	if strings.HasPrefix(trimmed, "/") {
		rest := trimmed[1:]
		if i := strings.Index(rest, "/"); i > 0 {
			if id, err := strconv.Atoi(rest[:i]); err == nil && id > 0 {
				tail := rest[i+1:]
				if j := strings.Index(tail, "/"); j >= 0 {
					return Line{
						ID:    pathindex.ID(id),
						HasID: true,
						Name:  strings.TrimSpace(tail[j+1:]),
					}, true
				}
			}
		}
	}
	return Line{Name: trimmed}, true
}
