package explorer

import (
	"strings"

	"github.com/stefanwatt/mini.files/pkg/pathindex"
)

// Diff is one raw from/to pair describing a single line's change
// before classification. An empty From means the line is brand new; an
// empty To means the baseline entry is gone from the buffer.
type Diff struct {
	From string
	To   string
}

// DiffLines compares the current buffer lines of dirPath against the
// baseline ids snapshotted at the last refresh.
//
// First pass, over lines: an id line whose resolved path still matches
// is recorded as still present; any other non-blank line emits a diff.
// Second pass, over the baseline: every id not marked still present
// emits a removal {from, none}. A line edited in place therefore
// contributes both its {from, to} pair and a removal of from; the
// classifier consumes the pair into a rename or move. This two-pass
// design accounts for every baseline entry exactly once even when the
// user duplicated or otherwise transformed lines.
func DiffLines(index *pathindex.Index, dirPath string, lines []string, baseline []pathindex.ID) []Diff {
	present := make(map[pathindex.ID]bool, len(baseline))
	var diffs []Diff
	for _, raw := range lines {
		line, ok := ParseLine(raw)
		if !ok {
			continue
		}
		toPath := joinChild(dirPath, line.Name)
		if line.HasID {
			if from, found := index.Resolve(line.ID); found {
				if from == strings.TrimSuffix(toPath, "/") {
					present[line.ID] = true
					continue
				}
				diffs = append(diffs, Diff{From: from, To: toPath})
				continue
			}
		}
		diffs = append(diffs, Diff{To: toPath})
	}
	for _, id := range baseline {
		if present[id] {
			continue
		}
		if from, ok := index.Resolve(id); ok {
			diffs = append(diffs, Diff{From: from})
		}
	}
	return diffs
}

// joinChild joins a child name onto its parent directory, preserving a
// trailing separator on the name.
func joinChild(dir, name string) string {
	trailing := strings.HasSuffix(name, "/")
	name = strings.TrimSuffix(name, "/")
	dir = strings.TrimSuffix(dir, "/")
	joined := dir + "/" + name
	if dir == "" {
		joined = "/" + name
	}
	if trailing {
		joined += "/"
	}
	return joined
}
