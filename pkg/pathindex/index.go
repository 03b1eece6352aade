// Package pathindex maps absolute paths to small stable integer ids.
//
// Ids identify file-system objects rather than path strings: a rename
// or move reassigns the existing id onto the new path so later diffs
// keep resolving to the live object. The index is process-wide state
// mutated only from the synchronization pipeline, so it carries no
// locking.
package pathindex

import "strconv"

// ID is a positive integer identifying a live path. Zero is never
// assigned and marks "no id".
type ID int

func (id ID) String() string {
	return strconv.Itoa(int(id))
}

type Index struct {
	next   ID
	byPath map[string]ID
	byID   map[ID]string
}

func New() *Index {
	return &Index{
		next:   1,
		byPath: make(map[string]ID),
		byID:   make(map[ID]string),
	}
}

// LookupOrAssign returns the id bound to path, allocating the next
// unused one on first sight. Idempotent.
func (x *Index) LookupOrAssign(path string) ID {
	if id, ok := x.byPath[path]; ok {
		return id
	}
	id := x.next
	x.next++
	x.byPath[path] = id
	x.byID[id] = path
	return id
}

// Resolve returns the path currently bound to id.
func (x *Index) Resolve(id ID) (string, bool) {
	path, ok := x.byID[id]
	return path, ok
}

// Reassign transfers the id bound to from onto to, so the id follows a
// renamed or moved object. If to already carried a different id, that
// id is orphaned: its reverse mapping is dropped and whatever inhabited
// the destination name loses its identity. A no-op when from has no id.
func (x *Index) Reassign(from, to string) {
	id, ok := x.byPath[from]
	if !ok {
		return
	}
	if old, ok := x.byPath[to]; ok && old != id {
		delete(x.byID, old)
	}
	delete(x.byPath, from)
	x.byPath[to] = id
	x.byID[id] = to
}

// Len reports the number of live path bindings.
func (x *Index) Len() int {
	return len(x.byPath)
}

// Reset drops all bindings. Ids are not reused within a process run
// unless Reset is called; tests construct isolated instances instead.
func (x *Index) Reset() {
	x.next = 1
	x.byPath = make(map[string]ID)
	x.byID = make(map[ID]string)
}
