package explorer

import (
	"fmt"
	"path"
	"strings"
)

type ActionKind int

const (
	ActionCopy ActionKind = iota
	ActionCreate
	ActionMove
	ActionRename
	ActionDelete
)

func (k ActionKind) String() string {
	switch k {
	case ActionCopy:
		return "copy"
	case ActionCreate:
		return "create"
	case ActionMove:
		return "move"
	case ActionRename:
		return "rename"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// Action is a classified, typed file-system operation ready for
// execution. Create keeps a trailing separator on To when the new
// entry is a directory.
type Action struct {
	Kind ActionKind
	From string
	To   string
}

func (a Action) String() string {
	switch a.Kind {
	case ActionCreate:
		return fmt.Sprintf("create %s", a.To)
	case ActionDelete:
		return fmt.Sprintf("delete %s", a.From)
	}
	return fmt.Sprintf("%s %s -> %s", a.Kind, a.From, a.To)
}

// Classify converts raw diffs (concatenated across all open directory
// buffers) into typed actions, returned in the fixed execution order
// copy, create, move, rename, delete. Copies and creates land before
// deletes so swap-like rearrangements never lose data; deletes run
// last as the least reversible step.
//
// A from/to pair whose source is also pending deletion is a move-type
// change: the pending delete is consumed exactly once and the pair
// becomes a rename when both paths share a parent, a move otherwise.
// A pair whose source persists is a genuine copy. A destination
// referenced by two different pairs is accepted as-is; the store's own
// collision check rejects the second.
func Classify(diffs []Diff) []Action {
	var creates []Diff
	var candidates []Diff
	pendingDeletes := NewOrderedSet[string]()
	for _, d := range diffs {
		switch {
		case d.From == "":
			creates = append(creates, d)
		case d.To == "":
			pendingDeletes.Add(d.From)
		default:
			candidates = append(candidates, d)
		}
	}

	var copies, moves, renames []Action
	for _, d := range candidates {
		to := strings.TrimSuffix(d.To, "/")
		if !pendingDeletes.Has(d.From) {
			copies = append(copies, Action{Kind: ActionCopy, From: d.From, To: to})
			continue
		}
		pendingDeletes.Remove(d.From)
		if parentDir(d.From) == parentDir(to) {
			renames = append(renames, Action{Kind: ActionRename, From: d.From, To: to})
		} else {
			moves = append(moves, Action{Kind: ActionMove, From: d.From, To: to})
		}
	}

	actions := make([]Action, 0, len(diffs))
	actions = append(actions, copies...)
	for _, d := range creates {
		actions = append(actions, Action{Kind: ActionCreate, To: d.To})
	}
	actions = append(actions, moves...)
	actions = append(actions, renames...)
	for _, from := range pendingDeletes.Values() {
		actions = append(actions, Action{Kind: ActionDelete, From: from})
	}
	return actions
}

func parentDir(p string) string {
	return path.Dir(strings.TrimSuffix(p, "/"))
}
