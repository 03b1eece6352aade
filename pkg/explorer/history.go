package explorer

// Snapshot is the archived shape of a closed explorer: its column
// paths and, per path, the cursor frozen as an entry-name token.
// Snapshots live in process memory only and do not survive restart.
type Snapshot struct {
	Paths   []string
	Cursors map[string]string
}

// History archives branch snapshots keyed by anchor path, so reopening
// the same anchor in one session restores columns and cursors.
type History struct {
	byAnchor map[string]Snapshot
}

func NewHistory() *History {
	return &History{byAnchor: make(map[string]Snapshot)}
}

func (h *History) Save(anchor string, snap Snapshot) {
	h.byAnchor[anchor] = snap
}

func (h *History) Restore(anchor string) (Snapshot, bool) {
	snap, ok := h.byAnchor[anchor]
	return snap, ok
}

func (h *History) Len() int {
	return len(h.byAnchor)
}
