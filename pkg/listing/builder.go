// Package listing reads directories into ordered, id-tagged entries.
package listing

import (
	"context"
	"path"
	"sort"

	"github.com/stefanwatt/mini.files/pkg/files"
	"github.com/stefanwatt/mini.files/pkg/pathindex"
)

type Builder struct {
	store files.Store
	index *pathindex.Index
}

func NewBuilder(store files.Store, index *pathindex.Index) *Builder {
	return &Builder{store: store, index: index}
}

// List reads dirPath once, applies filter and sorter and tags every
// surviving entry with a path id. An empty directory yields an empty
// slice, not an error. Id assignment follows the final sorted order;
// that only matters for human-readable ids, not correctness.
func (b *Builder) List(ctx context.Context, dirPath string, filter Filter, sorter Sorter) ([]Entry, error) {
	children, err := b.store.ReadDir(ctx, dirPath)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		filter = AcceptAll()
	}
	if sorter == nil {
		sorter = DefaultSorter()
	}
	entries := make([]Entry, 0, len(children))
	for _, child := range children {
		kind := KindFile
		if child.IsDir() {
			kind = KindDirectory
		}
		entry := Entry{
			Name: child.Name(),
			Kind: kind,
			Path: joinPath(dirPath, child.Name()),
		}
		if filter.IsVisible(entry) {
			entries = append(entries, entry)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return sorter.Less(entries[i], entries[j])
	})
	for i := range entries {
		entries[i].ID = b.index.LookupOrAssign(entries[i].Path)
	}
	return entries, nil
}

func joinPath(dir, name string) string {
	return path.Join(dir, name)
}
