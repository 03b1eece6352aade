package listing

import "github.com/stefanwatt/mini.files/pkg/pathindex"

type Kind int

const (
	KindFile Kind = iota
	KindDirectory
)

// Entry is one file-system child as listed inside a parent directory.
// Entries are produced fresh on every directory read and never mutated.
type Entry struct {
	ID   pathindex.ID
	Name string
	Kind Kind
	Path string
}

func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}
