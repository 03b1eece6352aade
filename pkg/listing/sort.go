package listing

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sorter orders entries after filtering.
type Sorter interface {
	Less(a, b Entry) bool
}

// SorterFunc adapts a comparator to the Sorter interface.
type SorterFunc func(a, b Entry) bool

func (f SorterFunc) Less(a, b Entry) bool {
	return f(a, b)
}

// DefaultSorter puts directories before files, then orders by name
// case-insensitively.
func DefaultSorter() Sorter {
	collator := collate.New(language.Und, collate.IgnoreCase)
	return SorterFunc(func(a, b Entry) bool {
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		if c := collator.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		// Names equal ignoring case, fall back to bytes for a stable order.
		return a.Name < b.Name
	})
}
