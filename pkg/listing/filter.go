package listing

import (
	"path"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Filter decides which entries survive a directory read.
type Filter interface {
	IsVisible(e Entry) bool
}

// FilterFunc adapts a predicate to the Filter interface.
type FilterFunc func(e Entry) bool

func (f FilterFunc) IsVisible(e Entry) bool {
	return f(e)
}

// AcceptAll is the default filter.
func AcceptAll() Filter {
	return FilterFunc(func(Entry) bool { return true })
}

// NameFilter hides dot-entries unless ShowHidden is set and optionally
// narrows files down to a set of extensions. Directories always pass
// the extension check.
type NameFilter struct {
	ShowHidden bool
	Extensions []string
}

func (f NameFilter) IsVisible(e Entry) bool {
	if !f.ShowHidden && strings.HasPrefix(e.Name, ".") {
		return false
	}
	if len(f.Extensions) == 0 || e.IsDir() {
		return true
	}
	ext := path.Ext(e.Name)
	for _, allowed := range f.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// FuzzyFilter keeps entries whose name fuzzy-matches Pattern. An empty
// pattern accepts everything.
type FuzzyFilter struct {
	Pattern string
}

func (f FuzzyFilter) IsVisible(e Entry) bool {
	if f.Pattern == "" {
		return true
	}
	return len(fuzzy.Find(f.Pattern, []string{e.Name})) > 0
}
