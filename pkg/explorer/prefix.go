package explorer

import "github.com/stefanwatt/mini.files/pkg/listing"

// Prefixer supplies the presentation prefix of a rendered entry line.
type Prefixer interface {
	Prefix(e listing.Entry) string
}

// PrefixFunc adapts a function to the Prefixer interface.
type PrefixFunc func(e listing.Entry) string

func (f PrefixFunc) Prefix(e listing.Entry) string {
	return f(e)
}

const (
	dirPrefix  = "📁 "
	filePrefix = "📄 "
)

// KindPrefixer marks entries by kind.
func KindPrefixer() Prefixer {
	return PrefixFunc(func(e listing.Entry) string {
		if e.IsDir() {
			return dirPrefix
		}
		return filePrefix
	})
}
