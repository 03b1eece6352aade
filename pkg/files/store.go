package files

import (
	"context"
	"net/url"
	"os"
)

// Store is the file-system service the explorer core talks to.
// Every mutating primitive must refuse to overwrite an existing
// destination and report that refusal as ErrPathExists, distinct
// from hard I/O errors.
type Store interface {
	RootTitle() string
	RootURL() url.URL
	Stat(ctx context.Context, path string) (os.FileInfo, error)
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)
	CreateDir(ctx context.Context, path string) error
	CreateFile(ctx context.Context, path string) error
	Copy(ctx context.Context, from, to string) error
	Move(ctx context.Context, from, to string) error
	Delete(ctx context.Context, path string, permanent bool) error
}
