package osfile

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stefanwatt/mini.files/pkg/files"
)

var osStat = os.Stat
var osReadDir = os.ReadDir
var osMkdirAll = os.MkdirAll
var osCreate = os.Create
var osRename = os.Rename
var osRemoveAll = os.RemoveAll
var osOpen = os.Open
var osHostname = os.Hostname

var _ files.Store = (*Store)(nil)

// Store is the local file system backend.
type Store struct {
	title string
	root  string
	trash string
}

type Option func(s *Store)

// WithTrashDir overrides the staging area used for soft deletes.
func WithTrashDir(dir string) Option {
	return func(s *Store) {
		s.trash = dir
	}
}

func NewStore(root string, options ...Option) *Store {
	if root == "" {
		root = "/"
	}
	store := Store{
		root:  root,
		trash: filepath.Join(os.TempDir(), "minifiles-trash-"+strconv.Itoa(os.Getpid())),
	}
	var err error
	if store.title, err = osHostname(); err != nil {
		store.title = err.Error()
	}
	for _, option := range options {
		option(&store)
	}
	return &store
}

func (s *Store) RootTitle() string {
	return s.title
}

func (s *Store) RootURL() url.URL {
	return url.URL{Scheme: "file", Path: s.root}
}

// TrashDir reports where soft-deleted entries are staged.
func (s *Store) TrashDir() string {
	return s.trash
}

func (s *Store) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := osStat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", files.ErrNotFound, path)
	}
	return info, err
}

func (s *Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := osReadDir(name)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", files.ErrNotFound, name)
	}
	return entries, err
}

func (s *Store) CreateDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path = strings.TrimSuffix(path, "/")
	if _, err := osStat(path); err == nil {
		return fmt.Errorf("%w: %s", files.ErrPathExists, path)
	}
	return osMkdirAll(path, 0o755)
}

func (s *Store) CreateFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := osStat(path); err == nil {
		return fmt.Errorf("%w: %s", files.ErrPathExists, path)
	}
	if parent := filepath.Dir(path); parent != "" {
		if err := osMkdirAll(parent, 0o755); err != nil {
			return err
		}
	}
	f, err := osCreate(path)
	if err != nil {
		return err
	}
	return f.Close()
}

func (s *Store) Copy(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := osStat(to); err == nil {
		return fmt.Errorf("%w: %s", files.ErrPathExists, to)
	}
	info, err := osStat(from)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", files.ErrNotFound, from)
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return s.copyDir(ctx, from, to)
	}
	return copyFile(from, to, info.Mode())
}

func (s *Store) copyDir(ctx context.Context, from, to string) error {
	if err := osMkdirAll(to, 0o755); err != nil {
		return err
	}
	children, err := osReadDir(from)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return err
		}
		src := filepath.Join(from, child.Name())
		dst := filepath.Join(to, child.Name())
		if child.IsDir() {
			err = s.copyDir(ctx, src, dst)
		} else {
			var info os.FileInfo
			if info, err = child.Info(); err == nil {
				err = copyFile(src, dst, info.Mode())
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func copyFile(from, to string, mode os.FileMode) (err error) {
	src, err := osOpen(from)
	if err != nil {
		return err
	}
	defer func() {
		_ = src.Close()
	}()
	dst, err := osCreate(to)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := dst.Close(); err == nil {
			err = closeErr
		}
	}()
	if _, err = io.Copy(dst, src); err != nil {
		return err
	}
	return dst.Chmod(mode)
}

func (s *Store) Move(ctx context.Context, from, to string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := osStat(to); err == nil {
		return fmt.Errorf("%w: %s", files.ErrPathExists, to)
	}
	if _, err := osStat(from); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", files.ErrNotFound, from)
	}
	return osRename(from, to)
}

func (s *Store) Delete(ctx context.Context, path string, permanent bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path = strings.TrimSuffix(path, "/")
	if _, err := osStat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", files.ErrNotFound, path)
	}
	if permanent {
		return osRemoveAll(path)
	}
	if err := osMkdirAll(s.trash, 0o700); err != nil {
		return err
	}
	target := filepath.Join(s.trash, filepath.Base(path))
	for i := 1; ; i++ {
		if _, err := osStat(target); os.IsNotExist(err) {
			break
		}
		target = filepath.Join(s.trash, filepath.Base(path)+"_"+strconv.Itoa(i))
	}
	return osRename(path, target)
}
