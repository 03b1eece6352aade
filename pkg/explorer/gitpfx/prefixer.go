// Package gitpfx decorates entry lines with git worktree status.
package gitpfx

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/stefanwatt/mini.files/pkg/explorer"
	"github.com/stefanwatt/mini.files/pkg/listing"
)

var osStat = os.Stat
var plainOpen = git.PlainOpen

// Prefixer wraps a base prefix provider and appends a one-character
// status marker for entries inside a git worktree. Status is read once
// per repository and cached for the prefixer's lifetime.
type Prefixer struct {
	base     explorer.Prefixer
	statuses map[string]git.Status
}

func New(base explorer.Prefixer) *Prefixer {
	if base == nil {
		base = explorer.KindPrefixer()
	}
	return &Prefixer{
		base:     base,
		statuses: make(map[string]git.Status),
	}
}

func (p *Prefixer) Prefix(e listing.Entry) string {
	prefix := p.base.Prefix(e)
	if marker := p.statusMarker(e); marker != 0 {
		return strings.TrimRight(prefix, " ") + string(marker) + " "
	}
	return prefix
}

func (p *Prefixer) statusMarker(e listing.Entry) byte {
	root := repositoryRoot(filepath.Dir(e.Path))
	if root == "" {
		return 0
	}
	status, ok := p.statuses[root]
	if !ok {
		status = readStatus(root)
		p.statuses[root] = status
	}
	if status == nil {
		return 0
	}
	rel, err := filepath.Rel(root, e.Path)
	if err != nil {
		return 0
	}
	fileStatus, ok := status[filepath.ToSlash(rel)]
	if !ok {
		return 0
	}
	if fileStatus.Staging != git.Unmodified && fileStatus.Staging != git.Untracked {
		return byte(fileStatus.Staging)
	}
	return byte(fileStatus.Worktree)
}

func readStatus(root string) git.Status {
	repo, err := plainOpen(root)
	if err != nil {
		return nil
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil
	}
	status, err := worktree.Status()
	if err != nil {
		return nil
	}
	return status
}

// repositoryRoot walks parent directories looking for a .git dir.
func repositoryRoot(dirPath string) string {
	dirPath, err := filepath.Abs(dirPath)
	if err != nil {
		return ""
	}
	for {
		if stat, err := osStat(filepath.Join(dirPath, ".git")); err == nil && stat.IsDir() {
			return dirPath
		}
		parent := filepath.Dir(dirPath)
		if parent == dirPath {
			return ""
		}
		dirPath = parent
	}
}
