// Package repo locates the git repository containing a path and reads its
// active branch.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotRepository is returned when no repository marker is found.
var ErrNotRepository = errors.New("not inside a git repository")

// DetachedHead is the branch name reported for a detached HEAD.
const DetachedHead = "HEAD"

// Info describes the repository containing a path.
type Info struct {
	// Root is the absolute path of the working tree.
	Root string
	// Branch is the checked out branch, or DetachedHead.
	Branch string
}

// Find searches path and its parents for a repository, including linked
// worktrees, and returns its root and branch. A branch that has no commit
// yet is still reported by name.
func Find(path string) (Info, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if fi, err := os.Stat(abs); err == nil && !fi.IsDir() {
		abs = filepath.Dir(abs)
	}

	r, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return Info{}, ErrNotRepository
	}
	if err != nil {
		return Info{}, fmt.Errorf("failed to open repository at %s: %w", abs, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return Info{}, fmt.Errorf("failed to open working tree: %w", err)
	}

	// HEAD is read without resolving so that an unborn branch has a name.
	head, err := r.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read HEAD: %w", err)
	}
	return Info{Root: wt.Filesystem.Root(), Branch: branchName(head)}, nil
}

// branchName returns the short name of the ref HEAD points to.
func branchName(head *plumbing.Reference) string {
	if head.Type() != plumbing.SymbolicReference {
		return DetachedHead
	}
	return head.Target().Short()
}
