// Package gitinfo reads last-updated timestamps of content files from git history.
package gitinfo

import (
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

var (
	// ErrNotTracked indicates the file has no commit in the history of HEAD.
	ErrNotTracked = stderrors.New("file not tracked by git")

	// ErrOutsideRepository indicates the path is not inside the repository work tree.
	ErrOutsideRepository = stderrors.New("path outside repository")
)

// Repo answers last-updated queries for one repository. Results are cached
// until Reset is called.
type Repo struct {
	repo *git.Repository
	root string

	mu    sync.Mutex
	cache map[string]time.Time
}

// Open finds the repository containing dir, searching parent directories.
func Open(dir string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "open repository").
			WithContext("path", dir).
			Build()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryGit, "open worktree").
			WithContext("path", dir).
			Build()
	}
	root, err := canonical(wt.Filesystem.Root())
	if err != nil {
		return nil, fmt.Errorf("resolve repository root: %w", err)
	}
	return &Repo{repo: repo, root: root, cache: map[string]time.Time{}}, nil
}

// Root returns the absolute work tree root.
func (r *Repo) Root() string { return r.root }

// Reset drops cached timestamps so that new commits are picked up.
func (r *Repo) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.cache)
}

// LastUpdated returns the committer time of the newest commit touching path.
// path may be absolute or relative to the working directory.
func (r *Repo) LastUpdated(path string) (time.Time, error) {
	rel, err := r.relative(path)
	if err != nil {
		return time.Time{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ts, ok := r.cache[rel]; ok {
		return ts, nil
	}

	ts, err := r.lookup(rel)
	if err != nil {
		return time.Time{}, err
	}
	r.cache[rel] = ts
	return ts, nil
}

func (r *Repo) lookup(rel string) (time.Time, error) {
	iter, err := r.repo.Log(&git.LogOptions{FileName: &rel, Order: git.LogOrderCommitterTime})
	if err != nil {
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrNotTracked, rel)
		}
		return time.Time{}, errors.GitError("read history").WithCause(err).
			WithContext("file", rel).
			Build()
	}
	defer iter.Close()

	commit, err := iter.Next()
	if stderrors.Is(err, io.EOF) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNotTracked, rel)
	}
	if err != nil {
		return time.Time{}, errors.GitError("read history").WithCause(err).
			WithContext("file", rel).
			Build()
	}
	return commit.Committer.When, nil
}

func (r *Repo) relative(path string) (string, error) {
	abs, err := canonical(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	rel, err := filepath.Rel(r.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRepository, path)
	}
	return filepath.ToSlash(rel), nil
}

// canonical makes path absolute and resolves symlinks of its existing prefix.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	dir, file := filepath.Split(abs)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return filepath.Join(resolved, file), nil
	}
	return abs, nil
}

// LastUpdated opens the repository containing repoDir and looks up relPath,
// which is relative to repoDir.
func LastUpdated(repoDir, relPath string) (time.Time, error) {
	r, err := Open(repoDir)
	if err != nil {
		return time.Time{}, err
	}
	return r.LastUpdated(filepath.Join(repoDir, relPath))
}
