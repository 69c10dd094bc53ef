// Package git provides repository detection for locating the data directory
// and naming goals after the repository they belong to.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/runoshun/goalpost/internal/domain"
)

// Client provides read-only information about the enclosing git repository.
type Client struct {
	repo     *gogit.Repository
	repoRoot string // Worktree root (parent of .git)
	gitDir   string // Common .git directory
}

// NewClient creates a new git client by detecting the repository root from
// the given directory. It handles both regular repositories and worktrees.
func NewClient(dir string) (*Client, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to anchor a data directory to.
		return nil, domain.ErrNotGitRepository
	}
	root := wt.Filesystem.Root()

	gitDir, err := commonGitDir(root)
	if err != nil {
		return nil, err
	}

	return &Client{
		repo:     repo,
		repoRoot: root,
		gitDir:   gitDir,
	}, nil
}

// RepoRoot returns the repository root directory.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// GitDir returns the common .git directory path.
func (c *Client) GitDir() string {
	return c.gitDir
}

// DataDir returns the goalpost data directory inside the common .git
// directory, so every worktree of a repository shares one store.
func (c *Client) DataDir() string {
	return filepath.Join(c.gitDir, "goalpost")
}

// RepoName derives a human-readable repository name, preferring the origin
// remote URL ("owner/repo") and falling back to the root directory name.
func (c *Client) RepoName() string {
	remote, err := c.repo.Remote("origin")
	if err == nil {
		urls := remote.Config().URLs
		if len(urls) > 0 {
			if name := parseRepoName(urls[0]); name != "" {
				return name
			}
		}
	}
	return filepath.Base(c.repoRoot)
}

// parseRepoName extracts "owner/repo" from a remote URL. Both SSH
// (git@host:owner/repo.git) and HTTPS (https://host/owner/repo.git) forms
// are understood. Returns "" if the URL has no usable path.
func parseRepoName(url string) string {
	path := url
	if i := strings.Index(path, "://"); i >= 0 {
		path = path[i+3:]
		if j := strings.IndexByte(path, '/'); j >= 0 {
			path = path[j+1:]
		} else {
			return ""
		}
	} else if i := strings.LastIndexByte(path, ':'); i >= 0 {
		path = path[i+1:]
	}

	path = strings.TrimSuffix(path, ".git")
	path = strings.Trim(path, "/")
	if path == "" {
		return ""
	}

	parts := strings.Split(path, "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return parts[0]
}

// commonGitDir resolves the repository's common .git directory from the
// worktree root. In linked worktrees .git is a file pointing at
// <common>/worktrees/<name>, which collapses back to <common>.
func commonGitDir(root string) (string, error) {
	dotGit := filepath.Join(root, gogit.GitDirName)

	fi, err := os.Stat(dotGit)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", dotGit, err)
	}
	if fi.IsDir() {
		return dotGit, nil
	}

	// .git is a file: "gitdir: <path>"
	content, err := os.ReadFile(dotGit)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dotGit, err)
	}
	target := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(content)), "gitdir:"))
	if target == "" {
		return "", fmt.Errorf("malformed .git file at %s", dotGit)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	target = filepath.Clean(target)

	// Linked worktrees point at <common>/worktrees/<name>
	if parent := filepath.Dir(target); filepath.Base(parent) == "worktrees" {
		return filepath.Dir(parent), nil
	}
	return target, nil
}
