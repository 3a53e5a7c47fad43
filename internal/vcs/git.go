package vcs

import (
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dshills/statline/internal/host"
)

// branchTTL bounds how stale a memoized branch label may get. Render calls
// only ever read the memo; git runs at most once per directory per window.
const branchTTL = 5 * time.Second

// GitBranch is a host.BranchProvider backed by the git CLI. Labels are
// memoized per directory so the render path never waits on a subprocess
// that already ran recently.
type GitBranch struct {
	ed    host.Editor
	store *gocache.Cache

	// run executes git in a directory; replaced in tests.
	run func(dir string, args ...string) (string, error)
}

// NewGitBranch creates a provider resolving branch labels for the
// directory containing each entity.
func NewGitBranch(ed host.Editor) *GitBranch {
	return &GitBranch{
		ed:    ed,
		store: gocache.New(branchTTL, time.Minute),
		run:   runGit,
	}
}

// Branch returns the branch label for the entity's directory. A directory
// outside any repository yields an empty label, not an error.
func (g *GitBranch) Branch(id host.EntityID) (string, error) {
	dir := g.entityDir(id)
	if dir == "" {
		return "", nil
	}

	if v, ok := g.store.Get(dir); ok {
		return v.(string), nil
	}

	label := g.lookup(dir)
	g.store.Set(dir, label, gocache.DefaultExpiration)
	return label, nil
}

// lookup asks git for the current ref name. Detached HEAD reports as
// "HEAD", which renders as unavailable.
func (g *GitBranch) lookup(dir string) string {
	out, err := g.run(dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return ""
	}
	label := strings.TrimSpace(out)
	if label == "HEAD" {
		return ""
	}
	return label
}

// entityDir picks the directory whose repository owns the entity: the
// file's directory when the entity has a path, the working directory
// otherwise.
func (g *GitBranch) entityDir(id host.EntityID) string {
	name := host.Query("entity name", "", func() (string, error) {
		return g.ed.EntityName(id)
	})
	if name != "" {
		return filepath.Dir(name)
	}
	return host.Query("working dir", "", func() (string, error) {
		return g.ed.WorkingDir()
	})
}

func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
