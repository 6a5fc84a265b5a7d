// Package vcs turns a freshly scaffolded project into a git repository with
// an initial commit.
package vcs

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hestjs/create-hest-app/internal/branding"
	"github.com/hestjs/create-hest-app/internal/process"
)

// DefaultBranch is the branch created for the initial commit.
const DefaultBranch = "main"

// Initializer runs git. It never fails the surrounding pipeline: every
// problem is reported as "not initialized".
type Initializer struct {
	Runner  process.Runner
	Message string
	Log     *zap.Logger

	// removeAll is swapped in tests.
	removeAll func(string) error
}

// New returns an Initializer using the real git binary.
func New(log *zap.Logger) *Initializer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Initializer{
		Runner:  process.NewExecRunner(),
		Message: branding.CommitMessage(),
		Log:     log,
	}
}

// TryInit initializes dir as a git repository and commits its contents.
// It returns false when git is unavailable, dir is already inside a work
// tree, or any step fails. A failure after "git init" removes dir/.git.
func (i *Initializer) TryInit(ctx context.Context, dir string) bool {
	log := i.Log
	if log == nil {
		log = zap.NewNop()
	}

	if !i.git(ctx, dir, "--version") {
		log.Debug("git not available")
		return false
	}
	if i.git(ctx, dir, "rev-parse", "--is-inside-work-tree") {
		log.Debug("already inside a git work tree", zap.String("dir", dir))
		return false
	}
	if !i.git(ctx, dir, "init") {
		log.Debug("git init failed", zap.String("dir", dir))
		return false
	}

	msg := i.Message
	if msg == "" {
		msg = branding.CommitMessage()
	}
	steps := [][]string{
		{"checkout", "-b", DefaultBranch},
		{"add", "-A"},
		{"commit", "-m", msg},
	}
	for _, args := range steps {
		if !i.git(ctx, dir, args...) {
			log.Debug("git step failed, removing repository",
				zap.Strings("args", args), zap.String("dir", dir))
			i.cleanup(dir)
			return false
		}
	}
	return true
}

func (i *Initializer) git(ctx context.Context, dir string, args ...string) bool {
	code, err := i.Runner.Run(ctx, process.Command{Name: "git", Args: args, Dir: dir})
	return err == nil && code == 0
}

func (i *Initializer) cleanup(dir string) {
	remove := i.removeAll
	if remove == nil {
		remove = os.RemoveAll
	}
	_ = remove(filepath.Join(dir, ".git"))
}
