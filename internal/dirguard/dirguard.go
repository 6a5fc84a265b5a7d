// Package dirguard decides whether a target directory is safe to scaffold
// into. A directory holding only well-known editor, VCS, and licensing files
// counts as empty.
package dirguard

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/hestjs/create-hest-app/internal/style"
	"github.com/spf13/afero"
)

// allowed lists basenames that never conflict with a generated project.
var allowed = map[string]bool{
	".DS_Store":      true,
	".git":           true,
	".gitattributes": true,
	".gitignore":     true,
	".gitlab-ci.yml": true,
	".hg":            true,
	".hgcheck":       true,
	".hgignore":      true,
	".idea":          true,
	".npmignore":     true,
	".travis.yml":    true,
	"LICENSE":        true,
	"Thumbs.db":      true,
	"docs":           true,
	"mkdocs.yml":     true,
	"npm-debug.log":  true,
	"yarn-debug.log": true,
	"yarn-error.log": true,
	"yarnrc.yml":     true,
	".yarn":          true,
}

// Conflict is a directory entry outside the allow-list.
type Conflict struct {
	Name string
	// NonEmptyDir is set for directories that have at least one entry.
	NonEmptyDir bool
}

// String renders the entry as shown to the operator; non-empty
// directories carry a trailing separator.
func (c Conflict) String() string {
	if c.NonEmptyDir {
		return c.Name + "/"
	}
	return c.Name
}

// IsAllowed reports whether name is one of the benign artifacts.
func IsAllowed(name string) bool {
	return allowed[name]
}

// Guard inspects target directories on FS.
type Guard struct {
	FS afero.Fs
}

// New returns a guard over fsys.
func New(fsys afero.Fs) *Guard {
	return &Guard{FS: fsys}
}

var host = New(afero.NewOsFs())

// Conflicts checks dir on the host filesystem.
func Conflicts(dir string) ([]Conflict, error) {
	return host.Conflicts(dir)
}

// IsAcceptable checks dir on the host filesystem.
func IsAcceptable(dir string, w io.Writer) (bool, error) {
	return host.IsAcceptable(dir, w)
}

// Conflicts returns the entries of dir that are not on the allow-list,
// sorted by name.
func (g *Guard) Conflicts(dir string) ([]Conflict, error) {
	entries, err := afero.ReadDir(g.FS, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var conflicts []Conflict
	for _, entry := range entries {
		if IsAllowed(entry.Name()) {
			continue
		}
		c := Conflict{Name: entry.Name()}
		if entry.IsDir() {
			if sub, err := afero.ReadDir(g.FS, filepath.Join(dir, entry.Name())); err == nil && len(sub) > 0 {
				c.NonEmptyDir = true
			}
		}
		conflicts = append(conflicts, c)
	}
	return conflicts, nil
}

// IsAcceptable reports whether dir is effectively empty. When it is not,
// the conflicting entries are written to w.
func (g *Guard) IsAcceptable(dir string, w io.Writer) (bool, error) {
	conflicts, err := g.Conflicts(dir)
	if err != nil {
		return false, err
	}
	if len(conflicts) == 0 {
		return true, nil
	}

	fmt.Fprintf(w, "The directory %s contains files that could conflict:\n\n", style.Red(filepath.Base(dir)))
	for _, c := range conflicts {
		fmt.Fprintf(w, "  %s\n", style.Red(c.String()))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Either try using a new directory name, or remove the files listed above.")
	fmt.Fprintln(w)
	return false, nil
}
