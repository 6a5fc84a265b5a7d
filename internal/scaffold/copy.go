package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hestjs/create-hest-app/internal/platform"
	"github.com/spf13/afero"
)

// excludedNames are never copied out of a template, at any depth.
var excludedNames = map[string]bool{
	"node_modules": true,
	"dist":         true,
	".git":         true,
	".turbo":       true,
	".next":        true,
	"coverage":     true,
	".nyc_output":  true,
	".DS_Store":    true,
}

// lintConfigNames are skipped when the project opts out of linting.
var lintConfigNames = map[string]bool{
	"eslint.config.js": true,
	"eslint.config.ts": true,
	".eslintrc.json":   true,
}

// CopyOptions controls which optional files are materialized.
type CopyOptions struct {
	LintEnabled bool
}

// CopyResult lists what was written, as slash-separated paths relative to
// the target directory.
type CopyResult struct {
	Files []string
}

// Materializer copies template roots from Source into Target.
type Materializer struct {
	Source afero.Fs
	Target afero.Fs
}

// NewMaterializer returns a materializer writing to the host filesystem.
func NewMaterializer(source afero.Fs) *Materializer {
	return &Materializer{Source: source, Target: afero.NewOsFs()}
}

// Copy recursively copies root into targetDir. The copy is not
// transactional; on failure targetDir keeps whatever was already written.
func (m *Materializer) Copy(root *TemplateRoot, targetDir string, opts CopyOptions) (*CopyResult, error) {
	result := &CopyResult{}

	if err := m.Target.MkdirAll(targetDir, 0755); err != nil {
		return nil, &TemplateCopyError{Template: root.Name, Err: err}
	}

	err := afero.Walk(m.Source, root.Path, func(path string, info os.FileInfo, walkErr error) error {
		rel, err := filepath.Rel(root.Path, path)
		if err != nil {
			return err
		}
		if walkErr != nil {
			return &TemplateCopyError{Template: root.Name, Path: rel, Err: walkErr}
		}
		if rel == "." {
			return nil
		}

		if ShouldSkip(rel, opts) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		dst := filepath.Join(targetDir, rel)
		mode := info.Mode()

		switch {
		case mode.IsDir():
			if err := m.Target.MkdirAll(dst, 0755); err != nil {
				return &TemplateCopyError{Template: root.Name, Path: rel, Err: err}
			}
		case mode.IsRegular():
			if err := m.copyFile(path, dst, platform.TemplateFileMode(mode)); err != nil {
				return &TemplateCopyError{Template: root.Name, Path: rel, Err: err}
			}
			result.Files = append(result.Files, filepath.ToSlash(rel))
		}
		// Symlinks and other special files are skipped.
		return nil
	})
	if err != nil {
		if _, ok := err.(*TemplateCopyError); ok {
			return nil, err
		}
		return nil, &TemplateCopyError{Template: root.Name, Err: err}
	}

	return result, nil
}

// ShouldSkip reports whether the template entry at rel (relative to the
// template root) is left out of the copy.
func ShouldSkip(rel string, opts CopyOptions) bool {
	rel = filepath.Clean(rel)
	base := filepath.Base(rel)

	if excludedNames[base] {
		return true
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	if excludedNames[first] {
		return true
	}
	if !opts.LintEnabled && lintConfigNames[base] {
		return true
	}
	return false
}

// copyFile copies a single file and applies perm.
func (m *Materializer) copyFile(src, dst string, perm os.FileMode) error {
	in, err := m.Source.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := m.Target.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	return platform.SetMode(m.Target, dst, perm)
}
