package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hestjs/create-hest-app/templates"
	"github.com/spf13/afero"
)

// DocumentationSuffix selects the API-documentation variant of a template.
const DocumentationSuffix = "_scalar"

// TemplateRoot is a resolved, existing template directory.
type TemplateRoot struct {
	ID                   string
	Name                 string // directory name, e.g. "base_scalar"
	Path                 string // path on the resolver's filesystem
	DocumentationVariant bool
}

// Resolver maps template ids onto directories of a template filesystem.
type Resolver struct {
	FS   afero.Fs
	Root string
}

// NewResolver returns a resolver over root on fsys.
func NewResolver(fsys afero.Fs, root string) *Resolver {
	return &Resolver{FS: fsys, Root: root}
}

// DefaultSource locates the template assets. An explicit dir wins; otherwise
// the installation layout (<executable dir>/../templates) is used when
// present, falling back to the templates compiled into the binary.
func DefaultSource(dir string) (afero.Fs, string) {
	if dir != "" {
		return afero.NewOsFs(), dir
	}

	if exe, err := os.Executable(); err == nil {
		installed := filepath.Join(filepath.Dir(exe), "..", "templates")
		if ok, _ := afero.DirExists(afero.NewOsFs(), installed); ok {
			return afero.NewOsFs(), installed
		}
	}

	return afero.FromIOFS{FS: templates.FS}, "."
}

// TemplateName composes the directory name for id. The variant is a plain
// suffix; whether the base template exists is not consulted.
func TemplateName(id string, documentationVariant bool) string {
	if documentationVariant {
		return id + DocumentationSuffix
	}
	return id
}

// Resolve returns the template root for id. Only the composed path decides
// success. When it is missing, the error tells apart an unknown template
// from a known template without a documentation variant.
func (r *Resolver) Resolve(id string, documentationVariant bool) (*TemplateRoot, error) {
	name := TemplateName(id, documentationVariant)
	path := filepath.Join(r.Root, name)

	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return nil, &TemplateNotFoundError{ID: id, Name: name, Path: path}
	}

	ok, err := afero.DirExists(r.FS, path)
	if err != nil {
		return nil, fmt.Errorf("checking template %q: %w", name, err)
	}
	if ok {
		return &TemplateRoot{
			ID:                   id,
			Name:                 name,
			Path:                 path,
			DocumentationVariant: documentationVariant,
		}, nil
	}

	if documentationVariant {
		if baseOK, _ := afero.DirExists(r.FS, filepath.Join(r.Root, id)); baseOK {
			return nil, &VariantNotOfferedError{ID: id, Variant: name, Path: path}
		}
	}
	return nil, &TemplateNotFoundError{ID: id, Name: name, Path: path}
}
