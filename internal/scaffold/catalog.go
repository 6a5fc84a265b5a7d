package scaffold

import (
	"fmt"
	"io/fs"

	"github.com/hestjs/create-hest-app/templates"
	"go.yaml.in/yaml/v3"
)

// Template IDs shipped with the CLI.
const (
	TemplateBase = "base"
	TemplateCQRS = "cqrs"
)

// Choice is one entry of the template menu.
type Choice struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Catalog lists the known templates.
type Catalog struct {
	Templates []Choice `yaml:"templates"`
	// DocumentationNote is shown when the documentation variant is picked.
	DocumentationNote string `yaml:"documentation_note"`
}

// LoadCatalog parses the catalog bundled with the templates.
func LoadCatalog() (*Catalog, error) {
	return loadCatalog(templates.FS, "catalog.yaml")
}

func loadCatalog(fsys fs.FS, name string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading template catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing template catalog: %w", err)
	}
	if len(c.Templates) == 0 {
		return nil, fmt.Errorf("template catalog %s lists no templates", name)
	}
	return &c, nil
}

// IDs returns the template ids in menu order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Templates))
	for i, t := range c.Templates {
		ids[i] = t.ID
	}
	return ids
}

// Has reports whether id is listed in the catalog.
func (c *Catalog) Has(id string) bool {
	for _, t := range c.Templates {
		if t.ID == id {
			return true
		}
	}
	return false
}
