package scaffold

import "fmt"

// TemplateNotFoundError is returned when the composed template root does not
// exist and no base template of that id exists either.
type TemplateNotFoundError struct {
	ID   string // requested id
	Name string // composed directory name, including any variant suffix
	Path string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found at %s", e.Name, e.Path)
}

// VariantNotOfferedError is returned when the base template exists but ships
// no documentation variant.
type VariantNotOfferedError struct {
	ID      string
	Variant string
	Path    string
}

func (e *VariantNotOfferedError) Error() string {
	return fmt.Sprintf("template %q has no documentation variant (%s not found at %s)", e.ID, e.Variant, e.Path)
}

// TemplateCopyError wraps an I/O failure while materializing a template.
// The target directory may be partially populated.
type TemplateCopyError struct {
	Template string
	Path     string // relative path being copied when the failure happened
	Err      error
}

func (e *TemplateCopyError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("copying template %q: %v", e.Template, e.Err)
	}
	return fmt.Sprintf("copying template %q (%s): %v", e.Template, e.Path, e.Err)
}

func (e *TemplateCopyError) Unwrap() error { return e.Err }
