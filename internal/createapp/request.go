package createapp

import (
	"path/filepath"

	"github.com/hestjs/create-hest-app/internal/installer"
)

// Request is the fully resolved input of one run. It is a value; use the
// With methods to derive a modified copy.
type Request struct {
	// TargetPath is the project directory as the operator typed it.
	TargetPath           string
	PackageManager       installer.PackageManager
	LintEnabled          bool
	SkipInstall          bool
	TemplateID           string
	DocumentationVariant bool
	// Offline asks package managers that support it to avoid the network.
	Offline bool
}

// WithTemplate returns a copy of r using template id.
func (r Request) WithTemplate(id string) Request {
	r.TemplateID = id
	return r
}

// AppName is the final path element of the target.
func (r Request) AppName() string {
	return filepath.Base(filepath.Clean(r.TargetPath))
}
