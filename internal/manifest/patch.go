package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/hestjs/create-hest-app/internal/branding"
	"github.com/spf13/afero"
)

const (
	// FileName is the manifest every template ships.
	FileName = "package.json"

	// InitialVersion is the version a new project starts at.
	InitialVersion = "0.1.0"

	// LintMarker identifies lint-tooling dependencies by substring.
	LintMarker = "eslint"
)

// originKeys point back at the template's own repository.
var originKeys = []string{"repository", "homepage", "bugs"}

// dependencyKeys are the maps scanned for lint tooling.
var dependencyKeys = []string{"dependencies", "devDependencies", "peerDependencies", "optionalDependencies"}

// PatchOptions controls the optional edits.
type PatchOptions struct {
	LintEnabled bool
}

// PatchResult describes the edits made to the manifest.
type PatchResult struct {
	Path     string
	Removed  []string // dependency keys dropped because lint is disabled
	Warnings []string // schema findings on the written manifest
}

// Patcher edits manifests on FS.
type Patcher struct {
	FS afero.Fs
}

// NewPatcher returns a patcher over fsys.
func NewPatcher(fsys afero.Fs) *Patcher {
	return &Patcher{FS: fsys}
}

// Patch rewrites the identity of the manifest in targetDir on the host
// filesystem.
func Patch(targetDir, appName string, opts PatchOptions) (*PatchResult, error) {
	return NewPatcher(afero.NewOsFs()).Patch(targetDir, appName, opts)
}

// Patch rewrites the identity of the manifest in targetDir for appName.
// The file keeps its permission bits.
func (p *Patcher) Patch(targetDir, appName string, opts PatchOptions) (*PatchResult, error) {
	path := filepath.Join(targetDir, FileName)

	info, err := p.FS.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}
	data, err := afero.ReadFile(p.FS, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	result := &PatchResult{Path: path}
	Apply(doc, appName, opts, result)

	out, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", FileName, err)
	}
	if err := afero.WriteFile(p.FS, path, out, info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", FileName, err)
	}

	result.Warnings = append(result.Warnings, check(doc, out)...)
	return result, nil
}

// Apply performs the identity edits on doc. Removed dependency keys are
// recorded on result.
func Apply(doc *Document, appName string, opts PatchOptions, result *PatchResult) {
	doc.SetString("name", appName)
	doc.SetString("version", InitialVersion)
	doc.SetString("description", branding.AppDescription())

	for _, key := range originKeys {
		doc.Delete(key)
	}

	if opts.LintEnabled {
		return
	}
	for _, key := range dependencyKeys {
		deps := doc.Object(key)
		if deps == nil {
			continue
		}
		result.Removed = append(result.Removed, deps.DeleteMatching(LintMarker)...)
	}
}

// check validates the written manifest and returns findings as warnings.
func check(doc *Document, data []byte) []string {
	var warnings []string

	if v, ok := doc.String("version"); ok {
		if _, err := semver.StrictNewVersion(v); err != nil {
			warnings = append(warnings, fmt.Sprintf("version %q is not semver: %v", v, err))
		}
	}

	res, err := Validate(data)
	if err != nil {
		return append(warnings, fmt.Sprintf("could not validate %s: %v", FileName, err))
	}
	for _, issue := range res.Issues {
		warnings = append(warnings, issue.String())
	}
	return warnings
}
