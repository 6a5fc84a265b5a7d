// Package templates bundles the project skeletons shipped with the CLI.
//
// Each top-level directory is one template root. Directories suffixed with
// _scalar are the API-documentation variants of the template of the same
// base name.
package templates

import "embed"

// FS holds every bundled template root.
//
//go:embed all:base all:base_scalar all:cqrs all:cqrs_scalar catalog.yaml
var FS embed.FS
