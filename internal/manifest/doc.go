// Package manifest personalizes the package.json of a freshly copied
// project. It edits the document in place, keeping key order and formatting
// stable, and checks the result against an embedded JSON schema.
package manifest
