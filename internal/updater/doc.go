// Package updater tells the operator when a newer create-hest-app is
// published. It reads the package's "latest" document from the npm registry,
// caches the answer for a day, and prints a banner with the install command
// for the operator's package manager.
package updater
