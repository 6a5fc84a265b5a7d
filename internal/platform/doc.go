// Package platform hides the filesystem differences between Unix and Windows
// that matter when materializing templates, chiefly permission bits.
package platform
