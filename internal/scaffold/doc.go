// Package scaffold resolves bundled project templates and materializes them
// into a target directory. It powers the template steps of project creation:
// picking the template root for an id (and optional documentation variant),
// then copying it while leaving out build, cache, and VCS artifacts.
package scaffold
