// Package process runs external tools (package managers, git) on behalf of
// the pipeline. The Runner interface lets callers substitute a fake in
// tests; ExecRunner is the os/exec implementation.
package process
