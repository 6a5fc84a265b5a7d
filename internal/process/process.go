package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Command describes one child process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env is overlaid on the parent environment.
	Env map[string]string

	// Nil streams are connected to the null device.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the command line the way an operator would type it.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner starts a command and waits for it to exit.
type Runner interface {
	// Run returns the exit code when the process ran, even if non-zero.
	// The error is reserved for failures to start or wait (binary not
	// found, context canceled, I/O failure).
	Run(ctx context.Context, cmd Command) (int, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner returns the production Runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes cmd and waits for it to exit.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (int, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = cmd.Stdin
	c.Stdout = cmd.Stdout
	c.Stderr = cmd.Stderr
	if len(cmd.Env) > 0 {
		c.Env = BuildEnv(os.Environ(), cmd.Env)
	}

	err := c.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("running %s: %w", cmd.Name, err)
}

// BuildEnv overlays extra onto base. Overlay keys are applied in sorted
// order so the result is deterministic.
func BuildEnv(base []string, extra map[string]string) []string {
	env := append([]string(nil), base...)

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		env = setEnv(env, k, extra[k])
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
