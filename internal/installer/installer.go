// Package installer invokes the selected JavaScript package manager inside a
// freshly scaffolded project.
package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hestjs/create-hest-app/internal/process"
)

// PackageManager names one of the supported JavaScript package managers.
type PackageManager string

const (
	NPM  PackageManager = "npm"
	Yarn PackageManager = "yarn"
	PNPM PackageManager = "pnpm"
	Bun  PackageManager = "bun"
)

// UserAgentEnv is set by package managers when they launch a binary.
const UserAgentEnv = "npm_config_user_agent"

// All lists the supported managers in prompt order.
func All() []PackageManager {
	return []PackageManager{Bun, NPM, Yarn, PNPM}
}

// ParsePackageManager maps a name to a PackageManager.
func ParsePackageManager(s string) (PackageManager, error) {
	pm := PackageManager(strings.ToLower(strings.TrimSpace(s)))
	switch pm {
	case NPM, Yarn, PNPM, Bun:
		return pm, nil
	}
	return "", fmt.Errorf("unsupported package manager %q (expected npm, yarn, pnpm or bun)", s)
}

func (pm PackageManager) String() string { return string(pm) }

// RunPrefix returns how a package.json script is invoked, "npm run " for npm
// and "<pm> " for the others.
func (pm PackageManager) RunPrefix() string {
	if pm == NPM {
		return "npm run "
	}
	return string(pm) + " "
}

// Options tunes the install command.
type Options struct {
	IsOnline bool
	// Dependencies switches from a full install to adding these packages.
	Dependencies []string
}

// Command returns the executable and arguments for an install.
func Command(pm PackageManager, opts Options) (string, []string) {
	if len(opts.Dependencies) > 0 {
		verb := "add"
		if pm == NPM {
			verb = "install"
		}
		return string(pm), append([]string{verb}, opts.Dependencies...)
	}

	switch pm {
	case Yarn:
		if !opts.IsOnline {
			return "yarn", []string{"--offline"}
		}
		return "yarn", nil
	default:
		return string(pm), []string{"install"}
	}
}

// InstallError reports a failed package manager invocation.
type InstallError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *InstallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s exited with code %d", e.Command, e.ExitCode)
}

func (e *InstallError) Unwrap() error { return e.Err }

// Installer runs package manager installs.
type Installer struct {
	Runner process.Runner
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Installer wired to the real process and terminal.
func New() *Installer {
	return &Installer{
		Runner: process.NewExecRunner(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Install runs the package manager in dir and waits for it to exit. There is
// no timeout; ctx is only the host's interrupt.
func (i *Installer) Install(ctx context.Context, dir string, pm PackageManager, opts Options) error {
	name, args := Command(pm, opts)
	cmd := process.Command{
		Name: name,
		Args: args,
		Dir:  dir,
		Env: map[string]string{
			"ADBLOCK":                "1",
			"DISABLE_OPENCOLLECTIVE": "1",
		},
		Stdin:  i.Stdin,
		Stdout: i.Stdout,
		Stderr: i.Stderr,
	}

	code, err := i.Runner.Run(ctx, cmd)
	if err != nil {
		return &InstallError{Command: cmd.String(), ExitCode: -1, Err: err}
	}
	if code != 0 {
		return &InstallError{Command: cmd.String(), ExitCode: code}
	}
	return nil
}

// DetectFromUserAgent picks the manager that launched this process, npm
// when unknown.
func DetectFromUserAgent() PackageManager {
	return FromUserAgent(os.Getenv(UserAgentEnv))
}

// FromUserAgent parses an npm_config_user_agent value such as
// "pnpm/9.1.0 npm/? node/v20.11.0 linux x64".
func FromUserAgent(ua string) PackageManager {
	switch {
	case strings.HasPrefix(ua, "yarn"):
		return Yarn
	case strings.HasPrefix(ua, "pnpm"):
		return PNPM
	case strings.HasPrefix(ua, "bun"):
		return Bun
	default:
		return NPM
	}
}

// GlobalInstallCommand returns the command that installs pkg globally.
func GlobalInstallCommand(pm PackageManager, pkg string) string {
	switch pm {
	case Yarn:
		return "yarn global add " + pkg
	case PNPM:
		return "pnpm add -g " + pkg
	case Bun:
		return "bun add -g " + pkg
	default:
		return "npm i -g " + pkg
	}
}
