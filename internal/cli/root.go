package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hestjs/create-hest-app/internal/branding"
	"github.com/hestjs/create-hest-app/internal/style"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// errReported signals a failure whose message was already printed.
var errReported = errors.New("failure already reported")

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [project-directory]",
	Short: branding.Description(),
	Long: `Create a new ` + branding.DisplayName() + ` application from a template.

Without option flags the CLI asks for every choice, starting from the answers
given last time. Any of --eslint, --no-eslint, --template, --swagger or a
--use-<manager> flag switches to non-interactive mode.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCreate,
}

// Execute runs the root command with build info injected via ldflags.
// SIGINT and SIGTERM end the process at once with exit status 0.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(branding.CLIName() + " {{.Version}}\n")

	stop := exitOnInterrupt()
	defer stop()

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, style.Red("Error: "+err.Error()))
	}
	return err
}

// exit is replaced in tests.
var exit = os.Exit

// exitOnInterrupt exits with status 0 on the first SIGINT or SIGTERM, even
// while a prompt is blocked reading stdin or a step is running. Nothing is
// cleaned up. The returned func stops listening.
func exitOnInterrupt() (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case <-sigs:
			exit(0)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
