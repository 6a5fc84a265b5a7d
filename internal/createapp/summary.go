package createapp

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hestjs/create-hest-app/internal/installer"
	"github.com/hestjs/create-hest-app/internal/style"
)

// NextStep is one suggested command shown after a successful run.
type NextStep struct {
	Command     string
	Description string
}

// Summary describes a created project.
type Summary struct {
	AppName string
	// AppPath is the target as given by the operator.
	AppPath string
	// CdPath is what the operator should cd into.
	CdPath         string
	PackageManager installer.PackageManager
	Commands       []NextStep
	// InstallHint is set when dependencies were skipped and the operator
	// must install them before running anything.
	InstallHint    bool
	InstallCommand string
	GitInitialized bool
}

func newSummary(req Request, originalDir string, gitInitialized bool) *Summary {
	appName := req.AppName()
	run := req.PackageManager.RunPrefix()

	cdPath := req.TargetPath
	if filepath.Join(originalDir, appName) == req.TargetPath {
		cdPath = appName
	}

	name, args := installer.Command(req.PackageManager, installer.Options{IsOnline: true})
	install := strings.TrimSpace(name + " " + strings.Join(args, " "))

	return &Summary{
		AppName:        appName,
		AppPath:        req.TargetPath,
		CdPath:         cdPath,
		PackageManager: req.PackageManager,
		Commands: []NextStep{
			{Command: run + "dev", Description: "Starts the development server."},
			{Command: run + "build", Description: "Builds the app for production."},
			{Command: run + "start", Description: "Runs the built app in production mode."},
		},
		InstallHint:    req.SkipInstall,
		InstallCommand: install,
		GitInitialized: gitInitialized,
	}
}

// Render writes the operator-facing success message.
func (s *Summary) Render(w io.Writer) {
	fmt.Fprintf(w, "\n%s Created %s at %s\n", style.Green("Success!"), s.AppName, s.AppPath)
	fmt.Fprintln(w, "Inside that directory, you can run several commands:")
	fmt.Fprintln(w)
	for _, step := range s.Commands {
		fmt.Fprintf(w, "  %s\n", style.Cyan(step.Command))
		fmt.Fprintf(w, "    %s\n\n", step.Description)
	}
	fmt.Fprintln(w, "We suggest that you begin by typing:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s\n", style.Cyan("cd"), s.CdPath)
	if s.InstallHint {
		fmt.Fprintf(w, "  %s\n", style.Cyan(s.InstallCommand))
	}
	if len(s.Commands) > 0 {
		fmt.Fprintf(w, "  %s\n", style.Cyan(s.Commands[0].Command))
	}
	fmt.Fprintln(w)
}
