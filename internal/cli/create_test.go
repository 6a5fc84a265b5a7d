package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hestjs/create-hest-app/internal/config"
	"github.com/hestjs/create-hest-app/internal/createapp"
	"github.com/hestjs/create-hest-app/internal/installer"
	"github.com/hestjs/create-hest-app/internal/scaffold"
	"github.com/hestjs/create-hest-app/templates"
)

type recordingInstaller struct {
	err   error
	calls []installer.PackageManager
}

func (r *recordingInstaller) Install(_ context.Context, _ string, pm installer.PackageManager, _ installer.Options) error {
	r.calls = append(r.calls, pm)
	return r.err
}

type noVCS struct{}

func (noVCS) TryInit(context.Context, string) bool { return false }

func boolPtr(b bool) *bool { return &b }

// resetCommand clears flag state left behind by a previous Execute.
func resetCommand(t *testing.T) {
	t.Helper()
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	viper.Reset()
	t.Cleanup(viper.Reset)
}

// runCLI executes the root command inside a fresh working directory with
// the pipeline wired to the bundled templates and a recording installer.
func runCLI(t *testing.T, inst *recordingInstaller, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetCommand(t)

	work, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	t.Chdir(work)
	t.Setenv("HEST_HOME", filepath.Join(work, ".home"))
	t.Setenv("HEST_NO_UPDATE_CHECK", "1")
	t.Setenv(installer.UserAgentEnv, "")

	orig := newOrchestrator
	newOrchestrator = func(out io.Writer, log *zap.Logger, catalog *scaffold.Catalog) *createapp.Orchestrator {
		src := afero.FromIOFS{FS: templates.FS}
		return createapp.New(
			scaffold.NewResolver(src, "."),
			&scaffold.Materializer{Source: src, Target: afero.NewOsFs()},
			inst,
			noVCS{},
			createapp.WithOutput(out),
			createapp.WithDocumentationNote(catalog.DocumentationNote),
		)
	}
	t.Cleanup(func() { newOrchestrator = orig })

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), work, err
}

func TestResolveOptions(t *testing.T) {
	defaults := config.Options{Eslint: true, Template: "base", PackageManager: "npm"}

	t.Run("defaults only", func(t *testing.T) {
		assert.Equal(t, defaults, resolveOptions(cliFlags{}, nil, defaults))
	})

	t.Run("answers override defaults", func(t *testing.T) {
		answers := &config.Options{Eslint: false, Template: "cqrs", UseSwagger: true, PackageManager: "bun"}
		assert.Equal(t, *answers, resolveOptions(cliFlags{}, answers, defaults))
	})

	t.Run("flags override answers", func(t *testing.T) {
		answers := &config.Options{Eslint: true, Template: "cqrs", PackageManager: "bun", SkipInstall: false}
		f := cliFlags{Eslint: boolPtr(false), PackageManager: "pnpm", SkipInstall: boolPtr(true)}
		got := resolveOptions(f, answers, defaults)
		assert.Equal(t, config.Options{Eslint: false, Template: "cqrs", PackageManager: "pnpm", SkipInstall: true}, got)
	})
}

func TestCliFlagsInteractive(t *testing.T) {
	assert.True(t, cliFlags{}.interactive())
	assert.True(t, cliFlags{SkipInstall: boolPtr(true)}.interactive(), "--skip-install alone still prompts")
	assert.False(t, cliFlags{Template: "base"}.interactive())
	assert.False(t, cliFlags{Eslint: boolPtr(false)}.interactive())
	assert.False(t, cliFlags{PackageManager: "bun"}.interactive())
}

func TestRenderAbort(t *testing.T) {
	var buf bytes.Buffer
	renderAbort(&buf, &installer.InstallError{Command: "pnpm install", ExitCode: 1})
	assert.Contains(t, buf.String(), "Aborting installation.")
	assert.Contains(t, buf.String(), "pnpm install")
	assert.Contains(t, buf.String(), "has failed.")

	buf.Reset()
	renderAbort(&buf, errors.New("disk on fire"))
	assert.Contains(t, buf.String(), "Unexpected error. Please report it as a bug:")
	assert.Contains(t, buf.String(), "disk on fire")
}

func TestCreate_NonInteractive(t *testing.T) {
	inst := &recordingInstaller{}
	out, work, err := runCLI(t, inst, "", "demo", "--template", "base", "--no-eslint", "--use-pnpm")
	require.NoError(t, err, out)

	assert.Equal(t, []installer.PackageManager{installer.PNPM}, inst.calls)
	assert.FileExists(t, filepath.Join(work, "demo", "package.json"))
	assert.NoFileExists(t, filepath.Join(work, "demo", "eslint.config.js"))
	assert.Contains(t, out, "Success!")
	assert.Contains(t, out, "pnpm dev")

	// Non-interactive runs leave preferences untouched.
	_, statErr := os.Stat(filepath.Join(work, ".home", "preferences.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreate_InteractiveSavesPreferences(t *testing.T) {
	// eslint: yes, template: cqrs, swagger: no, pm: bun (4), skip install: yes
	stdin := "y\n2\nn\n4\ny\n"
	inst := &recordingInstaller{}
	out, work, err := runCLI(t, inst, stdin, "demo")
	require.NoError(t, err, out)

	assert.Empty(t, inst.calls, "install was skipped")
	assert.Contains(t, out, "bun install")

	prefs, err := config.NewPreferenceStore(filepath.Join(work, ".home")).Load()
	require.NoError(t, err)
	require.NotNil(t, prefs.Template)
	assert.Equal(t, "cqrs", *prefs.Template)
	require.NotNil(t, prefs.PackageManager)
	assert.Equal(t, "bun", *prefs.PackageManager)
}

func TestCreate_InvalidName(t *testing.T) {
	inst := &recordingInstaller{}
	out, _, err := runCLI(t, inst, "", "Bad Name", "--template", "base")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "npm naming restrictions")
	assert.Empty(t, inst.calls)
}

func TestCreate_ConflictingDirectory(t *testing.T) {
	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	target := filepath.Join(base, "busy")
	require.NoError(t, os.MkdirAll(target, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "notes.txt"), []byte("x"), 0644))

	inst := &recordingInstaller{}
	out, _, err := runCLI(t, inst, "", target, "--template", "base")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "notes.txt")
	assert.Empty(t, inst.calls)
	assert.NoFileExists(t, filepath.Join(target, "package.json"))
}

func TestCreate_RetryWithAlternativeTemplate(t *testing.T) {
	out, work, err := runCLI(t, &recordingInstaller{}, "y\nbase\n", "demo", "--template", "missing", "--skip-install")
	require.NoError(t, err, out)

	assert.Contains(t, out, `Could not download "missing"`)
	assert.FileExists(t, filepath.Join(work, "demo", "package.json"))
}

func TestCreate_RetryDeclined(t *testing.T) {
	out, _, err := runCLI(t, &recordingInstaller{}, "n\n", "demo", "--template", "missing", "--skip-install")
	assert.NoError(t, err, "declining the retry exits cleanly")
	assert.NotContains(t, out, "Success!")
}

func TestCreate_InstallFailure(t *testing.T) {
	inst := &recordingInstaller{err: &installer.InstallError{Command: "npm install", ExitCode: 1}}
	out, _, err := runCLI(t, inst, "", "demo", "--template", "base", "--use-npm")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Aborting installation.")
	assert.Contains(t, out, "npm install")
}

func TestCreate_ResetPreferences(t *testing.T) {
	resetCommand(t)
	home := filepath.Join(t.TempDir(), ".home")
	t.Setenv("HEST_HOME", home)
	store := config.NewPreferenceStore(home)
	require.NoError(t, store.Save(config.Options{Template: "cqrs"}))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--reset-preferences"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Preferences reset successfully")
	assert.NoFileExists(t, store.Path())
}
