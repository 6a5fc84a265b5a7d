//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hestjs/create-hest-app/internal/createapp"
	"github.com/hestjs/create-hest-app/internal/installer"
	"github.com/hestjs/create-hest-app/internal/scaffold"
	"github.com/hestjs/create-hest-app/internal/vcs"
)

// newPipeline wires the production collaborators over the bundled templates.
func newPipeline(out *bytes.Buffer) *createapp.Orchestrator {
	src, root := scaffold.DefaultSource("")
	inst := installer.New()
	inst.Stdout = out
	inst.Stderr = out
	inst.Stdin = nil
	return createapp.New(
		scaffold.NewResolver(src, root),
		scaffold.NewMaterializer(src),
		inst,
		vcs.New(nil),
		createapp.WithOutput(out),
	)
}

// TestFullFlowInstallAndGit runs the whole pipeline: copy the bundled
// template, patch package.json, run the package manager, commit with git.
func TestFullFlowInstallAndGit(t *testing.T) {
	env := setupTestEnv(t)
	requireGit(t)
	fakePackageManager(t, env, "pnpm", 0)

	var out bytes.Buffer
	req := createapp.Request{
		TargetPath:     "demo",
		PackageManager: installer.PNPM,
		LintEnabled:    true,
		TemplateID:     scaffold.TemplateBase,
	}
	outcome := newPipeline(&out).Create(context.Background(), req)
	if !outcome.OK() {
		t.Fatalf("Create() = %s: %v\n%s", outcome.Kind, outcome.Err, out.String())
	}

	project := filepath.Join(env.WorkDir, "demo")
	assertFileContains(t, filepath.Join(project, "package.json"), `"name": "demo"`)
	assertFileContains(t, filepath.Join(project, "package.json"), `"version": "0.1.0"`)
	assertFileExists(t, filepath.Join(project, "eslint.config.js"))

	log := filepath.Join(project, "install.log")
	assertFileContains(t, log, "args=install")
	assertFileContains(t, log, "pwd="+project)
	assertFileContains(t, log, "ADBLOCK=1")
	assertFileContains(t, log, "DISABLE_OPENCOLLECTIVE=1")

	if !outcome.Summary.GitInitialized {
		t.Fatal("expected git repository")
	}
	assertDirExists(t, filepath.Join(project, ".git"))

	msg, err := exec.Command("git", "-C", project, "log", "-1", "--format=%s").Output()
	if err != nil {
		t.Fatalf("git log: %v", err)
	}
	if got := strings.TrimSpace(string(msg)); got != "Initial commit from create-hest-app" {
		t.Errorf("commit message = %q", got)
	}
	branch, err := exec.Command("git", "-C", project, "rev-parse", "--abbrev-ref", "HEAD").Output()
	if err != nil {
		t.Fatalf("git rev-parse: %v", err)
	}
	if got := strings.TrimSpace(string(branch)); got != "main" {
		t.Errorf("branch = %q, want main", got)
	}

	if outcome.Summary.CdPath != "demo" {
		t.Errorf("CdPath = %q, want demo", outcome.Summary.CdPath)
	}
}

// TestFullFlowInstallFailure checks a failing package manager aborts the
// run before git is touched.
func TestFullFlowInstallFailure(t *testing.T) {
	env := setupTestEnv(t)
	fakePackageManager(t, env, "npm", 1)

	var out bytes.Buffer
	req := createapp.Request{
		TargetPath:     "demo",
		PackageManager: installer.NPM,
		TemplateID:     scaffold.TemplateBase,
	}
	outcome := newPipeline(&out).Create(context.Background(), req)

	if outcome.Kind != createapp.KindFatal {
		t.Fatalf("Kind = %s, want fatal", outcome.Kind)
	}
	var ie *installer.InstallError
	if !errors.As(outcome.Err, &ie) {
		t.Fatalf("expected *installer.InstallError, got %v", outcome.Err)
	}
	if ie.Command != "npm install" || ie.ExitCode != 1 {
		t.Errorf("InstallError = %+v", ie)
	}
	assertFileNotExists(t, filepath.Join(env.WorkDir, "demo", ".git"))
}

// TestFullFlowYarnOffline checks the offline hint reaches yarn.
func TestFullFlowYarnOffline(t *testing.T) {
	env := setupTestEnv(t)
	fakePackageManager(t, env, "yarn", 0)

	var out bytes.Buffer
	req := createapp.Request{
		TargetPath:     "demo",
		PackageManager: installer.Yarn,
		TemplateID:     scaffold.TemplateCQRS,
		Offline:        true,
	}
	outcome := newPipeline(&out).Create(context.Background(), req)
	if !outcome.OK() {
		t.Fatalf("Create() = %s: %v", outcome.Kind, outcome.Err)
	}
	assertFileContains(t, filepath.Join(env.WorkDir, "demo", "install.log"), "args=--offline")
}

// TestFullFlowWithoutLintAndDocumentation covers the swagger variant with
// ESLint opted out.
func TestFullFlowWithoutLintAndDocumentation(t *testing.T) {
	env := setupTestEnv(t)

	var out bytes.Buffer
	req := createapp.Request{
		TargetPath:           filepath.Join("apps", "api"),
		PackageManager:       installer.Bun,
		SkipInstall:          true,
		TemplateID:           scaffold.TemplateBase,
		DocumentationVariant: true,
	}
	outcome := newPipeline(&out).Create(context.Background(), req)
	if !outcome.OK() {
		t.Fatalf("Create() = %s: %v", outcome.Kind, outcome.Err)
	}

	project := filepath.Join(env.WorkDir, "apps", "api")
	assertFileNotExists(t, filepath.Join(project, "eslint.config.js"))
	assertFileContains(t, filepath.Join(project, "package.json"), `"name": "api"`)
	if !strings.Contains(out.String(), "base_scalar") {
		t.Errorf("expected documentation template in output:\n%s", out.String())
	}
	if outcome.Summary.InstallCommand != "bun install" {
		t.Errorf("InstallCommand = %q", outcome.Summary.InstallCommand)
	}
}
