//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // HEST_HOME: config, preferences and version cache
	BinDir  string // prepended to PATH; holds fake package managers
	WorkDir string // working directory the run starts from
}

// setupTestEnv creates isolated temp directories and sets environment
// variables so a run never touches the real home directory, the network,
// or the operator's git configuration.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script package managers need a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available, skipping")
	}

	work, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	env := &testEnv{
		HomeDir: t.TempDir(),
		BinDir:  t.TempDir(),
		WorkDir: work,
	}

	t.Setenv("HEST_HOME", env.HomeDir)
	t.Setenv("HEST_NO_UPDATE_CHECK", "1")
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(env.HomeDir, "gitconfig"))
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(work))
	t.Setenv("GIT_AUTHOR_NAME", "Integration")
	t.Setenv("GIT_AUTHOR_EMAIL", "integration@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Integration")
	t.Setenv("GIT_COMMITTER_EMAIL", "integration@example.com")

	t.Chdir(work)
	return env
}

// fakePackageManager installs an executable named name on PATH. It records
// its arguments, working directory and the install environment into
// install.log in the directory it runs in, then exits with code.
func fakePackageManager(t *testing.T, env *testEnv, name string, code int) {
	t.Helper()
	script := `#!/bin/sh
{
  echo "args=$*"
  echo "pwd=$(pwd)"
  echo "ADBLOCK=$ADBLOCK"
  echo "DISABLE_OPENCOLLECTIVE=$DISABLE_OPENCOLLECTIVE"
} > install.log
mkdir -p node_modules
exit ` + strconv.Itoa(code) + "\n"
	path := filepath.Join(env.BinDir, name)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("writing fake %s: %v", name, err)
	}
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available, skipping")
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
