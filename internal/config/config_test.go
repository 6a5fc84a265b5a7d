package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HEST_HOME", dir)

	if got := Dir(); got != dir {
		t.Errorf("Dir() = %q, want %q", got, dir)
	}
	if got := FilePath(); got != filepath.Join(dir, "config.yaml") {
		t.Errorf("FilePath() = %q", got)
	}
}

func TestDirDefault(t *testing.T) {
	t.Setenv("HEST_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := Dir(); got != filepath.Join(home, ".create-hest-app") {
		t.Errorf("Dir() = %q", got)
	}
}

func TestSetAndLoad(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Setenv("HEST_HOME", dir)

	if err := Set(KeyTemplatesDir, "/opt/templates"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	viper.Reset()
	Load()
	if got := TemplatesDir(); got != "/opt/templates" {
		t.Errorf("TemplatesDir() = %q", got)
	}
	if got := RegistryURL(); got != "https://registry.npmjs.org" {
		t.Errorf("RegistryURL() = %q", got)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HEST_HOME", t.TempDir())
	t.Setenv("HEST_NO_UPDATE_CHECK", "1")
	t.Setenv("HEST_REGISTRY_URL", "http://localhost:4873")

	Load()
	if !UpdateCheckDisabled() {
		t.Error("UpdateCheckDisabled() = false with HEST_NO_UPDATE_CHECK=1")
	}
	if got := RegistryURL(); got != "http://localhost:4873" {
		t.Errorf("RegistryURL() = %q", got)
	}
}

func TestIsKnown(t *testing.T) {
	if !IsKnown(KeyRegistryURL) {
		t.Error("registry_url should be known")
	}
	if IsKnown("mirror") {
		t.Error("mirror should not be known")
	}
}

func TestSetValidatesValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HEST_HOME", t.TempDir())

	tests := []struct {
		key, value string
		wantErr    bool
	}{
		{KeyNoUpdateCheck, "true", false},
		{KeyNoUpdateCheck, "sometimes", true},
		{KeyRegistryURL, "https://registry.npmmirror.com", false},
		{KeyRegistryURL, "registry.npmmirror.com", true},
		{KeyRegistryURL, "ftp://mirror", true},
		{KeyTemplatesDir, "./templates", false},
		{"mirror", "x", true},
	}
	for _, tt := range tests {
		err := Set(tt.key, tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q, %q) error = %v, wantErr %v", tt.key, tt.value, err, tt.wantErr)
		}
	}

	viper.Reset()
	Load()
	if !UpdateCheckDisabled() {
		t.Error("no_update_check=true was not persisted")
	}
	if got := RegistryURL(); got != "https://registry.npmmirror.com" {
		t.Errorf("RegistryURL() = %q", got)
	}
}
