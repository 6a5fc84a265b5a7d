package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "create-hest-app" {
		t.Errorf("CLIName() = %q, want %q", got, "create-hest-app")
	}
	if got := AppDescription(); got != "A HestJS application" {
		t.Errorf("AppDescription() = %q", got)
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("templates_dir"); got != "HEST_TEMPLATES_DIR" {
		t.Errorf("EnvVar() = %q, want %q", got, "HEST_TEMPLATES_DIR")
	}
}
