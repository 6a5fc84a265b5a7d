// Package branding provides compile-time identity values for the CLI.
//
// Values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Forks rename the tool by editing that file only.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName            string `yaml:"cli_name"`
	DisplayName        string `yaml:"display_name"`
	Description        string `yaml:"description"`
	HomeDir            string `yaml:"home_dir"`
	EnvPrefix          string `yaml:"env_prefix"`
	RegistryURL        string `yaml:"registry_url"`
	DefaultProjectName string `yaml:"default_project_name"`
	CommitMessage      string `yaml:"commit_message"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:            "create-hest-app",
			DisplayName:        "HestJS",
			Description:        "Create HestJS apps with one command",
			HomeDir:            ".create-hest-app",
			EnvPrefix:          "HEST",
			RegistryURL:        "https://registry.npmjs.org",
			DefaultProjectName: "my-hest-app",
			CommitMessage:      "Initial commit from create-hest-app",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-hest-app").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the framework name shown in messages (e.g., "HestJS").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME.
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "HEST").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// RegistryURL returns the package registry queried by the update check.
func RegistryURL() string { load(); return defaults.RegistryURL }

// DefaultProjectName is offered when the operator gives no directory.
func DefaultProjectName() string { load(); return defaults.DefaultProjectName }

// CommitMessage is used for the initial commit of a new project.
func CommitMessage() string { load(); return defaults.CommitMessage }

// AppDescription is written into the generated package.json.
func AppDescription() string { load(); return "A " + defaults.DisplayName + " application" }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("templates_dir") → "HEST_TEMPLATES_DIR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
