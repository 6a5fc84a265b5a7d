package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hestjs/create-hest-app/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the CLI. Each can also be set through the environment
// as HEST_<KEY>, e.g. HEST_TEMPLATES_DIR.
const (
	KeyTemplatesDir  = "templates_dir"
	KeyNoUpdateCheck = "no_update_check"
	KeyRegistryURL   = "registry_url"
)

// Keys lists the supported keys for the config command.
var Keys = []string{KeyTemplatesDir, KeyNoUpdateCheck, KeyRegistryURL}

// Dir returns the config directory (~/.create-hest-app/). HEST_HOME
// overrides it.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
	viper.SetDefault(KeyRegistryURL, branding.RegistryURL())

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// IsKnown reports whether key is one of Keys.
func IsKnown(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// TemplatesDir is the template directory override, empty when unset.
func TemplatesDir() string {
	return viper.GetString(KeyTemplatesDir)
}

// UpdateCheckDisabled reports whether the registry update check is off.
func UpdateCheckDisabled() bool {
	return viper.GetBool(KeyNoUpdateCheck)
}

// RegistryURL is the npm registry queried for new releases.
func RegistryURL() string {
	if v := viper.GetString(KeyRegistryURL); v != "" {
		return v
	}
	return branding.RegistryURL()
}

// Set validates value for key, stores it, and rewrites the config file.
func Set(key, value string) error {
	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, parsed)
	if err := viper.WriteConfigAs(FilePath()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// parseValue converts the command-line string to the type stored for key.
func parseValue(key, value string) (any, error) {
	switch key {
	case KeyNoUpdateCheck:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", key, value)
		}
		return b, nil
	case KeyRegistryURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%s expects an http(s) URL, got %q", key, value)
		}
		return value, nil
	case KeyTemplatesDir:
		return value, nil
	}
	return nil, fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys, ", "))
}
