package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	preferencesName = "preferences"
	// namespace is the single top-level key all answers live under.
	namespace = "preferences"
)

// Preferences are the answers remembered from the last interactive run.
// Nil fields were never answered.
type Preferences struct {
	Eslint         *bool   `mapstructure:"eslint"`
	Template       *string `mapstructure:"template"`
	UseSwagger     *bool   `mapstructure:"use_swagger"`
	PackageManager *string `mapstructure:"package_manager"`
	SkipInstall    *bool   `mapstructure:"skip_install"`
}

// Options are the resolved answers of one run.
type Options struct {
	Eslint         bool
	Template       string
	UseSwagger     bool
	PackageManager string
	SkipInstall    bool
}

// PreferenceStore persists Preferences in its own viper instance so the
// global config is never written as a side effect.
type PreferenceStore struct {
	v    *viper.Viper
	path string
}

// NewPreferenceStore returns a store backed by dir/preferences.yaml.
func NewPreferenceStore(dir string) *PreferenceStore {
	path := filepath.Join(dir, preferencesName+"."+fileType)
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	return &PreferenceStore{v: v, path: path}
}

// DefaultPreferenceStore uses the config directory.
func DefaultPreferenceStore() *PreferenceStore {
	return NewPreferenceStore(Dir())
}

// Path returns the backing file.
func (s *PreferenceStore) Path() string { return s.path }

// Load reads the stored preferences. A missing file yields empty
// Preferences.
func (s *PreferenceStore) Load() (Preferences, error) {
	var p Preferences
	if err := s.v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return p, nil
		}
		return p, fmt.Errorf("reading preferences: %w", err)
	}
	if err := s.v.UnmarshalKey(namespace, &p); err != nil {
		return p, fmt.Errorf("parsing preferences: %w", err)
	}
	return p, nil
}

// Defaults overlays stored answers on base.
func (p Preferences) Defaults(base Options) Options {
	if p.Eslint != nil {
		base.Eslint = *p.Eslint
	}
	if p.Template != nil && *p.Template != "" {
		base.Template = *p.Template
	}
	if p.UseSwagger != nil {
		base.UseSwagger = *p.UseSwagger
	}
	if p.PackageManager != nil && *p.PackageManager != "" {
		base.PackageManager = *p.PackageManager
	}
	if p.SkipInstall != nil {
		base.SkipInstall = *p.SkipInstall
	}
	return base
}

// Save merges the answers into the stored preferences and writes the file.
func (s *PreferenceStore) Save(o Options) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}
	s.v.Set(namespace, map[string]any{
		"eslint":          o.Eslint,
		"template":        o.Template,
		"use_swagger":     o.UseSwagger,
		"package_manager": o.PackageManager,
		"skip_install":    o.SkipInstall,
	})
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}

// Reset removes every stored answer.
func (s *PreferenceStore) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing preferences: %w", err)
	}
	s.v = viper.New()
	s.v.SetConfigFile(s.path)
	s.v.SetConfigType(fileType)
	return nil
}
