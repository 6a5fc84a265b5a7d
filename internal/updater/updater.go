package updater

import (
	"net/http"
	"strings"
	"time"

	"github.com/hestjs/create-hest-app/internal/branding"
	"github.com/spf13/afero"
)

// DefaultTimeout bounds the registry request so a slow network never delays
// the end of a run by much.
const DefaultTimeout = 3 * time.Second

// Latest is the subset of the registry's dist-tag document we read.
type Latest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Updater checks the registry for newer releases.
type Updater struct {
	currentVersion string
	pkg            string
	registry       string
	httpClient     *http.Client
	fs             afero.Fs
	now            func() time.Time
}

// Option configures an Updater.
type Option func(*Updater)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(u *Updater) {
		u.httpClient = c
	}
}

// WithFs sets the filesystem holding the version cache.
func WithFs(fsys afero.Fs) Option {
	return func(u *Updater) {
		u.fs = fsys
	}
}

// WithRegistry points the check at a different npm registry.
func WithRegistry(url string) Option {
	return func(u *Updater) {
		if url != "" {
			u.registry = strings.TrimRight(url, "/")
		}
	}
}

// WithPackage overrides the package name looked up.
func WithPackage(name string) Option {
	return func(u *Updater) {
		u.pkg = name
	}
}

// New creates an Updater with the given current version and options.
func New(currentVersion string, opts ...Option) *Updater {
	u := &Updater{
		currentVersion: currentVersion,
		pkg:            branding.CLIName(),
		registry:       strings.TrimRight(branding.RegistryURL(), "/"),
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		fs:             afero.NewOsFs(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// CurrentVersion returns the version this updater was created with.
func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}

// Package returns the npm package name being checked.
func (u *Updater) Package() string {
	return u.pkg
}
