package createapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hestjs/create-hest-app/internal/branding"
	"github.com/hestjs/create-hest-app/internal/dirguard"
	"github.com/hestjs/create-hest-app/internal/installer"
	"github.com/hestjs/create-hest-app/internal/manifest"
	"github.com/hestjs/create-hest-app/internal/scaffold"
	"github.com/hestjs/create-hest-app/internal/style"
)

// TemplateResolver locates a template on disk.
type TemplateResolver interface {
	Resolve(id string, documentationVariant bool) (*scaffold.TemplateRoot, error)
}

// TemplateCopier materializes a resolved template.
type TemplateCopier interface {
	Copy(root *scaffold.TemplateRoot, targetDir string, opts scaffold.CopyOptions) (*scaffold.CopyResult, error)
}

// DependencyInstaller runs a package manager install.
type DependencyInstaller interface {
	Install(ctx context.Context, dir string, pm installer.PackageManager, opts installer.Options) error
}

// RepoInitializer creates the initial git commit. It reports success only.
type RepoInitializer interface {
	TryInit(ctx context.Context, dir string) bool
}

// PatchFunc personalizes the manifest in dir.
type PatchFunc func(dir, appName string, opts manifest.PatchOptions) (*manifest.PatchResult, error)

// Orchestrator runs the scaffolding pipeline.
type Orchestrator struct {
	Resolver  TemplateResolver
	Copier    TemplateCopier
	Installer DependencyInstaller
	VCS       RepoInitializer
	Patch     PatchFunc

	// DocumentationNote is printed when the documentation variant is used.
	DocumentationNote string

	Out io.Writer
	Log *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithOutput sets where progress messages go.
func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) { o.Out = w }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.Log = l }
}

// WithPatcher replaces the manifest patcher.
func WithPatcher(p PatchFunc) Option {
	return func(o *Orchestrator) { o.Patch = p }
}

// WithDocumentationNote sets the note printed for documentation variants.
func WithDocumentationNote(note string) Option {
	return func(o *Orchestrator) { o.DocumentationNote = note }
}

// New creates an Orchestrator from its collaborators.
func New(resolver TemplateResolver, copier TemplateCopier, inst DependencyInstaller, vcs RepoInitializer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		Resolver:  resolver,
		Copier:    copier,
		Installer: inst,
		VCS:       vcs,
		Patch:     manifest.Patch,
		Out:       io.Discard,
		Log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) out() io.Writer {
	if o.Out == nil {
		return io.Discard
	}
	return o.Out
}

func (o *Orchestrator) logger() *zap.Logger {
	if o.Log == nil {
		return zap.NewNop()
	}
	return o.Log
}

// run carries the mutable state of one Create call.
type run struct {
	o       *Orchestrator
	req     Request
	log     *zap.Logger
	outcome Outcome
}

func (r *run) advance(s State) {
	r.outcome.State = s
	r.log.Debug("state transition", zap.Stringer("state", s))
}

func (r *run) fail(kind Kind, err error) Outcome {
	r.outcome.Kind = kind
	r.outcome.Err = err
	r.log.Debug("run failed",
		zap.Stringer("kind", kind),
		zap.Stringer("state", r.outcome.State),
		zap.Error(err))
	return r.outcome
}

func (r *run) warn(msg string) {
	r.outcome.Warnings = append(r.outcome.Warnings, msg)
	fmt.Fprintf(r.o.out(), "%s %s\n", style.Yellow("Warning:"), msg)
}

// Create scaffolds one project. The working directory is switched to the
// target for the duration of the run and restored before returning.
func (o *Orchestrator) Create(ctx context.Context, req Request) Outcome {
	log := o.logger()
	r := &run{
		o:       o,
		req:     req,
		log:     log.With(zap.String("app", req.AppName()), zap.String("template", req.TemplateID)),
		outcome: Outcome{Request: req, State: StateStart},
	}
	r.log.Debug("state transition", zap.Stringer("state", StateStart))

	root, err := filepath.Abs(req.TargetPath)
	if err != nil {
		return r.fail(KindFatal, fmt.Errorf("resolving %s: %w", req.TargetPath, err))
	}
	appName := filepath.Base(root)

	if err := os.MkdirAll(root, 0755); err != nil {
		return r.fail(KindFatal, fmt.Errorf("creating %s: %w", root, err))
	}
	r.advance(StateDirCreated)

	ok, err := dirguard.IsAcceptable(root, o.out())
	if err != nil {
		return r.fail(KindFatal, err)
	}
	if !ok {
		conflicts, _ := dirguard.Conflicts(root)
		return r.fail(KindConflict, &ConflictError{Dir: root, Conflicts: conflicts})
	}
	r.advance(StateDirAccepted)

	originalDir, err := os.Getwd()
	if err != nil {
		return r.fail(KindFatal, fmt.Errorf("reading working directory: %w", err))
	}
	if err := os.Chdir(root); err != nil {
		return r.fail(KindFatal, fmt.Errorf("entering %s: %w", root, err))
	}
	defer func() {
		if err := os.Chdir(originalDir); err != nil {
			r.log.Warn("could not restore working directory", zap.Error(err))
		}
	}()

	fmt.Fprintf(o.out(), "Creating a new %s app in %s.\n\n", branding.DisplayName(), style.Green(root))

	tpl, err := o.Resolver.Resolve(req.TemplateID, req.DocumentationVariant)
	if err != nil {
		return r.fail(KindRetryable, &DownloadError{Template: req.TemplateID, Cause: err})
	}
	r.advance(StateTemplateResolved)

	fmt.Fprintf(o.out(), "Using template: %s\n", style.Cyan(tpl.Name))
	if tpl.DocumentationVariant && o.DocumentationNote != "" {
		fmt.Fprintf(o.out(), "%s\n", style.Yellow(o.DocumentationNote))
	}
	fmt.Fprintln(o.out(), "Copying files from template...")

	copied, err := o.Copier.Copy(tpl, root, scaffold.CopyOptions{LintEnabled: req.LintEnabled})
	if err != nil {
		return r.fail(KindRetryable, &DownloadError{Template: req.TemplateID, Cause: err})
	}
	if copied != nil {
		r.log.Debug("template copied", zap.Strings("files", copied.Files))
	}
	fmt.Fprintln(o.out(), style.Green("Template files copied successfully!"))
	r.advance(StateTemplateCopied)

	if o.Patch != nil {
		patched, err := o.Patch(root, appName, manifest.PatchOptions{LintEnabled: req.LintEnabled})
		if err != nil {
			r.warn(fmt.Sprintf("Could not update %s: %v", manifest.FileName, err))
		} else {
			if len(patched.Removed) > 0 {
				r.log.Debug("lint dependencies removed", zap.Strings("keys", patched.Removed))
			}
			for _, w := range patched.Warnings {
				r.warn(fmt.Sprintf("%s: %s", manifest.FileName, w))
			}
		}
	}
	r.advance(StateManifestPatched)

	if !req.SkipInstall {
		fmt.Fprintln(o.out(), "\nInstalling dependencies. This might take a couple of minutes.")
		fmt.Fprintln(o.out())
		err := o.Installer.Install(ctx, root, req.PackageManager, installer.Options{IsOnline: !req.Offline})
		if err != nil {
			return r.fail(KindFatal, err)
		}
		r.advance(StateInstalled)
	}

	gitInitialized := false
	if o.VCS != nil && o.VCS.TryInit(ctx, root) {
		gitInitialized = true
		fmt.Fprintln(o.out(), "Initialized a git repository.")
		r.advance(StateVCSInitialized)
	}

	r.outcome.Summary = newSummary(req, originalDir, gitInitialized)
	r.outcome.Kind = KindOK
	r.advance(StateSuccess)
	return r.outcome
}

// RetryPrompter asks the operator how to recover from a template failure.
type RetryPrompter interface {
	// ConfirmRetry asks whether to try a different template.
	ConfirmRetry(template string) (bool, error)
	// AlternativeTemplate asks which template to use instead.
	AlternativeTemplate() (string, error)
}

// RunWithRetry runs Create and, when the template could not be produced,
// offers one retry with a different template. It never asks twice.
func (o *Orchestrator) RunWithRetry(ctx context.Context, req Request, ask RetryPrompter) Outcome {
	out := o.Create(ctx, req)
	if out.Kind != KindRetryable || ask == nil {
		return out
	}

	var dl *DownloadError
	if errors.As(out.Err, &dl) {
		fmt.Fprintf(o.out(), "\n%s\n", style.Red(dl.Error()))
	}

	retry, err := ask.ConfirmRetry(req.TemplateID)
	if err != nil {
		out.Kind = KindFatal
		out.Err = fmt.Errorf("asking for retry: %w", err)
		return out
	}
	if !retry {
		out.RetryDeclined = true
		return out
	}

	alt, err := ask.AlternativeTemplate()
	if err != nil {
		out.Kind = KindFatal
		out.Err = fmt.Errorf("asking for alternative template: %w", err)
		return out
	}

	o.logger().Debug("retrying with alternative template", zap.String("template", alt))
	return o.Create(ctx, req.WithTemplate(alt))
}
