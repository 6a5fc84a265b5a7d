package createapp

import (
	"fmt"

	"github.com/hestjs/create-hest-app/internal/dirguard"
)

// State is a step of the pipeline. Outcome.State is the last one reached.
type State int

const (
	StateStart State = iota
	StateDirCreated
	StateDirAccepted
	StateTemplateResolved
	StateTemplateCopied
	StateManifestPatched
	StateInstalled
	StateVCSInitialized
	StateSuccess
)

var stateNames = [...]string{
	StateStart:            "start",
	StateDirCreated:       "dir-created",
	StateDirAccepted:      "dir-accepted",
	StateTemplateResolved: "template-resolved",
	StateTemplateCopied:   "template-copied",
	StateManifestPatched:  "manifest-patched",
	StateInstalled:        "installed",
	StateVCSInitialized:   "vcs-initialized",
	StateSuccess:          "success",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// Kind classifies how a run ended.
type Kind int

const (
	// KindOK means the project was created; Outcome.Summary is set.
	KindOK Kind = iota
	// KindRetryable means the template could not be produced; a run with a
	// different template may succeed. Outcome.Err is a *DownloadError.
	KindRetryable
	// KindConflict means the target directory holds unrelated files.
	// Nothing was written. Outcome.Err is a *ConflictError.
	KindConflict
	// KindFatal covers every other failure.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindRetryable:
		return "retryable"
	case KindConflict:
		return "conflict"
	case KindFatal:
		return "fatal"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Outcome is the result of Create.
type Outcome struct {
	Kind    Kind
	State   State
	Request Request
	Summary *Summary
	Err     error
	// Warnings are non-fatal problems, such as a manifest that could not
	// be personalized.
	Warnings []string
	// RetryDeclined is set by RunWithRetry when the operator chose not to
	// try another template.
	RetryDeclined bool
}

// OK reports whether the project was created.
func (o Outcome) OK() bool { return o.Kind == KindOK }

// DownloadError wraps a failure to resolve or copy a template.
type DownloadError struct {
	Template string
	Cause    error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("could not create app from template %q: %v", e.Template, e.Cause)
}

func (e *DownloadError) Unwrap() error { return e.Cause }

// ConflictError reports a target directory that is not effectively empty.
type ConflictError struct {
	Dir       string
	Conflicts []dirguard.Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("directory %s contains %d conflicting entries", e.Dir, len(e.Conflicts))
}
