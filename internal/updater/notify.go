package updater

import (
	"context"
	"fmt"
	"io"

	"github.com/hestjs/create-hest-app/internal/style"
)

// Check returns the newer version, or "" when the installed one is current.
// A fresh cache answers without touching the network; otherwise the registry
// is queried and the cache rewritten.
func (u *Updater) Check(ctx context.Context, configDir string) (string, error) {
	store := newCacheStore(u.fs, configDir)
	rec, _ := store.Get(u.pkg)

	if !rec.Fresh(u.currentVersion, u.now(), DefaultCacheMaxAge) {
		latest, err := u.CheckLatestVersion(ctx)
		if err != nil {
			return "", err
		}
		available, err := IsUpdateAvailable(u.currentVersion, latest.Version)
		if err != nil {
			return "", err
		}
		rec = &CheckRecord{
			LatestVersion:   latest.Version,
			CurrentVersion:  u.currentVersion,
			CheckedAt:       u.now(),
			UpdateAvailable: available,
		}
		// A cache that cannot be written only costs a request next time.
		_ = store.Put(u.pkg, rec)
	}

	if !rec.UpdateAvailable {
		return "", nil
	}
	return rec.LatestVersion, nil
}

// Notify prints the update banner to w when a newer version exists.
// Errors are swallowed; the check must never fail a run.
func (u *Updater) Notify(ctx context.Context, w io.Writer, configDir, installCommand string) bool {
	latest, err := u.Check(ctx, configDir)
	if err != nil || latest == "" {
		return false
	}
	PrintUpdateBanner(w, u.pkg, installCommand)
	return true
}

// PrintUpdateBanner prints the update notification to w.
func PrintUpdateBanner(w io.Writer, pkg, installCommand string) {
	fmt.Fprintln(w, style.Yellow(style.Bold(fmt.Sprintf("A new version of `%s` is available!", pkg))))
	fmt.Fprintf(w, "You can update by running: %s\n\n", style.Cyan(installCommand))
}
