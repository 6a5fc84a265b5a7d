package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// LatestURL returns the registry document for the package's latest tag.
func (u *Updater) LatestURL() string {
	return fmt.Sprintf("%s/%s/latest", u.registry, url.PathEscape(u.pkg))
}

// CheckLatestVersion fetches the version tagged latest on the registry.
func (u *Updater) CheckLatestVersion(ctx context.Context) (*Latest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.LatestURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", u.pkg+"/"+u.currentVersion)

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching latest version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("package %s not found on registry", u.pkg)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var latest Latest
	if err := json.Unmarshal(body, &latest); err != nil {
		return nil, fmt.Errorf("parsing registry response: %w", err)
	}
	if latest.Version == "" {
		return nil, fmt.Errorf("registry response has no version")
	}
	return &latest, nil
}
