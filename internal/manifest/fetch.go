package manifest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

// Fetch reads the manifest bytes from a local path or, when location
// parses as an http(s) URL, downloads them. client may be nil, in which
// case http.DefaultClient is used.
func Fetch(ctx context.Context, client *http.Client, location string) ([]byte, error) {
	if isURL(location) {
		return download(ctx, client, location)
	}
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("manifest read failed (%s): %w", location, err)
	}
	return data, nil
}

func isURL(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func download(ctx context.Context, client *http.Client, location string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("manifest request failed (%s): %w", location, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("manifest download failed (%s): %w", location, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("manifest download failed (%s): status %d", location, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("manifest download failed (%s): %w", location, err)
	}
	return data, nil
}
