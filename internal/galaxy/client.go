// Package galaxy is an HTTP client for the Galaxy data-library API,
// implementing the library.Service capability. One client reuses a single
// HTTP connection pool for every call in a run.
package galaxy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/libctl/internal/library"
)

var (
	ErrBaseURLRequired = errors.New("galaxy: base url required")
	ErrAPIKeyRequired  = errors.New("galaxy: api key required")
)

// ServiceError is a non-2xx response or transport failure from the remote
// service. Resolution code never reads it as "not found".
type ServiceError struct {
	Method string
	Path   string
	Status int
	Msg    string
}

func (e *ServiceError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("galaxy: %s %s: %s", e.Method, e.Path, e.Msg)
	}
	return fmt.Sprintf("galaxy: %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Msg)
}

type Config struct {
	BaseURL string
	APIKey  string
	// Timeout bounds a single request round-trip, not a whole run.
	Timeout    time.Duration
	HTTPClient *http.Client
}

func (c Config) WithDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return c
}

type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

var _ library.Service = (*Client)(nil)

func New(cfg Config, log zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrBaseURLRequired
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrAPIKeyRequired
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("galaxy: parse base url %q: %w", cfg.BaseURL, err)
	}
	cfg = cfg.WithDefaults()
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, http: httpClient, log: log}, nil
}

func (c *Client) ListLibraries(ctx context.Context) ([]library.Library, error) {
	var libs []library.Library
	if err := c.do(ctx, http.MethodGet, "/api/libraries", nil, &libs); err != nil {
		return nil, err
	}
	return libs, nil
}

func (c *Client) CreateLibrary(ctx context.Context, name, description string) (library.Library, error) {
	payload := map[string]string{"name": name, "description": description}
	var lib library.Library
	if err := c.do(ctx, http.MethodPost, "/api/libraries", payload, &lib); err != nil {
		return library.Library{}, err
	}
	return lib, nil
}

func (c *Client) ListFolders(ctx context.Context, libraryID string) ([]library.Folder, error) {
	contents, err := c.ListContents(ctx, libraryID)
	if err != nil {
		return nil, err
	}
	folders := make([]library.Folder, 0, len(contents))
	for _, content := range contents {
		if content.Type == library.ContentTypeFolder {
			folders = append(folders, library.Folder{ID: content.ID, Name: content.Name})
		}
	}
	return folders, nil
}

func (c *Client) CreateFolder(ctx context.Context, libraryID, name, description string) (library.Folder, error) {
	payload := map[string]string{
		"create_type": "folder",
		"name":        name,
		"description": description,
	}
	// The contents endpoint answers creates with a one-element list.
	var created []library.Folder
	path := fmt.Sprintf("/api/libraries/%s/contents", url.PathEscape(libraryID))
	if err := c.do(ctx, http.MethodPost, path, payload, &created); err != nil {
		return library.Folder{}, err
	}
	if len(created) == 0 {
		return library.Folder{}, &ServiceError{Method: http.MethodPost, Path: path, Msg: "empty create folder response"}
	}
	return created[0], nil
}

func (c *Client) ListContents(ctx context.Context, libraryID string) ([]library.Content, error) {
	var contents []library.Content
	path := fmt.Sprintf("/api/libraries/%s/contents", url.PathEscape(libraryID))
	if err := c.do(ctx, http.MethodGet, path, nil, &contents); err != nil {
		return nil, err
	}
	return contents, nil
}

func (c *Client) UploadFromURL(ctx context.Context, req library.UploadRequest) (library.Dataset, error) {
	payload := map[string]string{
		"create_type":       "file",
		"upload_option":     "upload_via_url",
		"folder_id":         req.FolderID,
		"file_type":         req.FileType,
		"dbkey":             req.DBKey,
		"files_0|url_paste": req.URL,
	}
	var created []library.Dataset
	path := fmt.Sprintf("/api/libraries/%s/contents", url.PathEscape(req.LibraryID))
	if err := c.do(ctx, http.MethodPost, path, payload, &created); err != nil {
		return library.Dataset{}, err
	}
	if len(created) == 0 {
		return library.Dataset{}, &ServiceError{Method: http.MethodPost, Path: path, Msg: "empty upload response"}
	}
	return created[0], nil
}

func (c *Client) DatasetState(ctx context.Context, libraryID, datasetID string) (string, error) {
	var ds library.Dataset
	path := fmt.Sprintf(
		"/api/libraries/%s/contents/%s",
		url.PathEscape(libraryID), url.PathEscape(datasetID),
	)
	if err := c.do(ctx, http.MethodGet, path, nil, &ds); err != nil {
		return "", err
	}
	return ds.State, nil
}

func (c *Client) RenameDataset(ctx context.Context, datasetID, name string) error {
	payload := map[string]string{"name": name}
	path := fmt.Sprintf("/api/libraries/datasets/%s", url.PathEscape(datasetID))
	return c.do(ctx, http.MethodPatch, path, payload, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("galaxy: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimSuffix(c.cfg.BaseURL, "/")+path, body)
	if err != nil {
		return &ServiceError{Method: method, Path: path, Msg: err.Error()}
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("galaxy request")
	resp, err := c.http.Do(req)
	if err != nil {
		return &ServiceError{Method: method, Path: path, Msg: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ServiceError{Method: method, Path: path, Status: resp.StatusCode, Msg: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServiceError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Msg:    serverMessage(raw),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ServiceError{Method: method, Path: path, Status: resp.StatusCode, Msg: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

func serverMessage(raw []byte) string {
	var payload struct {
		ErrMsg string `json:"err_msg"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.ErrMsg != "" {
		return payload.ErrMsg
	}
	msg := strings.TrimSpace(string(raw))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
