package library

import "context"

// Library is a top-level named container for folders and datasets. The
// service may hold several libraries with the same name; resolution by name
// returns the first one it reports.
type Library struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Folder groups datasets within a library. Name may be a hierarchical path
// such as "/GTFs" or "root/GTFs"; the last segment is the short name used
// for lookups.
type Folder struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Content is one entry of a library listing, either a file or a folder.
// For files, Name is the folder-qualified path.
type Content struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

const (
	ContentTypeFile   = "file"
	ContentTypeFolder = "folder"
)

// Dataset is a single uploaded file resource, processed asynchronously by
// the service after the upload call returns.
type Dataset struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state,omitempty"`
}

// DatasetSpec describes one desired dataset and its folder placement.
type DatasetSpec struct {
	Name              string
	URL               string
	FolderName        string
	FolderDescription string
	FileType          string
	DBKey             string
}

// UploadRequest carries the parameters of an upload-from-URL call.
type UploadRequest struct {
	LibraryID string
	FolderID  string
	URL       string
	FileType  string
	DBKey     string
}

// Service is the remote data-library capability the reconciler runs
// against. All operations are synchronous round-trips except
// UploadFromURL, which returns immediately with a dataset that the service
// keeps processing; DatasetState is polled until it turns terminal.
type Service interface {
	ListLibraries(ctx context.Context) ([]Library, error)
	CreateLibrary(ctx context.Context, name, description string) (Library, error)
	ListFolders(ctx context.Context, libraryID string) ([]Folder, error)
	CreateFolder(ctx context.Context, libraryID, name, description string) (Folder, error)
	ListContents(ctx context.Context, libraryID string) ([]Content, error)
	UploadFromURL(ctx context.Context, req UploadRequest) (Dataset, error)
	DatasetState(ctx context.Context, libraryID, datasetID string) (string, error)
	RenameDataset(ctx context.Context, datasetID, name string) error
}
