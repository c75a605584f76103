package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/libctl/internal/observability"
)

const (
	DefaultMaxWait      = 600 * time.Second
	DefaultPollInterval = 3 * time.Second
)

type Config struct {
	// MaxWait bounds how long a single dataset may stay non-terminal
	// after its upload before the run gives up on it.
	MaxWait time.Duration
	// PollInterval is the pause between dataset state polls.
	PollInterval time.Duration
}

func (c Config) WithDefaults() Config {
	if c.MaxWait <= 0 {
		c.MaxWait = DefaultMaxWait
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	return c
}

// Reconciler drives the remote service toward the manifest's desired
// state, creating only what is missing. Safe to run repeatedly against the
// same target.
type Reconciler struct {
	svc Service
	cfg Config
	log zerolog.Logger
}

func New(svc Service, cfg Config, log zerolog.Logger) (*Reconciler, error) {
	if svc == nil {
		return nil, ErrServiceRequired
	}
	return &Reconciler{svc: svc, cfg: cfg.WithDefaults(), log: log}, nil
}

// EnsureLibrary resolves a library by name, creating it when absent.
func (r *Reconciler) EnsureLibrary(ctx context.Context, name, description string) (Library, error) {
	lib, err := FindLibrary(ctx, r.svc, name)
	if err == nil {
		r.log.Info().Str("library", lib.Name).Str("library_id", lib.ID).Msg("found existing library")
		return lib, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Library{}, err
	}
	r.log.Info().Str("library", name).Msg("creating library")
	lib, err = r.svc.CreateLibrary(ctx, name, description)
	if err != nil {
		return Library{}, fmt.Errorf("create library %q: %w", name, err)
	}
	observability.RecordResourceCreated("library")
	r.log.Info().Str("library", lib.Name).Str("library_id", lib.ID).Msg("library created")
	return lib, nil
}

// EnsureFolder resolves a folder by short name within lib, creating it
// when absent.
func (r *Reconciler) EnsureFolder(ctx context.Context, lib Library, name, description string) (Folder, error) {
	folder, err := FindFolder(ctx, r.svc, lib, name)
	if err == nil {
		r.log.Info().Str("folder", ShortName(folder.Name)).Str("folder_id", folder.ID).Msg("found existing folder")
		return folder, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Folder{}, err
	}
	r.log.Info().Str("folder", name).Msg("creating folder")
	folder, err = r.svc.CreateFolder(ctx, lib.ID, name, description)
	if err != nil {
		return Folder{}, fmt.Errorf("create folder %q: %w", name, err)
	}
	observability.RecordResourceCreated("folder")
	r.log.Info().Str("folder", folder.Name).Str("folder_id", folder.ID).Msg("folder created")
	return folder, nil
}

// EnsureDataset uploads the spec's source URL into folder unless a
// file-type content with the same qualified path already exists in lib.
// After a successful upload it waits for processing to finish and renames
// the dataset from the server-assigned name back to the spec's bare name,
// keeping listings and future existence checks predictable.
func (r *Reconciler) EnsureDataset(ctx context.Context, lib Library, folder Folder, spec DatasetSpec) Result {
	res := Result{Spec: spec, Path: QualifiedPath(folder.Name, spec.Name)}

	contents, err := r.svc.ListContents(ctx, lib.ID)
	if err != nil {
		return r.failed(res, fmt.Errorf("list contents library_id=%q: %w", lib.ID, err))
	}
	for _, content := range contents {
		if content.Type == ContentTypeFile && content.Name == res.Path {
			r.log.Info().Str("path", res.Path).Msg("dataset already exists")
			res.Status = StatusSkipped
			observability.RecordDatasetOutcome(string(res.Status))
			return res
		}
	}

	r.log.Info().Str("url", spec.URL).Str("path", res.Path).Msg("uploading dataset")
	ds, err := r.svc.UploadFromURL(ctx, UploadRequest{
		LibraryID: lib.ID,
		FolderID:  folder.ID,
		URL:       spec.URL,
		FileType:  spec.FileType,
		DBKey:     spec.DBKey,
	})
	if err != nil {
		return r.failed(res, fmt.Errorf("upload url=%q: %w", spec.URL, err))
	}
	if _, err := r.waitForDataset(ctx, lib.ID, ds.ID); err != nil {
		return r.failed(res, err)
	}
	if err := r.svc.RenameDataset(ctx, ds.ID, spec.Name); err != nil {
		return r.failed(res, fmt.Errorf("rename dataset_id=%q: %w", ds.ID, err))
	}
	r.log.Info().Str("dataset_id", ds.ID).Str("path", res.Path).Msg("dataset uploaded")
	res.Status = StatusSucceeded
	observability.RecordDatasetOutcome(string(res.Status))
	return res
}

// Run reconciles every spec in order against the named library. The
// library itself is fatal when it cannot be ensured; per-dataset failures
// are recorded in the report and processing continues with the next spec.
func (r *Reconciler) Run(ctx context.Context, libraryName, libraryDescription string, specs []DatasetSpec) (Report, error) {
	start := time.Now()
	lib, err := r.EnsureLibrary(ctx, libraryName, libraryDescription)
	if err != nil {
		return Report{}, err
	}

	report := Report{Library: lib}
	for _, spec := range specs {
		// Re-resolve the folder per spec; another writer may have
		// created or renamed folders since the previous iteration.
		folder, err := r.EnsureFolder(ctx, lib, spec.FolderName, spec.FolderDescription)
		if err != nil {
			res := r.failed(Result{Spec: spec, Path: QualifiedPath(spec.FolderName, spec.Name)}, err)
			report.Results = append(report.Results, res)
			continue
		}
		report.Results = append(report.Results, r.EnsureDataset(ctx, lib, folder, spec))
	}
	report.Duration = time.Since(start)

	r.log.Info().
		Str("library", lib.Name).
		Int("created", report.Created()).
		Int("skipped", report.Skipped()).
		Int("failed", report.Failed()).
		Dur("duration", report.Duration).
		Msg("reconcile complete")
	return report, nil
}

func (r *Reconciler) failed(res Result, err error) Result {
	res.Err = err
	res.Status = StatusFailed
	var timeout *WaitTimeoutError
	if errors.As(err, &timeout) {
		res.Status = StatusTimedOut
	}
	r.log.Error().
		Err(err).
		Str("dataset", res.Spec.Name).
		Str("folder", res.Spec.FolderName).
		Str("url", res.Spec.URL).
		Msg("dataset reconcile failed")
	observability.RecordDatasetOutcome(string(res.Status))
	return res
}
