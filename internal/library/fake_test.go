package library

import (
	"context"
	"fmt"
	"strings"
)

// fakeService is an in-memory stand-in for the remote data-library API.
// Upload names contents the way the real service does: folder-qualified,
// derived from the source URL until a rename fixes the display name.
type fakeService struct {
	libraries []Library
	folders   map[string][]Folder
	contents  map[string][]Content

	// stateScript queues processing states per source URL; exhausted or
	// absent scripts report defaultState.
	stateScript  map[string][]string
	defaultState string

	states        map[string]*stateQueue
	datasetFolder map[string]string
	nextID        int

	listLibraryCalls   int
	createLibraryCalls int
	createFolderCalls  int
	uploadCalls        int
	pollCalls          int
	renames            map[string]string

	errListLibraries error
	errListContents  error
	errUpload        map[string]error
}

type stateQueue struct {
	script   []string
	fallback string
}

func (q *stateQueue) next() string {
	if len(q.script) > 0 {
		state := q.script[0]
		q.script = q.script[1:]
		return state
	}
	if q.fallback != "" {
		return q.fallback
	}
	return "ok"
}

func newFakeService() *fakeService {
	return &fakeService{
		folders:       map[string][]Folder{},
		contents:      map[string][]Content{},
		stateScript:   map[string][]string{},
		states:        map[string]*stateQueue{},
		datasetFolder: map[string]string{},
		renames:       map[string]string{},
		errUpload:     map[string]error{},
	}
}

func (f *fakeService) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeService) ListLibraries(context.Context) ([]Library, error) {
	f.listLibraryCalls++
	if f.errListLibraries != nil {
		return nil, f.errListLibraries
	}
	return append([]Library(nil), f.libraries...), nil
}

func (f *fakeService) CreateLibrary(_ context.Context, name, description string) (Library, error) {
	f.createLibraryCalls++
	lib := Library{ID: f.id("lib"), Name: name, Description: description}
	f.libraries = append(f.libraries, lib)
	return lib, nil
}

func (f *fakeService) ListFolders(_ context.Context, libraryID string) ([]Folder, error) {
	return append([]Folder(nil), f.folders[libraryID]...), nil
}

func (f *fakeService) CreateFolder(_ context.Context, libraryID, name, description string) (Folder, error) {
	f.createFolderCalls++
	folder := Folder{ID: f.id("folder"), Name: name, Description: description}
	f.folders[libraryID] = append(f.folders[libraryID], folder)
	f.contents[libraryID] = append(f.contents[libraryID], Content{
		ID: folder.ID, Name: folder.Name, Type: ContentTypeFolder,
	})
	return folder, nil
}

func (f *fakeService) ListContents(_ context.Context, libraryID string) ([]Content, error) {
	if f.errListContents != nil {
		return nil, f.errListContents
	}
	return append([]Content(nil), f.contents[libraryID]...), nil
}

func (f *fakeService) UploadFromURL(_ context.Context, req UploadRequest) (Dataset, error) {
	f.uploadCalls++
	if err := f.errUpload[req.URL]; err != nil {
		return Dataset{}, err
	}
	folderName := ""
	for _, folder := range f.folders[req.LibraryID] {
		if folder.ID == req.FolderID {
			folderName = folder.Name
		}
	}
	serverName := req.URL[strings.LastIndex(req.URL, "/")+1:]
	ds := Dataset{ID: f.id("ds"), Name: serverName, State: "queued"}
	f.contents[req.LibraryID] = append(f.contents[req.LibraryID], Content{
		ID: ds.ID, Name: QualifiedPath(folderName, serverName), Type: ContentTypeFile,
	})
	f.states[ds.ID] = &stateQueue{
		script:   append([]string(nil), f.stateScript[req.URL]...),
		fallback: f.defaultState,
	}
	f.datasetFolder[ds.ID] = folderName
	return ds, nil
}

func (f *fakeService) DatasetState(_ context.Context, _, datasetID string) (string, error) {
	f.pollCalls++
	queue, ok := f.states[datasetID]
	if !ok {
		return "", fmt.Errorf("fake: unknown dataset %q", datasetID)
	}
	return queue.next(), nil
}

func (f *fakeService) RenameDataset(_ context.Context, datasetID, name string) error {
	f.renames[datasetID] = name
	folderName := f.datasetFolder[datasetID]
	for libID, contents := range f.contents {
		for i, content := range contents {
			if content.ID == datasetID {
				f.contents[libID][i].Name = QualifiedPath(folderName, name)
			}
		}
	}
	return nil
}
