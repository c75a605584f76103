package library

import (
	"context"
	"fmt"
)

// FindLibrary scans all libraries visible to the service and returns the
// first exact name match. Listings are re-issued fresh on every call;
// remote state may change between reconciliation steps, notably after a
// create. Returns ErrNotFound when no library matches; service errors
// propagate unchanged and never mean not-found.
func FindLibrary(ctx context.Context, svc Service, name string) (Library, error) {
	libs, err := svc.ListLibraries(ctx)
	if err != nil {
		return Library{}, fmt.Errorf("list libraries: %w", err)
	}
	for _, lib := range libs {
		if lib.Name == name {
			return lib, nil
		}
	}
	return Library{}, fmt.Errorf("library %q: %w", name, ErrNotFound)
}

// FindFolder scans the folders of a library and returns the first whose
// short name (last path segment) exactly matches shortName. Two distinct
// full paths ending in the same segment collide under this rule; that
// matches the service's flat folder listings and is a known limitation for
// nested hierarchies.
func FindFolder(ctx context.Context, svc Service, lib Library, shortName string) (Folder, error) {
	folders, err := svc.ListFolders(ctx, lib.ID)
	if err != nil {
		return Folder{}, fmt.Errorf("list folders library_id=%q: %w", lib.ID, err)
	}
	for _, folder := range folders {
		if ShortName(folder.Name) == shortName {
			return folder, nil
		}
	}
	return Folder{}, fmt.Errorf("folder %q: %w", shortName, ErrNotFound)
}
