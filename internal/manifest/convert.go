package manifest

import "github.com/danmuck/libctl/internal/library"

// Specs converts parsed descriptors into the reconciler's dataset specs,
// preserving manifest order.
func Specs(descriptors []Descriptor) []library.DatasetSpec {
	specs := make([]library.DatasetSpec, 0, len(descriptors))
	for _, d := range descriptors {
		specs = append(specs, library.DatasetSpec{
			Name:              d.Name,
			URL:               d.URL,
			FolderName:        d.FolderName,
			FolderDescription: d.FolderDescription,
			FileType:          d.Type,
			DBKey:             d.DBKey,
		})
	}
	return specs
}
