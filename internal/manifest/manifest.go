// Package manifest owns the declarative input: the ordered list of
// datasets a run should make exist, with their folder placement.
package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

const (
	DefaultType  = "auto"
	DefaultDBKey = "?"
)

// Descriptor is one desired dataset. Immutable once parsed; manifest order
// defines processing order.
type Descriptor struct {
	Name              string `yaml:"name"`
	URL               string `yaml:"url"`
	FolderName        string `yaml:"folder_name"`
	FolderDescription string `yaml:"folder_description"`
	Type              string `yaml:"type"`
	DBKey             string `yaml:"dbkey"`
}

// ParseError reports a malformed or incomplete manifest. Index is the
// zero-based entry position, or -1 for document-level problems.
type ParseError struct {
	Index int
	Field string
	Msg   string
}

func (e *ParseError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("manifest: %s", e.Msg)
	}
	if e.Field != "" {
		return fmt.Sprintf("manifest: entry %d missing required field %q", e.Index, e.Field)
	}
	return fmt.Sprintf("manifest: entry %d: %s", e.Index, e.Msg)
}

type document struct {
	Datasets []Descriptor `yaml:"datasets"`
}

// Parse decodes a YAML manifest into ordered descriptors. The document
// must be a mapping with a "datasets" sequence; every entry must carry
// name, url, folder_name and folder_description. Optional fields default
// here so nothing downstream deals with absent values.
func Parse(data []byte) ([]Descriptor, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Index: -1, Msg: fmt.Sprintf("not a valid manifest document: %v", err)}
	}
	if doc.Datasets == nil {
		return nil, &ParseError{Index: -1, Msg: `document is not a mapping with a "datasets" key`}
	}

	for i := range doc.Datasets {
		d := &doc.Datasets[i]
		switch {
		case d.Name == "":
			return nil, &ParseError{Index: i, Field: "name"}
		case d.URL == "":
			return nil, &ParseError{Index: i, Field: "url"}
		case d.FolderName == "":
			return nil, &ParseError{Index: i, Field: "folder_name"}
		case d.FolderDescription == "":
			return nil, &ParseError{Index: i, Field: "folder_description"}
		}
		if d.Type == "" {
			d.Type = DefaultType
		}
		if d.DBKey == "" {
			d.DBKey = DefaultDBKey
		}
	}
	return doc.Datasets, nil
}
