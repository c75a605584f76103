package library

import "strings"

const pathSeparator = "/"

// QualifiedPath joins a folder name and a dataset name with a single
// separator. It is the sole uniqueness key for dataset existence checks;
// comparison is exact and case-sensitive.
func QualifiedPath(folderName, datasetName string) string {
	return strings.TrimSuffix(folderName, pathSeparator) + pathSeparator + datasetName
}

// ShortName returns the last separator-delimited segment of a folder path,
// so "/GTFs" and "root/GTFs" both yield "GTFs". It is the sole uniqueness
// key for folder lookup within a library.
func ShortName(folderPath string) string {
	idx := strings.LastIndex(folderPath, pathSeparator)
	if idx < 0 {
		return folderPath
	}
	return folderPath[idx+1:]
}
