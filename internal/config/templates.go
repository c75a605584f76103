package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "config":
		return configTemplate, nil
	case "manifest":
		return manifestTemplate, nil
	default:
		return "", fmt.Errorf("unknown template kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const configTemplate = `galaxy_url = "https://galaxy.example.org"
api_key = "replace-with-api-key"
library = "Reference Data"
description = "Shared reference datasets"
manifest = "manifest.yaml"
max_wait_seconds = 600
poll_interval_seconds = 3
status_addr = ""
`

const manifestTemplate = `datasets:
  - name: RefSeq_reference_DSv2.gtf
    url: 'https://example.org/GTFs/RefSeq_reference_DSv2.gtf'
    folder_name: GTFs
    folder_description: A collection of GTF files
    type: gtf
    dbkey: mm10
`
