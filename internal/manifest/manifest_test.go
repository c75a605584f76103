package manifest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleManifest = `datasets:
  - name: RefSeq_reference_DSv2.gtf
    url: 'https://example.org/GTFs/RefSeq_reference_DSv2.gtf'
    folder_name: GTFs
    folder_description: A collection of GTF files
    type: gtf
    dbkey: mm10
  - name: regions.bed
    url: 'https://example.org/BEDs/regions.bed'
    folder_name: BEDs
    folder_description: BED region files
`

func TestParseOrderedDescriptors(t *testing.T) {
	descriptors, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(descriptors) != 2 {
		t.Fatalf("descriptors = %d, want 2", len(descriptors))
	}

	first := descriptors[0]
	if first.Name != "RefSeq_reference_DSv2.gtf" || first.FolderName != "GTFs" {
		t.Fatalf("first descriptor = %+v", first)
	}
	if first.Type != "gtf" || first.DBKey != "mm10" {
		t.Fatalf("explicit optionals not kept: %+v", first)
	}

	second := descriptors[1]
	if second.Type != DefaultType {
		t.Fatalf("type default = %q, want %q", second.Type, DefaultType)
	}
	if second.DBKey != DefaultDBKey {
		t.Fatalf("dbkey default = %q, want %q", second.DBKey, DefaultDBKey)
	}
}

func TestParseRejectsMissingRequiredField(t *testing.T) {
	doc := `datasets:
  - name: ok.gtf
    url: 'https://example.org/ok.gtf'
    folder_name: GTFs
    folder_description: d
  - name: broken.gtf
    folder_name: GTFs
    folder_description: d
`
	_, err := Parse([]byte(doc))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if parseErr.Index != 1 || parseErr.Field != "url" {
		t.Fatalf("parse error = %+v, want entry 1 missing url", parseErr)
	}
	if !strings.Contains(err.Error(), "url") {
		t.Fatalf("error %q does not name the missing field", err)
	}
}

func TestParseRejectsNonMappingDocuments(t *testing.T) {
	for _, doc := range []string{
		"- just\n- a\n- sequence\n",
		"unrelated: true\n",
		"",
	} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%q) accepted a document without a datasets mapping", doc)
		}
	}
}

func TestParseAllowsEmptyDatasetList(t *testing.T) {
	descriptors, err := Parse([]byte("datasets: []\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(descriptors) != 0 {
		t.Fatalf("descriptors = %d, want 0", len(descriptors))
	}
}

func TestFetchLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	data, err := Fetch(context.Background(), nil, path)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(data) != sampleManifest {
		t.Fatal("fetched bytes differ from file contents")
	}
}

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleManifest))
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.Client(), srv.URL+"/manifest.yaml")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(data) != sampleManifest {
		t.Fatal("fetched bytes differ from served contents")
	}
}

func TestFetchURLRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.Client(), srv.URL+"/missing.yaml"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestSpecsPreserveOrderAndFields(t *testing.T) {
	descriptors, err := Parse([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	specs := Specs(descriptors)
	if len(specs) != len(descriptors) {
		t.Fatalf("specs = %d, want %d", len(specs), len(descriptors))
	}
	if specs[0].Name != descriptors[0].Name || specs[0].FileType != descriptors[0].Type {
		t.Fatalf("spec conversion mismatch: %+v vs %+v", specs[0], descriptors[0])
	}
	if specs[1].DBKey != DefaultDBKey {
		t.Fatalf("spec dbkey = %q, want default", specs[1].DBKey)
	}
}
