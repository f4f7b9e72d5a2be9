package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pnpm-extra/pnpm-extra/pkg/errors"
)

const sampleDefinition = `# workspace layout
packages:
  - "packages/*"
  - "apps/*"

catalog:
  react: ^18.2.0
  lodash: 4.17.21
`

func TestAddEntriesUpdatesExisting(t *testing.T) {
	d, err := Parse([]byte(sampleDefinition))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	err = d.AddEntries("", []Entry{
		{Name: "react", Version: "^19.0.0"},
		{Name: "zod", Version: "^3.23.8"},
	})
	if err != nil {
		t.Fatalf("AddEntries: %v", err)
	}

	got, err := d.Catalog("")
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	want := map[string]string{
		"react":  "^19.0.0",
		"lodash": "4.17.21",
		"zod":    "^3.23.8",
	}
	for name, version := range want {
		if got[name] != version {
			t.Errorf("catalog[%q] = %q, want %q", name, got[name], version)
		}
	}
}

func TestAddEntriesCreatesMissingCatalog(t *testing.T) {
	d, err := Parse([]byte("packages:\n  - \"packages/*\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if err := d.AddEntries(DefaultCatalog, []Entry{{Name: "react", Version: "^18.2.0"}}); err != nil {
		t.Fatalf("AddEntries: %v", err)
	}

	out, err := d.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !strings.Contains(string(out), "catalog:") {
		t.Errorf("output missing created catalog section:\n%s", out)
	}
	if !strings.Contains(string(out), "react: ^18.2.0") {
		t.Errorf("output missing entry:\n%s", out)
	}
}

func TestAddEntriesNamedCatalog(t *testing.T) {
	d, err := Parse([]byte(sampleDefinition))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if err := d.AddEntries("react17", []Entry{{Name: "react", Version: "^17.0.2"}}); err != nil {
		t.Fatalf("AddEntries: %v", err)
	}

	named, err := d.Catalog("react17")
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if named["react"] != "^17.0.2" {
		t.Errorf("catalogs.react17.react = %q, want %q", named["react"], "^17.0.2")
	}

	// The default catalog must be untouched.
	def, err := d.Catalog("")
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if def["react"] != "^18.2.0" {
		t.Errorf("default catalog react = %q, want %q", def["react"], "^18.2.0")
	}
}

func TestAddEntriesIdempotent(t *testing.T) {
	d, err := Parse([]byte(sampleDefinition))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	entries := []Entry{
		{Name: "react", Version: "^19.0.0"},
		{Name: "zod", Version: "^3.23.8"},
	}

	if err := d.AddEntries("", entries); err != nil {
		t.Fatalf("AddEntries: %v", err)
	}
	once, err := d.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	// Applying the same entries again must change nothing.
	if err := d.AddEntries("", entries); err != nil {
		t.Fatalf("AddEntries (second): %v", err)
	}
	twice, err := d.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	if !bytes.Equal(once, twice) {
		t.Errorf("second application changed the document:\nfirst:\n%s\nsecond:\n%s", once, twice)
	}

	got, _ := d.Catalog("")
	want := map[string]string{"react": "^19.0.0", "lodash": "4.17.21", "zod": "^3.23.8"}
	for name, version := range want {
		if got[name] != version {
			t.Errorf("catalog[%q] = %q, want %q", name, got[name], version)
		}
	}
	if len(got) != len(want) {
		t.Errorf("catalog has %d entries, want %d", len(got), len(want))
	}
}

func TestAddEntriesLastWriteWins(t *testing.T) {
	d, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	err = d.AddEntries("", []Entry{
		{Name: "react", Version: "^18.0.0"},
		{Name: "react", Version: "^18.2.0"},
	})
	if err != nil {
		t.Fatalf("AddEntries: %v", err)
	}

	got, _ := d.Catalog("")
	if got["react"] != "^18.2.0" {
		t.Errorf("react = %q, want last write %q", got["react"], "^18.2.0")
	}
}

func TestAddEntriesValidatesBeforeMutating(t *testing.T) {
	d, err := Parse([]byte(sampleDefinition))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	err = d.AddEntries("", []Entry{
		{Name: "zod", Version: "^3.23.8"},
		{Name: "Not A Name", Version: "^1.0.0"},
	})
	if !errors.Is(err, errors.ErrCodeInvalidPackage) {
		t.Fatalf("err = %v, want INVALID_PACKAGE", err)
	}

	// The valid entry preceding the bad one must not have been applied.
	got, _ := d.Catalog("")
	if _, ok := got["zod"]; ok {
		t.Error("partial write: zod was added despite a later invalid entry")
	}
}

func TestAddEntriesRejectsNonMappingCatalog(t *testing.T) {
	d, err := Parse([]byte("catalog: not-a-mapping\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	err = d.AddEntries("", []Entry{{Name: "react", Version: "^18.2.0"}})
	if !errors.Is(err, errors.ErrCodeMissingCatalogSection) {
		t.Errorf("err = %v, want MISSING_CATALOG_SECTION", err)
	}
}

func TestEditPreservesUnrelatedContent(t *testing.T) {
	d, err := Parse([]byte(sampleDefinition))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if err := d.AddEntries("", []Entry{{Name: "zod", Version: "^3.23.8"}}); err != nil {
		t.Fatalf("AddEntries: %v", err)
	}

	out, err := d.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	for _, keep := range []string{"# workspace layout", "packages/*", "apps/*", "lodash: 4.17.21"} {
		if !strings.Contains(string(out), keep) {
			t.Errorf("output lost %q:\n%s", keep, out)
		}
	}

	// Keys preserved in document order: packages before catalog.
	s := string(out)
	if strings.Index(s, "packages:") > strings.Index(s, "catalog:") {
		t.Errorf("key order changed:\n%s", s)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pnpm-workspace.yaml")
	if err := os.WriteFile(path, []byte(sampleDefinition), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := d.AddEntries("", []Entry{{Name: "zod", Version: "^3.23.8"}}); err != nil {
		t.Fatalf("AddEntries: %v", err)
	}
	if err := d.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "zod: ^3.23.8") {
		t.Errorf("saved file missing entry:\n%s", data)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "pnpm-workspace.yaml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestParseRejectsNonMappingDocument(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	if !errors.Is(err, errors.ErrCodeInvalidWorkspace) {
		t.Errorf("err = %v, want INVALID_WORKSPACE", err)
	}
}
