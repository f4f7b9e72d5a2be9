package workspace

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/pnpm-extra/pnpm-extra/pkg/errors"
)

// writeFile creates path (and parents) with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDiscoversMembers(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, DefinitionFile), "packages:\n  - packages/*\n")
	writeFile(t, filepath.Join(root, "package.json"), `{"name": "root", "version": "1.0.0"}`)
	writeFile(t, filepath.Join(root, "packages", "ui", "package.json"),
		`{"name": "ui", "version": "0.1.0", "dependencies": {"core": "workspace:^"}}`)
	writeFile(t, filepath.Join(root, "packages", "core", "package.json"),
		`{"name": "core", "version": "0.1.0"}`)

	ws, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var names []string
	for _, p := range ws.Packages {
		names = append(names, p.Name)
	}
	slices.Sort(names)
	want := []string{"core", "root", "ui"}
	if !slices.Equal(names, want) {
		t.Errorf("member names = %v, want %v", names, want)
	}
}

func TestLoadSkipsNodeModulesAndHiddenDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, DefinitionFile), "packages:\n  - '**'\n")
	writeFile(t, filepath.Join(root, "apps", "web", "package.json"), `{"name": "web"}`)
	writeFile(t, filepath.Join(root, "node_modules", "lodash", "package.json"), `{"name": "lodash"}`)
	writeFile(t, filepath.Join(root, "apps", "web", "node_modules", "react", "package.json"), `{"name": "react"}`)
	writeFile(t, filepath.Join(root, ".cache", "tmp", "package.json"), `{"name": "tmp"}`)

	ws, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, p := range ws.Packages {
		if p.Name == "lodash" || p.Name == "react" || p.Name == "tmp" {
			t.Errorf("Load should not descend into node_modules or hidden dirs, found %q", p.Name)
		}
	}
}

func TestLoadNegatedPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, DefinitionFile),
		"packages:\n  - packages/*\n  - '!packages/legacy'\n")
	writeFile(t, filepath.Join(root, "packages", "ui", "package.json"), `{"name": "ui"}`)
	writeFile(t, filepath.Join(root, "packages", "legacy", "package.json"), `{"name": "legacy"}`)

	ws, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, p := range ws.Packages {
		if p.Name == "legacy" {
			t.Error("negated pattern should exclude packages/legacy")
		}
	}
}

func TestLoadSkipsNamelessManifests(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, DefinitionFile), "packages:\n  - packages/*\n")
	writeFile(t, filepath.Join(root, "packages", "anon", "package.json"), `{"version": "1.0.0"}`)
	writeFile(t, filepath.Join(root, "packages", "named", "package.json"), `{"name": "named"}`)

	ws, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ws.Packages) != 1 || ws.Packages[0].Name != "named" {
		t.Errorf("Packages = %+v, want only %q", ws.Packages, "named")
	}
}

func TestLoadMissingDefinition(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, errors.ErrCodeInvalidWorkspace) {
		t.Errorf("Load without %s: err = %v, want INVALID_WORKSPACE", DefinitionFile, err)
	}
}

func TestLoadReadsCatalog(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, DefinitionFile),
		"packages:\n  - packages/*\ncatalog:\n  lodash: 4.17.21\ncatalogs:\n  react18:\n    react: ^18.0.0\n")

	ws, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := ws.Definition.Catalog["lodash"]; got != "4.17.21" {
		t.Errorf("Catalog[lodash] = %q, want %q", got, "4.17.21")
	}
	if got := ws.Definition.Catalogs["react18"]["react"]; got != "^18.0.0" {
		t.Errorf("Catalogs[react18][react] = %q, want %q", got, "^18.0.0")
	}
}

func TestManifestSpecs(t *testing.T) {
	m := &Manifest{
		Name:             "ui",
		Dependencies:     map[string]string{"core": "workspace:^"},
		DevDependencies:  map[string]string{"typescript": "^5.0.0"},
		PeerDependencies: map[string]string{"react": ">=17"},
	}

	specs := m.Specs()
	if len(specs) != 3 {
		t.Fatalf("len(Specs()) = %d, want 3", len(specs))
	}

	kinds := map[string]DepKind{}
	for _, s := range specs {
		kinds[s.Name] = s.Kind
	}
	if kinds["core"] != KindRuntime || kinds["typescript"] != KindDev || kinds["react"] != KindPeer {
		t.Errorf("unexpected kinds: %v", kinds)
	}
}

func TestManifestLabel(t *testing.T) {
	if got := (&Manifest{Name: "ui", Version: "1.2.3"}).Label(); got != "ui@1.2.3" {
		t.Errorf("Label() = %q, want %q", got, "ui@1.2.3")
	}
	if got := (&Manifest{Name: "ui"}).Label(); got != "ui" {
		t.Errorf("Label() without version = %q, want %q", got, "ui")
	}
}
