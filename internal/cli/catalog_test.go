package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCatalogCommand(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newCatalogCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(t.Context())
}

func TestCatalogAddExplicitVersions(t *testing.T) {
	root := testWorkspace(t)

	err := runCatalogCommand(t, "add", "react@^18.2.0", "lodash@4.17.21", "-C", root, "--no-format")
	if err != nil {
		t.Fatalf("catalog add: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "pnpm-workspace.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"catalog:", "react: ^18.2.0", "lodash: 4.17.21"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("pnpm-workspace.yaml missing %q:\n%s", want, data)
		}
	}
	// Existing content survives the edit.
	if !strings.Contains(string(data), "packages/*") {
		t.Errorf("packages globs lost:\n%s", data)
	}
}

func TestCatalogAddNamedCatalog(t *testing.T) {
	root := testWorkspace(t)

	err := runCatalogCommand(t, "add", "react@^17.0.2", "-C", root, "--catalog", "react17", "--no-format")
	if err != nil {
		t.Fatalf("catalog add: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "pnpm-workspace.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "catalogs:") || !strings.Contains(string(data), "react17:") {
		t.Errorf("named catalog not created:\n%s", data)
	}
}

func TestCatalogAddScopedPackage(t *testing.T) {
	root := testWorkspace(t)

	err := runCatalogCommand(t, "add", "@types/node@^20.11.5", "-C", root, "--no-format")
	if err != nil {
		t.Fatalf("catalog add: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "pnpm-workspace.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"@types/node": ^20.11.5`) {
		t.Errorf("scoped entry missing:\n%s", data)
	}
}

func TestCatalogAddInvalidSpec(t *testing.T) {
	root := testWorkspace(t)

	if err := runCatalogCommand(t, "add", "react@not a range", "-C", root, "--no-format"); err == nil {
		t.Fatal("expected error for invalid range")
	}
}

func TestCatalogAddMissingWorkspaceFile(t *testing.T) {
	if err := runCatalogCommand(t, "add", "react@^18.2.0", "-C", t.TempDir(), "--no-format"); err == nil {
		t.Fatal("expected error for missing pnpm-workspace.yaml")
	}
}

func TestSplitSpec(t *testing.T) {
	tests := []struct {
		arg, name, rng string
	}{
		{"react", "react", ""},
		{"react@^18.2.0", "react", "^18.2.0"},
		{"lodash@4.17.21", "lodash", "4.17.21"},
		{"@types/node", "@types/node", ""},
		{"@types/node@^20.0.0", "@types/node", "^20.0.0"},
	}
	for _, tt := range tests {
		name, rng := splitSpec(tt.arg)
		if name != tt.name || rng != tt.rng {
			t.Errorf("splitSpec(%q) = (%q, %q), want (%q, %q)", tt.arg, name, rng, tt.name, tt.rng)
		}
	}
}
