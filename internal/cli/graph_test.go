package cli

import (
	"bytes"
	"strings"
	"testing"
)

func runGraphCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newGraphCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestGraphCommandDOT(t *testing.T) {
	root := testWorkspace(t)

	out, err := runGraphCommand(t, "-C", root)
	if err != nil {
		t.Fatalf("graph: %v", err)
	}
	for _, want := range []string{"digraph workspace {", `"app" -> "core";`, `"ui" -> "core";`} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "typescript") {
		t.Errorf("external package in output without --external:\n%s", out)
	}
}

func TestGraphCommandExternal(t *testing.T) {
	root := testWorkspace(t)

	out, err := runGraphCommand(t, "-C", root, "--external")
	if err != nil {
		t.Fatalf("graph --external: %v", err)
	}
	if !strings.Contains(out, "typescript") {
		t.Errorf("external package missing with --external:\n%s", out)
	}
}

func TestGraphCommandUnknownFormat(t *testing.T) {
	root := testWorkspace(t)

	if _, err := runGraphCommand(t, "-C", root, "--format", "png"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
