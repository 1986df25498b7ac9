package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/astjson"
	"github.com/flowc-lang/flowc/internal/typesys"
)

func writeCompFixture(t *testing.T, c ast.Comp) string {
	t.Helper()
	doc, err := astjson.EncodeComp(c)
	if err != nil {
		t.Fatalf("EncodeComp: %v", err)
	}
	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestSplitCmdRendersTaskTable(t *testing.T) {
	prog := &ast.Seq{Comps: []ast.Comp{
		&ast.ReadSrc{ElemType: typesys.Scalar(typesys.Int32)},
		&ast.Map{Func: "scale"},
		&ast.WriteSnk{ElemType: typesys.Scalar(typesys.Int32)},
	}}
	path := writeCompFixture(t, prog)

	out := captureStdout(t, func() {
		if err := runSplit(splitCmd, []string{path}); err != nil {
			t.Fatalf("runSplit: %v", err)
		}
	})
	if !strings.Contains(out, "scale") {
		t.Errorf("runSplit output = %q, want it to mention the map stage", out)
	}
}

func TestSplitCmdMissingFixtureErrors(t *testing.T) {
	if err := runSplit(splitCmd, []string{t.TempDir() + "/missing.json"}); err == nil {
		t.Error("expected an error for a nonexistent fixture path")
	}
}
