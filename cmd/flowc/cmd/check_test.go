package cmd

import (
	"strings"
	"testing"

	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

// oobFixture is an in-bounds-typed array read with a constant out-of-range
// index, which partial evaluation reports as a fatal diagnostic.
func oobFixture(t *testing.T) string {
	t.Helper()
	i32T := typesys.Scalar(typesys.Int32)
	lit := func(v int64) *ast.Literal {
		l := ast.NewLiteral(srcpos.None, i32T)
		l.Int = v
		return l
	}
	arr := &ast.ArrayLit{
		Meta:  ast.Meta{At: srcpos.None, Typ: typesys.NewArray(i32T, 2)},
		Elems: []ast.Exp{lit(10), lit(20)},
	}
	read := &ast.ArrayRead{
		Meta:  ast.Meta{At: srcpos.None, Typ: i32T},
		Base:  arr,
		Index: lit(5),
	}
	return writeFixture(t, read)
}

func TestCheckCmdCollapsesRepeatedDiagnostics(t *testing.T) {
	good := ast.NewLiteral(srcpos.None, typesys.Scalar(typesys.Int32))
	good.Int = 1
	paths := []string{oobFixture(t), oobFixture(t), writeFixture(t, good)}

	configPath = ""
	var err error
	out := captureStdout(t, func() {
		err = runCheck(checkCmd, paths)
	})
	if err == nil {
		t.Fatal("expected runCheck to report failing fixtures")
	}
	if !strings.Contains(out, "out of bounds") {
		t.Errorf("check output = %q, want an out-of-bounds diagnostic", out)
	}
	if !strings.Contains(out, "(reported by 2 fixtures)") {
		t.Errorf("check output = %q, want the two identical diagnostics collapsed with a count", out)
	}
	if got := strings.Count(out, "Error (out of bounds)"); got != 1 {
		t.Errorf("check output mentions the diagnostic %d times, want once after collapsing", got)
	}
}

func TestCheckCmdAllFixturesOk(t *testing.T) {
	good := ast.NewLiteral(srcpos.None, typesys.Scalar(typesys.Int32))
	good.Int = 7
	paths := []string{writeFixture(t, good)}

	configPath = ""
	var err error
	out := captureStdout(t, func() {
		err = runCheck(checkCmd, paths)
	})
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if !strings.Contains(out, "1 fixtures ok") {
		t.Errorf("check output = %q, want the ok summary", out)
	}
}
