package tasksplit

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

// TestSplitterSnapshots pins the exact rendered task table for a handful of
// representative stream programs, so a change to the splitter's task/queue
// allocation order shows up as a diff against testdata/__snapshots__ instead
// of an awkward hand-written assertion per field.
func TestSplitterSnapshots(t *testing.T) {
	cases := []struct {
		name string
		prog ast.Comp
	}{
		{
			name: "read_standalone_decode_write",
			prog: &ast.Seq{Comps: []ast.Comp{
				&ast.ReadSrc{ElemType: typesys.Scalar(typesys.Int32)},
				&ast.Standalone{Body: &ast.Map{Func: "cca"}},
				&ast.Map{Func: "decode"},
				&ast.WriteSnk{ElemType: typesys.Scalar(typesys.Int32)},
			}},
		},
		{
			name: "three_stage_pipeline",
			prog: &ast.Par{
				A: &ast.Map{Func: "stage1"},
				B: &ast.Par{A: &ast.Map{Func: "stage2"}, B: &ast.Map{Func: "stage3"}},
			},
		},
		{
			name: "branch_with_standalone_arm",
			prog: &ast.Branch{
				Cond: ast.NewLiteral(srcpos.None, typesys.Scalar(typesys.Bool)),
				Then: &ast.Standalone{Body: &ast.Map{Func: "fastPath"}},
				Else: &ast.Map{Func: "slowPath"},
			},
		},
		{
			name: "nested_standalone_collapses",
			prog: &ast.Seq{Comps: []ast.Comp{
				&ast.ReadSrc{ElemType: typesys.Scalar(typesys.Int32)},
				&ast.Standalone{Body: &ast.Standalone{Body: &ast.Map{Func: "cca"}}},
				&ast.WriteSnk{ElemType: typesys.Scalar(typesys.Int32)},
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := InsertTasks(tc.prog)
			if err != nil {
				t.Fatalf("InsertTasks: %v", err)
			}
			snaps.MatchSnapshot(t, Render(table))
		})
	}
}
