package ast

import (
	"testing"

	"github.com/flowc-lang/flowc/internal/srcpos"
)

func TestNewBindManyInvariants(t *testing.T) {
	head := &Take{}
	if got := NewBindMany(srcpos.Position{}, head, nil); got != head {
		t.Errorf("empty arm list should collapse to the head comp, got %v", got)
	}

	inner := NewBindMany(srcpos.Position{}, head, []BindArm{{Var: "x", Comp: &Take{}}})
	outer := NewBindMany(srcpos.Position{}, inner, []BindArm{{Var: "y", Comp: &Take{}}})
	bm, ok := outer.(*BindMany)
	if !ok {
		t.Fatalf("expected *BindMany, got %T", outer)
	}
	if bm.Head != head {
		t.Errorf("nested BindMany should flatten to the innermost head")
	}
	if len(bm.Arms) != 2 || bm.Arms[0].Var != "x" || bm.Arms[1].Var != "y" {
		t.Errorf("flattened arms = %+v, want [x y]", bm.Arms)
	}
}

func TestBindManyString(t *testing.T) {
	bm := &BindMany{Head: &ReadSrc{}, Arms: []BindArm{{Var: "x", Comp: &Take{}}}}
	if got, want := bm.String(), "read; x <- take"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestSeqAndParString(t *testing.T) {
	seq := &Seq{Comps: []Comp{&ReadSrc{}, &Take{}, &WriteSnk{}}}
	if got, want := seq.String(), "read >>> take >>> write"; got != want {
		t.Errorf("Seq.String() = %q, want %q", got, want)
	}
	par := &Par{A: &ReadSrc{}, B: &WriteSnk{}}
	if got, want := par.String(), "(read |>>>| write)"; got != want {
		t.Errorf("Par.String() = %q, want %q", got, want)
	}
}

func TestBranchAndStandaloneString(t *testing.T) {
	b := &Branch{Cond: &Literal{}, Then: &Take{}, Else: &ReadSrc{}}
	if got, want := b.String(), "if 0 then take else read"; got != want {
		t.Errorf("Branch.String() = %q, want %q", got, want)
	}
	s := &Standalone{Body: &Take{}}
	if got, want := s.String(), "standalone(take)"; got != want {
		t.Errorf("Standalone.String() = %q, want %q", got, want)
	}
	nested := &Standalone{Body: &Standalone{Body: &Take{}}}
	if got, want := nested.String(), "standalone(standalone(take))"; got != want {
		t.Errorf("nested Standalone.String() = %q, want %q", got, want)
	}
}

func TestPlacementString(t *testing.T) {
	tests := map[Placement]string{
		PlacementUnspecified: "unspecified",
		PlacementShared:      "shared",
		PlacementAlone:       "alone",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Placement(%d).String() = %q, want %q", p, got, want)
		}
	}
}

func TestActivateTaskString(t *testing.T) {
	a := &ActivateTask{Task: 3}
	if got, want := a.String(), "activate(task3)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	withVar := &ActivateTask{Task: 3, InputVar: "x"}
	if got, want := withVar.String(), "activate(task3, x)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
