package eval

import (
	"testing"

	"github.com/flowc-lang/flowc/internal/ast"
)

func TestIntDomainContainsRespectsHoles(t *testing.T) {
	d := IntDomain{Lower: 0, Upper: 10}
	d = d.withHole(5)
	if d.Contains(5) {
		t.Error("5 should be excluded after withHole(5)")
	}
	if !d.Contains(4) || !d.Contains(6) {
		t.Error("neighbours of a hole should still be contained")
	}
	if d.Contains(-1) || d.Contains(11) {
		t.Error("out-of-range values should never be contained")
	}
}

func TestIntDomainEmpty(t *testing.T) {
	if (IntDomain{Lower: 0, Upper: -1}).Empty() != true {
		t.Error("Lower > Upper should report Empty")
	}
	if (IntDomain{Lower: 0, Upper: 0}).Empty() {
		t.Error("a single-point domain should not be Empty")
	}
}

// a < 5 narrows the upper bound to 4; the false branch (a >= 5) narrows the
// lower bound to 5 instead.
func TestIntersectLtNarrowsUpperBound(t *testing.T) {
	a := varRef("a", 0)
	g := NewGuessStore()

	trueBranch := g.Intersect(a, ast.Lt, 5, true)
	if trueBranch.Upper != 4 {
		t.Errorf("a<5 assumed true: upper = %d, want 4", trueBranch.Upper)
	}

	g2 := NewGuessStore()
	falseBranch := g2.Intersect(a, ast.Lt, 5, false)
	if falseBranch.Lower != 5 {
		t.Errorf("a<5 assumed false: lower = %d, want 5", falseBranch.Lower)
	}
}

// a == 1 collapses the domain to the single point 1; a later a == 2
// assumption on the SAME store intersects against the already-collapsed
// domain and reports empty, since 2 is not in {1}.
func TestIntersectEqThenContradictingEqIsEmpty(t *testing.T) {
	a := varRef("a", 0)
	g := NewGuessStore()

	first := g.Intersect(a, ast.Eq, 1, true)
	if first.Lower != 1 || first.Upper != 1 {
		t.Fatalf("a==1: domain = [%d,%d], want [1,1]", first.Lower, first.Upper)
	}

	second := g.Intersect(a, ast.Eq, 2, true)
	if !second.Empty() {
		t.Errorf("a==1 followed by a==2 on the same store should be empty, got [%d,%d]", second.Lower, second.Upper)
	}
}

// a != 3 on an otherwise-unbounded domain just punches a hole, it does not
// narrow the bounds.
func TestIntersectNeAddsHoleNotBound(t *testing.T) {
	a := varRef("a", 0)
	g := NewGuessStore()
	d := g.Intersect(a, ast.Ne, 3, true)
	if d.Lower != minInt64 || d.Upper != maxInt64 {
		t.Errorf("a!=3 should leave bounds unbounded, got [%d,%d]", d.Lower, d.Upper)
	}
	if d.Contains(3) {
		t.Error("3 should be excluded after a!=3")
	}
	if !d.Contains(0) {
		t.Error("0 should remain a candidate after a!=3")
	}
}

// Ge/Lt and Gt/Le are each other's negation: assuming `a >= 5` false is the
// same narrowing as assuming `a < 5` true.
func TestNegateCompareRoundTrips(t *testing.T) {
	pairs := []struct{ op, neg ast.BinaryOp }{
		{ast.Eq, ast.Ne},
		{ast.Ne, ast.Eq},
		{ast.Lt, ast.Ge},
		{ast.Le, ast.Gt},
		{ast.Gt, ast.Le},
		{ast.Ge, ast.Lt},
	}
	for _, p := range pairs {
		if negateCompare(p.op) != p.neg {
			t.Errorf("negateCompare(%v) = %v, want %v", p.op, negateCompare(p.op), p.neg)
		}
		if negateCompare(p.neg) != p.op {
			t.Errorf("negateCompare(%v) = %v, want %v", p.neg, negateCompare(p.neg), p.op)
		}
	}
}

// Two occurrences of the same expression text at different positions share
// guess state: AssumeBool keyed on one instance is visible through Bool on
// a distinct node with identical text.
func TestCanonicalKeySharesStateAcrossPositions(t *testing.T) {
	g := NewGuessStore()
	e1 := varRef("a", 0)
	e2 := varRef("a", 0) // distinct pointer, identical rendered text
	g.AssumeBool(e1, true)
	v, ok := g.Bool(e2)
	if !ok || !v {
		t.Error("assumption on one occurrence of `a` should be visible for another occurrence with the same text")
	}
}

func TestGuessStoreCloneIsIndependent(t *testing.T) {
	g := NewGuessStore()
	a := varRef("a", 0)
	g.AssumeBool(a, true)

	clone := g.Clone()
	clone.AssumeBool(a, false)

	v, _ := g.Bool(a)
	cv, _ := clone.Bool(a)
	if v != true || cv != false {
		t.Error("mutating a clone should not affect the original store")
	}
}

func TestGuessStoreClearDropsAssumptions(t *testing.T) {
	g := NewGuessStore()
	a := varRef("a", 0)
	g.AssumeBool(a, true)
	g.Intersect(a, ast.Eq, 1, true)

	g.Clear()

	if _, ok := g.Bool(a); ok {
		t.Error("Clear should drop boolean assumptions")
	}
	d := g.Domain(a)
	if d.Lower != minInt64 || d.Upper != maxInt64 {
		t.Error("Clear should reset integer domains back to unbounded")
	}
}
