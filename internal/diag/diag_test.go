package diag

import (
	"strings"
	"testing"

	"github.com/flowc-lang/flowc/internal/srcpos"
)

func TestFormatWithoutSourceFallsBackToPlainMessage(t *testing.T) {
	d := New(KindFreeVariable, srcpos.None, "variable %s is free", "a")
	got := d.Format(false)
	if strings.Contains(got, "|") {
		t.Errorf("Format with no source attached should not render a source excerpt, got %q", got)
	}
	if !strings.Contains(got, "free variable") || !strings.Contains(got, "variable a is free") {
		t.Errorf("Format = %q, want it to mention the kind and message", got)
	}
}

func TestFormatWithSourcePointsCaretAtColumn(t *testing.T) {
	d := &Diagnostic{
		Kind:    KindOutOfBounds,
		Message: "index out of range",
		Pos:     srcpos.Position{File: "frame.flow", Line: 2, Column: 5},
		Source:  "let x = 1\nlet y = arr[10]\n",
	}
	got := d.Format(false)
	lines := strings.Split(got, "\n")
	var excerptLine, caretLine string
	for i, l := range lines {
		if strings.Contains(l, "let y = arr[10]") {
			excerptLine = l
			caretLine = lines[i+1]
			break
		}
	}
	if excerptLine == "" {
		t.Fatalf("Format did not include the offending source line: %q", got)
	}
	caretCol := strings.Index(caretLine, "^")
	prefixLen := strings.Index(excerptLine, "let")
	if caretCol != prefixLen+d.Pos.Column-1 {
		t.Errorf("caret at column %d, want %d (prefix %d + Pos.Column-1 %d)", caretCol, prefixLen+d.Pos.Column-1, prefixLen, d.Pos.Column-1)
	}
}

func TestFormatAppendsOffendingExpression(t *testing.T) {
	d := &Diagnostic{Kind: KindTypeMismatch, Message: "bad operand", Expr: "a + b"}
	got := d.Format(false)
	if !strings.HasSuffix(got, "bad operand: a + b") {
		t.Errorf("Format = %q, want it to end with \"bad operand: a + b\"", got)
	}
}

func TestErrorMatchesUncoloredFormat(t *testing.T) {
	d := New(KindUnsupported, srcpos.None, "lut marker reached the evaluator")
	if d.Error() != d.Format(false) {
		t.Error("Error() should be exactly Format(false)")
	}
}

func TestDedupeKeyFoldsCase(t *testing.T) {
	a := &Diagnostic{Kind: KindFreeVariable, Pos: srcpos.None, Expr: "DECODE"}
	b := &Diagnostic{Kind: KindFreeVariable, Pos: srcpos.None, Expr: "decode"}
	if DedupeKey(a) != DedupeKey(b) {
		t.Errorf("DedupeKey should fold case: %q != %q", DedupeKey(a), DedupeKey(b))
	}
}

func TestDedupeKeyDistinguishesKindAndPosition(t *testing.T) {
	a := &Diagnostic{Kind: KindFreeVariable, Pos: srcpos.Position{Line: 1, Column: 1}, Expr: "x"}
	b := &Diagnostic{Kind: KindOutOfBounds, Pos: srcpos.Position{Line: 1, Column: 1}, Expr: "x"}
	c := &Diagnostic{Kind: KindFreeVariable, Pos: srcpos.Position{Line: 2, Column: 1}, Expr: "x"}
	if DedupeKey(a) == DedupeKey(b) {
		t.Error("different kinds should produce different dedupe keys")
	}
	if DedupeKey(a) == DedupeKey(c) {
		t.Error("different positions should produce different dedupe keys")
	}
}

func TestCollapseGroupsAndCounts(t *testing.T) {
	diags := []*Diagnostic{
		{Kind: KindFreeVariable, Pos: srcpos.Position{Line: 1, Column: 1}, Expr: "A"},
		{Kind: KindFreeVariable, Pos: srcpos.Position{Line: 1, Column: 1}, Expr: "a"},
		{Kind: KindOutOfBounds, Pos: srcpos.Position{Line: 2, Column: 1}, Expr: "b"},
	}
	groups := Collapse(diags)
	if len(groups) != 2 {
		t.Fatalf("Collapse produced %d groups, want 2", len(groups))
	}
	if groups[0].Count != 2 {
		t.Errorf("first group count = %d, want 2 (the two case-variant free-variable diagnostics)", groups[0].Count)
	}
	if groups[0].Diagnostic.Expr != "A" {
		t.Errorf("first group's representative should be the first-seen diagnostic (Expr %q), got %q", "A", groups[0].Diagnostic.Expr)
	}
	if groups[1].Count != 1 {
		t.Errorf("second group count = %d, want 1", groups[1].Count)
	}
}
