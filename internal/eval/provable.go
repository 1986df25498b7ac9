package eval

import (
	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/value"
)

// Satisfiable reports whether at least one non-deterministic evaluation of
// e reduces to true. e must be boolean-typed.
func Satisfiable(cfg Config, e ast.Exp) (bool, error) {
	ev := New(NonDet, cfg)
	alts, err := ev.EvalNonDet(e)
	if err != nil {
		return false, err
	}
	for _, a := range alts {
		if a.Evald.IsFull() {
			if b, ok := a.Evald.Value.(*value.Int); ok && b.Val != 0 {
				return true, nil
			}
		}
	}
	return false, nil
}

// Provable implements provable(e) = not satisfiable(not e).
func Provable(cfg Config, e ast.Exp) (bool, error) {
	sat, err := Satisfiable(cfg, negate(e))
	if err != nil {
		return false, err
	}
	return !sat, nil
}

// Implies implements implies(a,b) = provable(not a or b).
func Implies(cfg Config, a, b ast.Exp) (bool, error) {
	return Provable(cfg, &ast.BinaryExpr{
		Meta: ast.Meta{At: a.Pos(), Typ: a.Type()},
		Op:   ast.Or,
		L:    negate(a),
		R:    b,
	})
}

func negate(e ast.Exp) ast.Exp {
	return &ast.UnaryExpr{Meta: ast.Meta{At: e.Pos(), Typ: e.Type()}, Op: ast.Not, X: e}
}
