package eval

import (
	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/value"
)

// Evald is the result of interpreting one ast.Exp: either a fully reduced
// value, or a residual AST fragment standing in for what could not be
// reduced.
type Evald struct {
	Value    value.Value
	Residual ast.Exp
}

// Full wraps a fully reduced value.
func Full(v value.Value) Evald { return Evald{Value: v} }

// ResidualExp wraps an unreduced AST fragment.
func ResidualExp(e ast.Exp) Evald { return Evald{Residual: e} }

// IsFull reports whether this Evald carries a reduced value rather than a
// residual expression.
func (e Evald) IsFull() bool { return e.Value != nil }

// AsExp converts an Evald back to an ast.Exp, either by returning the
// residual directly or by converting a full value via value.Value.ToExp.
func (e Evald) AsExp() ast.Exp {
	if e.IsFull() {
		return e.Value.ToExp()
	}
	return e.Residual
}
