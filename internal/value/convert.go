package value

import (
	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

// FromLiteral builds the scalar Value a *ast.Literal denotes. It is the
// inverse of Value.ToExp for the scalar case ("Conversion to an AST
// expression is total and injective up to location").
func FromLiteral(l *ast.Literal) Value {
	switch l.Typ.Kind {
	case typesys.Double:
		return NewFloat(l.At, l.Flt)
	case typesys.String:
		return NewStr(l.At, l.Str)
	case typesys.Unit:
		return NewUnit(l.At)
	case typesys.Complex8, typesys.Complex16, typesys.Complex32, typesys.Complex64:
		return NewComplex(l.At, l.Typ.Kind, l.Re, l.Im)
	default:
		return NewInt(l.At, l.Typ.Kind, l.Int)
	}
}

// ComplexComponent returns the re ("re") or im ("im") component of a
// Complex value as an Int of the matching signed-integer width.
func ComplexComponent(c *Complex, field string) (Value, bool) {
	k := c.Typ.Kind.ComplexComponentKind()
	switch field {
	case "re":
		return NewInt(c.At, k, c.Re), true
	case "im":
		return NewInt(c.At, k, c.Im), true
	default:
		return nil, false
	}
}

// Zero builds the implicit-default value for a fully ground type.
// Callers must check typesys.Type.IsGround first; Zero panics on a
// polymorphic array length since there is no default to build.
// For an array whose length exceeds MaxEagerInit, Zero returns ok=false:
// the evaluator must then refuse to construct the default.
func Zero(pos srcpos.Position, t typesys.Type) (Value, bool) {
	switch t.Kind {
	case typesys.Unit:
		return NewUnit(pos), true
	case typesys.Double:
		return NewFloat(pos, 0), true
	case typesys.String:
		return NewStr(pos, ""), true
	case typesys.Complex8, typesys.Complex16, typesys.Complex32, typesys.Complex64:
		return NewComplex(pos, t.Kind, 0, 0), true
	case typesys.Array:
		if !t.IsGround() || TooLargeForEagerInit(t.Length) {
			return nil, false
		}
		elemZero, ok := Zero(pos, *t.Elem)
		if !ok {
			return nil, false
		}
		return NewArray(pos, *t.Elem, t.Length, elemZero), true
	case typesys.Struct:
		fields := make([]FieldVal, len(t.Fields))
		for i, f := range t.Fields {
			fv, ok := Zero(pos, f.Type)
			if !ok {
				return nil, false
			}
			fields[i] = FieldVal{Name: f.Name, Value: fv}
		}
		return NewStruct(pos, t.Name, fields), true
	default:
		return NewInt(pos, t.Kind, 0), true
	}
}
