package ops

import (
	"fmt"

	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
	"github.com/flowc-lang/flowc/internal/value"
)

// Cast implements the full (source, target) cast matrix. Unsupported
// pairs return an error, which the evaluator in Partial and NonDet mode turns
// into a residual cast expression; in Full mode it is a type-mismatch error.
func Cast(target typesys.Type, v value.Value, pos srcpos.Position) (value.Value, error) {
	switch target.Kind {
	case typesys.Bit, typesys.Bool:
		return castToBool(target.Kind, v, pos)
	case typesys.String:
		return value.NewStr(pos, v.String()), nil
	case typesys.Double:
		return castToDouble(v, pos)
	case typesys.Complex8, typesys.Complex16, typesys.Complex32, typesys.Complex64:
		return castToComplex(target.Kind, v, pos)
	default:
		if target.Kind.IsInteger() {
			return castToInteger(target.Kind, v, pos)
		}
		return nil, fmt.Errorf("unsupported cast target %s", target)
	}
}

// castToBool: "To bit/bool from any integer: nonzero -> true."
func castToBool(target typesys.Kind, v value.Value, pos srcpos.Position) (value.Value, error) {
	switch x := v.(type) {
	case *value.Int:
		return value.NewInt(pos, target, boolToInt(x.Val != 0)), nil
	default:
		return nil, fmt.Errorf("cannot cast %s to %s", v.Type(), target)
	}
}

// castToInteger covers: bit/bool -> integer (false=0, true=1), integer ->
// integer (two's-complement truncation/extension), double -> integer
// (truncation toward zero), and complex -> integer is unsupported (no
// single-component projection is implied by the matrix).
func castToInteger(target typesys.Kind, v value.Value, pos srcpos.Position) (value.Value, error) {
	switch x := v.(type) {
	case *value.Int:
		return value.NewInt(pos, target, x.Val), nil
	case *value.Float:
		return value.NewInt(pos, target, int64(x.Val)), nil
	default:
		return nil, fmt.Errorf("cannot cast %s to %s", v.Type(), target)
	}
}

func castToDouble(v value.Value, pos srcpos.Position) (value.Value, error) {
	switch x := v.(type) {
	case *value.Int:
		return value.NewFloat(pos, float64(x.Val)), nil
	case *value.Float:
		return value.NewFloat(pos, x.Val), nil
	default:
		return nil, fmt.Errorf("cannot cast %s to double", v.Type())
	}
}

// castToComplex: "Between complex widths: element-wise integer cast."
// Casting a plain integer into a complex width is not in the matrix (only
// complex-to-complex is specified) and is rejected.
func castToComplex(target typesys.Kind, v value.Value, pos srcpos.Position) (value.Value, error) {
	c, ok := v.(*value.Complex)
	if !ok {
		return nil, fmt.Errorf("cannot cast %s to %s", v.Type(), target)
	}
	comp := target.ComplexComponentKind()
	return value.NewComplex(pos, target, value.TruncateTo(comp, c.Re), value.TruncateTo(comp, c.Im)), nil
}
