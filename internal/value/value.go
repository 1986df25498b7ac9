// Package value implements the runtime value model: a closed set
// of tagged values covering every scalar width, complex integers, sparse
// fixed-shape arrays, and nominal structs, plus conversion to and from the
// literal AST nodes.
//
// Equality (Equal) ignores source location; the Go type itself plays the
// role of the tag in the closed variant set.
package value

import (
	"fmt"

	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

// Value is a typed runtime value plus the source location it was produced
// at, for diagnostics.
type Value interface {
	fmt.Stringer
	Type() typesys.Type
	Pos() srcpos.Position
	// Equal reports structural equality, ignoring Pos.
	Equal(other Value) bool
	// Size is the statistics accounting: 1 for scalars, 2 for complex,
	// sum-over-fields for structs, element-size*non-default-count for
	// arrays.
	Size() int
	// ToExp converts the value back to the Exp that denotes it, total and
	// injective up to location.
	ToExp() ast.Exp
	valueNode()
}

type base struct {
	At  srcpos.Position
	Typ typesys.Type
}

func (b base) Pos() srcpos.Position { return b.At }
func (b base) Type() typesys.Type   { return b.Typ }
func (base) valueNode()             {}

// WithPos returns a copy of the base with a new position, used by
// constructors that build a value from a literal with a specific location.
func (b base) WithPos(pos srcpos.Position) base { b.At = pos; return b }

// Int is every integer-width and bit/bool value; Typ.Kind selects the
// width for operator dispatch and two's-complement truncation.
type Int struct {
	base
	Val int64
}

func NewInt(pos srcpos.Position, k typesys.Kind, v int64) *Int {
	return &Int{base: base{At: pos, Typ: typesys.Scalar(k)}, Val: TruncateTo(k, v)}
}

func (i *Int) String() string {
	if i.Typ.Kind == typesys.Bit || i.Typ.Kind == typesys.Bool {
		if i.Val != 0 {
			return "true"
		}
		return "false"
	}
	return fmt.Sprintf("%d", i.Val)
}

func (i *Int) Equal(other Value) bool {
	o, ok := other.(*Int)
	return ok && o.Typ.Kind == i.Typ.Kind && o.Val == i.Val
}

func (i *Int) Size() int { return 1 }

func (i *Int) ToExp() ast.Exp {
	l := ast.NewLiteral(i.At, i.Typ)
	l.Int = i.Val
	return l
}

// TruncateTo applies two's-complement truncation/sign-extension of v to the
// destination integer kind's width. Non
// integer kinds (bit, bool) are normalized to 0/1.
func TruncateTo(k typesys.Kind, v int64) int64 {
	switch k {
	case typesys.Bit, typesys.Bool:
		if v != 0 {
			return 1
		}
		return 0
	case typesys.Int8:
		return int64(int8(v))
	case typesys.Int16:
		return int64(int16(v))
	case typesys.Int32:
		return int64(int32(v))
	case typesys.Int64:
		return v
	case typesys.Uint8:
		return int64(uint8(v))
	case typesys.Uint16:
		return int64(uint16(v))
	case typesys.Uint32:
		return int64(uint32(v))
	case typesys.Uint64:
		return int64(uint64(v))
	default:
		return v
	}
}

// Float is the Double value.
type Float struct {
	base
	Val float64
}

func NewFloat(pos srcpos.Position, v float64) *Float {
	return &Float{base: base{At: pos, Typ: typesys.Scalar(typesys.Double)}, Val: v}
}

func (f *Float) String() string { return fmt.Sprintf("%g", f.Val) }

func (f *Float) Equal(other Value) bool {
	o, ok := other.(*Float)
	return ok && o.Val == f.Val
}

func (f *Float) Size() int { return 1 }

func (f *Float) ToExp() ast.Exp {
	l := ast.NewLiteral(f.At, f.Typ)
	l.Flt = f.Val
	return l
}

// Str is the String value.
type Str struct {
	base
	Val string
}

func NewStr(pos srcpos.Position, v string) *Str {
	return &Str{base: base{At: pos, Typ: typesys.Scalar(typesys.String)}, Val: v}
}

func (s *Str) String() string { return s.Val }

func (s *Str) Equal(other Value) bool {
	o, ok := other.(*Str)
	return ok && o.Val == s.Val
}

func (s *Str) Size() int { return 1 }

func (s *Str) ToExp() ast.Exp {
	l := ast.NewLiteral(s.At, s.Typ)
	l.Str = s.Val
	return l
}

// Unit is the sole value of type unit.
type Unit struct{ base }

func NewUnit(pos srcpos.Position) *Unit {
	return &Unit{base: base{At: pos, Typ: typesys.Scalar(typesys.Unit)}}
}

func (u *Unit) String() string    { return "()" }
func (u *Unit) Equal(o Value) bool { _, ok := o.(*Unit); return ok }
func (u *Unit) Size() int          { return 1 }
func (u *Unit) ToExp() ast.Exp     { return ast.NewLiteral(u.At, u.Typ) }

// Complex is a dedicated variant for each of the four complex-integer
// widths, not reduced to a two-field struct, both for performance and to
// preserve the complex-specific operator rules.
type Complex struct {
	base
	Re, Im int64
}

func NewComplex(pos srcpos.Position, k typesys.Kind, re, im int64) *Complex {
	comp := k.ComplexComponentKind()
	return &Complex{
		base: base{At: pos, Typ: typesys.Scalar(k)},
		Re:   TruncateTo(comp, re),
		Im:   TruncateTo(comp, im),
	}
}

func (c *Complex) String() string { return fmt.Sprintf("(%d+%di)", c.Re, c.Im) }

func (c *Complex) Equal(other Value) bool {
	o, ok := other.(*Complex)
	return ok && o.Typ.Kind == c.Typ.Kind && o.Re == c.Re && o.Im == c.Im
}

func (c *Complex) Size() int { return 2 }

func (c *Complex) ToExp() ast.Exp {
	l := ast.NewLiteral(c.At, c.Typ)
	l.Re, l.Im = c.Re, c.Im
	return l
}
