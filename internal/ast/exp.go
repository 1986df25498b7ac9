// Package ast defines the two mutually-recursive grammars the core
// consumes: the scalar Expression AST (Exp) and the stream Computation AST
// (Comp). Both are already fully typed by the time they reach this
// repository — the type checker that produces them is an external
// collaborator this repository does not implement.
//
// AST nodes are immutable once constructed; every pass (evaluation, task
// splitting) produces a new tree rather than mutating the input in place.
package ast

import (
	"fmt"
	"strings"

	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

// Exp is any node of the scalar expression language.
type Exp interface {
	fmt.Stringer
	Pos() srcpos.Position
	Type() typesys.Type
	expNode()
}

// Meta carries the two fields every Exp node shares: its source position
// and its (already-resolved) type.
type Meta struct {
	At  srcpos.Position
	Typ typesys.Type
}

func (b Meta) Pos() srcpos.Position  { return b.At }
func (b Meta) Type() typesys.Type    { return b.Typ }
func (Meta) expNode()                {}

// InlineMode annotates a Let binding with how its initialiser should be
// treated relative to its body.
type InlineMode int

const (
	// AutoInline lets the evaluator decide (the default: evaluate the
	// initialiser eagerly, as for NoInline, but a later pass is free to
	// fold the binding away if it is never re-read).
	AutoInline InlineMode = iota
	// ForceInline substitutes the initialiser into the body textually
	// instead of evaluating it at the binding site.
	ForceInline
	// NoInline forbids substitution even when the evaluator could
	// otherwise fold a single-use binding away.
	NoInline
)

func (m InlineMode) String() string {
	switch m {
	case ForceInline:
		return "inline"
	case NoInline:
		return "noinline"
	default:
		return "auto"
	}
}

// UnrollHint annotates a For loop with the source's preference for static
// unrolling; the evaluator's own cap (512 iterations) still applies
// regardless of this hint.
type UnrollHint int

const (
	UnrollAuto UnrollHint = iota
	UnrollForce
	UnrollForbid
)

// Literal is a scalar, non-array, non-struct constant. Arrays and structs
// are built from ArrayLit and StructLit so that their elements can be
// arbitrary expressions, not just literals.
type Literal struct {
	Meta
	// Exactly one of these is meaningful, selected by Typ.Kind:
	Int  int64   // Bit, Bool (0/1), all integer kinds
	Flt  float64 // Double
	Str  string  // String
	Re   int64   // Complex*: real component
	Im   int64   // Complex*: imaginary component
}

func NewLiteral(pos srcpos.Position, t typesys.Type) *Literal {
	return &Literal{Meta: Meta{At: pos, Typ: t}}
}

func (l *Literal) String() string {
	switch l.Typ.Kind {
	case typesys.Double:
		return fmt.Sprintf("%g", l.Flt)
	case typesys.String:
		return fmt.Sprintf("%q", l.Str)
	case typesys.Bit, typesys.Bool:
		return fmt.Sprintf("%v", l.Int != 0)
	case typesys.Complex8, typesys.Complex16, typesys.Complex32, typesys.Complex64:
		return fmt.Sprintf("(%d+%di)", l.Re, l.Im)
	default:
		return fmt.Sprintf("%d", l.Int)
	}
}

// VarRef reads an immutable let-bound or mutable ref-let-bound variable.
// UniqueID disambiguates shadowed names across the tree; Name is kept for
// diagnostics.
type VarRef struct {
	Meta
	UniqueID string
	Name     string
}

func (v *VarRef) String() string { return v.Name }

// ArrayLit constructs an array value from an explicit element list.
type ArrayLit struct {
	Meta
	Elems []Exp
}

func (a *ArrayLit) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ArrayRead reads a single element: arr[idx].
type ArrayRead struct {
	Meta
	Base  Exp
	Index Exp
}

func (a *ArrayRead) String() string { return fmt.Sprintf("%s[%s]", a.Base, a.Index) }

// ArraySlice reads a fixed-length contiguous slice: arr[start, len:length]
// (DWScript/Ziria-style "length" slicing, not Go's half-open range).
type ArraySlice struct {
	Meta
	Base   Exp
	Start  Exp
	Length int
}

func (a *ArraySlice) String() string {
	return fmt.Sprintf("%s[%s, len:%d]", a.Base, a.Start, a.Length)
}

// ArraySliceVar reads a slice whose length is a meta-variable bound at the
// enclosing function's call site rather than a static constant.
type ArraySliceVar struct {
	Meta
	Base   Exp
	Start  Exp
	LenVar string
}

func (a *ArraySliceVar) String() string {
	return fmt.Sprintf("%s[%s, len:%s]", a.Base, a.Start, a.LenVar)
}

// FieldInit is one (name, value) pair of a StructLit.
type FieldInit struct {
	Name  string
	Value Exp
}

// StructLit constructs a nominal struct value field by field.
type StructLit struct {
	Meta
	TypeName string
	Fields   []FieldInit
}

func (s *StructLit) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Value)
	}
	return s.TypeName + "{" + strings.Join(parts, ", ") + "}"
}

// FieldAccess projects a single field out of a struct-typed expression.
// For the four dedicated complex variants, Field is "re" or "im".
type FieldAccess struct {
	Meta
	Base  Exp
	Field string
}

func (f *FieldAccess) String() string { return fmt.Sprintf("%s.%s", f.Base, f.Field) }

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	Neg UnaryOp = iota
	Not
	BitNot
	Length
	Cast // Cast uses UnaryExpr.CastTo for the destination type
)

func (op UnaryOp) String() string {
	switch op {
	case Neg:
		return "-"
	case Not:
		return "not"
	case BitNot:
		return "~"
	case Length:
		return "length"
	case Cast:
		return "cast"
	default:
		return "?"
	}
}

// UnaryExpr applies a unary operator or cast to X.
type UnaryExpr struct {
	Meta
	Op     UnaryOp
	X      Exp
	CastTo typesys.Type // meaningful only when Op == Cast
}

func (u *UnaryExpr) String() string {
	if u.Op == Cast {
		return fmt.Sprintf("cast<%s>(%s)", u.CastTo, u.X)
	}
	return fmt.Sprintf("%s(%s)", u.Op, u.X)
}

// BinaryOp enumerates the binary operators.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div  // integer division, truncating toward zero
	Rem
	FDiv // floating division
	Pow
	Shl
	Shr
	BitAnd
	BitOr
	BitXor
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
)

var binaryOpNames = map[BinaryOp]string{
	Add: "+", Sub: "-", Mul: "*", Div: "div", Rem: "rem", FDiv: "/", Pow: "**",
	Shl: "<<", Shr: ">>", BitAnd: "&", BitOr: "|", BitXor: "^",
	Eq: "=", Ne: "<>", Lt: "<", Le: "<=", Gt: ">", Ge: ">=", And: "and", Or: "or",
}

func (op BinaryOp) String() string { return binaryOpNames[op] }

// BinaryExpr applies a binary operator to (L, R).
type BinaryExpr struct {
	Meta
	Op   BinaryOp
	L, R Exp
}

func (b *BinaryExpr) String() string { return fmt.Sprintf("(%s %s %s)", b.L, b.Op, b.R) }

// Let is an immutable binding: `let x = e1 in e2` (force-inline / no-inline
// / auto per Mode).
type Let struct {
	Meta
	Name     string
	UniqueID string
	Mode     InlineMode
	Init     Exp
	Body     Exp
}

func (l *Let) String() string {
	return fmt.Sprintf("let %s(%s) = %s in %s", l.Name, l.Mode, l.Init, l.Body)
}

// LetRef is a mutable-variable binding, possibly without an explicit
// initialiser (legal only when VarType is fully ground).
type LetRef struct {
	Meta
	Name     string
	UniqueID string
	VarType  typesys.Type
	Init     Exp // nil when relying on the implicit default
	Body     Exp
}

func (l *LetRef) String() string {
	if l.Init == nil {
		return fmt.Sprintf("var %s: %s in %s", l.Name, l.VarType, l.Body)
	}
	return fmt.Sprintf("var %s: %s := %s in %s", l.Name, l.VarType, l.Init, l.Body)
}

// Selector is one step of an assignment's dereference path, following the
// head variable.
type Selector interface {
	fmt.Stringer
	selectorNode()
}

type IndexSelector struct{ Index Exp }

func (IndexSelector) selectorNode()   {}
func (s IndexSelector) String() string { return fmt.Sprintf("[%s]", s.Index) }

type SliceSelector struct {
	Start  Exp
	Length int
}

func (SliceSelector) selectorNode() {}
func (s SliceSelector) String() string {
	return fmt.Sprintf("[%s, len:%d]", s.Start, s.Length)
}

type FieldSelector struct{ Field string }

func (FieldSelector) selectorNode()   {}
func (s FieldSelector) String() string { return "." + s.Field }

// LValue is a head variable followed by zero or more selectors.
type LValue struct {
	UniqueID  string
	Name      string
	Selectors []Selector
}

func (l LValue) String() string {
	var sb strings.Builder
	sb.WriteString(l.Name)
	for _, s := range l.Selectors {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Assign is `lvalue := value`. An LValue whose
// sole selector is an array index is still represented by ArrayWrite, not
// Assign — Assign's Selectors never contain a bare single IndexSelector
// whose Base is the full path (see ArrayWrite).
type Assign struct {
	Meta
	Target LValue
	Value  Exp
}

func (a *Assign) String() string { return fmt.Sprintf("%s := %s", a.Target, a.Value) }

// ArrayWrite is the distinct node for `arr[i] := v`, kept separate from
// Assign because of code-generation issue #88: naively
// rewriting it through an array-read node corrupts the generated C.
type ArrayWrite struct {
	Meta
	Array Exp
	Index Exp
	Value Exp
}

func (a *ArrayWrite) String() string {
	return fmt.Sprintf("%s[%s] := %s", a.Array, a.Index, a.Value)
}

// ExpSeq sequences two expressions for effect, discarding First's value
// (which must be Unit).
type ExpSeq struct {
	Meta
	First  Exp
	Second Exp
}

func (s *ExpSeq) String() string { return fmt.Sprintf("%s; %s", s.First, s.Second) }

// If is a conditional expression.
type If struct {
	Meta
	Cond Exp
	Then Exp
	Else Exp
}

func (i *If) String() string {
	return fmt.Sprintf("if %s then %s else %s", i.Cond, i.Then, i.Else)
}

// For is a counted loop `for i in start..start+count do body`.
type For struct {
	Meta
	Var      string
	UniqueID string
	Start    Exp
	Count    Exp
	Unroll   UnrollHint
	Body     Exp
}

func (f *For) String() string {
	return fmt.Sprintf("for %s in %s..+%s do %s", f.Var, f.Start, f.Count, f.Body)
}

// ExpWhile is an unbounded loop.
type ExpWhile struct {
	Meta
	Cond Exp
	Body Exp
}

func (w *ExpWhile) String() string { return fmt.Sprintf("while %s do %s", w.Cond, w.Body) }

// Call invokes a named function. Calls are always opaque to the evaluator
// the callee's body is never inlined here.
type Call struct {
	Meta
	Func string
	Args []Exp
}

func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Func, strings.Join(parts, ", "))
}

// Print is `print`/`println`. Print always residualises in partial mode
// the intent is to preserve the generated program's I/O order.
type Print struct {
	Meta
	Args    []Exp
	Newline bool
}

func (p *Print) String() string {
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	name := "print"
	if p.Newline {
		name = "println"
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ", "))
}

// ErrorExp raises a fatal error when reached during evaluation.
type ErrorExp struct {
	Meta
	Message string
}

func (e *ErrorExp) String() string { return fmt.Sprintf("error(%q)", e.Message) }

// LUTMarker flags a subexpression as a lookup-table candidate for the LUT
// extractor (an external collaborator). The evaluator never interprets it;
// reaching one during interpretation is KindUnsupported.
type LUTMarker struct {
	Meta
	Name string
	Body Exp
}

func (l *LUTMarker) String() string { return fmt.Sprintf("LUT[%s](%s)", l.Name, l.Body) }
