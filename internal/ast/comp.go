package ast

import (
	"fmt"
	"strings"

	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

// Comp is any node of the stream-computation language.
type Comp interface {
	fmt.Stringer
	Pos() srcpos.Position
	compNode()
}

type CompMeta struct {
	At srcpos.Position
}

func (b CompMeta) Pos() srcpos.Position { return b.At }
func (CompMeta) compNode()              {}

// CompRef refers to a previously bound comp-level variable (the result of
// a BindMany arm).
type CompRef struct {
	CompMeta
	UniqueID string
	Name     string
}

func (r *CompRef) String() string { return r.Name }

// BindArm is one `x <- c` arm of a BindMany.
type BindArm struct {
	Var      string
	UniqueID string
	Comp     Comp
}

// BindMany is the n-ary monadic bind `x1 <- c1; x2 <- c2; ...; cn`. Per
// construction it always has at least one arm (an empty bind normalises to
// its head) and is never nested (a bind's head is never
// itself a BindMany — NewBindMany enforces this by flattening).
type BindMany struct {
	CompMeta
	Head Comp
	Arms []BindArm
}

// NewBindMany constructs a BindMany, flattening a BindMany head per
// flattening nested binds and collapsing an empty arm list to the head.
func NewBindMany(pos srcpos.Position, head Comp, arms []BindArm) Comp {
	if len(arms) == 0 {
		return head
	}
	if inner, ok := head.(*BindMany); ok {
		flat := make([]BindArm, 0, len(inner.Arms)+len(arms))
		flat = append(flat, inner.Arms...)
		flat = append(flat, arms...)
		return &BindMany{CompMeta: CompMeta{At: pos}, Head: inner.Head, Arms: flat}
	}
	return &BindMany{CompMeta: CompMeta{At: pos}, Head: head, Arms: arms}
}

func (b *BindMany) String() string {
	var sb strings.Builder
	sb.WriteString(b.Head.String())
	for _, a := range b.Arms {
		sb.WriteString(fmt.Sprintf("; %s <- %s", a.Var, a.Comp))
	}
	return sb.String()
}

// Seq is sequential composition of comps for effect.
type Seq struct {
	CompMeta
	Comps []Comp
}

func (s *Seq) String() string {
	parts := make([]string, len(s.Comps))
	for i, c := range s.Comps {
		parts[i] = c.String()
	}
	return strings.Join(parts, " >>> ")
}

// PipelineMode controls whether a Par's stages run as separate tasks.
type PipelineMode int

const (
	PipelineMaybe PipelineMode = iota
	PipelineAlways
	PipelineNever
)

// PipelineHint annotates a Par node.
type PipelineHint struct {
	Mode        PipelineMode
	BurstSizes  []int // optional, one per seam
}

// Par is pipeline composition of two comps; well-typedness requires a's
// output element type to equal b's input element type (checked upstream,
// not re-checked here).
type Par struct {
	CompMeta
	A, B Comp
	Hint PipelineHint
}

func (p *Par) String() string { return fmt.Sprintf("(%s |>>>| %s)", p.A, p.B) }

// LetE is an expression-level let at comp level: `let x = e in c`.
type LetE struct {
	CompMeta
	Name     string
	UniqueID string
	Init     Exp
	Body     Comp
}

func (l *LetE) String() string { return fmt.Sprintf("let %s = %s in %s", l.Name, l.Init, l.Body) }

// LetERef is a mutable ref-let at comp level.
type LetERef struct {
	CompMeta
	Name     string
	UniqueID string
	VarType  typesys.Type
	Init     Exp
	Body     Comp
}

func (l *LetERef) String() string {
	return fmt.Sprintf("var %s: %s in %s", l.Name, l.VarType, l.Body)
}

// Param is one formal parameter of a LetFunE/LetFunC function.
type Param struct {
	Name string
	Type typesys.Type
}

// LetFunE binds a named scalar-expression function, usable from Map/Filter
// and from Exp-level Call nodes reachable under this comp.
type LetFunE struct {
	CompMeta
	Name     string
	Params   []Param
	Ret      typesys.Type
	FnBody   Exp
	Cont     Comp
}

func (l *LetFunE) String() string { return fmt.Sprintf("fun %s(...) = %s in %s", l.Name, l.FnBody, l.Cont) }

// LetFunC binds a named comp function.
type LetFunC struct {
	CompMeta
	Name   string
	Params []Param
	FnBody Comp
	Cont   Comp
}

func (l *LetFunC) String() string {
	return fmt.Sprintf("comp fun %s(...) = %s in %s", l.Name, l.FnBody, l.Cont)
}

// LetStruct declares a nominal struct type visible in Cont.
type LetStruct struct {
	CompMeta
	Name   string
	Fields []typesys.Field
	Cont   Comp
}

func (l *LetStruct) String() string { return fmt.Sprintf("struct %s in %s", l.Name, l.Cont) }

// CallC invokes a named comp function with scalar and/or comp arguments.
type CallC struct {
	CompMeta
	Func     string
	Args     []Exp
	CompArgs []Comp
}

func (c *CallC) String() string { return fmt.Sprintf("%s(...)", c.Func) }

// Emit writes a single value downstream. Emits writes a batch.
type Emit struct {
	CompMeta
	Value Exp
}

func (e *Emit) String() string { return fmt.Sprintf("emit(%s)", e.Value) }

type Emits struct {
	CompMeta
	Value Exp
}

func (e *Emits) String() string { return fmt.Sprintf("emits(%s)", e.Value) }

// Return yields a computer's result without consuming or producing a
// stream element.
type Return struct {
	CompMeta
	Value Exp
}

func (r *Return) String() string { return fmt.Sprintf("return %s", r.Value) }

// Take reads a single upstream element. Takes reads a batch.
type Take struct{ CompMeta }

func (t *Take) String() string { return "take" }

type Takes struct {
	CompMeta
	Count int
}

func (t *Takes) String() string { return fmt.Sprintf("takes %d", t.Count) }

// Branch is a comp-level conditional.
type Branch struct {
	CompMeta
	Cond Exp
	Then Comp
	Else Comp
}

func (b *Branch) String() string {
	return fmt.Sprintf("if %s then %s else %s", b.Cond, b.Then, b.Else)
}

// Until/While/Times are the three comp-level loop forms. The task splitter
// rejects any of these that contains a barrier.
type Until struct {
	CompMeta
	Cond Exp
	Body Comp
}

func (u *Until) String() string { return fmt.Sprintf("until %s do %s", u.Cond, u.Body) }

type While struct {
	CompMeta
	Cond Exp
	Body Comp
}

func (w *While) String() string { return fmt.Sprintf("while %s do %s", w.Cond, w.Body) }

type Times struct {
	CompMeta
	Count Exp
	Body  Comp
}

func (t *Times) String() string { return fmt.Sprintf("times %s do %s", t.Count, t.Body) }

// Repeat lifts a computer (produces a final value and stops) into a
// transformer (runs forever, re-invoking Body after each result).
type Repeat struct {
	CompMeta
	Body Comp
}

func (r *Repeat) String() string { return fmt.Sprintf("repeat %s", r.Body) }

// VectComp annotates a comp with a vectorisation width hint for the (external)
// code generator; the core treats it as transparent.
type VectComp struct {
	CompMeta
	Width int
	Body  Comp
}

func (v *VectComp) String() string { return fmt.Sprintf("vect[%d](%s)", v.Width, v.Body) }

// Map/Filter are stateless transformers built directly from a pure scalar
// function, named by reference to a LetFunE/LetFunC binding in scope.
type Map struct {
	CompMeta
	Func string
}

func (m *Map) String() string { return fmt.Sprintf("map(%s)", m.Func) }

type Filter struct {
	CompMeta
	Func string
}

func (f *Filter) String() string { return fmt.Sprintf("filter(%s)", f.Func) }

// ReadSrc/WriteSnk are the external I/O endpoints of a top-level pipeline.
type ReadSrc struct {
	CompMeta
	ElemType typesys.Type
}

func (r *ReadSrc) String() string { return "read" }

type WriteSnk struct {
	CompMeta
	ElemType typesys.Type
}

func (w *WriteSnk) String() string { return "write" }

// QueueID identifies an inter-task queue allocated by the task splitter.
type QueueID int

// ReadPolicy tags a ReadInternal endpoint with its empty-queue behaviour
// ("Queue discipline" is the runtime's contract, not the splitter's).
type ReadPolicy int

const (
	// SpinOnEmpty blocks until data is available; used by auxiliary
	// standalone tasks.
	SpinOnEmpty ReadPolicy = iota
	// JumpToConsumeOnEmpty yields control back to the scheduler on an
	// empty read; used by the main (entry) task so it never deadlocks
	// waiting on a standalone producer that has not run yet.
	JumpToConsumeOnEmpty
)

// ReadInternal/WriteInternal are the inter-task queue endpoints the task
// splitter introduces at each barrier and pipeline seam.
type ReadInternal struct {
	CompMeta
	Queue    QueueID
	Policy   ReadPolicy
	ElemType typesys.Type
}

func (r *ReadInternal) String() string { return fmt.Sprintf("readInternal(q%d)", r.Queue) }

type WriteInternal struct {
	CompMeta
	Queue    QueueID
	ElemType typesys.Type
}

func (w *WriteInternal) String() string { return fmt.Sprintf("writeInternal(q%d)", w.Queue) }

// Standalone is the barrier marker. Nested Standalone nodes collapse:
// only the innermost defines the cut point.
type Standalone struct {
	CompMeta
	Body Comp
}

func (s *Standalone) String() string { return fmt.Sprintf("standalone(%s)", s.Body) }

// Mitigate rate-matches between array[m] T and array[n] T streams, where
// one of m, n divides the other.
type Mitigate struct {
	CompMeta
	InWidth  int
	OutWidth int
	Elem     typesys.Type
}

func (m *Mitigate) String() string {
	return fmt.Sprintf("mitigate[%d->%d]", m.InWidth, m.OutWidth)
}

// TaskID is an opaque identifier the task splitter assigns to each task it
// produces. Callers must not assume any ordering or numeric meaning beyond
// identity.
type TaskID int

// Placement is the scheduling hint attached to a task.
type Placement int

const (
	PlacementUnspecified Placement = iota
	PlacementShared
	PlacementAlone
)

func (p Placement) String() string {
	switch p {
	case PlacementAlone:
		return "alone"
	case PlacementShared:
		return "shared"
	default:
		return "unspecified"
	}
}

// ActivateTask is the stub the task splitter emits in place of a barrier:
// "start (or resume) this task, optionally feeding it InputVar, and
// continue". It never appears in source-level Comp trees, only in the
// splitter's output.
type ActivateTask struct {
	CompMeta
	Task     TaskID
	InputVar string // empty when the barrier bound no continuation variable
}

func (a *ActivateTask) String() string {
	if a.InputVar == "" {
		return fmt.Sprintf("activate(task%d)", a.Task)
	}
	return fmt.Sprintf("activate(task%d, %s)", a.Task, a.InputVar)
}
