package eval

import (
	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/diag"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/value"
)

// PrintEntry is one recorded print/println call.
type PrintEntry struct {
	Newline bool
	Values  []value.Value
}

// Evaluator runs the mode-parametric traversal over one ast.Exp
// tree. It is single-threaded and cooperative: interpret either reduces a
// node to a value or residualises it, never blocks.
type Evaluator struct {
	mode     Mode
	cfg      Config
	mutable  *MutableStore
	guesses  *GuessStore
	stats    *value.Stats
	printLog []PrintEntry
	depth    int
}

// New returns an Evaluator ready to interpret a tree in the given mode.
func New(mode Mode, cfg Config) *Evaluator {
	return &Evaluator{
		mode:    mode,
		cfg:     cfg,
		mutable: NewMutableStore(),
		guesses: NewGuessStore(),
		stats:   value.NewStats(),
	}
}

// Mutable exposes the evaluator's mutable-variable store, e.g. for a driver
// that wants to seed initial ref-let state before running.
func (ev *Evaluator) Mutable() *MutableStore { return ev.mutable }

// Stats returns the per-variable maximum-size tracker accumulated so far.
func (ev *Evaluator) Stats() *value.Stats { return ev.stats }

// PrintLog returns the ordered print/println record accumulated so far.
func (ev *Evaluator) PrintLog() []PrintEntry { return ev.printLog }

// clone returns a new Evaluator with independent mutable and guess state,
// sharing cfg/mode/stats, for non-deterministic branch forking. Stats is shared because "maximum observed size" is a
// monotone property across every explored alternative, not per-branch.
func (ev *Evaluator) clone() *Evaluator {
	mutableSnap := ev.mutable.Snapshot()
	next := &Evaluator{
		mode:    ev.mode,
		cfg:     ev.cfg,
		mutable: NewMutableStore(),
		guesses: ev.guesses.Clone(),
		stats:   ev.stats,
		depth:   ev.depth,
	}
	next.mutable.Restore(mutableSnap)
	next.printLog = append([]PrintEntry(nil), ev.printLog...)
	return next
}

// Eval interprets e from an empty scope and, in Full mode, returns an error
// if anything fails to reduce; in Partial mode, returns a possibly-residual
// result, failing only on fatal errors such as an out-of-bounds access, a
// type mismatch or exceeding MaxRecursionDepth. Use EvalNonDet in NonDet mode.
func (ev *Evaluator) Eval(e ast.Exp) (Evald, error) {
	return ev.interpret(NewScope(), e)
}

// Alt is one alternative produced by a non-deterministic evaluation,
// carrying the guess store that led to it (for Provable/Implies, and for a
// caller that wants to render the assumed path).
type Alt struct {
	Evald   Evald
	Guesses *GuessStore
}

// EvalNonDet interprets e from an empty scope, enumerating every
// alternative reachable by guessing unresolved boolean conditions. The
// receiver must have been constructed with mode NonDet.
func (ev *Evaluator) EvalNonDet(e ast.Exp) ([]Alt, error) {
	return ev.evalNonDetFrom(NewScope(), e)
}

func (ev *Evaluator) evalNonDetFrom(scope *Scope, e ast.Exp) ([]Alt, error) {
	branches, err := ev.forkingInterpret(scope, e)
	if err != nil {
		return nil, err
	}
	if len(branches) > ev.cfg.MaxNonDetBranches {
		branches = branches[:ev.cfg.MaxNonDetBranches]
	}
	return branches, nil
}

func (ev *Evaluator) recordPrint(newline bool, vals []value.Value) {
	ev.printLog = append(ev.printLog, PrintEntry{Newline: newline, Values: vals})
}

func freeVariable(e ast.Exp) error {
	return diag.New(diag.KindFreeVariable, e.Pos(), "free variable: %s did not reduce to a value", e)
}

func unsupported(e ast.Exp, what string) error {
	return diag.New(diag.KindUnsupported, e.Pos(), "unsupported: %s", what)
}

// depthGuard increments the recursion counter and returns a function that
// decrements it, erroring out first if the bound configured in Config would
// be exceeded.
func (ev *Evaluator) depthGuard(pos srcpos.Position) (func(), error) {
	if ev.depth >= ev.cfg.MaxRecursionDepth {
		return func() {}, diag.New(diag.KindUnsupported, pos, "maximum evaluator recursion depth (%d) exceeded", ev.cfg.MaxRecursionDepth)
	}
	ev.depth++
	return func() { ev.depth-- }, nil
}
