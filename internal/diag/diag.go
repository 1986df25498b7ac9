// Package diag formats core diagnostics with source context, modeled on the
// compiler's own error-reporting conventions: a message, a position, and a
// caret-pointing excerpt of the offending source line.
package diag

import (
	"fmt"
	"strings"

	"github.com/flowc-lang/flowc/internal/srcpos"
	"golang.org/x/text/cases"
)

// Kind classifies a diagnostic per the error taxonomy of the evaluator and
// task splitter. Every fatal error raised by the core carries one of these.
type Kind int

const (
	// KindFreeVariable is raised by full-mode evaluation when it reaches a
	// subexpression it cannot reduce to a value.
	KindFreeVariable Kind = iota
	// KindOutOfBounds is raised by an array read/write whose index falls
	// outside the array's statically known bounds.
	KindOutOfBounds
	// KindTypeMismatch marks an operator or cast applied to an operand
	// combination the type checker should already have rejected; it is
	// always treated as a compiler bug, never a user-facing error.
	KindTypeMismatch
	// KindUnsupported marks a construct the core deliberately does not
	// implement (a LUT marker reaching the evaluator, a barrier nested
	// inside a loop reaching the task splitter).
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindFreeVariable:
		return "free variable"
	case KindOutOfBounds:
		return "out of bounds"
	case KindTypeMismatch:
		return "type mismatch"
	case KindUnsupported:
		return "unsupported"
	default:
		return "error"
	}
}

// Diagnostic is a single fatal error with enough context to point a human
// at the offending source. Source and Expr are optional; without Source,
// Format prints only the "Error (kind)" header (plus " at pos" for a valid
// position) followed by the message.
type Diagnostic struct {
	Kind    Kind
	Message string
	Pos     srcpos.Position
	Source  string // full source text, for excerpt rendering
	Expr    string // the offending expression's textual form, if known
}

// New creates a Diagnostic of the given kind.
func New(kind Kind, pos srcpos.Position, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic with an optional ANSI-colored caret pointing
// at the source column, falling back to a plain message when no source text
// was attached (the common case for diagnostics raised deep inside the
// evaluator, which only sees an already-typed AST, not the original file).
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	if d.Pos.IsValid() {
		sb.WriteString(fmt.Sprintf("Error (%s) at %s\n", d.Kind, d.Pos))
	} else {
		sb.WriteString(fmt.Sprintf("Error (%s)\n", d.Kind))
	}

	if line := d.sourceLine(d.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", d.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+d.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(d.Message)
	if d.Expr != "" {
		sb.WriteString(": ")
		sb.WriteString(d.Expr)
	}
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (d *Diagnostic) sourceLine(line int) string {
	if d.Source == "" || line < 1 {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// dedupeFold normalizes a diagnostic's offending-expression text for
// grouping repeated errors that differ only in the casing of an external
// primitive's name (the evaluator treats external call names
// case-sensitively, but duplicate-diagnostic collapsing in batch reports
// should not be confused by a caller that re-cased a primitive).
var dedupeFold = cases.Fold()

// DedupeKey returns a normalized key for grouping diagnostics that are
// "the same" error modulo identifier casing in the offending expression.
func DedupeKey(d *Diagnostic) string {
	return fmt.Sprintf("%s|%s|%s", d.Kind, d.Pos, dedupeFold.String(d.Expr))
}

// Collapse groups a slice of diagnostics by DedupeKey, returning one
// representative per group in first-seen order along with its count.
func Collapse(diags []*Diagnostic) []struct {
	Diagnostic *Diagnostic
	Count      int
} {
	order := make([]string, 0, len(diags))
	byKey := make(map[string]*Diagnostic)
	counts := make(map[string]int)
	for _, d := range diags {
		k := DedupeKey(d)
		if _, ok := byKey[k]; !ok {
			byKey[k] = d
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]struct {
		Diagnostic *Diagnostic
		Count      int
	}, 0, len(order))
	for _, k := range order {
		out = append(out, struct {
			Diagnostic *Diagnostic
			Count      int
		}{byKey[k], counts[k]})
	}
	return out
}
