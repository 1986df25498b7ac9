package value

import (
	"sort"
	"strings"

	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

// MaxEagerInit is the length threshold past which the evaluator refuses to
// construct an array's implicit default value ("giving up on
// initialisation when length exceeds a threshold is a legitimate choice").
// Arrays at or under this size get an eagerly-materialisable zero default;
// larger ones force the owning ref-let to stay un-eliminable.
const MaxEagerInit = 2048

// Array is the sparse array value: a default element plus overrides
// for the non-default entries. Size is fixed at construction. Get on an
// explicit index is O(1) average (Go map); Set copies the k overrides into a
// new Array, so a write is O(k); NonDefault sorts the k indices first.
type Array struct {
	base
	Length    int
	Default   Value
	overrides map[int]Value
}

// NewArray builds a length-n array, all elements equal to def.
func NewArray(pos srcpos.Position, elem typesys.Type, length int, def Value) *Array {
	return &Array{
		base:    base{At: pos, Typ: typesys.NewArray(elem, length)},
		Length:  length,
		Default: def,
	}
}

// TooLargeForEagerInit reports whether an array of this length exceeds
// MaxEagerInit and therefore cannot receive a freshly materialised implicit
// default.
func TooLargeForEagerInit(length int) bool { return length > MaxEagerInit }

// Get returns the element at idx, which must be in [0, Length).
func (a *Array) Get(idx int) Value {
	if v, ok := a.overrides[idx]; ok {
		return v
	}
	return a.Default
}

// InBounds reports whether idx is a valid index for this array.
func (a *Array) InBounds(idx int) bool { return idx >= 0 && idx < a.Length }

// Set returns a new Array equal to a except that idx now holds v. The
// receiver is left untouched: values are immutable once constructed (the
// evaluator's mutable store holds the *identity* of the latest Array, not
// a mutation of a shared one).
func (a *Array) Set(idx int, v Value) *Array {
	next := &Array{base: a.base, Length: a.Length, Default: a.Default}
	next.overrides = make(map[int]Value, len(a.overrides)+1)
	for k, ov := range a.overrides {
		next.overrides[k] = ov
	}
	if v.Equal(a.Default) {
		delete(next.overrides, idx)
	} else {
		next.overrides[idx] = v
	}
	return next
}

// Slice returns a view array of length `length` starting at start. Per
// the whole-array fold, callers that can prove the slice covers the
// whole array should prefer returning the array itself; Slice here always
// builds the (possibly identical-looking) sub-array value.
func (a *Array) Slice(start, length int) *Array {
	next := &Array{
		base:      base{At: a.At, Typ: typesys.NewArray(*a.Typ.Elem, length)},
		Length:    length,
		Default:   a.Default,
		overrides: make(map[int]Value),
	}
	for i := 0; i < length; i++ {
		if v, ok := a.overrides[start+i]; ok {
			next.overrides[i] = v
		}
	}
	return next
}

// NonDefaultCount returns the number of overridden (non-default) entries.
func (a *Array) NonDefaultCount() int { return len(a.overrides) }

// NonDefault iterates the array's overrides in ascending index order,
// calling fn for each, in O(k log k) for k non-default entries.
func (a *Array) NonDefault(fn func(idx int, v Value)) {
	idxs := make([]int, 0, len(a.overrides))
	for idx := range a.overrides {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	for _, idx := range idxs {
		fn(idx, a.overrides[idx])
	}
}

func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < a.Length; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.Get(i).String())
	}
	sb.WriteString("]")
	return sb.String()
}

func (a *Array) Equal(other Value) bool {
	o, ok := other.(*Array)
	if !ok || o.Length != a.Length {
		return false
	}
	for i := 0; i < a.Length; i++ {
		if !a.Get(i).Equal(o.Get(i)) {
			return false
		}
	}
	return true
}

// Size is element-size * non-default-count (the default
// element is not materialised per-slot, so it contributes nothing).
func (a *Array) Size() int {
	elemSize := 1
	if a.Default != nil {
		elemSize = a.Default.Size()
	}
	return elemSize * a.NonDefaultCount()
}

func (a *Array) ToExp() ast.Exp {
	elems := make([]ast.Exp, a.Length)
	for i := 0; i < a.Length; i++ {
		elems[i] = a.Get(i).ToExp()
	}
	return &ast.ArrayLit{Meta: ast.Meta{At: a.At, Typ: a.Typ}, Elems: elems}
}
