// Package typesys defines the (already-resolved) type language carried as
// annotations on AST nodes. The core never infers types; it only consumes
// the fully-resolved types a type checker upstream would have produced.
package typesys

import "fmt"

// Kind enumerates the scalar and compound type tags.
type Kind int

const (
	Unit Kind = iota
	Bit
	Bool
	String
	Double
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Complex8
	Complex16
	Complex32
	Complex64
	Array
	Struct
)

func (k Kind) String() string {
	switch k {
	case Unit:
		return "unit"
	case Bit:
		return "bit"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Double:
		return "double"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Complex8:
		return "complex8"
	case Complex16:
		return "complex16"
	case Complex32:
		return "complex32"
	case Complex64:
		return "complex64"
	case Array:
		return "array"
	case Struct:
		return "struct"
	default:
		return "?"
	}
}

// Type is the erased-at-runtime, carried-as-annotation type. Array and
// Struct carry extra shape information; all other kinds are fully described
// by Kind alone, so a bare Type{Kind: k} is the canonical scalar type.
type Type struct {
	Kind Kind

	// Array only.
	Elem   *Type
	Length int  // -1 when the length is a polymorphic meta-variable
	LenVar string

	// Struct only.
	Name   string
	Fields []Field
}

// Field is one (name, type) member of a nominal struct, in declaration
// order (order matters for the four dedicated complex-struct names, which
// are recognized positionally — see value.NewStruct).
type Field struct {
	Name string
	Type Type
}

// Scalar constructs the bare scalar type for kind k.
func Scalar(k Kind) Type { return Type{Kind: k} }

// NewArray constructs a fixed-length array type.
func NewArray(elem Type, length int) Type {
	return Type{Kind: Array, Elem: &elem, Length: length}
}

// NewArrayVar constructs an array type whose length is a meta-variable,
// resolved at a specific call site rather than statically fixed. Per
// a ref-let of such a type has no implicit default and must carry an
// explicit initialiser.
func NewArrayVar(elem Type, lenVar string) Type {
	return Type{Kind: Array, Elem: &elem, Length: -1, LenVar: lenVar}
}

// NewStruct constructs a nominal struct type.
func NewStruct(name string, fields ...Field) Type {
	return Type{Kind: Struct, Name: name, Fields: fields}
}

// IsInteger reports whether k is one of the eight signed/unsigned integer
// widths (bit and bool are deliberately excluded: the cast matrix treats them as a
// distinct cast source/target, not as integers for arithmetic purposes).
func (k Kind) IsInteger() bool {
	switch k {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

// IsSigned reports whether an integer kind is signed.
func (k Kind) IsSigned() bool {
	switch k {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// BitWidth returns the bit width of an integer or complex-integer kind.
func (k Kind) BitWidth() int {
	switch k {
	case Int8, Uint8, Complex8:
		return 8
	case Int16, Uint16, Complex16:
		return 16
	case Int32, Uint32, Complex32:
		return 32
	case Int64, Uint64, Complex64:
		return 64
	default:
		return 0
	}
}

// IsComplex reports whether k is one of the four complex-integer widths.
func (k Kind) IsComplex() bool {
	switch k {
	case Complex8, Complex16, Complex32, Complex64:
		return true
	default:
		return false
	}
}

// ComplexComponentKind returns the signed-integer kind used for the re/im
// components of a complex kind (a struct of two ints).
func (k Kind) ComplexComponentKind() Kind {
	switch k {
	case Complex8:
		return Int8
	case Complex16:
		return Int16
	case Complex32:
		return Int32
	case Complex64:
		return Int64
	default:
		panic(fmt.Sprintf("typesys: %s is not a complex kind", k))
	}
}

// IsGround reports whether a type is fully ground: a
// non-polymorphic array length and, recursively, a fully-known struct
// shape. Scalars are always ground.
func (t Type) IsGround() bool {
	switch t.Kind {
	case Array:
		return t.Length >= 0 && t.Elem.IsGround()
	case Struct:
		for _, f := range t.Fields {
			if !f.Type.IsGround() {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Equal reports structural equality of two types.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Array:
		return t.Length == other.Length && t.LenVar == other.LenVar && t.Elem.Equal(*other.Elem)
	case Struct:
		if t.Name != other.Name || len(t.Fields) != len(other.Fields) {
			return false
		}
		for i := range t.Fields {
			if t.Fields[i].Name != other.Fields[i].Name || !t.Fields[i].Type.Equal(other.Fields[i].Type) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.Kind {
	case Array:
		if t.Length >= 0 {
			return fmt.Sprintf("array[%d] of %s", t.Length, t.Elem)
		}
		return fmt.Sprintf("array[%s] of %s", t.LenVar, t.Elem)
	case Struct:
		return t.Name
	default:
		return t.Kind.String()
	}
}

// complexStructNames are the four nominal struct names that value
// construction special-cases to the dedicated complex tags.
var complexStructNames = map[string]Kind{
	"complex8":  Complex8,
	"complex16": Complex16,
	"complex32": Complex32,
	"complex64": Complex64,
}

// ComplexKindForStructName reports whether name is one of the four
// dedicated complex-struct names, and if so which complex Kind it denotes.
func ComplexKindForStructName(name string) (Kind, bool) {
	k, ok := complexStructNames[name]
	return k, ok
}
