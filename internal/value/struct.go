package value

import (
	"fmt"
	"strings"

	"github.com/flowc-lang/flowc/internal/ast"
	"github.com/flowc-lang/flowc/internal/srcpos"
	"github.com/flowc-lang/flowc/internal/typesys"
)

// FieldVal is one (name, value) member of a Struct, in declaration order.
type FieldVal struct {
	Name  string
	Value Value
}

// Struct is the nominal struct variant carrying its type name and an
// ordered field list.
type Struct struct {
	base
	TypeName string
	Fields   []FieldVal
}

// NewStruct builds a struct value, special-casing the four dedicated
// complex-struct names to the Complex variant instead ("from (struct
// type, field-value assoc) produces the struct variant, special-casing the
// four complex struct names to the dedicated complex tags").
//
// Callers that already know they have a complex struct should call
// NewComplex directly; NewStruct exists for the generic struct-construction
// path (e.g. StructLit evaluation) which does not know the name in advance.
func NewStruct(pos srcpos.Position, typeName string, fields []FieldVal) Value {
	if k, ok := typesys.ComplexKindForStructName(typeName); ok && len(fields) == 2 {
		re, im := fieldAsInt(fields, 0), fieldAsInt(fields, 1)
		return NewComplex(pos, k, re, im)
	}
	fieldTypes := make([]typesys.Field, len(fields))
	for i, f := range fields {
		fieldTypes[i] = typesys.Field{Name: f.Name, Type: f.Value.Type()}
	}
	return &Struct{
		base:     base{At: pos, Typ: typesys.NewStruct(typeName, fieldTypes...)},
		TypeName: typeName,
		Fields:   fields,
	}
}

func fieldAsInt(fields []FieldVal, idx int) int64 {
	if iv, ok := fields[idx].Value.(*Int); ok {
		return iv.Val
	}
	return 0
}

// Field looks up a field by name. Complex-struct projection on "re"/"im" is
// handled by the caller dispatching to *Complex directly, since a Complex
// value never reaches here as a Struct.
func (s *Struct) Field(name string) (Value, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// WithField returns a copy of s with field name replaced by v.
func (s *Struct) WithField(name string, v Value) *Struct {
	next := &Struct{base: s.base, TypeName: s.TypeName, Fields: make([]FieldVal, len(s.Fields))}
	copy(next.Fields, s.Fields)
	for i, f := range next.Fields {
		if f.Name == name {
			next.Fields[i].Value = v
			return next
		}
	}
	return next
}

func (s *Struct) String() string {
	parts := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Value)
	}
	return s.TypeName + "{" + strings.Join(parts, ", ") + "}"
}

func (s *Struct) Equal(other Value) bool {
	o, ok := other.(*Struct)
	if !ok || o.TypeName != s.TypeName || len(o.Fields) != len(s.Fields) {
		return false
	}
	for i := range s.Fields {
		if s.Fields[i].Name != o.Fields[i].Name || !s.Fields[i].Value.Equal(o.Fields[i].Value) {
			return false
		}
	}
	return true
}

// Size is the sum over fields.
func (s *Struct) Size() int {
	total := 0
	for _, f := range s.Fields {
		total += f.Value.Size()
	}
	return total
}

func (s *Struct) ToExp() ast.Exp {
	fields := make([]ast.FieldInit, len(s.Fields))
	for i, f := range s.Fields {
		fields[i] = ast.FieldInit{Name: f.Name, Value: f.Value.ToExp()}
	}
	return &ast.StructLit{Meta: ast.Meta{At: s.At, Typ: s.Typ}, TypeName: s.TypeName, Fields: fields}
}
