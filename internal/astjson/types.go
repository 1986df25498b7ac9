// Package astjson is the on-disk fixture format for the `flowc` CLI and
// this repository's tests: JSON encoding/decoding of typesys.Type and
// ast.Exp/ast.Comp trees, one JSON object per node with a discriminant
// "node" field per variant, built on github.com/tidwall/gjson (decode) and
// github.com/tidwall/sjson (encode). Fixtures live under testdata/ as plain
// JSON files; the textual front end that would normally produce an AST is
// out of scope for this repository, so fixtures are the only input format
// besides building an ast.Exp/ast.Comp directly in Go.
package astjson

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/flowc-lang/flowc/internal/typesys"
)

// kindNames mirrors typesys.Kind.String() for the scalar kinds that appear
// literally in fixtures (array/struct are handled structurally, not by
// name).
var kindNames = map[string]typesys.Kind{
	"unit": typesys.Unit, "bit": typesys.Bit, "bool": typesys.Bool,
	"string": typesys.String, "double": typesys.Double,
	"int8": typesys.Int8, "int16": typesys.Int16, "int32": typesys.Int32, "int64": typesys.Int64,
	"uint8": typesys.Uint8, "uint16": typesys.Uint16, "uint32": typesys.Uint32, "uint64": typesys.Uint64,
	"complex8": typesys.Complex8, "complex16": typesys.Complex16,
	"complex32": typesys.Complex32, "complex64": typesys.Complex64,
}

// EncodeType renders t as a JSON object, built incrementally with sjson so
// that nested element/field types are spliced in as raw JSON rather than
// re-escaped strings.
func EncodeType(t typesys.Type) (string, error) {
	switch t.Kind {
	case typesys.Array:
		doc, err := sjson.Set("{}", "kind", "array")
		if err != nil {
			return "", err
		}
		elemJSON, err := EncodeType(*t.Elem)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, "elem", elemJSON)
		if err != nil {
			return "", err
		}
		if t.LenVar != "" {
			return sjson.Set(doc, "lenVar", t.LenVar)
		}
		return sjson.Set(doc, "length", t.Length)
	case typesys.Struct:
		doc, err := sjson.Set("{}", "kind", "struct")
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "name", t.Name)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, "fields", []any{})
		if err != nil {
			return "", err
		}
		for i, f := range t.Fields {
			fieldJSON, err := EncodeType(f.Type)
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, fmt.Sprintf("fields.%d.name", i), f.Name)
			if err != nil {
				return "", err
			}
			doc, err = sjson.SetRaw(doc, fmt.Sprintf("fields.%d.type", i), fieldJSON)
			if err != nil {
				return "", err
			}
		}
		return doc, nil
	default:
		return sjson.Set("{}", "kind", t.Kind.String())
	}
}

// DecodeType parses a JSON type object using gjson field lookups.
func DecodeType(json string) (typesys.Type, error) {
	root := gjson.Parse(json)
	return decodeTypeResult(root)
}

func decodeTypeResult(root gjson.Result) (typesys.Type, error) {
	kind := root.Get("kind").String()
	switch kind {
	case "array":
		elem, err := decodeTypeResult(root.Get("elem"))
		if err != nil {
			return typesys.Type{}, err
		}
		if lv := root.Get("lenVar"); lv.Exists() {
			return typesys.NewArrayVar(elem, lv.String()), nil
		}
		return typesys.NewArray(elem, int(root.Get("length").Int())), nil
	case "struct":
		name := root.Get("name").String()
		var fields []typesys.Field
		for _, f := range root.Get("fields").Array() {
			ft, err := decodeTypeResult(f.Get("type"))
			if err != nil {
				return typesys.Type{}, err
			}
			fields = append(fields, typesys.Field{Name: f.Get("name").String(), Type: ft})
		}
		return typesys.NewStruct(name, fields...), nil
	default:
		k, ok := kindNames[kind]
		if !ok {
			return typesys.Type{}, fmt.Errorf("astjson: unknown type kind %q", kind)
		}
		return typesys.Scalar(k), nil
	}
}
