package astjson

import (
	"testing"

	"github.com/flowc-lang/flowc/internal/typesys"
)

func roundTripType(t *testing.T, typ typesys.Type) typesys.Type {
	t.Helper()
	doc, err := EncodeType(typ)
	if err != nil {
		t.Fatalf("EncodeType: %v", err)
	}
	got, err := DecodeType(doc)
	if err != nil {
		t.Fatalf("DecodeType(%s): %v", doc, err)
	}
	return got
}

func TestScalarTypeRoundTrip(t *testing.T) {
	for name, k := range kindNames {
		got := roundTripType(t, typesys.Scalar(k))
		if !got.Equal(typesys.Scalar(k)) {
			t.Errorf("round-trip of %s produced %s", name, got)
		}
	}
}

func TestFixedArrayTypeRoundTrip(t *testing.T) {
	want := typesys.NewArray(typesys.Scalar(typesys.Int32), 16)
	got := roundTripType(t, want)
	if !got.Equal(want) {
		t.Errorf("round-tripped array = %s, want %s", got, want)
	}
	if got.Length != 16 {
		t.Errorf("length = %d, want 16", got.Length)
	}
}

func TestPolymorphicArrayTypeRoundTrip(t *testing.T) {
	want := typesys.NewArrayVar(typesys.Scalar(typesys.Double), "N")
	got := roundTripType(t, want)
	if !got.Equal(want) {
		t.Errorf("round-tripped array var = %s, want %s", got, want)
	}
	if got.LenVar != "N" || got.Length >= 0 {
		t.Errorf("lenVar = %q length = %d, want \"N\" and a negative length", got.LenVar, got.Length)
	}
}

func TestStructTypeRoundTrip(t *testing.T) {
	want := typesys.NewStruct("IQSample",
		typesys.Field{Name: "i", Type: typesys.Scalar(typesys.Int16)},
		typesys.Field{Name: "q", Type: typesys.Scalar(typesys.Int16)},
	)
	got := roundTripType(t, want)
	if !got.Equal(want) {
		t.Errorf("round-tripped struct = %s, want %s", got, want)
	}
}

func TestNestedArrayOfStructRoundTrip(t *testing.T) {
	elem := typesys.NewStruct("Frame", typesys.Field{Name: "seq", Type: typesys.Scalar(typesys.Uint32)})
	want := typesys.NewArray(elem, 8)
	got := roundTripType(t, want)
	if !got.Equal(want) {
		t.Errorf("round-tripped array-of-struct = %s, want %s", got, want)
	}
}

func TestDecodeTypeUnknownKindErrors(t *testing.T) {
	if _, err := DecodeType(`{"kind":"bogus"}`); err == nil {
		t.Error("expected an error for an unrecognized type kind")
	}
}
