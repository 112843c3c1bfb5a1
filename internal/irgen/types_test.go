package irgen

import (
	"testing"

	"github.com/llir/llvm/ir/types"

	"github.com/vladimir-sama/arx-lang/internal/externs"
)

func TestTypeOf(t *testing.T) {
	g := New(externs.NewTable())

	tests := []struct {
		name string
		want types.Type
	}{
		{"int", types.I32},
		{"bool", types.I1},
		{"float", types.Double},
		{"str", strType},
		{"string", strType},
		{"void", types.Void},
		{"int*", types.NewPointer(types.I32)},
		{"list int", g.listPtr},
		{"list", g.listPtr},
	}

	for _, tt := range tests {
		got, ok := g.typeOf(tt.name)
		if !ok {
			t.Errorf("typeOf(%q) not recognized", tt.name)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("typeOf(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}

	if _, ok := g.typeOf("banana"); ok {
		t.Error("typeOf should reject unknown type names")
	}
}

func TestTagOf(t *testing.T) {
	g := New(externs.NewTable())

	tests := []struct {
		typ  types.Type
		want string
	}{
		{types.I32, "int"},
		{types.I1, "bool"},
		{types.Double, "float"},
		{strType, "string"},
		{types.NewPointer(types.I32), "int*"},
		{g.listPtr, "list"},
		{types.I64, "void"},
		{types.Void, "void"},
	}

	for _, tt := range tests {
		if got := g.tagOf(tt.typ); got != tt.want {
			t.Errorf("tagOf(%v) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestSizeOf(t *testing.T) {
	list := types.NewStruct(types.NewPointer(types.I8), types.I32, types.I32, types.I64, types.I1)

	tests := []struct {
		typ  types.Type
		want int
	}{
		{types.I1, 1},
		{types.I8, 1},
		{types.I32, 4},
		{types.I64, 8},
		{types.Float, 4},
		{types.Double, 8},
		{strType, 8},
		{types.NewPointer(list), 8},
		{types.NewArray(4, types.I32), 16},
		{list, 25},
		{types.Void, 0},
	}

	for _, tt := range tests {
		if got := SizeOf(tt.typ); got != tt.want {
			t.Errorf("SizeOf(%v) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestIsPointerShaped(t *testing.T) {
	if !isPointerShaped(strType) {
		t.Error("string values are pointers")
	}
	if isPointerShaped(types.I32) || isPointerShaped(types.Double) {
		t.Error("scalar values are not pointers")
	}
}
