package irgen

import (
	"strings"

	"github.com/llir/llvm/ir/types"
)

// Pointer width of every supported target, in bytes.
const pointerSize = 8

// strType is the string representation: a pointer to NUL-terminated bytes.
var strType = types.NewPointer(types.I8)

// typeOf maps a source type name or descriptor tag onto its LLVM type.
func (g *Generator) typeOf(name string) (types.Type, bool) {
	switch name {
	case "int":
		return types.I32, true
	case "bool":
		return types.I1, true
	case "str", "string":
		return strType, true
	case "float":
		return types.Double, true
	case "void":
		return types.Void, true
	case "int*":
		return types.NewPointer(types.I32), true
	}
	if strings.HasPrefix(name, "list") {
		return g.listPtr, true
	}
	return nil, false
}

// tagOf maps an IR value type back onto a descriptor tag for overload
// lookup.
func (g *Generator) tagOf(t types.Type) string {
	switch tt := t.(type) {
	case *types.IntType:
		switch tt.BitSize {
		case 1:
			return "bool"
		case 32:
			return "int"
		}
	case *types.FloatType:
		if tt.Kind == types.FloatKindDouble {
			return "float"
		}
	case *types.PointerType:
		if tt.ElemType == g.listType {
			return "list"
		}
		if elem, ok := tt.ElemType.(*types.IntType); ok && elem.BitSize == 32 {
			return "int*"
		}
		return "string"
	}
	return "void"
}

// isPointerShaped reports whether values of t are themselves heap
// pointers. Iteration reinterprets such list elements directly instead of
// loading through them.
func isPointerShaped(t types.Type) bool {
	_, ok := t.(*types.PointerType)
	return ok
}

// SizeOf returns the ABI byte size of a type: fixed scalar widths, one
// machine word per pointer, aggregates summed or multiplied recursively.
func SizeOf(t types.Type) int {
	switch tt := t.(type) {
	case *types.IntType:
		if tt.BitSize == 1 {
			return 1
		}
		return int(tt.BitSize) / 8
	case *types.FloatType:
		switch tt.Kind {
		case types.FloatKindFloat:
			return 4
		default:
			return 8
		}
	case *types.PointerType:
		return pointerSize
	case *types.ArrayType:
		return int(tt.Len) * SizeOf(tt.ElemType)
	case *types.StructType:
		total := 0
		for _, field := range tt.Fields {
			total += SizeOf(field)
		}
		return total
	default:
		return 0
	}
}
