package irgen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/vladimir-sama/arx-lang/internal/ast"
)

// Runtime entry points backing the list model. Lists are heap records;
// the compiler only emits the calls, allocation happens when the
// generated program runs.
const (
	symMalloc       = "malloc"
	symListCreate   = "core_list_create"
	symListLen      = "core_list_len"
	symListGet      = "core_list_get"
	symStringEqual  = "core_string_equal"
	symStringConcat = "core_string_concat"
)

// runtimeFunc declares a runtime helper once, memoized by symbol name.
func (g *Generator) runtimeFunc(symbol string, ret types.Type, params ...*ir.Param) *ir.Func {
	if fn, ok := g.funcs[symbol]; ok {
		return fn
	}
	fn := g.mod.NewFunc(symbol, ret, params...)
	g.funcs[symbol] = fn
	return fn
}

func (g *Generator) runtimeMalloc() *ir.Func {
	return g.runtimeFunc(symMalloc, strType, ir.NewParam("", types.I64))
}

// core_list_create(i8* data, i32 len, i32 elem_size, i1 ptr_elems) *List
func (g *Generator) runtimeListCreate() *ir.Func {
	return g.runtimeFunc(symListCreate, g.listPtr,
		ir.NewParam("", types.NewPointer(types.I8)),
		ir.NewParam("", types.I32),
		ir.NewParam("", types.I32),
		ir.NewParam("", types.I1))
}

// core_list_len(*List) i32
func (g *Generator) runtimeListLen() *ir.Func {
	return g.runtimeFunc(symListLen, types.I32, ir.NewParam("", g.listPtr))
}

// core_list_get(*List, i32) i8*: a pointer to the element at the index,
// or the element itself when elements are pointers.
func (g *Generator) runtimeListGet() *ir.Func {
	return g.runtimeFunc(symListGet, types.NewPointer(types.I8),
		ir.NewParam("", g.listPtr), ir.NewParam("", types.I32))
}

func (g *Generator) runtimeStringEqual() *ir.Func {
	return g.runtimeFunc(symStringEqual, types.I1,
		ir.NewParam("", strType), ir.NewParam("", strType))
}

func (g *Generator) runtimeStringConcat() *ir.Func {
	return g.runtimeFunc(symStringConcat, strType,
		ir.NewParam("", strType), ir.NewParam("", strType))
}

// lowerListLiteral materializes a list literal: heap-allocate
// count*size(T) bytes, copy each element to its byte offset, then build
// the record through the runtime constructor.
func (g *Generator) lowerListLiteral(st *fnState, elemType types.Type, lit *ast.ListLit) (value.Value, error) {
	elemSize := SizeOf(elemType)
	count := len(lit.Elems)

	data := st.block.NewCall(g.runtimeMalloc(),
		constant.NewInt(types.I64, int64(count*elemSize)))

	for i, expr := range lit.Elems {
		val, err := g.lowerExpr(st, expr)
		if err != nil {
			return nil, err
		}
		val = g.coerceElem(st, val, elemType)
		slot := st.block.NewGetElementPtr(types.I8, data,
			constant.NewInt(types.I64, int64(i*elemSize)))
		typed := st.block.NewBitCast(slot, types.NewPointer(elemType))
		st.block.NewStore(val, typed)
	}

	return st.block.NewCall(g.runtimeListCreate(), data,
		constant.NewInt(types.I32, int64(count)),
		constant.NewInt(types.I32, int64(elemSize)),
		constant.NewBool(isPointerShaped(elemType))), nil
}

// coerceElem dereferences an element value that is a pointer to the
// target element type rather than the type itself.
func (g *Generator) coerceElem(st *fnState, val value.Value, elemType types.Type) value.Value {
	if val.Type().Equal(elemType) {
		return val
	}
	if ptr, ok := val.Type().(*types.PointerType); ok && ptr.ElemType.Equal(elemType) {
		return st.block.NewLoad(elemType, val)
	}
	return val
}
