// Package irgen lowers the frontend's typed AST into LLVM IR. The
// generated module is handed to an external static compiler; irgen itself
// performs no optimization and runs in a single sequential pass.
package irgen

import (
	"runtime"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/pkg/errors"

	"github.com/vladimir-sama/arx-lang/internal/ast"
	"github.com/vladimir-sama/arx-lang/internal/diagnostics"
	"github.com/vladimir-sama/arx-lang/internal/externs"
)

// DefaultEntry is the function the frontend emits for top-level code; a
// C-compatible main wrapping it is appended when it exists.
const DefaultEntry = "_exec"

// Generator lowers one compilation unit into one LLVM module.
type Generator struct {
	mod   *ir.Module
	table *externs.Table

	// The module-wide List record: { i8* data, i32 len, i32 elem_size,
	// i64 reserved, i1 ptr_elems }.
	listType *types.StructType
	listPtr  *types.PointerType

	// funcs memoizes every declared function (unit functions, runtime
	// helpers, extern targets) by symbol name.
	funcs map[string]*ir.Func

	strCount int
	entry    string
}

// binding is one entry of the flat per-function symbol table. Every
// variable lives in a typed stack slot; list variables hold their record
// pointer in the slot like any other value.
type binding struct {
	typ  types.Type
	slot *ir.InstAlloca
}

// fnState is the mutable lowering context of a single function.
type fnState struct {
	fn      *ir.Func
	fnName  string
	block   *ir.Block
	retType types.Type
	vars    map[string]*binding

	// LIFO loop context: break/continue resolve to the top entries.
	breaks    []*ir.Block
	continues []*ir.Block

	ifCount   int
	loopCount int
}

// New creates a generator over a fresh module. The List record type is
// registered immediately; it must exist before any list value is
// produced.
func New(table *externs.Table) *Generator {
	mod := ir.NewModule()
	mod.TargetTriple = DefaultTriple()

	g := &Generator{
		mod:   mod,
		table: table,
		funcs: make(map[string]*ir.Func),
		entry: DefaultEntry,
	}

	st := types.NewStruct(types.NewPointer(types.I8), types.I32, types.I32, types.I64, types.I1)
	g.mod.NewTypeDef("List", st)
	g.listType = st
	g.listPtr = types.NewPointer(st)
	return g
}

// SetEntry overrides the entry function name wrapped by the emitted C
// main.
func (g *Generator) SetEntry(name string) {
	g.entry = name
}

// Module returns the module under construction.
func (g *Generator) Module() *ir.Module {
	return g.mod
}

// DefaultTriple returns the target triple for the host, mirroring what
// the external static compiler would pick on its own.
func DefaultTriple() string {
	arch := "x86_64"
	switch runtime.GOARCH {
	case "arm64":
		arch = "aarch64"
	case "386":
		arch = "i386"
	}
	switch runtime.GOOS {
	case "darwin":
		return arch + "-apple-darwin"
	case "windows":
		return arch + "-pc-windows-gnu"
	default:
		return arch + "-pc-linux-gnu"
	}
}

// Generate lowers every function of the unit, then appends the C main
// wrapper when the entry function exists. The first error aborts the
// pass; no partially lowered module is returned.
func (g *Generator) Generate(prog *ast.Program) (*ir.Module, error) {
	if prog == nil {
		return nil, errors.New("nil program")
	}
	for _, fn := range prog.Functions {
		if err := g.lowerFunction(fn); err != nil {
			return nil, err
		}
	}
	if entry, ok := g.funcs[g.entry]; ok {
		if _, taken := g.funcs["main"]; !taken && len(entry.Params) == 0 {
			g.emitCMain(entry)
		}
	}
	return g.mod, nil
}

func (g *Generator) lowerFunction(decl *ast.Function) error {
	params := make([]*ir.Param, len(decl.Params))
	for i, p := range decl.Params {
		typ, ok := g.typeOf(p.Type)
		if !ok || typ.Equal(types.Void) {
			return diagnostics.UnsupportedType(p.Type)
		}
		params[i] = ir.NewParam(p.Name, typ)
	}
	retType, ok := g.typeOf(decl.ReturnType)
	if !ok {
		return diagnostics.UnsupportedType(decl.ReturnType)
	}

	fn := g.mod.NewFunc(decl.Name, retType, params...)
	g.funcs[decl.Name] = fn

	entry := fn.NewBlock("entry")
	st := &fnState{
		fn:      fn,
		fnName:  decl.Name,
		block:   entry,
		retType: retType,
		vars:    make(map[string]*binding),
	}

	for i, param := range fn.Params {
		slot := entry.NewAlloca(param.Typ)
		entry.NewStore(param, slot)
		st.vars[decl.Params[i].Name] = &binding{typ: param.Typ, slot: slot}
	}

	for _, stmt := range decl.Body {
		if err := g.lowerStmt(st, stmt); err != nil {
			return err
		}
	}

	if st.block.Term == nil {
		return diagnostics.MissingTerminator(decl.Name, st.block.Name())
	}
	return g.verifyTerminators(fn, decl.Name)
}

// verifyTerminators walks every block reachable from entry and requires a
// terminator on each. Unreachable open blocks (a fully terminated
// if-chain leaves its join block dead) are closed with unreachable so the
// emitted IR is always well formed.
func (g *Generator) verifyTerminators(fn *ir.Func, name string) error {
	reachable := make(map[*ir.Block]bool, len(fn.Blocks))
	work := []*ir.Block{fn.Blocks[0]}
	for len(work) > 0 {
		block := work[len(work)-1]
		work = work[:len(work)-1]
		if reachable[block] {
			continue
		}
		reachable[block] = true

		switch term := block.Term.(type) {
		case *ir.TermBr:
			work = append(work, term.Target.(*ir.Block))
		case *ir.TermCondBr:
			work = append(work, term.TargetTrue.(*ir.Block), term.TargetFalse.(*ir.Block))
		case *ir.TermRet, *ir.TermUnreachable:
		case nil:
			return diagnostics.MissingTerminator(name, block.Name())
		default:
			return errors.Errorf("function %s: unexpected terminator %T", name, term)
		}
	}

	for _, block := range fn.Blocks {
		if !reachable[block] && block.Term == nil {
			block.NewUnreachable()
		}
	}
	return nil
}

// emitCMain appends int main() { return <entry>(); } so the linked
// executable has a C-compatible entry point.
func (g *Generator) emitCMain(entry *ir.Func) {
	main := g.mod.NewFunc("main", types.I32)
	g.funcs["main"] = main
	block := main.NewBlock("entry")
	result := block.NewCall(entry)
	if entry.Sig.RetType.Equal(types.I32) {
		block.NewRet(result)
		return
	}
	block.NewRet(constant.NewInt(types.I32, 0))
}

func (st *fnState) pushLoop(continueTo, breakTo *ir.Block) {
	st.continues = append(st.continues, continueTo)
	st.breaks = append(st.breaks, breakTo)
}

func (st *fnState) popLoop() {
	st.continues = st.continues[:len(st.continues)-1]
	st.breaks = st.breaks[:len(st.breaks)-1]
}
