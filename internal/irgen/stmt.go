package irgen

import (
	"fmt"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pkg/errors"

	"github.com/vladimir-sama/arx-lang/internal/ast"
	"github.com/vladimir-sama/arx-lang/internal/diagnostics"
)

func (g *Generator) lowerStmt(st *fnState, stmt ast.Statement) error {
	// Statements after a terminator are unreachable; stop appending.
	if st.block.Term != nil {
		return nil
	}

	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := g.lowerExpr(st, s.X)
		return err
	case *ast.ReturnStmt:
		return g.lowerReturn(st, s)
	case *ast.DeclStmt:
		return g.lowerDecl(st, s)
	case *ast.AssignStmt:
		return g.lowerAssign(st, s)
	case *ast.IfChainStmt:
		return g.lowerIfChain(st, s)
	case *ast.ForInStmt:
		return g.lowerForIn(st, s)
	case *ast.WhileStmt:
		return g.lowerWhile(st, s)
	case *ast.BreakStmt:
		if len(st.breaks) == 0 {
			return diagnostics.LoopControlOutsideLoop("break")
		}
		st.block.NewBr(st.breaks[len(st.breaks)-1])
		return nil
	case *ast.ContinueStmt:
		if len(st.continues) == 0 {
			return diagnostics.LoopControlOutsideLoop("continue")
		}
		st.block.NewBr(st.continues[len(st.continues)-1])
		return nil
	case *ast.DeclListStmt:
		return g.lowerDeclList(st, s)
	default:
		return errors.Errorf("unknown statement node %T", stmt)
	}
}

func (g *Generator) lowerReturn(st *fnState, s *ast.ReturnStmt) error {
	if s.Value == nil {
		if !st.retType.Equal(types.Void) {
			return diagnostics.InvalidVoidReturn(st.fnName)
		}
		st.block.NewRet(nil)
		return nil
	}
	val, err := g.lowerExpr(st, s.Value)
	if err != nil {
		return err
	}
	st.block.NewRet(val)
	return nil
}

func (g *Generator) lowerDecl(st *fnState, s *ast.DeclStmt) error {
	val, err := g.lowerExpr(st, s.Value)
	if err != nil {
		return err
	}
	typ, ok := g.typeOf(s.Type)
	if !ok || typ.Equal(types.Void) {
		return diagnostics.UnsupportedType(s.Type)
	}
	slot := st.block.NewAlloca(typ)
	slot.SetName(s.Name)
	st.block.NewStore(val, slot)
	// Flat function scope: re-declaration overwrites, including the type.
	st.vars[s.Name] = &binding{typ: typ, slot: slot}
	return nil
}

func (g *Generator) lowerAssign(st *fnState, s *ast.AssignStmt) error {
	bind, ok := st.vars[s.Name]
	if !ok {
		return diagnostics.UndefinedVariable(s.Name)
	}
	val, err := g.lowerExpr(st, s.Value)
	if err != nil {
		return err
	}
	if !val.Type().Equal(bind.typ) {
		return diagnostics.TypeMismatch(s.Name, bind.typ.String(), val.Type().String())
	}
	st.block.NewStore(val, bind.slot)
	return nil
}

// lowerIfChain lowers an ordered branch list sharing one join block. Each
// branch gets a then block and, unless it is the last, a next block for
// the following condition. Branch bodies that do not terminate fall
// through to the join block; if every branch terminates the join block is
// dead and verifyTerminators closes it.
func (g *Generator) lowerIfChain(st *fnState, s *ast.IfChainStmt) error {
	st.ifCount++
	id := st.ifCount

	end := st.fn.NewBlock(fmt.Sprintf("if_end_%d", id))
	fellThrough := false

	for i, branch := range s.Branches {
		then := st.fn.NewBlock(fmt.Sprintf("if_then_%d_%d", id, i))
		next := end
		if i < len(s.Branches)-1 {
			next = st.fn.NewBlock(fmt.Sprintf("if_next_%d_%d", id, i))
		}

		if branch.Cond != nil {
			cond, err := g.lowerExpr(st, branch.Cond)
			if err != nil {
				return err
			}
			st.block.NewCondBr(cond, then, next)
		} else {
			st.block.NewBr(then)
		}

		st.block = then
		for _, inner := range branch.Body {
			if err := g.lowerStmt(st, inner); err != nil {
				return err
			}
		}
		if st.block.Term == nil {
			st.block.NewBr(end)
			fellThrough = true
		}

		if branch.Cond != nil {
			st.block = next
		}
	}

	if fellThrough {
		st.block = end
	}
	return nil
}

// lowerForIn iterates a list value by index: the condition block compares
// the index against the runtime length, the body fetches and reinterprets
// the element, the continue block steps the index.
func (g *Generator) lowerForIn(st *fnState, s *ast.ForInStmt) error {
	elemType, ok := g.typeOf(s.ElemType)
	if !ok || elemType.Equal(types.Void) {
		return diagnostics.UnsupportedType(s.ElemType)
	}
	listVal, err := g.lowerExpr(st, s.List)
	if err != nil {
		return err
	}

	st.loopCount++
	id := st.loopCount

	indexSlot := st.block.NewAlloca(types.I32)
	indexSlot.SetName(fmt.Sprintf("%s_index", s.Var))
	st.block.NewStore(constant.NewInt(types.I32, 0), indexSlot)

	cond := st.fn.NewBlock(fmt.Sprintf("for_cond_%d", id))
	body := st.fn.NewBlock(fmt.Sprintf("for_body_%d", id))
	step := st.fn.NewBlock(fmt.Sprintf("for_continue_%d", id))
	end := st.fn.NewBlock(fmt.Sprintf("for_end_%d", id))

	st.block.NewBr(cond)

	index := cond.NewLoad(types.I32, indexSlot)
	length := cond.NewCall(g.runtimeListLen(), listVal)
	inRange := cond.NewICmp(enum.IPredSLT, index, length)
	cond.NewCondBr(inRange, body, end)

	st.block = body
	raw := body.NewCall(g.runtimeListGet(), listVal, index)
	var elem value.Value
	if isPointerShaped(elemType) {
		elem = body.NewBitCast(raw, elemType)
	} else {
		typed := body.NewBitCast(raw, types.NewPointer(elemType))
		elem = body.NewLoad(elemType, typed)
	}
	slot := body.NewAlloca(elemType)
	slot.SetName(s.Var)
	body.NewStore(elem, slot)
	st.vars[s.Var] = &binding{typ: elemType, slot: slot}

	st.pushLoop(step, end)
	for _, inner := range s.Body {
		if err := g.lowerStmt(st, inner); err != nil {
			st.popLoop()
			return err
		}
	}
	st.popLoop()
	if st.block.Term == nil {
		st.block.NewBr(step)
	}

	next := step.NewAdd(index, constant.NewInt(types.I32, 1))
	step.NewStore(next, indexSlot)
	step.NewBr(cond)

	st.block = end
	return nil
}

func (g *Generator) lowerWhile(st *fnState, s *ast.WhileStmt) error {
	st.loopCount++
	id := st.loopCount

	cond := st.fn.NewBlock(fmt.Sprintf("while_cond_%d", id))
	body := st.fn.NewBlock(fmt.Sprintf("while_body_%d", id))
	end := st.fn.NewBlock(fmt.Sprintf("while_end_%d", id))

	st.block.NewBr(cond)

	// The condition re-evaluates on every iteration.
	st.block = cond
	condVal, err := g.lowerExpr(st, s.Cond)
	if err != nil {
		return err
	}
	st.block.NewCondBr(condVal, body, end)

	st.block = body
	st.pushLoop(cond, end)
	for _, inner := range s.Body {
		if err := g.lowerStmt(st, inner); err != nil {
			st.popLoop()
			return err
		}
	}
	st.popLoop()
	if st.block.Term == nil {
		st.block.NewBr(cond)
	}

	st.block = end
	return nil
}

func (g *Generator) lowerDeclList(st *fnState, s *ast.DeclListStmt) error {
	lit, ok := s.Value.(*ast.ListLit)
	if !ok {
		// Non-literal initializer: lower it and bind its own type.
		val, err := g.lowerExpr(st, s.Value)
		if err != nil {
			return err
		}
		g.bindSlot(st, s.Name, val)
		return nil
	}

	elemType, ok := g.typeOf(s.ElemType)
	if !ok || elemType.Equal(types.Void) {
		return diagnostics.UnsupportedType(s.ElemType)
	}
	listPtr, err := g.lowerListLiteral(st, elemType, lit)
	if err != nil {
		return err
	}
	g.bindSlot(st, s.Name, listPtr)
	return nil
}

// bindSlot spills a value into a fresh named stack slot and records the
// binding, so assignments under control flow store in place.
func (g *Generator) bindSlot(st *fnState, name string, val value.Value) {
	slot := st.block.NewAlloca(val.Type())
	slot.SetName(name)
	st.block.NewStore(val, slot)
	st.vars[name] = &binding{typ: val.Type(), slot: slot}
}
