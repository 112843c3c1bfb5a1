package irgen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pkg/errors"

	"github.com/vladimir-sama/arx-lang/internal/ast"
	"github.com/vladimir-sama/arx-lang/internal/diagnostics"
)

// lowerExpr translates one expression node into exactly one typed IR
// value, appending instructions to the current block.
func (g *Generator) lowerExpr(st *fnState, expr ast.Expression) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.IntLit:
		return constant.NewInt(types.I32, e.Value), nil
	case *ast.FloatLit:
		return constant.NewFloat(types.Double, e.Value), nil
	case *ast.BoolLit:
		return constant.NewBool(e.Value), nil
	case *ast.StringLit:
		return g.stringConstant(st, e.Value), nil
	case *ast.VarExpr:
		bind, ok := st.vars[e.Name]
		if !ok {
			return nil, diagnostics.UndefinedVariable(e.Name)
		}
		return st.block.NewLoad(bind.typ, bind.slot), nil
	case *ast.BinaryExpr:
		return g.lowerBinary(st, e)
	case *ast.CallExpr:
		return g.lowerCall(st, e)
	case *ast.MethodCallExpr:
		return g.lowerMethodCall(st, e)
	case *ast.ListLit:
		return nil, diagnostics.UnsupportedType("list literal outside a list declaration")
	default:
		return nil, errors.Errorf("unknown expression node %T", expr)
	}
}

// stringConstant places the literal bytes plus a trailing NUL in a fresh
// uniquely named global constant and yields a string-typed pointer to it.
func (g *Generator) stringConstant(st *fnState, text string) value.Value {
	g.strCount++
	data := constant.NewCharArrayFromString(text + "\x00")
	global := g.mod.NewGlobalDef(fmt.Sprintf("str_%d", g.strCount), data)
	global.Immutable = true
	return st.block.NewBitCast(global, strType)
}

// lowerBinary dispatches on the operator with one type-directed twist:
// == and + on two strings redirect to the runtime helpers instead of
// native pointer arithmetic; double operands select the float instruction
// forms.
func (g *Generator) lowerBinary(st *fnState, e *ast.BinaryExpr) (value.Value, error) {
	left, err := g.lowerExpr(st, e.Left)
	if err != nil {
		return nil, err
	}
	right, err := g.lowerExpr(st, e.Right)
	if err != nil {
		return nil, err
	}

	strings := left.Type().Equal(strType) && right.Type().Equal(strType)
	floats := left.Type().Equal(types.Double)

	switch e.Op {
	case "==":
		if strings {
			return st.block.NewCall(g.runtimeStringEqual(), left, right), nil
		}
		if floats {
			return st.block.NewFCmp(enum.FPredOEQ, left, right), nil
		}
		return st.block.NewICmp(enum.IPredEQ, left, right), nil
	case "!=":
		if floats {
			return st.block.NewFCmp(enum.FPredONE, left, right), nil
		}
		return st.block.NewICmp(enum.IPredNE, left, right), nil
	case "<":
		if floats {
			return st.block.NewFCmp(enum.FPredOLT, left, right), nil
		}
		return st.block.NewICmp(enum.IPredSLT, left, right), nil
	case ">":
		if floats {
			return st.block.NewFCmp(enum.FPredOGT, left, right), nil
		}
		return st.block.NewICmp(enum.IPredSGT, left, right), nil
	case "<=":
		if floats {
			return st.block.NewFCmp(enum.FPredOLE, left, right), nil
		}
		return st.block.NewICmp(enum.IPredSLE, left, right), nil
	case ">=":
		if floats {
			return st.block.NewFCmp(enum.FPredOGE, left, right), nil
		}
		return st.block.NewICmp(enum.IPredSGE, left, right), nil
	case "+":
		if strings {
			return st.block.NewCall(g.runtimeStringConcat(), left, right), nil
		}
		if floats {
			return st.block.NewFAdd(left, right), nil
		}
		return st.block.NewAdd(left, right), nil
	case "-":
		if floats {
			return st.block.NewFSub(left, right), nil
		}
		return st.block.NewSub(left, right), nil
	case "*":
		if floats {
			return st.block.NewFMul(left, right), nil
		}
		return st.block.NewMul(left, right), nil
	case "/":
		if floats {
			return st.block.NewFDiv(left, right), nil
		}
		// signed division
		return st.block.NewSDiv(left, right), nil
	default:
		return nil, diagnostics.UnimplementedOperator(e.Op)
	}
}

// lowerCall calls a unit function by bare name. An unknown name gets a
// declaration synthesized from the argument types at the first call site;
// later call sites reuse it without re-checking.
func (g *Generator) lowerCall(st *fnState, e *ast.CallExpr) (value.Value, error) {
	args, err := g.lowerArgs(st, e.Args)
	if err != nil {
		return nil, err
	}

	fn, ok := g.funcs[e.Name]
	if !ok {
		params := make([]*ir.Param, len(args))
		for i, arg := range args {
			params[i] = ir.NewParam("", arg.Type())
		}
		fn = g.mod.NewFunc(e.Name, types.I32, params...)
		g.funcs[e.Name] = fn
	}
	return st.block.NewCall(fn, args...), nil
}

// lowerMethodCall resolves a qualified object.method call through the
// extern overload table by the argument values' type tags.
func (g *Generator) lowerMethodCall(st *fnState, e *ast.MethodCallExpr) (value.Value, error) {
	qualified := e.Object + "." + e.Method

	args, err := g.lowerArgs(st, e.Args)
	if err != nil {
		return nil, err
	}
	tags := make([]string, len(args))
	for i, arg := range args {
		tags[i] = g.tagOf(arg.Type())
	}

	target, err := g.table.Resolve(qualified, tags)
	if err != nil {
		return nil, err
	}

	fn, ok := g.funcs[target.Symbol]
	if !ok {
		retType, known := g.typeOf(target.ReturnTag)
		if !known {
			retType = types.Void
		}
		params := make([]*ir.Param, len(args))
		for i, arg := range args {
			params[i] = ir.NewParam("", arg.Type())
		}
		fn = g.mod.NewFunc(target.Symbol, retType, params...)
		g.funcs[target.Symbol] = fn
	}
	return st.block.NewCall(fn, args...), nil
}

func (g *Generator) lowerArgs(st *fnState, exprs []ast.Expression) ([]value.Value, error) {
	args := make([]value.Value, len(exprs))
	for i, expr := range exprs {
		arg, err := g.lowerExpr(st, expr)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return args, nil
}
