package ast

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// The frontend serializes its tree as kind-tagged JSON objects. Statement
// kinds: expression, return, return_void, declare, assign, if_chain,
// for_in, while, break, continue, declare_list. Expression kinds: int,
// float, bool, string, var, binop, call, call_method, list_literal.

// LoadFile reads and decodes a frontend AST file.
func LoadFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading ast file")
	}
	prog, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return prog, nil
}

// Decode decodes a kind-tagged AST document into a Program.
func Decode(data []byte) (*Program, error) {
	var raw struct {
		Name      string   `json:"name"`
		Uses      []string `json:"uses"`
		Functions []struct {
			Name       string            `json:"name"`
			Params     []Param           `json:"params"`
			ReturnType string            `json:"return_type"`
			Body       []json.RawMessage `json:"body"`
		} `json:"functions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "malformed ast document")
	}

	prog := &Program{Name: raw.Name, Uses: raw.Uses}
	for _, fn := range raw.Functions {
		body, err := decodeStmts(fn.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "function %s", fn.Name)
		}
		prog.Functions = append(prog.Functions, &Function{
			Name:       fn.Name,
			Params:     fn.Params,
			ReturnType: fn.ReturnType,
			Body:       body,
		})
	}
	return prog, nil
}

func decodeStmts(raws []json.RawMessage) ([]Statement, error) {
	stmts := make([]Statement, 0, len(raws))
	for _, raw := range raws {
		stmt, err := decodeStmt(raw)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeStmt(data json.RawMessage) (Statement, error) {
	var env struct {
		Kind     string            `json:"kind"`
		Type     string            `json:"type"`
		Name     string            `json:"name"`
		Var      string            `json:"var"`
		Expr     json.RawMessage   `json:"expr"`
		Value    json.RawMessage   `json:"value"`
		Cond     json.RawMessage   `json:"cond"`
		List     json.RawMessage   `json:"list"`
		Body     []json.RawMessage `json:"body"`
		Branches []struct {
			Cond json.RawMessage   `json:"cond"`
			Body []json.RawMessage `json:"body"`
		} `json:"branches"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "malformed statement node")
	}

	switch env.Kind {
	case "expression":
		x, err := decodeExpr(env.Expr)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{X: x}, nil
	case "return":
		value, err := decodeExpr(env.Value)
		if err != nil {
			return nil, err
		}
		return &ReturnStmt{Value: value}, nil
	case "return_void":
		return &ReturnStmt{}, nil
	case "declare":
		value, err := decodeExpr(env.Value)
		if err != nil {
			return nil, err
		}
		return &DeclStmt{Type: env.Type, Name: env.Name, Value: value}, nil
	case "assign":
		value, err := decodeExpr(env.Value)
		if err != nil {
			return nil, err
		}
		return &AssignStmt{Name: env.Name, Value: value}, nil
	case "if_chain":
		stmt := &IfChainStmt{}
		for _, branch := range env.Branches {
			var cond Expression
			if len(branch.Cond) > 0 && string(branch.Cond) != "null" {
				var err error
				cond, err = decodeExpr(branch.Cond)
				if err != nil {
					return nil, err
				}
			}
			body, err := decodeStmts(branch.Body)
			if err != nil {
				return nil, err
			}
			stmt.Branches = append(stmt.Branches, IfBranch{Cond: cond, Body: body})
		}
		return stmt, nil
	case "for_in":
		list, err := decodeExpr(env.List)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(env.Body)
		if err != nil {
			return nil, err
		}
		return &ForInStmt{ElemType: env.Type, Var: env.Var, List: list, Body: body}, nil
	case "while":
		cond, err := decodeExpr(env.Cond)
		if err != nil {
			return nil, err
		}
		body, err := decodeStmts(env.Body)
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Cond: cond, Body: body}, nil
	case "break":
		return &BreakStmt{}, nil
	case "continue":
		return &ContinueStmt{}, nil
	case "declare_list":
		value, err := decodeExpr(env.Value)
		if err != nil {
			return nil, err
		}
		return &DeclListStmt{ElemType: env.Type, Name: env.Name, Value: value}, nil
	default:
		return nil, errors.Errorf("unknown statement kind %q", env.Kind)
	}
}

func decodeExpr(data json.RawMessage) (Expression, error) {
	if len(data) == 0 {
		return nil, errors.New("missing expression node")
	}
	var env struct {
		Kind   string            `json:"kind"`
		Value  json.RawMessage   `json:"value"`
		Name   string            `json:"name"`
		Op     string            `json:"op"`
		Left   json.RawMessage   `json:"left"`
		Right  json.RawMessage   `json:"right"`
		Object string            `json:"object"`
		Method string            `json:"method"`
		Args   []json.RawMessage `json:"args"`
		Elems  []json.RawMessage `json:"elements"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrap(err, "malformed expression node")
	}

	switch env.Kind {
	case "int":
		var v int64
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return nil, errors.Wrap(err, "int literal")
		}
		return &IntLit{Value: v}, nil
	case "float":
		var v float64
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return nil, errors.Wrap(err, "float literal")
		}
		return &FloatLit{Value: v}, nil
	case "bool":
		var v bool
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return nil, errors.Wrap(err, "bool literal")
		}
		return &BoolLit{Value: v}, nil
	case "string":
		var v string
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return nil, errors.Wrap(err, "string literal")
		}
		return &StringLit{Value: v}, nil
	case "var":
		return &VarExpr{Name: env.Name}, nil
	case "binop":
		left, err := decodeExpr(env.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(env.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{Op: env.Op, Left: left, Right: right}, nil
	case "call":
		args, err := decodeExprs(env.Args)
		if err != nil {
			return nil, err
		}
		return &CallExpr{Name: env.Name, Args: args}, nil
	case "call_method":
		args, err := decodeExprs(env.Args)
		if err != nil {
			return nil, err
		}
		return &MethodCallExpr{Object: env.Object, Method: env.Method, Args: args}, nil
	case "list_literal":
		elems, err := decodeExprs(env.Elems)
		if err != nil {
			return nil, err
		}
		return &ListLit{Elems: elems}, nil
	default:
		return nil, errors.Errorf("unknown expression kind %q", env.Kind)
	}
}

func decodeExprs(raws []json.RawMessage) ([]Expression, error) {
	exprs := make([]Expression, 0, len(raws))
	for _, raw := range raws {
		expr, err := decodeExpr(raw)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}
