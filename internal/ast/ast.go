package ast

// Node is the base interface for all AST nodes
type Node interface {
	INode()
}

// Expression represents any node that produces a value
type Expression interface {
	Node
	Expr()
}

// Statement represents any node that performs an action
type Statement interface {
	Node
	Stmt()
}

// Program is the root of one compilation unit, produced by an external
// frontend and handed to the backend as a whole.
type Program struct {
	Name string `json:"name"`
	// Uses lists the extern modules requested by the source file.
	Uses      []string    `json:"uses"`
	Functions []*Function `json:"functions"`
}

// Function is a single function declaration with an ordered body.
type Function struct {
	Name       string      `json:"name"`
	Params     []Param     `json:"params"`
	ReturnType string      `json:"return_type"`
	Body       []Statement `json:"-"`
}

// Param is one (type, name) parameter pair.
type Param struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

func (p *Program) INode()  {}
func (f *Function) INode() {}
