package ast

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

func (e *IntLit) INode() {}
func (e *IntLit) Expr()  {}

// FloatLit is a floating point literal.
type FloatLit struct {
	Value float64
}

func (e *FloatLit) INode() {}
func (e *FloatLit) Expr()  {}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
}

func (e *BoolLit) INode() {}
func (e *BoolLit) Expr()  {}

// StringLit is a string literal; lowering places it in a unique global
// constant with a trailing NUL.
type StringLit struct {
	Value string
}

func (e *StringLit) INode() {}
func (e *StringLit) Expr()  {}

// VarExpr references a bound variable by name.
type VarExpr struct {
	Name string
}

func (e *VarExpr) INode() {}
func (e *VarExpr) Expr()  {}

// BinaryExpr applies an infix operator to two operands.
type BinaryExpr struct {
	Op    string
	Left  Expression
	Right Expression
}

func (e *BinaryExpr) INode() {}
func (e *BinaryExpr) Expr()  {}

// CallExpr calls a function declared in the same unit by bare name.
type CallExpr struct {
	Name string
	Args []Expression
}

func (e *CallExpr) INode() {}
func (e *CallExpr) Expr()  {}

// MethodCallExpr is a qualified object.method call resolved through the
// extern overload table.
type MethodCallExpr struct {
	Object string
	Method string
	Args   []Expression
}

func (e *MethodCallExpr) INode() {}
func (e *MethodCallExpr) Expr()  {}

// ListLit is a list literal; element values must share the declared
// element type of the enclosing declaration.
type ListLit struct {
	Elems []Expression
}

func (e *ListLit) INode() {}
func (e *ListLit) Expr()  {}
