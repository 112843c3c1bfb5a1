package ast

// ExprStmt evaluates an expression for its side effects and discards the
// result.
type ExprStmt struct {
	X Expression
}

func (s *ExprStmt) INode() {}
func (s *ExprStmt) Stmt()  {}

// ReturnStmt returns from the enclosing function. A nil Value is a void
// return.
type ReturnStmt struct {
	Value Expression
}

func (s *ReturnStmt) INode() {}
func (s *ReturnStmt) Stmt()  {}

// DeclStmt declares a typed local variable with an initializer. A
// re-declaration of an existing name overwrites the prior binding.
type DeclStmt struct {
	Type  string
	Name  string
	Value Expression
}

func (s *DeclStmt) INode() {}
func (s *DeclStmt) Stmt()  {}

// AssignStmt stores a new value into an already declared variable.
type AssignStmt struct {
	Name  string
	Value Expression
}

func (s *AssignStmt) INode() {}
func (s *AssignStmt) Stmt()  {}

// IfBranch is one (condition, body) arm of an if-chain. A nil Cond marks
// the unconditional else arm, which may only appear last.
type IfBranch struct {
	Cond Expression
	Body []Statement
}

// IfChainStmt is an ordered list of branches sharing one join point.
type IfChainStmt struct {
	Branches []IfBranch
}

func (s *IfChainStmt) INode() {}
func (s *IfChainStmt) Stmt()  {}

// ForInStmt iterates a list value, binding each element to Var with the
// declared element type.
type ForInStmt struct {
	ElemType string
	Var      string
	List     Expression
	Body     []Statement
}

func (s *ForInStmt) INode() {}
func (s *ForInStmt) Stmt()  {}

// WhileStmt re-evaluates Cond before every iteration.
type WhileStmt struct {
	Cond Expression
	Body []Statement
}

func (s *WhileStmt) INode() {}
func (s *WhileStmt) Stmt()  {}

// BreakStmt jumps past the innermost enclosing loop.
type BreakStmt struct{}

func (s *BreakStmt) INode() {}
func (s *BreakStmt) Stmt()  {}

// ContinueStmt jumps to the innermost enclosing loop's step block.
type ContinueStmt struct{}

func (s *ContinueStmt) INode() {}
func (s *ContinueStmt) Stmt()  {}

// DeclListStmt declares a list variable. A ListLit initializer allocates
// backing storage; any other initializer is lowered as-is and bound.
type DeclListStmt struct {
	ElemType string
	Name     string
	Value    Expression
}

func (s *DeclListStmt) INode() {}
func (s *DeclListStmt) Stmt()  {}
