package ast

// Statement is the closed sum over Mamba's statement forms. Only Let, Def
// and Extern are legal at top level; only Let, If, While, Return and
// ExpressionStmt are legal inside a function body (spec.md §3) — the parser
// enforces that split, not this package.
type Statement interface {
	statementNode()
}

// Param is one (name, type) entry of a Def/Extern parameter list. Mamba
// requires distinct names within a single list (spec.md §3 invariant 2);
// the parser enforces this at parse time.
type Param struct {
	Name string
	Type DataType
}

// Let declares a local or global binding. Globals only accept a literal
// initializer (SPEC_FULL.md §4.6: LLVM globals need a constant).
type Let struct {
	Ident string
	Type  DataType
	Expr  Expression
}

// Def is a function definition with a body.
type Def struct {
	Name       string
	Params     []Param
	ReturnType DataType
	Body       []Statement
}

// Extern declares a function with no body, provided by the link step.
type Extern struct {
	Name       string
	Params     []Param
	ReturnType DataType
}

// IfBranchKind discriminates the tail of an If statement.
type IfBranchKind int

const (
	BranchNone IfBranchKind = iota
	BranchElif
	BranchElse
)

// IfBranch is `None | Elif(If) | Else([Stmt])`.
type IfBranch struct {
	Kind IfBranchKind
	Elif *If         // set when Kind == BranchElif
	Else []Statement // set when Kind == BranchElse
}

// If is `if`/`elif`/`else` control flow; Branch.Kind == BranchNone for a
// bare `if` with no tail.
type If struct {
	Cond   Expression
	Then   []Statement
	Branch IfBranch
}

// While is condition-checked-first looping.
type While struct {
	Cond Expression
	Body []Statement
}

// Return evaluates Expr and returns it from the enclosing function,
// coercing through the cast table if its type differs from the function's
// declared return type.
type Return struct {
	Expr Expression
}

// ExpressionStmt evaluates Expr and discards the result.
type ExpressionStmt struct {
	Expr Expression
}

func (*Let) statementNode()            {}
func (*Def) statementNode()            {}
func (*Extern) statementNode()         {}
func (*If) statementNode()             {}
func (*While) statementNode()          {}
func (*Return) statementNode()         {}
func (*ExpressionStmt) statementNode() {}

// Program is the ordered list of top-level statements produced by a parse.
type Program struct {
	Statements []Statement
}
