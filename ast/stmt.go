package ast

import "github.com/hardik-vala/gopy/diag"

type EmptyStmt struct {
	Loc diag.Position
}

// ExprStmt is a call evaluated for its side effects.
type ExprStmt struct {
	X Expr
}

// ShortVarDecl is `a, b := x, y`.
type ShortVarDecl struct {
	Loc diag.Position
	Lhs []*Ident
	Rhs []Expr
}

type AssignStmt struct {
	Loc diag.Position
	Lhs []Expr
	Rhs []Expr
}

// OpAssignStmt is `x op= y`. Op is the binary operator without the "=".
type OpAssignStmt struct {
	Loc diag.Position
	Lhs Expr
	Op  string
	Rhs Expr
}

type IncDecStmt struct {
	Loc diag.Position
	X   Expr
	Inc bool
}

// PrintStmt is print(...) or println(...).
type PrintStmt struct {
	Loc     diag.Position
	Args    []Expr
	Newline bool
}

type ReturnStmt struct {
	Loc    diag.Position
	Result Expr // nil for a bare return
}

type BreakStmt struct {
	Loc diag.Position
}

type ContinueStmt struct {
	Loc diag.Position
}

type BlockStmt struct {
	Loc   diag.Position
	Stmts []Stmt
}

// IfStmt is `if Init; Cond { Then } else Else`. Else is nil, an *IfStmt or
// a *BlockStmt.
type IfStmt struct {
	Loc  diag.Position
	Init Stmt
	Cond Expr
	Then *BlockStmt
	Else Stmt
}

// CaseClause is a case of a switch. A nil Exprs means default.
type CaseClause struct {
	Loc   diag.Position
	Exprs []Expr
	Body  []Stmt
}

func (c *CaseClause) IsDefault() bool { return c.Exprs == nil }

type SwitchStmt struct {
	Loc   diag.Position
	Init  Stmt
	Tag   Expr // nil for `switch { ... }`
	Cases []*CaseClause
}

// ForStmt covers the infinite, while and three-part forms.
type ForStmt struct {
	Loc  diag.Position
	Init Stmt
	Cond Expr
	Post Stmt
	Body *BlockStmt
}

func (s *EmptyStmt) Pos() diag.Position    { return s.Loc }
func (s *ExprStmt) Pos() diag.Position     { return s.X.Pos() }
func (s *ShortVarDecl) Pos() diag.Position { return s.Loc }
func (s *AssignStmt) Pos() diag.Position   { return s.Loc }
func (s *OpAssignStmt) Pos() diag.Position { return s.Loc }
func (s *IncDecStmt) Pos() diag.Position   { return s.Loc }
func (s *PrintStmt) Pos() diag.Position    { return s.Loc }
func (s *ReturnStmt) Pos() diag.Position   { return s.Loc }
func (s *BreakStmt) Pos() diag.Position    { return s.Loc }
func (s *ContinueStmt) Pos() diag.Position { return s.Loc }
func (s *BlockStmt) Pos() diag.Position    { return s.Loc }
func (s *IfStmt) Pos() diag.Position       { return s.Loc }
func (c *CaseClause) Pos() diag.Position   { return c.Loc }
func (s *SwitchStmt) Pos() diag.Position   { return s.Loc }
func (s *ForStmt) Pos() diag.Position      { return s.Loc }

func (*EmptyStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()     {}
func (*ShortVarDecl) stmtNode() {}
func (*AssignStmt) stmtNode()   {}
func (*OpAssignStmt) stmtNode() {}
func (*IncDecStmt) stmtNode()   {}
func (*PrintStmt) stmtNode()    {}
func (*ReturnStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*BlockStmt) stmtNode()    {}
func (*IfStmt) stmtNode()       {}
func (*SwitchStmt) stmtNode()   {}
func (*ForStmt) stmtNode()      {}
