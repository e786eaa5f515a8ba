// Package ast declares the GoLite syntax tree.
//
// Every node records the position of its first token. Expressions, type
// expressions, statements and top-level declarations are distinguished by
// marker methods so that a type switch over one of the interfaces is
// exhaustive over a closed set of node types.
package ast

import "github.com/hardik-vala/gopy/diag"

type Node interface {
	Pos() diag.Position
}

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type TypeExpr interface {
	Node
	typeNode()
}

// Decl is a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// ----------------------------------------------------------------------------
// Expressions

// Ident is both a declared name and a reference to one. Name is "_" for the
// blank identifier.
type Ident struct {
	Loc  diag.Position
	Name string
}

func (x *Ident) IsBlank() bool { return x.Name == "_" }

type IntLit struct {
	Loc   diag.Position
	Raw   string // as written: decimal, octal or hex
	Value int64
}

type FloatLit struct {
	Loc   diag.Position
	Raw   string
	Value float64
}

type RuneLit struct {
	Loc   diag.Position
	Raw   string
	Value rune
}

type StringLit struct {
	Loc   diag.Position
	Raw   string
	Value string
}

// IsRaw reports whether the literal was written with backquotes.
func (x *StringLit) IsRaw() bool { return len(x.Raw) > 0 && x.Raw[0] == '`' }

type UnaryExpr struct {
	Loc diag.Position
	Op  string // "+", "-", "!", "^"
	X   Expr
}

type BinaryExpr struct {
	Loc diag.Position // operator position
	X   Expr
	Op  string
	Y   Expr
}

// CallExpr is a call of a function, or a conversion to an alias type. Which
// one is decided by what Fun resolves to.
type CallExpr struct {
	Loc  diag.Position
	Fun  *Ident
	Args []Expr
}

// AppendExpr is append(Slice, Elem).
type AppendExpr struct {
	Loc   diag.Position
	Slice *Ident
	Elem  Expr
}

// ConversionExpr is a conversion to a predeclared type, e.g. float64(x).
type ConversionExpr struct {
	Loc  diag.Position
	Type *PrimitiveType
	X    Expr
}

type IndexExpr struct {
	Loc   diag.Position
	X     Expr
	Index Expr
}

type SelectorExpr struct {
	Loc diag.Position
	X   Expr
	Sel *Ident
}

func (x *Ident) Pos() diag.Position          { return x.Loc }
func (x *IntLit) Pos() diag.Position         { return x.Loc }
func (x *FloatLit) Pos() diag.Position       { return x.Loc }
func (x *RuneLit) Pos() diag.Position        { return x.Loc }
func (x *StringLit) Pos() diag.Position      { return x.Loc }
func (x *UnaryExpr) Pos() diag.Position      { return x.Loc }
func (x *BinaryExpr) Pos() diag.Position     { return x.Loc }
func (x *CallExpr) Pos() diag.Position       { return x.Loc }
func (x *AppendExpr) Pos() diag.Position     { return x.Loc }
func (x *ConversionExpr) Pos() diag.Position { return x.Loc }
func (x *IndexExpr) Pos() diag.Position      { return x.Loc }
func (x *SelectorExpr) Pos() diag.Position   { return x.Loc }

func (*Ident) exprNode()          {}
func (*IntLit) exprNode()         {}
func (*FloatLit) exprNode()       {}
func (*RuneLit) exprNode()        {}
func (*StringLit) exprNode()      {}
func (*UnaryExpr) exprNode()      {}
func (*BinaryExpr) exprNode()     {}
func (*CallExpr) exprNode()       {}
func (*AppendExpr) exprNode()     {}
func (*ConversionExpr) exprNode() {}
func (*IndexExpr) exprNode()      {}
func (*SelectorExpr) exprNode()   {}

// ----------------------------------------------------------------------------
// Type expressions

// PrimitiveType names one of bool, int, float64, rune or string.
type PrimitiveType struct {
	Loc  diag.Position
	Name string
}

// NamedType refers to a declared type.
type NamedType struct {
	Name *Ident
}

type ArrayType struct {
	Loc  diag.Position
	Len  *IntLit
	Elem TypeExpr
}

type SliceType struct {
	Loc  diag.Position
	Elem TypeExpr
}

type Field struct {
	Names []*Ident
	Type  TypeExpr
}

type StructType struct {
	Loc    diag.Position
	Fields []*Field
}

func (t *PrimitiveType) Pos() diag.Position { return t.Loc }
func (t *NamedType) Pos() diag.Position     { return t.Name.Loc }
func (t *ArrayType) Pos() diag.Position     { return t.Loc }
func (t *SliceType) Pos() diag.Position     { return t.Loc }
func (t *StructType) Pos() diag.Position    { return t.Loc }

func (*PrimitiveType) typeNode() {}
func (*NamedType) typeNode()     {}
func (*ArrayType) typeNode()     {}
func (*SliceType) typeNode()     {}
func (*StructType) typeNode()    {}

// ----------------------------------------------------------------------------
// Declarations

// VarSpec is `a, b T = x, y`. Type or Values may be absent, not both.
type VarSpec struct {
	Names  []*Ident
	Type   TypeExpr
	Values []Expr
}

type VarDecl struct {
	Loc   diag.Position
	Specs []*VarSpec
}

type TypeSpec struct {
	Name *Ident
	Type TypeExpr
}

type TypeDecl struct {
	Loc   diag.Position
	Specs []*TypeSpec
}

// ParamGroup is `a, b T` in a parameter list.
type ParamGroup struct {
	Names []*Ident
	Type  TypeExpr
}

type FuncDecl struct {
	Loc    diag.Position
	Name   *Ident
	Params []*ParamGroup
	Result TypeExpr // nil if the function has no result
	Body   *BlockStmt
}

func (s *VarSpec) Pos() diag.Position  { return s.Names[0].Loc }
func (d *VarDecl) Pos() diag.Position  { return d.Loc }
func (s *TypeSpec) Pos() diag.Position { return s.Name.Loc }
func (d *TypeDecl) Pos() diag.Position { return d.Loc }
func (g *ParamGroup) Pos() diag.Position {
	if len(g.Names) > 0 {
		return g.Names[0].Loc
	}
	return g.Type.Pos()
}
func (d *FuncDecl) Pos() diag.Position { return d.Loc }

func (*VarDecl) declNode()  {}
func (*TypeDecl) declNode() {}
func (*FuncDecl) declNode() {}

// Var and type declarations may also appear inside function bodies.
func (*VarDecl) stmtNode()  {}
func (*TypeDecl) stmtNode() {}

// Program is a whole package.
type Program struct {
	Package *Ident
	Decls   []Decl
}

func (p *Program) Pos() diag.Position { return p.Package.Loc }
