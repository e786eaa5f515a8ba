package ast

import (
	"testing"

	"github.com/nalgeon/be"
)

func id(name string) *Ident { return &Ident{Name: name} }

func integer(v int64) *IntLit { return &IntLit{Value: v} }

func TestToSExprExpressions(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{id("x"), `(ident "x")`},
		{integer(42), `(integer 42)`},
		{&IntLit{Raw: "0x10", Value: 16}, `(integer 16)`},
		{&FloatLit{Raw: "1.50", Value: 1.5}, `(float "1.50")`},
		{&RuneLit{Raw: "'a'", Value: 'a'}, `(rune 97)`},
		{&StringLit{Raw: `"a\"b"`, Value: `a"b`}, `(string "a\"b")`},
		{&StringLit{Raw: "`a\\b`", Value: `a\b`}, `(string "a\\b")`},
		{&UnaryExpr{Op: "-", X: integer(1)}, `(unary "-" (integer 1))`},
		{&BinaryExpr{Op: "+", X: id("a"), Y: integer(2)}, `(binary "+" (ident "a") (integer 2))`},
		{&CallExpr{Fun: id("f")}, `(call (ident "f"))`},
		{&CallExpr{Fun: id("f"), Args: []Expr{integer(1), id("y")}}, `(call (ident "f") (integer 1) (ident "y"))`},
		{&AppendExpr{Slice: id("s"), Elem: integer(3)}, `(append (ident "s") (integer 3))`},
		{&ConversionExpr{Type: &PrimitiveType{Name: "float64"}, X: id("n")}, `(convert (type "float64") (ident "n"))`},
		{&IndexExpr{X: id("a"), Index: integer(0)}, `(idx (ident "a") (integer 0))`},
		{&SelectorExpr{X: id("p"), Sel: id("x")}, `(dot (ident "p") "x")`},
		{nil, "(nil)"},
	}
	for _, test := range tests {
		be.Equal(t, ToSExpr(test.node), test.want)
	}
}

func TestToSExprTypes(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&NamedType{Name: id("celsius")}, `(named "celsius")`},
		{&ArrayType{Len: integer(3), Elem: &PrimitiveType{Name: "int"}}, `(array 3 (type "int"))`},
		{&SliceType{Elem: &SliceType{Elem: &PrimitiveType{Name: "rune"}}}, `(slice (slice (type "rune")))`},
		{&StructType{}, `(struct)`},
		{
			&StructType{Fields: []*Field{
				{Names: []*Ident{id("x"), id("y")}, Type: &PrimitiveType{Name: "int"}},
			}},
			`(struct (field (names "x" "y") (type "int")))`,
		},
	}
	for _, test := range tests {
		be.Equal(t, ToSExpr(test.node), test.want)
	}
}

func TestToSExprDeclarations(t *testing.T) {
	one := &VarSpec{Names: []*Ident{id("a")}, Type: &PrimitiveType{Name: "int"}}
	two := &VarSpec{Names: []*Ident{id("b"), id("c")}, Values: []Expr{integer(1), integer(2)}}
	be.Equal(t, ToSExpr(&VarDecl{Specs: []*VarSpec{one}}), `(var (names "a") (type "int"))`)
	be.Equal(t, ToSExpr(&VarDecl{Specs: []*VarSpec{one, two}}),
		`(var-group (var (names "a") (type "int")) (var (names "b" "c") (values (integer 1) (integer 2))))`)

	typ := &TypeSpec{Name: id("t"), Type: &PrimitiveType{Name: "bool"}}
	be.Equal(t, ToSExpr(&TypeDecl{Specs: []*TypeSpec{typ}}), `(typedef "t" (type "bool"))`)
	be.Equal(t, ToSExpr(&TypeDecl{Specs: []*TypeSpec{typ, typ}}),
		`(type-group (typedef "t" (type "bool")) (typedef "t" (type "bool")))`)

	fn := &FuncDecl{
		Name:   id("add"),
		Params: []*ParamGroup{{Names: []*Ident{id("a"), id("b")}, Type: &PrimitiveType{Name: "int"}}},
		Result: &PrimitiveType{Name: "int"},
		Body:   &BlockStmt{Stmts: []Stmt{&ReturnStmt{Result: &BinaryExpr{Op: "+", X: id("a"), Y: id("b")}}}},
	}
	be.Equal(t, ToSExpr(fn),
		`(func "add" (params (param (names "a" "b") (type "int"))) (type "int") (block (return (binary "+" (ident "a") (ident "b")))))`)

	void := &FuncDecl{Name: id("main"), Body: &BlockStmt{}}
	be.Equal(t, ToSExpr(void), `(func "main" (params) (void) (block))`)

	prog := &Program{Package: id("main"), Decls: []Decl{void}}
	be.Equal(t, ToSExpr(prog), `(program "main" (func "main" (params) (void) (block)))`)
}

func TestToSExprStatements(t *testing.T) {
	tests := []struct {
		node Node
		want string
	}{
		{&EmptyStmt{}, `(empty)`},
		{&ExprStmt{X: &CallExpr{Fun: id("f")}}, `(call (ident "f"))`},
		{
			&ShortVarDecl{Lhs: []*Ident{id("a"), id("_")}, Rhs: []Expr{integer(1), integer(2)}},
			`(define (targets (ident "a") (ident "_")) (values (integer 1) (integer 2)))`,
		},
		{
			&AssignStmt{Lhs: []Expr{&IndexExpr{X: id("a"), Index: integer(0)}}, Rhs: []Expr{integer(1)}},
			`(assign (targets (idx (ident "a") (integer 0))) (values (integer 1)))`,
		},
		{&OpAssignStmt{Lhs: id("x"), Op: "<<", Rhs: integer(2)}, `(op-assign "<<" (ident "x") (integer 2))`},
		{&IncDecStmt{X: id("i"), Inc: true}, `(inc (ident "i"))`},
		{&IncDecStmt{X: id("i")}, `(dec (ident "i"))`},
		{&PrintStmt{Args: []Expr{integer(1)}}, `(print (integer 1))`},
		{&PrintStmt{Newline: true}, `(println)`},
		{&ReturnStmt{}, `(return)`},
		{&BreakStmt{}, `(break)`},
		{&ContinueStmt{}, `(continue)`},
		{
			&IfStmt{
				Init: &ShortVarDecl{Lhs: []*Ident{id("x")}, Rhs: []Expr{integer(1)}},
				Cond: id("ok"),
				Then: &BlockStmt{},
				Else: &BlockStmt{Stmts: []Stmt{&BreakStmt{}}},
			},
			`(if (init (define (targets (ident "x")) (values (integer 1)))) (ident "ok") (block) (block (break)))`,
		},
		{
			&SwitchStmt{
				Tag: id("x"),
				Cases: []*CaseClause{
					{Exprs: []Expr{integer(1), integer(2)}, Body: []Stmt{&BreakStmt{}}},
					{},
				},
			},
			`(switch (tag (ident "x")) (case (exprs (integer 1) (integer 2)) (break)) (default))`,
		},
		{&ForStmt{Body: &BlockStmt{}}, `(for (block))`},
		{
			&ForStmt{
				Init: &ShortVarDecl{Lhs: []*Ident{id("i")}, Rhs: []Expr{integer(0)}},
				Cond: &BinaryExpr{Op: "<", X: id("i"), Y: integer(3)},
				Post: &IncDecStmt{X: id("i"), Inc: true},
				Body: &BlockStmt{},
			},
			`(for (init (define (targets (ident "i")) (values (integer 0)))) (cond (binary "<" (ident "i") (integer 3))) (post (inc (ident "i"))) (block))`,
		},
	}
	for _, test := range tests {
		be.Equal(t, ToSExpr(test.node), test.want)
	}
}

func TestCaseClauseIsDefault(t *testing.T) {
	be.True(t, (&CaseClause{}).IsDefault())
	be.True(t, !(&CaseClause{Exprs: []Expr{integer(1)}}).IsDefault())
}

func TestStringLitIsRaw(t *testing.T) {
	be.True(t, (&StringLit{Raw: "`x`"}).IsRaw())
	be.True(t, !(&StringLit{Raw: `"x"`}).IsRaw())
	be.True(t, !(&StringLit{}).IsRaw())
}
