package codegen

import (
	"fmt"
	"strings"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/types"
)

func (g *generator) stmts(list []ast.Stmt) {
	for _, s := range list {
		g.stmt(s)
	}
}

// block emits a nested block inline; Python only needs the scope for
// renaming.
func (g *generator) block(b *ast.BlockStmt) {
	g.table.EnterScope()
	defer g.table.ExitScope()
	g.stmts(b.Stmts)
}

func (g *generator) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case nil, *ast.EmptyStmt:

	case *ast.VarDecl:
		g.varDecl(s)

	case *ast.TypeDecl:
		g.typeDecl(s)

	case *ast.ExprStmt:
		g.line("%s", g.expr(s.X))

	case *ast.ShortVarDecl:
		values := make([]string, len(s.Rhs))
		for i, r := range s.Rhs {
			values[i] = g.expr(r)
		}
		targets := make([]string, len(s.Lhs))
		for i, id := range s.Lhs {
			if !id.IsBlank() && g.table.DefinedInCurrentScope(id.Name) {
				targets[i] = g.name(id)
			} else {
				targets[i] = g.declare(id, g.typeOf(id))
			}
		}
		g.line("%s = %s", strings.Join(targets, ", "), strings.Join(values, ", "))

	case *ast.AssignStmt:
		g.assign(s)

	case *ast.OpAssignStmt:
		g.opAssign(s.Lhs, s.Op, g.expr(s.Rhs))

	case *ast.IncDecStmt:
		if s.Inc {
			g.opAssign(s.X, "+", "1")
		} else {
			g.opAssign(s.X, "-", "1")
		}

	case *ast.PrintStmt:
		g.print(s)

	case *ast.ReturnStmt:
		if s.Result == nil {
			g.line("return")
		} else {
			g.line("return %s", g.expr(s.Result))
		}

	case *ast.BreakStmt:
		g.line("break")

	case *ast.ContinueStmt:
		g.lines(g.posts[len(g.posts)-1])
		g.line("continue")

	case *ast.BlockStmt:
		g.block(s)

	case *ast.IfStmt:
		g.ifStmt(s, "if")

	case *ast.SwitchStmt:
		g.switchStmt(s)

	case *ast.ForStmt:
		g.forStmt(s)

	default:
		g.fail("unexpected statement %T", s)
	}
}

func (g *generator) assign(s *ast.AssignStmt) {
	// x = append(x, e) grows x in place.
	if len(s.Lhs) == 1 {
		if app, ok := s.Rhs[0].(*ast.AppendExpr); ok {
			if id, ok := s.Lhs[0].(*ast.Ident); ok && id.Name == app.Slice.Name {
				g.line("%s.append(%s)", g.name(id), g.expr(app.Elem))
				return
			}
		}
	}
	values := make([]string, len(s.Rhs))
	for i, r := range s.Rhs {
		values[i] = g.expr(r)
	}
	targets := make([]string, len(s.Lhs))
	for i, l := range s.Lhs {
		targets[i] = g.target(l)
	}
	g.line("%s = %s", strings.Join(targets, ", "), strings.Join(values, ", "))
}

// opAssign emits lhs op= rhs, where rhs is already rendered.
func (g *generator) opAssign(lhs ast.Expr, op, rhs string) {
	target := g.target(lhs)
	t := g.typeOf(lhs)
	if !types.IsIntOrRune(t) {
		g.line("%s %s= %s", target, op, rhs)
		return
	}
	switch {
	case g.opts.Normalize:
		g.line("%s = normalize(%s)", target, intBinary(op, target, rhs))
	case op == "/" || op == "%" || op == "&^":
		g.line("%s = %s", target, intBinary(op, target, rhs))
	default:
		g.line("%s %s= %s", target, op, rhs)
	}
}

func (g *generator) print(s *ast.PrintStmt) {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = g.expr(a)
		if types.IsBool(g.typeOf(a)) {
			args[i] = fmt.Sprintf(`("true" if %s else "false")`, args[i])
		}
	}
	if s.Newline {
		g.line("print(%s)", strings.Join(args, ", "))
		return
	}
	if len(args) == 0 {
		g.line("print(end='')")
		return
	}
	for i, a := range args {
		args[i] = "str(" + a + ")"
	}
	g.line("print(%s, end='')", strings.Join(args, " + "))
}

// ifStmt emits an if or, for an else-if without an init statement, an elif.
func (g *generator) ifStmt(s *ast.IfStmt, keyword string) {
	g.table.EnterScope()
	defer g.table.ExitScope()

	g.stmt(s.Init)
	g.line("%s %s:", keyword, g.expr(s.Cond))
	g.body(func() { g.block(s.Then) })

	switch els := s.Else.(type) {
	case nil:
	case *ast.IfStmt:
		if els.Init == nil {
			g.ifStmt(els, "elif")
			return
		}
		g.line("else:")
		g.body(func() { g.ifStmt(els, "if") })
	case *ast.BlockStmt:
		g.line("else:")
		g.body(func() { g.block(els) })
	}
}

func (g *generator) switchStmt(s *ast.SwitchStmt) {
	g.table.EnterScope()
	defer g.table.ExitScope()

	g.stmt(s.Init)

	var tag string
	if s.Tag != nil {
		switch s.Tag.(type) {
		case *ast.Ident, *ast.IntLit, *ast.FloatLit, *ast.RuneLit, *ast.StringLit:
			tag = g.expr(s.Tag)
		default:
			tag = fmt.Sprintf("_tag%d", g.temps)
			g.temps++
			g.line("%s = %s", tag, g.expr(s.Tag))
		}
	}

	keyword := "if"
	var dflt *ast.CaseClause
	for _, cc := range s.Cases {
		if cc.IsDefault() {
			dflt = cc
			continue
		}
		g.caseClause(cc, func() {
			tests := make([]string, len(cc.Exprs))
			for i, e := range cc.Exprs {
				if tag == "" {
					tests[i] = g.expr(e)
				} else {
					tests[i] = fmt.Sprintf("(%s == %s)", tag, g.expr(e))
				}
			}
			g.line("%s %s:", keyword, strings.Join(tests, " or "))
		})
		keyword = "elif"
	}
	if dflt != nil {
		g.caseClause(dflt, func() {
			if keyword == "if" {
				g.line("if True:")
			} else {
				g.line("else:")
			}
		})
	}
}

func (g *generator) caseClause(cc *ast.CaseClause, header func()) {
	g.table.EnterScope()
	defer g.table.ExitScope()
	header()
	g.body(func() { g.stmts(cc.Body) })
}

func (g *generator) forStmt(s *ast.ForStmt) {
	g.table.EnterScope()
	defer g.table.ExitScope()

	g.stmt(s.Init)
	post := g.capture(func() { g.stmt(s.Post) })

	cond := "True"
	if s.Cond != nil {
		cond = g.expr(s.Cond)
	}
	g.line("while %s:", cond)

	g.posts = append(g.posts, post)
	g.body(func() {
		g.block(s.Body)
		g.lines(post)
	})
	g.posts = g.posts[:len(g.posts)-1]
}
