package frontend

import (
	goast "go/ast"
	"go/token"
	"strings"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/diag"
)

func (c *converter) block(b *goast.BlockStmt) *ast.BlockStmt {
	return &ast.BlockStmt{Loc: c.pos(b.Lbrace), Stmts: c.stmts(b.List)}
}

func (c *converter) stmts(list []goast.Stmt) []ast.Stmt {
	var out []ast.Stmt
	for _, s := range list {
		out = append(out, c.stmt(s))
	}
	return out
}

// simpleStmt converts the optional init or post statement of an if,
// switch or for.
func (c *converter) simpleStmt(s goast.Stmt) ast.Stmt {
	if s == nil {
		return nil
	}
	return c.stmt(s)
}

func (c *converter) stmt(s goast.Stmt) ast.Stmt {
	switch s := s.(type) {
	case *goast.EmptyStmt:
		return &ast.EmptyStmt{Loc: c.pos(s.Pos())}

	case *goast.DeclStmt:
		return c.genDecl(s.Decl.(*goast.GenDecl)).(ast.Stmt)

	case *goast.ExprStmt:
		return c.exprStmt(s)

	case *goast.AssignStmt:
		return c.assign(s)

	case *goast.IncDecStmt:
		return &ast.IncDecStmt{Loc: c.pos(s.Pos()), X: c.expr(s.X), Inc: s.Tok == token.INC}

	case *goast.ReturnStmt:
		ret := &ast.ReturnStmt{Loc: c.pos(s.Pos())}
		switch len(s.Results) {
		case 0:
		case 1:
			ret.Result = c.expr(s.Results[0])
		default:
			c.unsupported(s.Results[1], "multiple return values are not supported")
		}
		return ret

	case *goast.BranchStmt:
		return c.branch(s)

	case *goast.BlockStmt:
		return c.block(s)

	case *goast.IfStmt:
		stmt := &ast.IfStmt{
			Loc:  c.pos(s.Pos()),
			Init: c.simpleStmt(s.Init),
			Cond: c.expr(s.Cond),
			Then: c.block(s.Body),
		}
		if s.Else != nil {
			stmt.Else = c.stmt(s.Else)
		}
		return stmt

	case *goast.SwitchStmt:
		return c.switchStmt(s)

	case *goast.ForStmt:
		stmt := &ast.ForStmt{
			Loc:  c.pos(s.Pos()),
			Init: c.simpleStmt(s.Init),
			Post: c.simpleStmt(s.Post),
		}
		if s.Cond != nil {
			stmt.Cond = c.expr(s.Cond)
		}
		if _, ok := stmt.Post.(*ast.ShortVarDecl); ok {
			c.fail(diag.Syntax, s.Post, "cannot declare in post statement of for loop")
		}
		c.breakables = append(c.breakables, true)
		stmt.Body = c.block(s.Body)
		c.breakables = c.breakables[:len(c.breakables)-1]
		return stmt

	case *goast.RangeStmt:
		c.unsupported(s, "range loops are not supported")
	case *goast.GoStmt:
		c.unsupported(s, "go statements are not supported")
	case *goast.DeferStmt:
		c.unsupported(s, "defer statements are not supported")
	case *goast.SelectStmt:
		c.unsupported(s, "select statements are not supported")
	case *goast.SendStmt:
		c.unsupported(s, "channel sends are not supported")
	case *goast.LabeledStmt:
		c.unsupported(s, "labels are not supported")
	case *goast.TypeSwitchStmt:
		c.unsupported(s, "type switches are not supported")
	}
	c.fail(diag.Syntax, s, "unexpected statement")
	return nil
}

// exprStmt recognises print and println, which GoLite treats as statements.
func (c *converter) exprStmt(s *goast.ExprStmt) ast.Stmt {
	if call, ok := unparen(s.X).(*goast.CallExpr); ok {
		if id, ok := unparen(call.Fun).(*goast.Ident); ok && (id.Name == "print" || id.Name == "println") {
			if call.Ellipsis.IsValid() {
				c.unsupported(call, "variadic calls are not supported")
			}
			stmt := &ast.PrintStmt{Loc: c.pos(call.Pos()), Newline: id.Name == "println"}
			for _, a := range call.Args {
				stmt.Args = append(stmt.Args, c.expr(a))
			}
			return stmt
		}
	}
	x := c.expr(s.X)
	if _, ok := x.(*ast.CallExpr); !ok {
		c.fail(diag.Syntax, s.X, "expression is evaluated but not used")
	}
	return &ast.ExprStmt{X: x}
}

func (c *converter) assign(s *goast.AssignStmt) ast.Stmt {
	loc := c.pos(s.TokPos)
	switch s.Tok {
	case token.DEFINE:
		stmt := &ast.ShortVarDecl{Loc: loc}
		for _, l := range s.Lhs {
			id, ok := l.(*goast.Ident)
			if !ok {
				c.fail(diag.Syntax, l, "non-name on left side of :=")
			}
			stmt.Lhs = append(stmt.Lhs, c.ident(id))
		}
		for _, r := range s.Rhs {
			stmt.Rhs = append(stmt.Rhs, c.expr(r))
		}
		return stmt
	case token.ASSIGN:
		stmt := &ast.AssignStmt{Loc: loc}
		for _, l := range s.Lhs {
			stmt.Lhs = append(stmt.Lhs, c.expr(l))
		}
		for _, r := range s.Rhs {
			stmt.Rhs = append(stmt.Rhs, c.expr(r))
		}
		return stmt
	}
	// x op= y; go/parser guarantees one operand on each side.
	return &ast.OpAssignStmt{
		Loc: loc,
		Lhs: c.expr(s.Lhs[0]),
		Op:  strings.TrimSuffix(s.Tok.String(), "="),
		Rhs: c.expr(s.Rhs[0]),
	}
}

func (c *converter) branch(s *goast.BranchStmt) ast.Stmt {
	switch s.Tok {
	case token.GOTO:
		c.unsupported(s, "goto statements are not supported")
	case token.FALLTHROUGH:
		c.unsupported(s, "fallthrough statements are not supported")
	}
	if s.Label != nil {
		c.unsupported(s.Label, "labels are not supported")
	}
	loc := c.pos(s.Pos())
	switch s.Tok {
	case token.BREAK:
		if len(c.breakables) == 0 {
			c.fail(diag.Syntax, s, "break is not in a loop or switch")
		}
		// Switches lower to if chains, which cannot be broken out of.
		if !c.breakables[len(c.breakables)-1] {
			c.unsupported(s, "break inside a switch is not supported")
		}
		return &ast.BreakStmt{Loc: loc}
	case token.CONTINUE:
		if !c.inLoop() {
			c.fail(diag.Syntax, s, "continue is not in a loop")
		}
		return &ast.ContinueStmt{Loc: loc}
	}
	c.fail(diag.Syntax, s, "unexpected %s", s.Tok)
	return nil
}

func (c *converter) switchStmt(s *goast.SwitchStmt) ast.Stmt {
	stmt := &ast.SwitchStmt{
		Loc:  c.pos(s.Pos()),
		Init: c.simpleStmt(s.Init),
	}
	if s.Tag != nil {
		stmt.Tag = c.expr(s.Tag)
	}
	var sawDefault bool
	c.breakables = append(c.breakables, false)
	for _, cs := range s.Body.List {
		cc := cs.(*goast.CaseClause)
		clause := &ast.CaseClause{Loc: c.pos(cc.Pos())}
		if cc.List == nil {
			if sawDefault {
				c.fail(diag.Syntax, cc, "multiple defaults in switch")
			}
			sawDefault = true
		} else {
			clause.Exprs = []ast.Expr{}
			for _, e := range cc.List {
				clause.Exprs = append(clause.Exprs, c.expr(e))
			}
		}
		clause.Body = c.stmts(cc.Body)
		stmt.Cases = append(stmt.Cases, clause)
	}
	c.breakables = c.breakables[:len(c.breakables)-1]
	return stmt
}
