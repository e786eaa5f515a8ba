package frontend

import (
	goast "go/ast"
	"go/token"
	"strconv"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/diag"
)

func unparen(x goast.Expr) goast.Expr {
	for {
		p, ok := x.(*goast.ParenExpr)
		if !ok {
			return x
		}
		x = p.X
	}
}

var unaryOps = map[token.Token]bool{
	token.ADD: true, token.SUB: true, token.NOT: true, token.XOR: true,
}

var binaryOps = map[token.Token]bool{
	token.ADD: true, token.SUB: true, token.MUL: true, token.QUO: true, token.REM: true,
	token.AND: true, token.OR: true, token.XOR: true, token.AND_NOT: true,
	token.SHL: true, token.SHR: true,
	token.EQL: true, token.NEQ: true, token.LSS: true, token.LEQ: true, token.GTR: true, token.GEQ: true,
	token.LAND: true, token.LOR: true,
}

func (c *converter) expr(x goast.Expr) ast.Expr {
	switch x := x.(type) {
	case *goast.ParenExpr:
		return c.expr(x.X)

	case *goast.Ident:
		return c.ident(x)

	case *goast.BasicLit:
		return c.basicLit(x)

	case *goast.UnaryExpr:
		if !unaryOps[x.Op] {
			c.unsupported(x, "unary operator %s is not supported", x.Op)
		}
		return &ast.UnaryExpr{Loc: c.pos(x.Pos()), Op: x.Op.String(), X: c.expr(x.X)}

	case *goast.BinaryExpr:
		if !binaryOps[x.Op] {
			c.unsupported(x, "binary operator %s is not supported", x.Op)
		}
		return &ast.BinaryExpr{
			Loc: c.pos(x.OpPos),
			X:   c.expr(x.X),
			Op:  x.Op.String(),
			Y:   c.expr(x.Y),
		}

	case *goast.CallExpr:
		return c.call(x)

	case *goast.IndexExpr:
		return &ast.IndexExpr{Loc: c.pos(x.Lbrack), X: c.expr(x.X), Index: c.expr(x.Index)}

	case *goast.SelectorExpr:
		return &ast.SelectorExpr{Loc: c.pos(x.Sel.Pos()), X: c.expr(x.X), Sel: c.ident(x.Sel)}

	case *goast.CompositeLit:
		c.unsupported(x, "composite literals are not supported")
	case *goast.FuncLit:
		c.unsupported(x, "function literals are not supported")
	case *goast.SliceExpr:
		c.unsupported(x, "slice expressions are not supported")
	case *goast.StarExpr:
		c.unsupported(x, "pointers are not supported")
	case *goast.TypeAssertExpr:
		c.unsupported(x, "type assertions are not supported")
	case *goast.IndexListExpr:
		c.unsupported(x, "generic instantiation is not supported")
	case *goast.KeyValueExpr:
		c.unsupported(x, "key-value expressions are not supported")
	}
	c.fail(diag.Syntax, x, "expected expression")
	return nil
}

func (c *converter) intLit(lit *goast.BasicLit) *ast.IntLit {
	v, err := strconv.ParseInt(lit.Value, 0, 64)
	if err != nil {
		c.fail(diag.Syntax, lit, "integer literal %s overflows", lit.Value)
	}
	return &ast.IntLit{Loc: c.pos(lit.Pos()), Raw: lit.Value, Value: v}
}

func (c *converter) basicLit(lit *goast.BasicLit) ast.Expr {
	loc := c.pos(lit.Pos())
	switch lit.Kind {
	case token.INT:
		return c.intLit(lit)
	case token.FLOAT:
		v, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			c.fail(diag.Syntax, lit, "invalid float literal %s", lit.Value)
		}
		return &ast.FloatLit{Loc: loc, Raw: lit.Value, Value: v}
	case token.CHAR:
		body := lit.Value[1 : len(lit.Value)-1]
		v, _, tail, err := strconv.UnquoteChar(body, '\'')
		if err != nil || tail != "" {
			c.fail(diag.Syntax, lit, "invalid rune literal %s", lit.Value)
		}
		return &ast.RuneLit{Loc: loc, Raw: lit.Value, Value: v}
	case token.STRING:
		v, err := strconv.Unquote(lit.Value)
		if err != nil {
			c.fail(diag.Syntax, lit, "invalid string literal %s", lit.Value)
		}
		return &ast.StringLit{Loc: loc, Raw: lit.Value, Value: v}
	}
	c.unsupported(lit, "%s literals are not supported", lit.Kind)
	return nil
}

func (c *converter) call(x *goast.CallExpr) ast.Expr {
	if x.Ellipsis.IsValid() {
		c.unsupported(x, "variadic calls are not supported")
	}
	loc := c.pos(x.Pos())
	id, ok := unparen(x.Fun).(*goast.Ident)
	if !ok {
		switch fun := unparen(x.Fun).(type) {
		case *goast.FuncLit:
			c.unsupported(fun, "function literals are not supported")
		case *goast.SelectorExpr:
			c.unsupported(fun, "qualified calls are not supported")
		case *goast.ArrayType:
			c.unsupported(fun, "conversions to composite types are not supported")
		}
		c.fail(diag.NotCallable, x.Fun, "cannot call non-function")
	}

	switch {
	case id.Name == "append":
		if len(x.Args) != 2 {
			c.fail(diag.Arity, x, "append expects 2 arguments, got %d", len(x.Args))
		}
		slice, ok := unparen(x.Args[0]).(*goast.Ident)
		if !ok {
			c.fail(diag.TypeMismatch, x.Args[0], "first argument to append must be a variable")
		}
		return &ast.AppendExpr{Loc: loc, Slice: c.ident(slice), Elem: c.expr(x.Args[1])}

	case id.Name == "print" || id.Name == "println":
		c.fail(diag.VoidValueUsed, x, "%s(...) used as value", id.Name)

	case primitiveTypes[id.Name]:
		if len(x.Args) != 1 {
			c.fail(diag.Arity, x, "conversion to %s expects 1 argument, got %d", id.Name, len(x.Args))
		}
		return &ast.ConversionExpr{
			Loc:  loc,
			Type: &ast.PrimitiveType{Loc: c.pos(id.Pos()), Name: id.Name},
			X:    c.expr(x.Args[0]),
		}
	}

	call := &ast.CallExpr{Loc: loc, Fun: c.ident(id)}
	for _, a := range x.Args {
		call.Args = append(call.Args, c.expr(a))
	}
	return call
}
