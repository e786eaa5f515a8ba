package frontend

import (
	goast "go/ast"
	"go/token"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/diag"
)

func (c *converter) topDecl(d goast.Decl) ast.Decl {
	switch d := d.(type) {
	case *goast.GenDecl:
		return c.genDecl(d).(ast.Decl)
	case *goast.FuncDecl:
		return c.funcDecl(d)
	case *goast.BadDecl:
		c.fail(diag.Syntax, d, "invalid declaration")
	}
	c.unsupported(d, "unsupported declaration")
	return nil
}

// genDecl returns an *ast.VarDecl or *ast.TypeDecl.
func (c *converter) genDecl(d *goast.GenDecl) ast.Node {
	switch d.Tok {
	case token.VAR:
		decl := &ast.VarDecl{Loc: c.pos(d.Pos())}
		for _, s := range d.Specs {
			vs := s.(*goast.ValueSpec)
			spec := &ast.VarSpec{Names: c.idents(vs.Names)}
			if vs.Type != nil {
				spec.Type = c.typeExpr(vs.Type)
			}
			for _, v := range vs.Values {
				spec.Values = append(spec.Values, c.expr(v))
			}
			decl.Specs = append(decl.Specs, spec)
		}
		return decl
	case token.TYPE:
		decl := &ast.TypeDecl{Loc: c.pos(d.Pos())}
		for _, s := range d.Specs {
			ts := s.(*goast.TypeSpec)
			if ts.TypeParams != nil {
				c.unsupported(ts.TypeParams, "generic types are not supported")
			}
			if ts.Assign.IsValid() {
				c.unsupported(ts, "alias declarations (type %s = ...) are not supported", ts.Name.Name)
			}
			decl.Specs = append(decl.Specs, &ast.TypeSpec{
				Name: c.ident(ts.Name),
				Type: c.typeExpr(ts.Type),
			})
		}
		return decl
	case token.CONST:
		c.unsupported(d, "constants are not supported")
	case token.IMPORT:
		c.unsupported(d, "imports are not supported")
	}
	c.unsupported(d, "unsupported declaration")
	return nil
}

func (c *converter) funcDecl(d *goast.FuncDecl) *ast.FuncDecl {
	if d.Recv != nil {
		c.unsupported(d.Recv, "methods are not supported")
	}
	if d.Type.TypeParams != nil {
		c.unsupported(d.Type.TypeParams, "generic functions are not supported")
	}
	if d.Body == nil {
		c.unsupported(d, "function %s has no body", d.Name.Name)
	}

	fn := &ast.FuncDecl{Loc: c.pos(d.Pos()), Name: c.ident(d.Name)}
	for _, f := range d.Type.Params.List {
		if _, ok := f.Type.(*goast.Ellipsis); ok {
			c.unsupported(f.Type, "variadic parameters are not supported")
		}
		if len(f.Names) == 0 {
			c.unsupported(f, "unnamed parameters are not supported")
		}
		fn.Params = append(fn.Params, &ast.ParamGroup{
			Names: c.idents(f.Names),
			Type:  c.typeExpr(f.Type),
		})
	}
	if res := d.Type.Results; res != nil && len(res.List) > 0 {
		if len(res.List) > 1 || len(res.List[0].Names) > 0 {
			c.unsupported(res, "multiple or named results are not supported")
		}
		fn.Result = c.typeExpr(res.List[0].Type)
	}
	c.breakables = nil
	fn.Body = c.block(d.Body)
	return fn
}

var primitiveTypes = map[string]bool{
	"bool":    true,
	"int":     true,
	"float64": true,
	"rune":    true,
	"string":  true,
}

func (c *converter) typeExpr(t goast.Expr) ast.TypeExpr {
	switch t := t.(type) {
	case *goast.ParenExpr:
		return c.typeExpr(t.X)
	case *goast.Ident:
		if primitiveTypes[t.Name] {
			return &ast.PrimitiveType{Loc: c.pos(t.Pos()), Name: t.Name}
		}
		return &ast.NamedType{Name: c.ident(t)}
	case *goast.ArrayType:
		elem := c.typeExpr(t.Elt)
		if t.Len == nil {
			return &ast.SliceType{Loc: c.pos(t.Pos()), Elem: elem}
		}
		lit, ok := t.Len.(*goast.BasicLit)
		if !ok || lit.Kind != token.INT {
			c.fail(diag.NonIntegerIndexOrBound, t.Len, "array bound must be an integer literal")
		}
		return &ast.ArrayType{Loc: c.pos(t.Pos()), Len: c.intLit(lit), Elem: elem}
	case *goast.StructType:
		st := &ast.StructType{Loc: c.pos(t.Pos())}
		for _, f := range t.Fields.List {
			if len(f.Names) == 0 {
				c.unsupported(f, "embedded fields are not supported")
			}
			if f.Tag != nil {
				c.unsupported(f.Tag, "struct tags are not supported")
			}
			st.Fields = append(st.Fields, &ast.Field{
				Names: c.idents(f.Names),
				Type:  c.typeExpr(f.Type),
			})
		}
		return st
	case *goast.StarExpr:
		c.unsupported(t, "pointer types are not supported")
	case *goast.MapType:
		c.unsupported(t, "map types are not supported")
	case *goast.ChanType:
		c.unsupported(t, "channel types are not supported")
	case *goast.FuncType:
		c.unsupported(t, "function types are not supported")
	case *goast.InterfaceType:
		c.unsupported(t, "interface types are not supported")
	case *goast.SelectorExpr:
		c.unsupported(t, "qualified types are not supported")
	}
	c.fail(diag.Syntax, t, "expected type")
	return nil
}
