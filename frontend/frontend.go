// Package frontend turns GoLite source into an ast.Program.
//
// GoLite's concrete syntax is a subset of Go's, so source text is parsed with
// go/parser and the resulting go/ast tree is converted node by node. Every Go
// construct outside the subset is rejected with a diag.Unsupported error at
// its position.
package frontend

import (
	"errors"
	"fmt"
	goast "go/ast"
	"go/parser"
	"go/scanner"
	"go/token"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/diag"
)

// ParseFile parses one GoLite source file.
func ParseFile(filename string, src []byte) (*ast.Program, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, syntaxError(err)
	}
	return convertFiles(fset, []*goast.File{f})
}

// ParseExpr parses a single GoLite expression.
func ParseExpr(src string) (ast.Expr, error) {
	fset := token.NewFileSet()
	x, err := parser.ParseExprFrom(fset, "", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, syntaxError(err)
	}
	c := &converter{fset: fset}
	var e ast.Expr
	err = c.run(func() { e = c.expr(x) })
	return e, err
}

func convertFiles(fset *token.FileSet, files []*goast.File) (*ast.Program, error) {
	c := &converter{fset: fset}
	var prog *ast.Program
	err := c.run(func() {
		prog = &ast.Program{Package: c.ident(files[0].Name)}
		for _, f := range files {
			if len(f.Imports) > 0 {
				c.unsupported(f.Imports[0], "imports are not supported")
			}
			if f.Name.Name != prog.Package.Name {
				c.fail(diag.Syntax, f.Name, "package %s; expected %s", f.Name.Name, prog.Package.Name)
			}
			for _, d := range f.Decls {
				prog.Decls = append(prog.Decls, c.topDecl(d))
			}
		}
	})
	return prog, err
}

// syntaxError converts the first error reported by go/parser.
func syntaxError(err error) error {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		e := list[0]
		return &diag.Error{
			Kind: diag.Syntax,
			Pos:  diag.Position{Line: e.Pos.Line, Column: e.Pos.Column},
			Msg:  e.Msg,
		}
	}
	return fmt.Errorf("parse: %w", err)
}

// bailout carries the first error out of the recursive conversion.
type bailout struct {
	err *diag.Error
}

type converter struct {
	fset *token.FileSet

	// Innermost enclosing breakable statements, true for loops.
	breakables []bool
}

func (c *converter) run(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			err = b.err
		}
	}()
	f()
	return nil
}

func (c *converter) pos(p token.Pos) diag.Position {
	position := c.fset.Position(p)
	return diag.Position{Line: position.Line, Column: position.Column}
}

func (c *converter) fail(kind diag.Kind, n goast.Node, format string, args ...any) {
	panic(bailout{diag.Errorf(kind, c.pos(n.Pos()), format, args...)})
}

func (c *converter) unsupported(n goast.Node, format string, args ...any) {
	c.fail(diag.Unsupported, n, format, args...)
}

func (c *converter) ident(id *goast.Ident) *ast.Ident {
	return &ast.Ident{Loc: c.pos(id.Pos()), Name: id.Name}
}

func (c *converter) idents(ids []*goast.Ident) []*ast.Ident {
	out := make([]*ast.Ident, len(ids))
	for i, id := range ids {
		out[i] = c.ident(id)
	}
	return out
}

func (c *converter) inLoop() bool {
	for _, isLoop := range c.breakables {
		if isLoop {
			return true
		}
	}
	return false
}
