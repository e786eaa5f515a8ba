// Package checker type-checks a GoLite program.
//
// Check walks the program once, building scopes as it goes, resolving every
// identifier and recording the type of every expression in Info.Types. It
// stops at the first error, which is always a *diag.Error.
package checker

import (
	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/diag"
	"github.com/hardik-vala/gopy/symbol"
	"github.com/hardik-vala/gopy/types"
)

// Info is the result of a successful check.
type Info struct {
	// Types maps expressions, declared identifiers and type expressions to
	// their types. A called function name maps to its result type, or to
	// the alias for a conversion, and a selected field name to the field's
	// type. Each node is written once.
	Types map[ast.Node]types.Type

	// Globals is the package scope as it stood at the end of the check.
	Globals *symbol.Scope

	// InitOrder lists the declared names of the package-level variables in
	// the order their initializers must run. A variable comes after every
	// variable its initializer refers to, directly or through the functions
	// it calls; otherwise source order is kept.
	InitOrder []*ast.Ident
}

// TypeOf returns the recorded type of n, or nil.
func (info *Info) TypeOf(n ast.Node) types.Type {
	return info.Types[n]
}

type checker struct {
	info  *Info
	table *symbol.Table

	// fn is the function whose body is being checked.
	fn *symbol.Symbol

	funcs map[*ast.FuncDecl]*symbol.Symbol

	// vars are the package-level variables in source order.
	vars    []*initVar
	varSyms map[*symbol.Symbol]*initVar
	// calls holds what each function body refers to.
	calls map[*symbol.Symbol]refSet
	// refs, when set, collects the package-level functions and variables
	// looked up while checking a global initializer or a function body.
	refs refSet
}

func newChecker() *checker {
	c := &checker{
		info:    &Info{Types: map[ast.Node]types.Type{}},
		table:   symbol.NewTable(),
		funcs:   map[*ast.FuncDecl]*symbol.Symbol{},
		varSyms: map[*symbol.Symbol]*initVar{},
		calls:   map[*symbol.Symbol]refSet{},
	}
	c.table.EnterScope()
	return c
}

// Check type-checks prog.
//
// Type declarations come first, then function signatures, so functions may
// be called before they are declared. Global variables are then checked in
// source order, and finally function bodies. Last, the initialization order
// of the globals is worked out.
func Check(prog *ast.Program) (*Info, error) {
	c := newChecker()

	for _, d := range prog.Decls {
		if d, ok := d.(*ast.TypeDecl); ok {
			if err := c.typeDecl(d); err != nil {
				return nil, err
			}
		}
	}
	for _, d := range prog.Decls {
		if d, ok := d.(*ast.FuncDecl); ok {
			if err := c.funcSignature(d); err != nil {
				return nil, err
			}
		}
	}
	for _, d := range prog.Decls {
		if d, ok := d.(*ast.VarDecl); ok {
			if err := c.varDecl(d); err != nil {
				return nil, err
			}
		}
	}
	for _, d := range prog.Decls {
		if d, ok := d.(*ast.FuncDecl); ok {
			if err := c.funcBody(d); err != nil {
				return nil, err
			}
		}
	}

	order, err := c.initOrder()
	if err != nil {
		return nil, err
	}
	c.info.InitOrder = order
	c.info.Globals = c.table.Current()
	return c.info, nil
}

// CheckExpr type-checks a standalone expression in an empty package.
func CheckExpr(e ast.Expr) (*Info, error) {
	c := newChecker()
	if _, err := c.expr(e); err != nil {
		return nil, err
	}
	c.info.Globals = c.table.Current()
	return c.info, nil
}

func (c *checker) record(n ast.Node, t types.Type) {
	if _, ok := c.info.Types[n]; !ok {
		c.info.Types[n] = t
	}
}

func errorf(kind diag.Kind, n ast.Node, format string, args ...any) error {
	return diag.Errorf(kind, n.Pos(), format, args...)
}

// at gives a position-less symbol table error the position of n.
func at(err error, n ast.Node) error {
	if e, ok := err.(*diag.Error); ok && !e.Pos.IsValid() {
		e.Pos = n.Pos()
	}
	return err
}

func (c *checker) lookup(id *ast.Ident) (*symbol.Symbol, error) {
	sym, err := c.table.Lookup(id.Name)
	if err != nil {
		return nil, at(err, id)
	}
	if c.refs != nil && (sym.Kind == symbol.Function || c.varSyms[sym] != nil) {
		c.refs[sym] = true
	}
	return sym, nil
}

func (c *checker) declare(sym *symbol.Symbol) error {
	return c.table.Declare(sym)
}

// resolveType evaluates a type expression.
func (c *checker) resolveType(t ast.TypeExpr) (types.Type, error) {
	var typ types.Type
	switch t := t.(type) {
	case *ast.PrimitiveType:
		switch t.Name {
		case "bool":
			typ = types.Bool
		case "int":
			typ = types.Int
		case "float64":
			typ = types.Float64
		case "rune":
			typ = types.Rune
		case "string":
			typ = types.String
		default:
			return nil, errorf(diag.UndefinedSymbol, t, "undefined: %s", t.Name)
		}

	case *ast.NamedType:
		sym, err := c.lookup(t.Name)
		if err != nil {
			return nil, err
		}
		if sym.Kind != symbol.TypeAlias {
			return nil, errorf(diag.TypeMismatch, t, "%s is not a type", t.Name.Name)
		}
		typ = sym.Type

	case *ast.ArrayType:
		elem, err := c.resolveType(t.Elem)
		if err != nil {
			return nil, err
		}
		if t.Len.Value < 0 {
			return nil, errorf(diag.NonIntegerIndexOrBound, t.Len, "invalid array bound %s", t.Len.Raw)
		}
		typ = &types.Array{Elem: elem, Len: int(t.Len.Value)}

	case *ast.SliceType:
		elem, err := c.resolveType(t.Elem)
		if err != nil {
			return nil, err
		}
		typ = &types.Slice{Elem: elem}

	case *ast.StructType:
		st := &types.Struct{}
		for _, f := range t.Fields {
			ft, err := c.resolveType(f.Type)
			if err != nil {
				return nil, err
			}
			for _, name := range f.Names {
				if name.IsBlank() {
					continue
				}
				if st.Field(name.Name) != nil {
					return nil, errorf(diag.Redeclaration, name, "duplicate field %s", name.Name)
				}
				st.Fields = append(st.Fields, &types.Field{Name: name.Name, Type: ft})
			}
		}
		typ = st

	default:
		panic("checker: unexpected type expression")
	}
	c.record(t, typ)
	return typ, nil
}
