package checker

import (
	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/diag"
	"github.com/hardik-vala/gopy/symbol"
	"github.com/hardik-vala/gopy/types"
)

func (c *checker) typeDecl(d *ast.TypeDecl) error {
	for _, spec := range d.Specs {
		under, err := c.resolveType(spec.Type)
		if err != nil {
			return err
		}
		alias := &types.Alias{Name: spec.Name.Name, Type: under}
		c.record(spec.Name, alias)
		sym := &symbol.Symbol{Name: spec.Name.Name, Kind: symbol.TypeAlias, Type: alias, Decl: spec.Name}
		if err := c.declare(sym); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) varDecl(d *ast.VarDecl) error {
	for _, spec := range d.Specs {
		if err := c.varSpec(spec); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) varSpec(spec *ast.VarSpec) error {
	if len(spec.Values) > 0 && len(spec.Values) != len(spec.Names) {
		return errorf(diag.Arity, spec, "assignment mismatch: %d variables but %d values",
			len(spec.Names), len(spec.Values))
	}

	// Initializers are checked before any name is declared, so that
	// `var x = x` refers to an outer x.
	global := c.table.Depth() == symbol.GlobalDepth
	values := make([]types.Type, len(spec.Values))
	refs := make([]refSet, len(spec.Values))
	for i, v := range spec.Values {
		if global {
			c.refs = refSet{}
		}
		t, err := c.value(v)
		if global {
			refs[i], c.refs = c.refs, nil
		}
		if err != nil {
			return err
		}
		values[i] = t
	}

	var declared types.Type
	if spec.Type != nil {
		t, err := c.resolveType(spec.Type)
		if err != nil {
			return err
		}
		declared = t
		for i, vt := range values {
			if !assignableTo(spec.Values[i], vt, declared) {
				return errorf(diag.TypeMismatch, spec.Values[i],
					"cannot use value of type %v as %v value in variable declaration", vt, declared)
			}
		}
	}

	for i, name := range spec.Names {
		t := declared
		if t == nil {
			t = values[i]
		}
		c.record(name, t)
		sym := symbol.NewVar(name.Name, t, name)
		if err := c.declare(sym); err != nil {
			return err
		}
		if global {
			v := &initVar{name: name, sym: sym}
			if len(refs) > 0 {
				v.refs = refs[i]
			}
			c.vars = append(c.vars, v)
			c.varSyms[sym] = v
		}
	}
	return nil
}

func (c *checker) funcSignature(d *ast.FuncDecl) error {
	sym := &symbol.Symbol{Name: d.Name.Name, Kind: symbol.Function, Type: types.Void, Decl: d.Name, Result: types.Void}
	for _, g := range d.Params {
		t, err := c.resolveType(g.Type)
		if err != nil {
			return err
		}
		sym.Params = append(sym.Params, symbol.ParamGroup{Type: t, Count: len(g.Names)})
	}
	if d.Result != nil {
		t, err := c.resolveType(d.Result)
		if err != nil {
			return err
		}
		sym.Result = t
	}
	if (d.Name.Name == "main" || d.Name.Name == "init") && (len(sym.Params) > 0 || sym.Result != types.Void) {
		return errorf(diag.TypeMismatch, d.Name, "func %s must have no arguments and no return values", d.Name.Name)
	}
	c.record(d.Name, sym.Result)
	c.funcs[d] = sym
	return c.declare(sym)
}

func (c *checker) funcBody(d *ast.FuncDecl) error {
	sym := c.funcs[d]
	c.fn = sym
	c.refs = refSet{}
	defer func() {
		c.calls[sym] = c.refs
		c.fn, c.refs = nil, nil
	}()

	c.table.EnterScope()
	defer c.table.ExitScope()

	for i, g := range d.Params {
		t := sym.Params[i].Type
		for _, name := range g.Names {
			c.record(name, t)
			if err := c.declare(symbol.NewVar(name.Name, t, name)); err != nil {
				return err
			}
		}
	}
	// Parameters and the top level of the body share one scope.
	return c.stmts(d.Body.Stmts)
}
