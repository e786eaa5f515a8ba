package checker

import (
	"sort"
	"strings"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/diag"
	"github.com/hardik-vala/gopy/symbol"
)

// refSet is a set of package-level functions and variables.
type refSet map[*symbol.Symbol]bool

// sorted returns the members of r in declaration order.
func (r refSet) sorted() []*symbol.Symbol {
	syms := make([]*symbol.Symbol, 0, len(r))
	for sym := range r {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		a, b := syms[i].Decl.Pos(), syms[j].Decl.Pos()
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return syms
}

// initVar is a package-level variable and what its initializer refers to.
type initVar struct {
	name *ast.Ident
	sym  *symbol.Symbol
	refs refSet
}

func (c *checker) refsOf(sym *symbol.Symbol) refSet {
	if v := c.varSyms[sym]; v != nil {
		return v.refs
	}
	return c.calls[sym]
}

// deps returns the variables v's initializer depends on, following
// references through the bodies of the functions it calls.
func (c *checker) deps(v *initVar) map[*initVar]bool {
	deps := map[*initVar]bool{}
	seen := map[*symbol.Symbol]bool{}
	var visit func(refSet)
	visit = func(refs refSet) {
		for sym := range refs {
			if seen[sym] {
				continue
			}
			seen[sym] = true
			if dep := c.varSyms[sym]; dep != nil {
				deps[dep] = true
				continue
			}
			visit(c.calls[sym])
		}
	}
	visit(v.refs)
	return deps
}

// initOrder repeatedly picks the earliest variable in source order whose
// dependencies are all initialized.
func (c *checker) initOrder() ([]*ast.Ident, error) {
	deps := make([]map[*initVar]bool, len(c.vars))
	for i, v := range c.vars {
		deps[i] = c.deps(v)
	}

	done := map[*initVar]bool{}
	order := make([]*ast.Ident, 0, len(c.vars))
	for len(order) < len(c.vars) {
		next := -1
	search:
		for i, v := range c.vars {
			if done[v] {
				continue
			}
			for dep := range deps[i] {
				if !done[dep] {
					continue search
				}
			}
			next = i
			break
		}
		if next < 0 {
			return nil, c.cycleError(done)
		}
		done[c.vars[next]] = true
		order = append(order, c.vars[next].name)
	}
	return order, nil
}

func (c *checker) cycleError(done map[*initVar]bool) error {
	var first *initVar
	for _, v := range c.vars {
		if done[v] {
			continue
		}
		if first == nil {
			first = v
		}
		path := c.cycle(v)
		if path == nil {
			continue
		}
		steps := make([]string, len(path))
		for i, sym := range path {
			next := v.sym
			if i+1 < len(path) {
				next = path[i+1]
			}
			steps[i] = sym.Name + " refers to " + next.Name
		}
		return errorf(diag.InitCycle, v.name, "initialization cycle: %s", strings.Join(steps, ", "))
	}
	return errorf(diag.InitCycle, first.name, "initialization cycle for %s", first.name.Name)
}

// cycle returns the shortest chain of references leading from v back to
// itself, starting with v, or nil.
func (c *checker) cycle(v *initVar) []*symbol.Symbol {
	parent := map[*symbol.Symbol]*symbol.Symbol{}
	queue := []*symbol.Symbol{v.sym}
	for len(queue) > 0 {
		sym := queue[0]
		queue = queue[1:]
		for _, next := range c.refsOf(sym).sorted() {
			if next == v.sym {
				path := []*symbol.Symbol{sym}
				for p := sym; p != v.sym; {
					p = parent[p]
					path = append(path, p)
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path
			}
			if _, ok := parent[next]; ok {
				continue
			}
			parent[next] = sym
			queue = append(queue, next)
		}
	}
	return nil
}
