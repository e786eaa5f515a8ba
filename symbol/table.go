package symbol

import (
	"github.com/hardik-vala/gopy/diag"
	"github.com/hardik-vala/gopy/types"
)

const (
	UniverseDepth = 0
	GlobalDepth   = 1
)

// Scope is one lexical block. Symbols are kept in declaration order.
type Scope struct {
	depth   int
	names   []string
	symbols map[string]*Symbol
}

func newScope(depth int) *Scope {
	return &Scope{depth: depth, symbols: map[string]*Symbol{}}
}

func (s *Scope) Depth() int { return s.depth }

func (s *Scope) Lookup(name string) *Symbol {
	return s.symbols[name]
}

// Symbols returns every symbol of the scope in declaration order.
func (s *Scope) Symbols() []*Symbol {
	syms := make([]*Symbol, len(s.names))
	for i, n := range s.names {
		syms[i] = s.symbols[n]
	}
	return syms
}

// Table is a stack of scopes. The universe scope, holding true and false,
// is at the bottom.
type Table struct {
	scopes []*Scope
}

func NewTable() *Table {
	t := &Table{}
	t.EnterScope()
	t.Declare(NewVar("true", types.Bool, nil))
	t.Declare(NewVar("false", types.Bool, nil))
	return t
}

func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, newScope(len(t.scopes)))
}

// ExitScope pops the innermost scope and returns it.
func (t *Table) ExitScope() *Scope {
	if len(t.scopes) == 0 {
		panic("symbol: ExitScope on empty table")
	}
	s := t.scopes[len(t.scopes)-1]
	t.scopes = t.scopes[:len(t.scopes)-1]
	return s
}

// Depth is the depth of the innermost scope.
func (t *Table) Depth() int { return len(t.scopes) - 1 }

func (t *Table) Current() *Scope { return t.scopes[len(t.scopes)-1] }

// Declare adds sym to the innermost scope. The blank identifier is
// ignored.
func (t *Table) Declare(sym *Symbol) error {
	if sym.Name == "_" {
		return nil
	}
	cur := t.Current()
	if prev, ok := cur.symbols[sym.Name]; ok {
		if prev.Decl != nil && prev.Decl.Pos().IsValid() {
			return diag.Errorf(diag.Redeclaration, sym.pos(),
				"%s redeclared in this block (previous declaration at %v)", sym.Name, prev.Decl.Pos())
		}
		return diag.Errorf(diag.Redeclaration, sym.pos(), "%s redeclared in this block", sym.Name)
	}
	cur.names = append(cur.names, sym.Name)
	cur.symbols[sym.Name] = sym
	return nil
}

// Lookup finds name in the innermost scope declaring it. The returned error
// has no position; callers attach the position of the use.
func (t *Table) Lookup(name string) (*Symbol, error) {
	sym, _ := t.lookup(name)
	if sym == nil {
		return nil, diag.Errorf(diag.UndefinedSymbol, diag.Position{}, "undefined: %s", name)
	}
	return sym, nil
}

func (t *Table) lookup(name string) (*Symbol, int) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i].symbols[name]; ok {
			return sym, i
		}
	}
	return nil, -1
}

func (t *Table) DefinedInCurrentScope(name string) bool {
	_, ok := t.Current().symbols[name]
	return ok
}

// ScopeDepthOf returns the depth of the scope that name resolves to.
func (t *Table) ScopeDepthOf(name string) (int, error) {
	sym, depth := t.lookup(name)
	if sym == nil {
		return -1, diag.Errorf(diag.UndefinedSymbol, diag.Position{}, "undefined: %s", name)
	}
	return depth, nil
}

// SymbolsInScope returns the variables of the active scope at depth, in
// declaration order.
func (t *Table) SymbolsInScope(depth int) []*Symbol {
	if depth < 0 || depth >= len(t.scopes) {
		return nil
	}
	var vars []*Symbol
	for _, sym := range t.scopes[depth].Symbols() {
		if sym.Kind == Variable {
			vars = append(vars, sym)
		}
	}
	return vars
}
