// Package symbol implements the scoped symbol table used by the checker and
// the code generator.
package symbol

import (
	"fmt"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/diag"
	"github.com/hardik-vala/gopy/types"
)

type Kind int

const (
	Variable Kind = iota
	Function
	TypeAlias
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Function:
		return "function"
	case TypeAlias:
		return "type"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParamGroup is one `a, b T` group of a function signature.
type ParamGroup struct {
	Type  types.Type
	Count int
}

type Symbol struct {
	Name string
	Kind Kind
	// Type is the variable's type, the alias for a TypeAlias, or types.Void
	// for a Function.
	Type types.Type
	// Decl is the declaring node, used for diagnostics. Nil for the
	// universe scope.
	Decl ast.Node

	Params []ParamGroup
	Result types.Type
}

// Arity is the total number of parameters of a function symbol.
func (s *Symbol) Arity() int {
	n := 0
	for _, g := range s.Params {
		n += g.Count
	}
	return n
}

// ParamTypes flattens Params to one type per parameter.
func (s *Symbol) ParamTypes() []types.Type {
	var ts []types.Type
	for _, g := range s.Params {
		for i := 0; i < g.Count; i++ {
			ts = append(ts, g.Type)
		}
	}
	return ts
}

func (s *Symbol) pos() diag.Position {
	if s.Decl == nil {
		return diag.Position{}
	}
	return s.Decl.Pos()
}

func NewVar(name string, t types.Type, decl ast.Node) *Symbol {
	return &Symbol{Name: name, Kind: Variable, Type: t, Decl: decl}
}
