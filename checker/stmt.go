package checker

import (
	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/diag"
	"github.com/hardik-vala/gopy/symbol"
	"github.com/hardik-vala/gopy/types"
)

func (c *checker) stmts(list []ast.Stmt) error {
	for _, s := range list {
		if err := c.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) block(b *ast.BlockStmt) error {
	c.table.EnterScope()
	defer c.table.ExitScope()
	return c.stmts(b.Stmts)
}

func (c *checker) stmt(s ast.Stmt) error {
	switch s := s.(type) {
	case nil, *ast.EmptyStmt, *ast.BreakStmt, *ast.ContinueStmt:
		return nil

	case *ast.VarDecl:
		return c.varDecl(s)

	case *ast.TypeDecl:
		return c.typeDecl(s)

	case *ast.ExprStmt:
		if call, ok := s.X.(*ast.CallExpr); ok {
			if sym, err := c.lookup(call.Fun); err == nil && sym.Kind == symbol.TypeAlias {
				return errorf(diag.TypeMismatch, call, "%s(...) is not used", call.Fun.Name)
			}
		}
		_, err := c.expr(s.X)
		return err

	case *ast.ShortVarDecl:
		return c.shortVarDecl(s)

	case *ast.AssignStmt:
		return c.assign(s)

	case *ast.OpAssignStmt:
		return c.opAssign(s)

	case *ast.IncDecStmt:
		t, err := c.assignable(s.X)
		if err != nil {
			return err
		}
		if !types.IsNumeric(t) {
			op := "--"
			if s.Inc {
				op = "++"
			}
			return errorf(diag.UnsupportedOperator, s, "invalid operation: %s (non-numeric type %v)", op, t)
		}
		return nil

	case *ast.PrintStmt:
		for _, a := range s.Args {
			t, err := c.value(a)
			if err != nil {
				return err
			}
			if !types.IsPrimitive(t) {
				return errorf(diag.TypeMismatch, a, "cannot print value of type %v", t)
			}
		}
		return nil

	case *ast.ReturnStmt:
		return c.returnStmt(s)

	case *ast.BlockStmt:
		return c.block(s)

	case *ast.IfStmt:
		return c.ifStmt(s)

	case *ast.SwitchStmt:
		return c.switchStmt(s)

	case *ast.ForStmt:
		return c.forStmt(s)
	}
	panic("checker: unexpected statement")
}

func (c *checker) shortVarDecl(s *ast.ShortVarDecl) error {
	if len(s.Lhs) != len(s.Rhs) {
		return errorf(diag.Arity, s, "assignment mismatch: %d variables but %d values", len(s.Lhs), len(s.Rhs))
	}

	seen := map[string]bool{}
	for _, id := range s.Lhs {
		if id.IsBlank() {
			continue
		}
		if seen[id.Name] {
			return errorf(diag.Redeclaration, id, "%s repeated on left side of :=", id.Name)
		}
		seen[id.Name] = true
	}

	values := make([]types.Type, len(s.Rhs))
	for i, r := range s.Rhs {
		t, err := c.value(r)
		if err != nil {
			return err
		}
		values[i] = t
	}

	var fresh []int
	for i, id := range s.Lhs {
		if id.IsBlank() {
			c.record(id, values[i])
			continue
		}
		if !c.table.DefinedInCurrentScope(id.Name) {
			fresh = append(fresh, i)
			continue
		}
		sym, _ := c.table.Lookup(id.Name)
		if sym.Kind != symbol.Variable {
			return errorf(diag.TypeMismatch, id, "cannot assign to %s (not a variable)", id.Name)
		}
		if !assignableTo(s.Rhs[i], values[i], sym.Type) {
			return errorf(diag.TypeMismatch, s.Rhs[i],
				"cannot use value of type %v as %v value in assignment", values[i], sym.Type)
		}
		c.record(id, sym.Type)
	}
	if len(fresh) == 0 {
		return errorf(diag.Redeclaration, s, "no new variables on left side of :=")
	}
	for _, i := range fresh {
		id := s.Lhs[i]
		c.record(id, values[i])
		if err := c.declare(symbol.NewVar(id.Name, values[i], id)); err != nil {
			return err
		}
	}
	return nil
}

// assignable checks that e denotes a storage location and returns its type.
func (c *checker) assignable(e ast.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *ast.Ident:
		if e.IsBlank() {
			return nil, errorf(diag.TypeMismatch, e, "cannot use _ as value")
		}
		sym, err := c.lookup(e)
		if err != nil {
			return nil, err
		}
		if sym.Kind != symbol.Variable {
			return nil, errorf(diag.TypeMismatch, e, "cannot assign to %s (not a variable)", e.Name)
		}
	case *ast.IndexExpr, *ast.SelectorExpr:
	default:
		return nil, errorf(diag.TypeMismatch, e, "cannot assign to %s", ast.ToSExpr(e))
	}
	return c.value(e)
}

func (c *checker) assign(s *ast.AssignStmt) error {
	if len(s.Lhs) != len(s.Rhs) {
		return errorf(diag.Arity, s, "assignment mismatch: %d variables but %d values", len(s.Lhs), len(s.Rhs))
	}
	for i, l := range s.Lhs {
		rt, err := c.value(s.Rhs[i])
		if err != nil {
			return err
		}
		if id, ok := l.(*ast.Ident); ok && id.IsBlank() {
			c.record(id, rt)
			continue
		}
		lt, err := c.assignable(l)
		if err != nil {
			return err
		}
		if !assignableTo(s.Rhs[i], rt, lt) {
			return errorf(diag.TypeMismatch, s.Rhs[i], "cannot use value of type %v as %v value in assignment", rt, lt)
		}
	}
	return nil
}

func (c *checker) opAssign(s *ast.OpAssignStmt) error {
	lt, err := c.assignable(s.Lhs)
	if err != nil {
		return err
	}
	rt, err := c.value(s.Rhs)
	if err != nil {
		return err
	}
	if !assignableTo(s.Rhs, rt, lt) {
		return errorf(diag.TypeMismatch, s, "invalid operation: %s= (mismatched types %v and %v)", s.Op, lt, rt)
	}
	if !operandOK(s.Op, lt) {
		return errorf(diag.UnsupportedOperator, s, "invalid operation: operator %s not defined on %v", s.Op, lt)
	}
	return nil
}

func (c *checker) returnStmt(s *ast.ReturnStmt) error {
	want := c.fn.Result
	if s.Result == nil {
		if want != types.Void {
			return errorf(diag.Arity, s, "not enough return values\n\thave ()\n\twant (%v)", want)
		}
		return nil
	}
	got, err := c.value(s.Result)
	if err != nil {
		return err
	}
	if want == types.Void {
		return errorf(diag.Arity, s.Result, "too many return values\n\thave (%v)\n\twant ()", got)
	}
	if !assignableTo(s.Result, got, want) {
		return errorf(diag.TypeMismatch, s.Result, "cannot use value of type %v as %v value in return statement", got, want)
	}
	return nil
}

func (c *checker) condition(e ast.Expr, what string) error {
	t, err := c.value(e)
	if err != nil {
		return err
	}
	if !types.IsBool(t) {
		return errorf(diag.NonBooleanCondition, e, "non-boolean condition in %s (type %v)", what, t)
	}
	return nil
}

func (c *checker) ifStmt(s *ast.IfStmt) error {
	c.table.EnterScope()
	defer c.table.ExitScope()

	if err := c.stmt(s.Init); err != nil {
		return err
	}
	if err := c.condition(s.Cond, "if statement"); err != nil {
		return err
	}
	if err := c.block(s.Then); err != nil {
		return err
	}
	return c.stmt(s.Else)
}

func (c *checker) switchStmt(s *ast.SwitchStmt) error {
	c.table.EnterScope()
	defer c.table.ExitScope()

	if err := c.stmt(s.Init); err != nil {
		return err
	}
	var tag types.Type
	if s.Tag != nil {
		t, err := c.value(s.Tag)
		if err != nil {
			return err
		}
		if !types.IsComparable(t) {
			return errorf(diag.UnsupportedOperator, s.Tag, "cannot switch on value of type %v", t)
		}
		tag = t
	}
	for _, cc := range s.Cases {
		if err := c.caseClause(cc, tag); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) caseClause(cc *ast.CaseClause, tag types.Type) error {
	c.table.EnterScope()
	defer c.table.ExitScope()

	for _, e := range cc.Exprs {
		t, err := c.value(e)
		if err != nil {
			return err
		}
		if tag == nil {
			if !types.IsBool(t) {
				return errorf(diag.NonBooleanCondition, e, "non-boolean case expression (type %v)", t)
			}
		} else if !assignableTo(e, t, tag) {
			return errorf(diag.TypeMismatch, e, "invalid case in switch (mismatched types %v and %v)", t, tag)
		}
	}
	return c.stmts(cc.Body)
}

func (c *checker) forStmt(s *ast.ForStmt) error {
	c.table.EnterScope()
	defer c.table.ExitScope()

	if err := c.stmt(s.Init); err != nil {
		return err
	}
	if s.Cond != nil {
		if err := c.condition(s.Cond, "for statement"); err != nil {
			return err
		}
	}
	if err := c.stmt(s.Post); err != nil {
		return err
	}
	return c.block(s.Body)
}
