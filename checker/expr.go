package checker

import (
	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/diag"
	"github.com/hardik-vala/gopy/symbol"
	"github.com/hardik-vala/gopy/types"
)

// operandOK reports whether a binary or compound-assignment operator
// applies to operands of type t.
func operandOK(op string, t types.Type) bool {
	switch op {
	case "+":
		return types.IsOrdered(t)
	case "-", "*", "/":
		return types.IsNumeric(t)
	case "%", "&", "|", "^", "&^", "<<", ">>":
		return types.IsIntOrRune(t)
	case "<", "<=", ">", ">=":
		return types.IsOrdered(t)
	case "==", "!=":
		return types.IsComparable(t)
	case "&&", "||":
		return types.IsBool(t)
	}
	return false
}

// assignableTo reports whether e, of type t, may be used where a value of
// type want is expected. A literal also fits an alias of its own type, so
// `var c celsius = 5` is accepted.
func assignableTo(e ast.Expr, t, want types.Type) bool {
	if types.Identical(t, want) {
		return true
	}
	return isLiteral(e) && types.Identical(t, types.Underlying(want))
}

func isLiteral(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.IntLit, *ast.FloatLit, *ast.RuneLit, *ast.StringLit:
		return true
	case *ast.UnaryExpr:
		return (e.Op == "-" || e.Op == "+") && isLiteral(e.X)
	}
	return false
}

func isComparison(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		return true
	}
	return false
}

// value checks an expression used for its value; calls of functions
// without a result are rejected.
func (c *checker) value(e ast.Expr) (types.Type, error) {
	t, err := c.expr(e)
	if err != nil {
		return nil, err
	}
	if t == types.Void {
		return nil, errorf(diag.VoidValueUsed, e, "%s (no value) used as value", describe(e))
	}
	return t, nil
}

func describe(e ast.Expr) string {
	if call, ok := e.(*ast.CallExpr); ok {
		return call.Fun.Name + "()"
	}
	return ast.ToSExpr(e)
}

// expr checks e and records its type. The result is types.Void only for a
// call of a function without a result.
func (c *checker) expr(e ast.Expr) (types.Type, error) {
	t, err := c.exprType(e)
	if err != nil {
		return nil, err
	}
	c.record(e, t)
	return t, nil
}

func (c *checker) exprType(e ast.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *ast.IntLit:
		return types.Int, nil
	case *ast.FloatLit:
		return types.Float64, nil
	case *ast.RuneLit:
		return types.Rune, nil
	case *ast.StringLit:
		return types.String, nil

	case *ast.Ident:
		if e.IsBlank() {
			return nil, errorf(diag.TypeMismatch, e, "cannot use _ as value")
		}
		sym, err := c.lookup(e)
		if err != nil {
			return nil, err
		}
		if sym.Kind != symbol.Variable {
			return nil, errorf(diag.TypeMismatch, e, "%s is not a variable", e.Name)
		}
		return sym.Type, nil

	case *ast.UnaryExpr:
		t, err := c.value(e.X)
		if err != nil {
			return nil, err
		}
		var ok bool
		switch e.Op {
		case "+", "-":
			ok = types.IsNumeric(t)
		case "^":
			ok = types.IsIntOrRune(t)
		case "!":
			ok = types.IsBool(t)
		}
		if !ok {
			return nil, errorf(diag.UnsupportedOperator, e, "invalid operation: operator %s not defined on %v", e.Op, t)
		}
		return t, nil

	case *ast.BinaryExpr:
		lt, err := c.value(e.X)
		if err != nil {
			return nil, err
		}
		rt, err := c.value(e.Y)
		if err != nil {
			return nil, err
		}
		if assignableTo(e.Y, rt, lt) {
			rt = lt
		} else if assignableTo(e.X, lt, rt) {
			lt = rt
		}
		if !types.Identical(lt, rt) {
			return nil, errorf(diag.TypeMismatch, e, "invalid operation: operator %s (mismatched types %v and %v)", e.Op, lt, rt)
		}
		if !operandOK(e.Op, lt) {
			return nil, errorf(diag.UnsupportedOperator, e, "invalid operation: operator %s not defined on %v", e.Op, lt)
		}
		if isComparison(e.Op) {
			return types.Bool, nil
		}
		if e.Op == "&&" || e.Op == "||" {
			return types.Bool, nil
		}
		return lt, nil

	case *ast.CallExpr:
		return c.call(e)

	case *ast.AppendExpr:
		sym, err := c.lookup(e.Slice)
		if err != nil {
			return nil, err
		}
		if sym.Kind != symbol.Variable {
			return nil, errorf(diag.TypeMismatch, e.Slice, "first argument to append must be a variable")
		}
		c.record(e.Slice, sym.Type)
		slice, ok := types.Underlying(sym.Type).(*types.Slice)
		if !ok {
			return nil, errorf(diag.TypeMismatch, e.Slice, "invalid argument: %s (variable of type %v) is not a slice", e.Slice.Name, sym.Type)
		}
		et, err := c.value(e.Elem)
		if err != nil {
			return nil, err
		}
		if !assignableTo(e.Elem, et, slice.Elem) {
			return nil, errorf(diag.TypeMismatch, e.Elem, "cannot use value of type %v as %v value in argument to append", et, slice.Elem)
		}
		return sym.Type, nil

	case *ast.ConversionExpr:
		to, err := c.resolveType(e.Type)
		if err != nil {
			return nil, err
		}
		if to == types.String {
			return nil, errorf(diag.TypeMismatch, e, "conversion to string is not supported")
		}
		if err := c.convertible(e.X, to); err != nil {
			return nil, err
		}
		return to, nil

	case *ast.IndexExpr:
		bt, err := c.value(e.X)
		if err != nil {
			return nil, err
		}
		var elem types.Type
		switch u := types.Underlying(bt).(type) {
		case *types.Array:
			elem = u.Elem
		case *types.Slice:
			elem = u.Elem
		default:
			return nil, errorf(diag.TypeMismatch, e.X, "invalid operation: cannot index value of type %v", bt)
		}
		it, err := c.value(e.Index)
		if err != nil {
			return nil, err
		}
		if !assignableTo(e.Index, it, types.Int) {
			return nil, errorf(diag.NonIntegerIndexOrBound, e.Index, "invalid argument: index of type %v must be int", it)
		}
		return elem, nil

	case *ast.SelectorExpr:
		bt, err := c.value(e.X)
		if err != nil {
			return nil, err
		}
		st, ok := types.Underlying(bt).(*types.Struct)
		if !ok {
			return nil, errorf(diag.InvalidFieldAccess, e.Sel, "%v has no field %s (type is not a struct)", bt, e.Sel.Name)
		}
		f := st.Field(e.Sel.Name)
		if f == nil {
			return nil, errorf(diag.InvalidFieldAccess, e.Sel, "%v has no field %s", bt, e.Sel.Name)
		}
		c.record(e.Sel, f.Type)
		return f.Type, nil
	}
	panic("checker: unexpected expression")
}

func (c *checker) call(e *ast.CallExpr) (types.Type, error) {
	if e.Fun.IsBlank() {
		return nil, errorf(diag.TypeMismatch, e.Fun, "cannot use _ as value")
	}
	sym, err := c.lookup(e.Fun)
	if err != nil {
		return nil, err
	}
	switch sym.Kind {
	case symbol.TypeAlias:
		if len(e.Args) != 1 {
			return nil, errorf(diag.Arity, e, "conversion to %s expects 1 argument, got %d", e.Fun.Name, len(e.Args))
		}
		under := types.Underlying(sym.Type)
		if !types.IsPrimitive(under) || under == types.String {
			return nil, errorf(diag.TypeMismatch, e.Fun, "cannot convert to %s: underlying type %v is not a non-string primitive", e.Fun.Name, under)
		}
		if err := c.convertible(e.Args[0], sym.Type); err != nil {
			return nil, err
		}
		c.record(e.Fun, sym.Type)
		return sym.Type, nil

	case symbol.Variable:
		return nil, errorf(diag.NotCallable, e.Fun, "invalid operation: cannot call non-function %s (variable of type %v)", e.Fun.Name, sym.Type)
	}

	params := sym.ParamTypes()
	if len(e.Args) < len(params) {
		return nil, errorf(diag.Arity, e, "not enough arguments in call to %s", e.Fun.Name)
	}
	if len(e.Args) > len(params) {
		return nil, errorf(diag.Arity, e.Args[len(params)], "too many arguments in call to %s", e.Fun.Name)
	}
	for i, a := range e.Args {
		t, err := c.value(a)
		if err != nil {
			return nil, err
		}
		if !assignableTo(a, t, params[i]) {
			return nil, errorf(diag.TypeMismatch, a, "cannot use value of type %v as %v value in argument to %s", t, params[i], e.Fun.Name)
		}
	}
	c.record(e.Fun, sym.Result)
	return sym.Result, nil
}

// convertible checks the operand of a conversion to the non-string
// primitive type to.
func (c *checker) convertible(x ast.Expr, to types.Type) error {
	t, err := c.value(x)
	if err != nil {
		return err
	}
	if !types.IsPrimitive(t) || types.IsString(t) {
		return errorf(diag.TypeMismatch, x, "cannot convert value of type %v to %v", t, to)
	}
	return nil
}
