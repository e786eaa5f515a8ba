package codegen

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/symbol"
	"github.com/hardik-vala/gopy/types"
)

// expr renders e for use as a value, normalized if Options.Normalize is set
// and e is int or rune valued.
func (g *generator) expr(e ast.Expr) string {
	s := g.rawExpr(e)
	if !g.opts.Normalize || !types.IsIntOrRune(g.typeOf(e)) {
		return s
	}
	switch lit := e.(type) {
	case *ast.IntLit:
		if lit.Value <= math.MaxInt32 {
			return s
		}
	case *ast.RuneLit:
		return s
	}
	return "normalize(" + s + ")"
}

// target renders an assignable expression without normalization.
func (g *generator) target(e ast.Expr) string {
	return g.rawExpr(e)
}

func (g *generator) rawExpr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Ident:
		return g.name(e)

	case *ast.IntLit:
		return strconv.FormatInt(e.Value, 10)

	case *ast.FloatLit:
		return pyFloat(e.Value)

	case *ast.RuneLit:
		return strconv.Itoa(int(e.Value))

	case *ast.StringLit:
		return strconv.Quote(e.Value)

	case *ast.UnaryExpr:
		x := g.expr(e.X)
		switch e.Op {
		case "!":
			return "(not " + x + ")"
		case "^":
			return "(~" + x + ")"
		}
		return "(" + e.Op + x + ")"

	case *ast.BinaryExpr:
		x, y := g.expr(e.X), g.expr(e.Y)
		if types.IsIntOrRune(g.typeOf(e.X)) {
			return intBinary(e.Op, x, y)
		}
		switch e.Op {
		case "&&":
			return "(" + x + " and " + y + ")"
		case "||":
			return "(" + x + " or " + y + ")"
		}
		return "(" + x + " " + e.Op + " " + y + ")"

	case *ast.CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = g.expr(a)
		}
		sym, err := g.table.Lookup(e.Fun.Name)
		if err != nil {
			g.fail("%v at %v", err, e.Fun.Pos())
		}
		if sym.Kind == symbol.TypeAlias {
			return converter(sym.Type) + "(" + args[0] + ")"
		}
		return g.name(e.Fun) + "(" + strings.Join(args, ", ") + ")"

	case *ast.AppendExpr:
		return "(" + g.name(e.Slice) + " + [" + g.expr(e.Elem) + "])"

	case *ast.ConversionExpr:
		return converter(g.typeOf(e)) + "(" + g.expr(e.X) + ")"

	case *ast.IndexExpr:
		return g.expr(e.X) + "[" + g.expr(e.Index) + "]"

	case *ast.SelectorExpr:
		return g.expr(e.X) + "[" + pyString(e.Sel.Name) + "]"
	}
	g.fail("unexpected expression %T", e)
	return ""
}

// intBinary renders an operation on int or rune operands. Division and
// remainder truncate toward zero as in Go.
func intBinary(op, x, y string) string {
	switch op {
	case "/":
		return "int_div(" + x + ", " + y + ")"
	case "%":
		return "int_mod(" + x + ", " + y + ")"
	case "&^":
		return "(" + x + " & ~" + y + ")"
	}
	return "(" + x + " " + op + " " + y + ")"
}

// converter names the Python builtin converting to t's underlying type.
func converter(t types.Type) string {
	switch types.Underlying(t) {
	case types.Int, types.Rune:
		return "int"
	case types.Float64:
		return "float"
	case types.Bool:
		return "bool"
	}
	panic(internalError{fmt.Sprintf("no conversion to %v", t)})
}

func pyFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "float('inf')"
	case math.IsInf(f, -1):
		return "float('-inf')"
	case math.IsNaN(f):
		return "float('nan')"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func pyString(s string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), "'", `\'`) + "'"
}

// pyValue renders a zero value as a Python literal.
func pyValue(v types.Value) string {
	switch v := v.(type) {
	case bool:
		if v {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return pyFloat(v)
	case string:
		return strconv.Quote(v)
	case []types.Value:
		elems := make([]string, len(v))
		for i, e := range v {
			elems[i] = pyValue(e)
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case types.StructValue:
		fields := make([]string, len(v))
		for i, f := range v {
			fields[i] = pyString(f.Name) + ": " + pyValue(f.Value)
		}
		return "{" + strings.Join(fields, ", ") + "}"
	}
	panic(internalError{fmt.Sprintf("no literal for %T", v)})
}
