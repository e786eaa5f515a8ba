// Package codegen emits Python 3 source for a checked GoLite program.
//
// Python has no block scoping, so every identifier is renamed to
// name_depth, where depth is the nesting level of the scope that declares
// it. The generator rebuilds that scope structure with its own symbol table,
// entering and leaving scopes at the same syntactic points as the checker.
package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/checker"
	"github.com/hardik-vala/gopy/symbol"
	"github.com/hardik-vala/gopy/types"
)

// Options configures a Generate call.
type Options struct {
	// Normalize wraps every int and rune valued expression so that it
	// wraps around like a 32-bit two's complement integer.
	Normalize bool
}

// Preamble starts every generated program.
const Preamble = `twoExp31, twoExp32 = 2 ** 31, 2 ** 32
normalize = lambda x: (x + twoExp31) % twoExp32 - twoExp31
int_div = lambda a, b: -(-a // b) if (a < 0) != (b < 0) else a // b
int_mod = lambda a, b: a - b * int_div(a, b)

true_0, false_0 = True, False

`

const indentUnit = "    "

type generator struct {
	opts  Options
	info  *checker.Info
	table *symbol.Table

	out    *bytes.Buffer
	indent int

	// posts holds the rendered post statement of each enclosing loop,
	// innermost last. Loops without one have "".
	posts []string

	temps int
}

// internalError is raised for states a checked program cannot reach.
type internalError struct {
	msg string
}

// Generate returns the Python translation of prog. info must come from a
// successful checker.Check of the same prog.
func Generate(prog *ast.Program, info *checker.Info, opts Options) (src string, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(internalError)
			if !ok {
				panic(r)
			}
			err = fmt.Errorf("codegen: %s", ie.msg)
		}
	}()

	g := &generator{
		opts:  opts,
		info:  info,
		table: symbol.NewTable(),
	}
	g.table.EnterScope()

	var hasMain, hasInit bool
	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *ast.TypeDecl:
			g.typeDecl(d)
		case *ast.FuncDecl:
			g.table.Declare(&symbol.Symbol{Name: d.Name.Name, Kind: symbol.Function, Type: types.Void, Decl: d.Name})
			hasMain = hasMain || d.Name.Name == "main"
			hasInit = hasInit || d.Name.Name == "init"
		}
	}

	inits := map[*ast.Ident]*globalInit{}
	for _, d := range prog.Decls {
		if d, ok := d.(*ast.VarDecl); ok {
			g.globalDecl(d, inits)
		}
	}
	var globals bytes.Buffer
	g.out = &globals
	g.globalInits(info.InitOrder, inits)

	var funcs bytes.Buffer
	g.out = &funcs
	for _, d := range prog.Decls {
		if d, ok := d.(*ast.FuncDecl); ok {
			g.funcDecl(d)
			g.out.WriteString("\n")
		}
	}

	var sb strings.Builder
	sb.WriteString(Preamble)
	sb.Write(funcs.Bytes())
	sb.Write(globals.Bytes())
	if globals.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString("if __name__ == '__main__':\n")
	if !hasMain && !hasInit {
		sb.WriteString(indentUnit + "pass\n")
	}
	if hasInit {
		sb.WriteString(indentUnit + "init_1()\n")
	}
	if hasMain {
		sb.WriteString(indentUnit + "main_1()\n")
	}
	return sb.String(), nil
}

func (g *generator) fail(format string, args ...any) {
	panic(internalError{fmt.Sprintf(format, args...)})
}

func (g *generator) line(format string, args ...any) {
	for i := 0; i < g.indent; i++ {
		g.out.WriteString(indentUnit)
	}
	fmt.Fprintf(g.out, format, args...)
	g.out.WriteByte('\n')
}

// lines re-emits captured output at the current indentation.
func (g *generator) lines(text string) {
	if text == "" {
		return
	}
	for _, l := range strings.Split(text, "\n") {
		g.line("%s", l)
	}
}

// body emits f one level deeper, or pass if f emits nothing.
func (g *generator) body(f func()) {
	g.indent++
	start := g.out.Len()
	f()
	if g.out.Len() == start {
		g.line("pass")
	}
	g.indent--
}

// capture returns what f emits at indentation zero, without the trailing
// newline.
func (g *generator) capture(f func()) string {
	saved, savedIndent := g.out, g.indent
	var buf bytes.Buffer
	g.out, g.indent = &buf, 0
	f()
	g.out, g.indent = saved, savedIndent
	return strings.TrimSuffix(buf.String(), "\n")
}

func (g *generator) typeOf(n ast.Node) types.Type {
	t := g.info.TypeOf(n)
	if t == nil {
		g.fail("no type recorded for %s at %v", ast.ToSExpr(n), n.Pos())
	}
	return t
}

// name renders a reference to an already declared identifier.
func (g *generator) name(id *ast.Ident) string {
	if id.IsBlank() {
		return "_"
	}
	depth, err := g.table.ScopeDepthOf(id.Name)
	if err != nil {
		g.fail("%v at %v", err, id.Pos())
	}
	return fmt.Sprintf("%s_%d", id.Name, depth)
}

// declare enters id as a variable of the current scope and returns its
// target name.
func (g *generator) declare(id *ast.Ident, t types.Type) string {
	if id.IsBlank() {
		return "_"
	}
	g.table.Declare(symbol.NewVar(id.Name, t, id))
	return fmt.Sprintf("%s_%d", id.Name, g.table.Depth())
}

func (g *generator) typeDecl(d *ast.TypeDecl) {
	for _, spec := range d.Specs {
		g.table.Declare(&symbol.Symbol{Name: spec.Name.Name, Kind: symbol.TypeAlias, Type: g.typeOf(spec.Name), Decl: spec.Name})
	}
}

// globalInit is one package-level variable, rendered but not yet emitted.
type globalInit struct {
	spec   *ast.VarSpec
	index  int
	target string
	value  string
}

func (g *generator) varDecl(d *ast.VarDecl) {
	for _, spec := range d.Specs {
		if len(spec.Values) == 0 {
			for _, name := range spec.Names {
				t := g.typeOf(name)
				g.line("%s = %s", g.declare(name, t), pyValue(types.DefaultValue(t)))
			}
			continue
		}
		values := make([]string, len(spec.Values))
		for i, v := range spec.Values {
			values[i] = g.expr(v)
		}
		targets := make([]string, len(spec.Names))
		for i, name := range spec.Names {
			targets[i] = g.declare(name, g.typeOf(name))
		}
		g.line("%s = %s", strings.Join(targets, ", "), strings.Join(values, ", "))
	}
}

// globalDecl renders the variables of a package-level declaration into
// inits, keyed by declared name. Values are rendered before their names are
// declared, as the checker resolves them.
func (g *generator) globalDecl(d *ast.VarDecl, inits map[*ast.Ident]*globalInit) {
	for _, spec := range d.Specs {
		values := make([]string, len(spec.Values))
		for i, v := range spec.Values {
			values[i] = g.expr(v)
		}
		for i, name := range spec.Names {
			t := g.typeOf(name)
			init := &globalInit{spec: spec, index: i, target: g.declare(name, t)}
			if len(values) > 0 {
				init.value = values[i]
			} else {
				init.value = pyValue(types.DefaultValue(t))
			}
			inits[name] = init
		}
	}
}

// globalInits emits the package-level variables in initialization order.
// Neighbours from one initialized spec, still in their written order, share
// a single assignment.
func (g *generator) globalInits(order []*ast.Ident, inits map[*ast.Ident]*globalInit) {
	if len(order) != len(inits) {
		g.fail("initialization order names %d of %d globals", len(order), len(inits))
	}
	for i := 0; i < len(order); {
		first := inits[order[i]]
		if first == nil {
			g.fail("no initializer rendered for %s at %v", order[i].Name, order[i].Pos())
		}
		targets := []string{first.target}
		values := []string{first.value}
		i++
		for len(first.spec.Values) > 0 && i < len(order) {
			next := inits[order[i]]
			if next == nil || next.spec != first.spec || next.index != first.index+len(targets) {
				break
			}
			targets = append(targets, next.target)
			values = append(values, next.value)
			i++
		}
		g.line("%s = %s", strings.Join(targets, ", "), strings.Join(values, ", "))
	}
}

func (g *generator) funcDecl(d *ast.FuncDecl) {
	g.table.EnterScope()
	defer g.table.ExitScope()

	var params []string
	blanks := 0
	for _, grp := range d.Params {
		for _, name := range grp.Names {
			if name.IsBlank() {
				params = append(params, fmt.Sprintf("_blank%d", blanks))
				blanks++
				continue
			}
			params = append(params, g.declare(name, g.typeOf(name)))
		}
	}
	g.line("def %s_%d(%s):", d.Name.Name, symbol.GlobalDepth, strings.Join(params, ", "))
	g.indent++
	var outer []string
	for _, depth := range []int{symbol.UniverseDepth, symbol.GlobalDepth} {
		for _, sym := range g.table.SymbolsInScope(depth) {
			outer = append(outer, fmt.Sprintf("%s_%d", sym.Name, depth))
		}
	}
	g.line("global %s", strings.Join(outer, ", "))
	g.stmts(d.Body.Stmts)
	g.indent--
}
