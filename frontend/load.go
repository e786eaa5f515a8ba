package frontend

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/hardik-vala/gopy/ast"
	"github.com/hardik-vala/gopy/diag"
)

// ParseDir loads the GoLite package in dir, which may span several files,
// and merges its declarations in file order.
func ParseDir(dir string) (*ast.Program, error) {
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Mode:  packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:   dir,
		Fset:  fset,
		Tests: false,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dir, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("loading %s: expected one package, found %d", dir, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		e := pkg.Errors[0]
		if e.Kind == packages.ParseError {
			return nil, loadError(e)
		}
		return nil, fmt.Errorf("loading %s: %v", dir, e)
	}
	if len(pkg.Syntax) == 0 {
		return nil, fmt.Errorf("loading %s: no GoLite files", dir)
	}
	return convertFiles(fset, pkg.Syntax)
}

// loadError recovers the position of a parse error reported by the loader,
// whose Pos is "file:line:col".
func loadError(e packages.Error) error {
	parts := strings.Split(e.Pos, ":")
	if len(parts) >= 3 {
		line, err1 := strconv.Atoi(parts[len(parts)-2])
		col, err2 := strconv.Atoi(parts[len(parts)-1])
		if err1 == nil && err2 == nil {
			return &diag.Error{Kind: diag.Syntax, Pos: diag.Position{Line: line, Column: col}, Msg: e.Msg}
		}
	}
	return fmt.Errorf("%s: %s", e.Pos, e.Msg)
}
