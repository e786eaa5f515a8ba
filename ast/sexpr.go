package ast

import (
	"strconv"
	"strings"
)

// ToSExpr renders n as an S-expression, e.g. (binary "+" (integer 1)
// (ident "x")). The output is readable by the sexy package.
func ToSExpr(n Node) string {
	switch n := n.(type) {
	case nil:
		return "(nil)"

	case *Ident:
		return "(ident " + quote(n.Name) + ")"
	case *IntLit:
		return "(integer " + strconv.FormatInt(n.Value, 10) + ")"
	case *FloatLit:
		return "(float " + quote(n.Raw) + ")"
	case *RuneLit:
		return "(rune " + strconv.Itoa(int(n.Value)) + ")"
	case *StringLit:
		return "(string " + quote(n.Value) + ")"
	case *UnaryExpr:
		return "(unary " + quote(n.Op) + " " + ToSExpr(n.X) + ")"
	case *BinaryExpr:
		return "(binary " + quote(n.Op) + " " + ToSExpr(n.X) + " " + ToSExpr(n.Y) + ")"
	case *CallExpr:
		return list("call", ToSExpr(n.Fun), exprs(n.Args)...)
	case *AppendExpr:
		return "(append " + ToSExpr(n.Slice) + " " + ToSExpr(n.Elem) + ")"
	case *ConversionExpr:
		return "(convert " + ToSExpr(n.Type) + " " + ToSExpr(n.X) + ")"
	case *IndexExpr:
		return "(idx " + ToSExpr(n.X) + " " + ToSExpr(n.Index) + ")"
	case *SelectorExpr:
		return "(dot " + ToSExpr(n.X) + " " + quote(n.Sel.Name) + ")"

	case *PrimitiveType:
		return "(type " + quote(n.Name) + ")"
	case *NamedType:
		return "(named " + quote(n.Name.Name) + ")"
	case *ArrayType:
		return "(array " + strconv.FormatInt(n.Len.Value, 10) + " " + ToSExpr(n.Elem) + ")"
	case *SliceType:
		return "(slice " + ToSExpr(n.Elem) + ")"
	case *StructType:
		var fields []string
		for _, f := range n.Fields {
			fields = append(fields, list("field", names(f.Names), ToSExpr(f.Type)))
		}
		return list("struct", "", fields...)

	case *Program:
		var decls []string
		for _, d := range n.Decls {
			decls = append(decls, ToSExpr(d))
		}
		return list("program", quote(n.Package.Name), decls...)
	case *VarDecl:
		if len(n.Specs) == 1 {
			return ToSExpr(n.Specs[0])
		}
		var specs []string
		for _, s := range n.Specs {
			specs = append(specs, ToSExpr(s))
		}
		return list("var-group", "", specs...)
	case *VarSpec:
		parts := []string{names(n.Names)}
		if n.Type != nil {
			parts = append(parts, ToSExpr(n.Type))
		}
		if len(n.Values) > 0 {
			parts = append(parts, list("values", "", exprs(n.Values)...))
		}
		return list("var", "", parts...)
	case *TypeDecl:
		if len(n.Specs) == 1 {
			return ToSExpr(n.Specs[0])
		}
		var specs []string
		for _, s := range n.Specs {
			specs = append(specs, ToSExpr(s))
		}
		return list("type-group", "", specs...)
	case *TypeSpec:
		return "(typedef " + quote(n.Name.Name) + " " + ToSExpr(n.Type) + ")"
	case *FuncDecl:
		var params []string
		for _, g := range n.Params {
			params = append(params, list("param", names(g.Names), ToSExpr(g.Type)))
		}
		result := "(void)"
		if n.Result != nil {
			result = ToSExpr(n.Result)
		}
		return list("func", quote(n.Name.Name), list("params", "", params...), result, ToSExpr(n.Body))

	case *EmptyStmt:
		return "(empty)"
	case *ExprStmt:
		return ToSExpr(n.X)
	case *ShortVarDecl:
		var lhs []Expr
		for _, id := range n.Lhs {
			lhs = append(lhs, id)
		}
		return list("define", "", list("targets", "", exprs(lhs)...), list("values", "", exprs(n.Rhs)...))
	case *AssignStmt:
		return list("assign", "", list("targets", "", exprs(n.Lhs)...), list("values", "", exprs(n.Rhs)...))
	case *OpAssignStmt:
		return "(op-assign " + quote(n.Op) + " " + ToSExpr(n.Lhs) + " " + ToSExpr(n.Rhs) + ")"
	case *IncDecStmt:
		if n.Inc {
			return "(inc " + ToSExpr(n.X) + ")"
		}
		return "(dec " + ToSExpr(n.X) + ")"
	case *PrintStmt:
		if n.Newline {
			return list("println", "", exprs(n.Args)...)
		}
		return list("print", "", exprs(n.Args)...)
	case *ReturnStmt:
		if n.Result == nil {
			return "(return)"
		}
		return "(return " + ToSExpr(n.Result) + ")"
	case *BreakStmt:
		return "(break)"
	case *ContinueStmt:
		return "(continue)"
	case *BlockStmt:
		return list("block", "", stmts(n.Stmts)...)
	case *IfStmt:
		var parts []string
		if n.Init != nil {
			parts = append(parts, "(init "+ToSExpr(n.Init)+")")
		}
		parts = append(parts, ToSExpr(n.Cond), ToSExpr(n.Then))
		if n.Else != nil {
			parts = append(parts, ToSExpr(n.Else))
		}
		return list("if", "", parts...)
	case *SwitchStmt:
		var parts []string
		if n.Init != nil {
			parts = append(parts, "(init "+ToSExpr(n.Init)+")")
		}
		if n.Tag != nil {
			parts = append(parts, "(tag "+ToSExpr(n.Tag)+")")
		}
		for _, c := range n.Cases {
			parts = append(parts, ToSExpr(c))
		}
		return list("switch", "", parts...)
	case *CaseClause:
		if n.IsDefault() {
			return list("default", "", stmts(n.Body)...)
		}
		return list("case", list("exprs", "", exprs(n.Exprs)...), stmts(n.Body)...)
	case *ForStmt:
		var parts []string
		if n.Init != nil {
			parts = append(parts, "(init "+ToSExpr(n.Init)+")")
		}
		if n.Cond != nil {
			parts = append(parts, "(cond "+ToSExpr(n.Cond)+")")
		}
		if n.Post != nil {
			parts = append(parts, "(post "+ToSExpr(n.Post)+")")
		}
		parts = append(parts, ToSExpr(n.Body))
		return list("for", "", parts...)
	}
	return ""
}

// list renders (head first rest...), skipping an empty first.
func list(head, first string, rest ...string) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(head)
	if first != "" {
		sb.WriteString(" ")
		sb.WriteString(first)
	}
	for _, r := range rest {
		sb.WriteString(" ")
		sb.WriteString(r)
	}
	sb.WriteString(")")
	return sb.String()
}

func names(ids []*Ident) string {
	var qs []string
	for _, id := range ids {
		qs = append(qs, quote(id.Name))
	}
	return list("names", "", qs...)
}

func exprs(es []Expr) []string {
	var out []string
	for _, e := range es {
		out = append(out, ToSExpr(e))
	}
	return out
}

func stmts(ss []Stmt) []string {
	var out []string
	for _, s := range ss {
		out = append(out, ToSExpr(s))
	}
	return out
}

// quote escapes only backslash and double quote, the two escapes S-expression
// strings understand.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
