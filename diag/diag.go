// Package diag holds the positioned error type shared by every compiler pass.
package diag

import (
	"fmt"
	"io"
	"strings"
)

// Position is a 1-based line and column in the source file.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position points into a file.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Kind classifies an Error. A Kind is itself an error so that
// errors.Is(err, diag.TypeMismatch) matches any Error of that kind.
type Kind int

const (
	Syntax Kind = iota
	Unsupported
	UndefinedSymbol
	Redeclaration
	TypeMismatch
	UnsupportedOperator
	Arity
	NonBooleanCondition
	NonIntegerIndexOrBound
	InvalidFieldAccess
	VoidValueUsed
	NotCallable
	InitCycle
)

var kindNames = [...]string{
	Syntax:                 "syntax error",
	Unsupported:            "unsupported construct",
	UndefinedSymbol:        "undefined symbol",
	Redeclaration:          "redeclaration",
	TypeMismatch:           "type mismatch",
	UnsupportedOperator:    "unsupported operator",
	Arity:                  "wrong number of values",
	NonBooleanCondition:    "non-boolean condition",
	NonIntegerIndexOrBound: "non-integer index or bound",
	InvalidFieldAccess:     "invalid field access",
	VoidValueUsed:          "void value used",
	NotCallable:            "not callable",
	InitCycle:              "initialization cycle",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Error() string { return k.String() }

// Error is a single compiler diagnostic. Every pass stops at the first one.
type Error struct {
	Kind Kind
	Pos  Position
	Msg  string
}

// Errorf builds an Error of the given kind.
func Errorf(kind Kind, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Msg
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Display writes err to w together with the offending source line and a
// caret under the column. Errors that are not *Error are written as-is.
func Display(w io.Writer, filename string, source []byte, err error) {
	e, ok := err.(*Error)
	if !ok {
		fmt.Fprintf(w, "%s: %v\n", filename, err)
		return
	}

	if !e.Pos.IsValid() {
		fmt.Fprintf(w, "%s: %s\n", filename, e.Msg)
		return
	}
	fmt.Fprintf(w, "%s:%v\n", filename, e)

	lines := strings.Split(string(source), "\n")
	idx := e.Pos.Line - 1
	if idx < 0 || idx >= len(lines) {
		return
	}
	line := strings.TrimRight(lines[idx], "\r\n\t ")
	fmt.Fprintf(w, "  %s\n", line)

	// Tabs are kept so the caret lines up under tab-indented code.
	var marker strings.Builder
	for i, r := range line {
		if i >= e.Pos.Column-1 {
			break
		}
		if r == '\t' {
			marker.WriteByte('\t')
		} else {
			marker.WriteByte(' ')
		}
	}
	fmt.Fprintf(w, "  %s^\n", marker.String())
}
