package main

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"

	"github.com/hardik-vala/gopy/codegen"
	"github.com/hardik-vala/gopy/diag"
)

func TestIsDecl(t *testing.T) {
	tests := []struct {
		entry string
		want  bool
	}{
		{"func f() {}", true},
		{"type t int", true},
		{"var x = 1", true},
		{"var (\n\ta int\n)", true},
		{"type(t int)", true},
		{"x := 1", false},
		{"variable := 1", false},
		{"functor = 2", false},
		{"println(1)", false},
		{"", false},
	}
	for _, test := range tests {
		be.Equal(t, isDecl(test.entry), test.want)
	}
}

func TestNewLines(t *testing.T) {
	be.Equal(t, newLines("a\nb\nc", "a\nx\nb\nc"), []string{"x"})
	be.Equal(t, newLines("a\nb\nc", "a\nb\nc\nd"), []string{"d"})
	be.Equal(t, newLines("a\nb", "a\ny"), []string{"y"})
	be.Equal(t, len(newLines("a\nb", "a\nb")), 0)
}

func TestIncomplete(t *testing.T) {
	be.True(t, incomplete("func f() {"))
	be.True(t, incomplete("for i := 0; i < 3; i++ {"))
	be.True(t, incomplete("if x {\n\tprintln(x)"))
	be.True(t, !incomplete("x := 1"))
	be.True(t, !incomplete("func f() {\n}"))
	be.True(t, !incomplete("if x {\n}"))
}

func TestSessionAddStatements(t *testing.T) {
	s := newSession(codegen.Options{})

	added, _, err := s.add("x := 1")
	be.Err(t, err, nil)
	be.Equal(t, added, []string{"    x_2 = 1"})

	added, _, err = s.add("println(x + 1)")
	be.Err(t, err, nil)
	be.Equal(t, added, []string{"    print((x_2 + 1))"})

	be.Equal(t, s.source(), "package main\n\nfunc main() {\nx := 1\nprintln(x + 1)\n}\n")
}

func TestSessionAddDeclaration(t *testing.T) {
	s := newSession(codegen.Options{})
	added, _, err := s.add("func sq(n int) int { return n * n }")
	be.Err(t, err, nil)
	be.True(t, len(added) > 0)
	be.Equal(t, added[0], "def sq_1(n_2):")

	added, _, err = s.add("println(sq(3))")
	be.Err(t, err, nil)
	be.Equal(t, added, []string{"    print(sq_1(3))"})
}

func TestSessionRejectsBadEntries(t *testing.T) {
	s := newSession(codegen.Options{Normalize: true})
	_, _, err := s.add("x := 1")
	be.Err(t, err, nil)
	before, py := s.source(), s.py

	_, src, err := s.add("y := missing")
	be.True(t, errors.Is(err, diag.UndefinedSymbol))
	be.True(t, src != before)
	be.Equal(t, s.source(), before)
	be.Equal(t, s.py, py)

	_, _, err = s.add("func main() {}")
	be.True(t, err != nil)
	be.Equal(t, s.source(), before)
}

func TestSessionReset(t *testing.T) {
	s := newSession(codegen.Options{})
	empty := s.py
	_, _, err := s.add("var g = 2")
	be.Err(t, err, nil)
	be.True(t, s.py != empty)

	s.reset()
	be.Equal(t, s.py, empty)
	be.Equal(t, s.source(), "package main\n\nfunc main() {\n}\n")
}
