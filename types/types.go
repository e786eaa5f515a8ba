// Package types models GoLite types.
//
// Two types are identical (Identical) when they have the same structure,
// except that an *Alias is only identical to itself: every `type T ...`
// declaration introduces a distinct type. The arithmetic and comparison
// predicates look through aliases to the underlying type.
package types

import (
	"fmt"
	"strings"
)

type Type interface {
	String() string
	aType()
}

// Basic is one of the predeclared types.
type Basic struct {
	name string
}

func (b *Basic) String() string { return b.name }
func (*Basic) aType()           {}

var (
	Bool    = &Basic{"bool"}
	Int     = &Basic{"int"}
	Float64 = &Basic{"float64"}
	Rune    = &Basic{"rune"}
	String  = &Basic{"string"}

	// Void is the result type of a function without a result. No value
	// has this type.
	Void = &Basic{"void"}
)

// Alias is a named type introduced by a type declaration.
type Alias struct {
	Name string
	Type Type
}

func (a *Alias) String() string { return a.Name }
func (*Alias) aType()           {}

type Array struct {
	Elem Type
	Len  int
}

func (a *Array) String() string { return fmt.Sprintf("[%d]%v", a.Len, a.Elem) }
func (*Array) aType()           {}

type Slice struct {
	Elem Type
}

func (s *Slice) String() string { return "[]" + s.Elem.String() }
func (*Slice) aType()           {}

type Field struct {
	Name string
	Type Type
}

// Struct fields keep declaration order; names are unique.
type Struct struct {
	Fields []*Field
}

func (s *Struct) String() string {
	var sb strings.Builder
	sb.WriteString("struct{")
	for i, f := range s.Fields {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(f.Name)
		sb.WriteByte(' ')
		sb.WriteString(f.Type.String())
	}
	sb.WriteString("}")
	return sb.String()
}
func (*Struct) aType() {}

// Field returns the field called name, or nil.
func (s *Struct) Field(name string) *Field {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Underlying unwraps aliases until it reaches a non-alias type.
func Underlying(t Type) Type {
	for {
		a, ok := t.(*Alias)
		if !ok {
			return t
		}
		t = a.Type
	}
}

// Identical reports whether x and y are the same type for assignment and
// operator purposes.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	switch x := x.(type) {
	case *Array:
		y, ok := y.(*Array)
		return ok && x.Len == y.Len && Identical(x.Elem, y.Elem)
	case *Slice:
		y, ok := y.(*Slice)
		return ok && Identical(x.Elem, y.Elem)
	case *Struct:
		y, ok := y.(*Struct)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i, f := range x.Fields {
			g := y.Fields[i]
			if f.Name != g.Name || !Identical(f.Type, g.Type) {
				return false
			}
		}
		return true
	}
	// Basic types are singletons and aliases compare by declaration.
	return false
}

func IsBool(t Type) bool   { return Underlying(t) == Bool }
func IsString(t Type) bool { return Underlying(t) == String }
func IsFloat(t Type) bool  { return Underlying(t) == Float64 }

func IsIntOrRune(t Type) bool {
	u := Underlying(t)
	return u == Int || u == Rune
}

func IsNumeric(t Type) bool {
	return IsIntOrRune(t) || IsFloat(t)
}

func IsOrdered(t Type) bool {
	return IsNumeric(t) || IsString(t)
}

// IsPrimitive reports whether t's underlying type is a predeclared value
// type: bool, int, float64, rune or string.
func IsPrimitive(t Type) bool {
	return IsOrdered(t) || IsBool(t)
}

func IsComparable(t Type) bool {
	switch u := Underlying(t).(type) {
	case *Basic:
		return u != Void
	case *Array:
		return IsComparable(u.Elem)
	case *Struct:
		for _, f := range u.Fields {
			if !IsComparable(f.Type) {
				return false
			}
		}
		return true
	}
	return false
}
