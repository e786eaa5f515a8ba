package types

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestBasicString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Bool, "bool"},
		{Int, "int"},
		{Float64, "float64"},
		{Rune, "rune"},
		{String, "string"},
		{Void, "void"},
		{&Array{Elem: Int, Len: 3}, "[3]int"},
		{&Slice{Elem: &Slice{Elem: Rune}}, "[][]rune"},
		{&Struct{Fields: []*Field{{"x", Int}, {"s", String}}}, "struct{x int; s string}"},
		{&Struct{}, "struct{}"},
		{&Alias{Name: "celsius", Type: Float64}, "celsius"},
	}
	for _, test := range tests {
		be.Equal(t, test.typ.String(), test.want)
	}
}

func TestUnderlying(t *testing.T) {
	celsius := &Alias{Name: "celsius", Type: Float64}
	temp := &Alias{Name: "temp", Type: celsius}
	be.Equal(t, Underlying(temp), Type(Float64))
	be.Equal(t, Underlying(celsius), Type(Float64))
	be.Equal(t, Underlying(Int), Type(Int))

	list := &Slice{Elem: temp}
	be.Equal(t, Underlying(list), Type(list))
}

func TestIdenticalIsStructural(t *testing.T) {
	point := func() *Struct {
		return &Struct{Fields: []*Field{{"x", Int}, {"y", Int}}}
	}
	be.True(t, Identical(point(), point()))
	be.True(t, Identical(&Array{Elem: Int, Len: 2}, &Array{Elem: Int, Len: 2}))
	be.True(t, Identical(&Slice{Elem: point()}, &Slice{Elem: point()}))

	be.True(t, !Identical(&Array{Elem: Int, Len: 2}, &Array{Elem: Int, Len: 3}))
	be.True(t, !Identical(&Array{Elem: Int, Len: 2}, &Slice{Elem: Int}))
	be.True(t, !Identical(Int, Rune))
	be.True(t, !Identical(point(), &Struct{Fields: []*Field{{"y", Int}, {"x", Int}}}))
	be.True(t, !Identical(point(), &Struct{Fields: []*Field{{"x", Int}}}))
}

func TestIdenticalAliasesByDeclaration(t *testing.T) {
	a := &Alias{Name: "meters", Type: Int}
	b := &Alias{Name: "meters", Type: Int}
	be.True(t, Identical(a, a))
	be.True(t, !Identical(a, b))
	be.True(t, !Identical(a, Int))
	be.True(t, !Identical(Int, a))

	be.True(t, Identical(&Slice{Elem: a}, &Slice{Elem: a}))
	be.True(t, !Identical(&Slice{Elem: a}, &Slice{Elem: b}))
}

func TestPredicatesLookThroughAliases(t *testing.T) {
	count := &Alias{Name: "count", Type: Int}
	letter := &Alias{Name: "letter", Type: Rune}
	name := &Alias{Name: "name", Type: String}
	flag := &Alias{Name: "flag", Type: Bool}
	ratio := &Alias{Name: "ratio", Type: &Alias{Name: "fraction", Type: Float64}}
	list := &Alias{Name: "list", Type: &Slice{Elem: Int}}

	be.True(t, IsIntOrRune(count))
	be.True(t, IsIntOrRune(letter))
	be.True(t, !IsIntOrRune(ratio))

	be.True(t, IsNumeric(ratio))
	be.True(t, IsFloat(ratio))
	be.True(t, !IsNumeric(name))

	be.True(t, IsOrdered(name))
	be.True(t, !IsOrdered(flag))

	be.True(t, IsBool(flag))
	be.True(t, IsString(name))

	for _, p := range []Type{count, letter, name, flag, ratio} {
		be.True(t, IsPrimitive(p))
	}
	be.True(t, !IsPrimitive(list))
	be.True(t, !IsPrimitive(Void))
}

func TestIsComparable(t *testing.T) {
	be.True(t, IsComparable(Int))
	be.True(t, IsComparable(&Array{Elem: String, Len: 1}))
	be.True(t, IsComparable(&Struct{Fields: []*Field{{"a", Bool}}}))
	be.True(t, !IsComparable(Void))
	be.True(t, !IsComparable(&Slice{Elem: Int}))
	be.True(t, !IsComparable(&Struct{Fields: []*Field{{"s", &Slice{Elem: Int}}}}))
	be.True(t, !IsComparable(&Alias{Name: "ints", Type: &Slice{Elem: Int}}))
}

func TestStructField(t *testing.T) {
	st := &Struct{Fields: []*Field{{"x", Int}, {"y", Float64}}}
	be.Equal(t, st.Field("y").Type, Type(Float64))
	be.True(t, st.Field("z") == nil)
}

func TestDefaultValue(t *testing.T) {
	be.Equal(t, DefaultValue(Bool), Value(false))
	be.Equal(t, DefaultValue(Int), Value(int64(0)))
	be.Equal(t, DefaultValue(Rune), Value(int64(0)))
	be.Equal(t, DefaultValue(Float64), Value(0.0))
	be.Equal(t, DefaultValue(String), Value(""))
	be.Equal(t, DefaultValue(&Alias{Name: "n", Type: Int}), Value(int64(0)))

	be.Equal(t, DefaultValue(&Slice{Elem: Int}), Value([]Value{}))
	be.Equal(t, DefaultValue(&Array{Elem: Bool, Len: 2}), Value([]Value{false, false}))
	be.Equal(t, DefaultValue(&Array{Elem: Int, Len: 0}), Value([]Value{}))

	grid := &Array{Elem: &Array{Elem: String, Len: 2}, Len: 2}
	be.Equal(t, DefaultValue(grid), Value([]Value{[]Value{"", ""}, []Value{"", ""}}))

	point := &Struct{Fields: []*Field{{"x", Int}, {"tags", &Slice{Elem: String}}}}
	be.Equal(t, DefaultValue(point), Value(StructValue{
		{Name: "x", Value: int64(0)},
		{Name: "tags", Value: []Value{}},
	}))
}

func TestDefaultValueOfVoidPanics(t *testing.T) {
	defer func() {
		be.True(t, recover() != nil)
	}()
	DefaultValue(Void)
}
