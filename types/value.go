package types

// Value is a compile-time constant value of a GoLite type: bool, int64,
// float64, string, []Value or StructValue.
type Value any

type FieldValue struct {
	Name  string
	Value Value
}

// StructValue keeps fields in declaration order.
type StructValue []FieldValue

// DefaultValue returns the zero value of t.
func DefaultValue(t Type) Value {
	switch u := Underlying(t).(type) {
	case *Basic:
		switch u {
		case Bool:
			return false
		case Int, Rune:
			return int64(0)
		case Float64:
			return 0.0
		case String:
			return ""
		}
	case *Array:
		elems := make([]Value, u.Len)
		for i := range elems {
			elems[i] = DefaultValue(u.Elem)
		}
		return elems
	case *Slice:
		return []Value{}
	case *Struct:
		fields := make(StructValue, len(u.Fields))
		for i, f := range u.Fields {
			fields[i] = FieldValue{Name: f.Name, Value: DefaultValue(f.Type)}
		}
		return fields
	}
	panic("types: no default value for " + t.String())
}
