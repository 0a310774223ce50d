package value

import (
	"strconv"
	"strings"
)

// String renders v in its textual form.
func (v *Value) String() string {
	if v == nil {
		return "null"
	}
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.num)
	case KindString:
		return v.str
	case KindArray:
		var b strings.Builder
		b.WriteByte('[')
		for i, elem := range v.arr {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(elem.String())
		}
		b.WriteByte(']')
		return b.String()
	case KindObject:
		var b strings.Builder
		b.WriteByte('{')
		for i, k := range v.obj.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			elem, _ := v.obj.Get(k)
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(elem.String())
		}
		b.WriteByte('}')
		return b.String()
	case KindFunction:
		return "<function>"
	case KindClass:
		return "<class " + v.class.Name + ">"
	case KindInstance:
		return "<instance of " + ClassName(v.inst.Class) + ">"
	case KindError:
		return "<error: " + v.err.Message + ">"
	default:
		return "null"
	}
}

// formatNumber renders the shortest decimal form that round-trips,
// dropping the fractional part for integer-valued doubles.
func formatNumber(f float64) string {
	if f != f { // NaN
		return "NaN"
	}
	if f > 0 && f*2 == f {
		return "Infinity"
	}
	if f < 0 && f*2 == f {
		return "-Infinity"
	}
	if f == float64(int64(f)) && f < 1e15 && f > -1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Truthy reports whether v counts as true in a boolean context.
func (v *Value) Truthy() bool {
	if v == nil {
		return false
	}
	switch v.Kind {
	case KindNull:
		return false
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.num != 0 && v.num == v.num // nonzero and not NaN
	case KindString:
		return len(v.str) > 0
	case KindArray:
		return len(v.arr) > 0
	case KindObject:
		return v.obj.Len() > 0
	case KindError:
		return false
	case KindFunction, KindClass, KindInstance:
		return true
	default:
		return false
	}
}

// TypeName returns the base tag name ("null", "number", "instance", …).
func (v *Value) TypeName() string {
	if v == nil {
		return "null"
	}
	return v.Kind.String()
}

// EnhancedTypeOf refines TypeName with sub-types for numbers
// (integer/float/nan/infinity) and instances (instance:CLASS).
func EnhancedTypeOf(v *Value) string {
	if v == nil {
		return "null"
	}
	switch v.Kind {
	case KindNumber:
		switch {
		case v.num != v.num:
			return "number:nan"
		case v.num > 0 && v.num*2 == v.num, v.num < 0 && v.num*2 == v.num:
			return "number:infinity"
		case v.num == float64(int64(v.num)):
			return "number:integer"
		default:
			return "number:float"
		}
	case KindInstance:
		return "instance:" + ClassName(v.inst.Class)
	default:
		return v.Kind.String()
	}
}
