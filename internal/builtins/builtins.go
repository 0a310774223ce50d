// Package builtins implements the standard library functions exposed to
// evaluated programs, each a plain func([]*value.Value) *value.Value
// registered into the evaluator's builtin table, split across files by
// category (misc, strings, math, conversions).
package builtins

import (
	"strings"

	"github.com/lumen-lang/lumen/internal/evaluator"
	"github.com/lumen-lang/lumen/internal/value"
)

// Register installs every standard builtin into e.
func Register(e *evaluator.Evaluator) {
	registerMisc(e)
	registerStrings(e)
	registerMath(e)
	registerConversion(e)
	registerArrays(e)
}

func arg(args []*value.Value, i int) *value.Value {
	if i < 0 || i >= len(args) {
		return value.NewNull()
	}
	return args[i]
}

func argString(args []*value.Value, i int) string {
	return arg(args, i).String()
}

func argNumber(args []*value.Value, i int) float64 {
	return value.ToNumberOrNaN(arg(args, i))
}

func wrongArgs(name string) *value.Value {
	return value.NewError(name+": wrong number or type of arguments", "invalid-argument")
}

func registerMisc(e *evaluator.Evaluator) {
	e.RegisterBuiltin("put", func(args []*value.Value) *value.Value {
		var b strings.Builder
		for i, a := range args {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(a.String())
		}
		e.WriteOutput(b.String())
		return value.NewNull()
	})
	e.RegisterBuiltin("length", func(args []*value.Value) *value.Value {
		v := arg(args, 0)
		switch v.Kind {
		case value.KindArray:
			return value.NewNumber(float64(len(value.ArrayElements(v))))
		case value.KindObject:
			return value.NewNumber(float64(len(value.ObjectKeys(v))))
		case value.KindString:
			return value.NewNumber(float64(len([]rune(v.String()))))
		default:
			return wrongArgs("length")
		}
	})
	e.RegisterBuiltin("type_of", func(args []*value.Value) *value.Value {
		return value.NewString(arg(args, 0).TypeName())
	})
	e.RegisterBuiltin("enhanced_type_of", func(args []*value.Value) *value.Value {
		return value.NewString(value.EnhancedTypeOf(arg(args, 0)))
	})
}

func registerArrays(e *evaluator.Evaluator) {
	e.RegisterBuiltin("array_push", func(args []*value.Value) *value.Value {
		arr := arg(args, 0)
		if arr.Kind != value.KindArray {
			return wrongArgs("array_push")
		}
		value.ArrayPush(arr, arg(args, 1))
		return arr
	})
	e.RegisterBuiltin("object_keys", func(args []*value.Value) *value.Value {
		obj := arg(args, 0)
		if obj.Kind != value.KindObject {
			return wrongArgs("object_keys")
		}
		keys := value.ObjectKeys(obj)
		elems := make([]*value.Value, len(keys))
		for i, k := range keys {
			elems[i] = value.NewString(k)
		}
		return value.NewArray(elems...)
	})
	e.RegisterBuiltin("object_get", func(args []*value.Value) *value.Value {
		obj := arg(args, 0)
		if obj.Kind != value.KindObject {
			return wrongArgs("object_get")
		}
		v, ok := value.ObjectGet(obj, argString(args, 1))
		if !ok {
			return value.NewNull()
		}
		return v
	})
	e.RegisterBuiltin("object_set", func(args []*value.Value) *value.Value {
		obj := arg(args, 0)
		if obj.Kind != value.KindObject {
			return wrongArgs("object_set")
		}
		value.ObjectSet(obj, argString(args, 1), arg(args, 2))
		return obj
	})
}
