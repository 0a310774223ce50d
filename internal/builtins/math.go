package builtins

import (
	"math"

	"github.com/lumen-lang/lumen/internal/evaluator"
	"github.com/lumen-lang/lumen/internal/value"
)

func registerMath(e *evaluator.Evaluator) {
	e.RegisterBuiltin("math_abs", func(args []*value.Value) *value.Value {
		return value.NewNumber(math.Abs(argNumber(args, 0)))
	})
	e.RegisterBuiltin("math_floor", func(args []*value.Value) *value.Value {
		return value.NewNumber(math.Floor(argNumber(args, 0)))
	})
	e.RegisterBuiltin("math_ceil", func(args []*value.Value) *value.Value {
		return value.NewNumber(math.Ceil(argNumber(args, 0)))
	})
	e.RegisterBuiltin("math_round", func(args []*value.Value) *value.Value {
		return value.NewNumber(math.Round(argNumber(args, 0)))
	})
	e.RegisterBuiltin("math_sqrt", func(args []*value.Value) *value.Value {
		return value.NewNumber(math.Sqrt(argNumber(args, 0)))
	})
	e.RegisterBuiltin("math_pow", func(args []*value.Value) *value.Value {
		return value.NewNumber(math.Pow(argNumber(args, 0), argNumber(args, 1)))
	})
	e.RegisterBuiltin("math_sign", func(args []*value.Value) *value.Value {
		n := argNumber(args, 0)
		switch {
		case n > 0:
			return value.NewNumber(1)
		case n < 0:
			return value.NewNumber(-1)
		default:
			return value.NewNumber(0)
		}
	})
	e.RegisterBuiltin("math_is_finite", func(args []*value.Value) *value.Value {
		return value.NewBoolean(!math.IsInf(argNumber(args, 0), 0) && !math.IsNaN(argNumber(args, 0)))
	})
	e.RegisterBuiltin("math_is_infinite", func(args []*value.Value) *value.Value {
		return value.NewBoolean(math.IsInf(argNumber(args, 0), 0))
	})
	e.RegisterBuiltin("math_gcd", func(args []*value.Value) *value.Value {
		a, b := int64(argNumber(args, 0)), int64(argNumber(args, 1))
		for b != 0 {
			a, b = b, a%b
		}
		if a < 0 {
			a = -a
		}
		return value.NewNumber(float64(a))
	})
	e.RegisterBuiltin("math_factorial", func(args []*value.Value) *value.Value {
		n := int64(argNumber(args, 0))
		if n < 0 {
			return wrongArgs("math_factorial")
		}
		result := int64(1)
		for i := int64(2); i <= n; i++ {
			result *= i
		}
		return value.NewNumber(float64(result))
	})
}
