package builtins

import (
	"github.com/lumen-lang/lumen/internal/evaluator"
	"github.com/lumen-lang/lumen/internal/value"
)

func registerConversion(e *evaluator.Evaluator) {
	e.RegisterBuiltin("to_number", func(args []*value.Value) *value.Value {
		return value.NewNumber(value.ToNumberOrNaN(arg(args, 0)))
	})
	e.RegisterBuiltin("to_number_enhanced", func(args []*value.Value) *value.Value {
		return value.NewNumber(value.ToNumberEnhanced(arg(args, 0)))
	})
	e.RegisterBuiltin("to_string", func(args []*value.Value) *value.Value {
		return value.NewString(arg(args, 0).String())
	})
	e.RegisterBuiltin("to_boolean", func(args []*value.Value) *value.Value {
		return value.NewBoolean(arg(args, 0).Truthy())
	})
}
