package builtins

import (
	"strings"

	"github.com/lumen-lang/lumen/internal/evaluator"
	"github.com/lumen-lang/lumen/internal/value"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func registerStrings(e *evaluator.Evaluator) {
	e.RegisterBuiltin("string_upper", func(args []*value.Value) *value.Value {
		return value.NewString(strings.ToUpper(argString(args, 0)))
	})
	e.RegisterBuiltin("string_lower", func(args []*value.Value) *value.Value {
		return value.NewString(strings.ToLower(argString(args, 0)))
	})
	e.RegisterBuiltin("string_trim", func(args []*value.Value) *value.Value {
		return value.NewString(strings.TrimSpace(argString(args, 0)))
	})
	e.RegisterBuiltin("string_contains", func(args []*value.Value) *value.Value {
		return value.NewBoolean(strings.Contains(argString(args, 0), argString(args, 1)))
	})
	e.RegisterBuiltin("string_split", func(args []*value.Value) *value.Value {
		parts := strings.Split(argString(args, 0), argString(args, 1))
		elems := make([]*value.Value, len(parts))
		for i, p := range parts {
			elems[i] = value.NewString(p)
		}
		return value.NewArray(elems...)
	})
	e.RegisterBuiltin("string_join", func(args []*value.Value) *value.Value {
		arr := arg(args, 0)
		if arr.Kind != value.KindArray {
			return wrongArgs("string_join")
		}
		sep := argString(args, 1)
		parts := make([]string, 0, len(value.ArrayElements(arr)))
		for _, el := range value.ArrayElements(arr) {
			parts = append(parts, el.String())
		}
		return value.NewString(strings.Join(parts, sep))
	})
	e.RegisterBuiltin("string_repeat", func(args []*value.Value) *value.Value {
		n := int(argNumber(args, 1))
		if n < 0 {
			return wrongArgs("string_repeat")
		}
		return value.NewString(strings.Repeat(argString(args, 0), n))
	})
	e.RegisterBuiltin("string_reverse", func(args []*value.Value) *value.Value {
		runes := []rune(argString(args, 0))
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return value.NewString(string(runes))
	})

	// string_compare_locale is a locale-aware, optionally
	// case-insensitive comparison built on golang.org/x/text/collate +
	// golang.org/x/text/language rather than a naive byte compare,
	// returning -1/0/1.
	e.RegisterBuiltin("string_compare_locale", func(args []*value.Value) *value.Value {
		if len(args) < 2 {
			return wrongArgs("string_compare_locale")
		}
		a, b := argString(args, 0), argString(args, 1)
		locale := "en"
		if len(args) >= 3 {
			locale = argString(args, 2)
		}
		caseSensitive := false
		if len(args) >= 4 {
			caseSensitive = arg(args, 3).Truthy()
		}
		tag, err := language.Parse(locale)
		if err != nil {
			tag = language.English
		}
		var col *collate.Collator
		if caseSensitive {
			col = collate.New(tag)
		} else {
			col = collate.New(tag, collate.IgnoreCase)
		}
		return value.NewNumber(float64(col.CompareString(a, b)))
	})
}
