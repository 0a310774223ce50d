package builtins

import (
	"testing"

	"github.com/lumen-lang/lumen/internal/evaluator"
	"github.com/lumen-lang/lumen/internal/value"
)

// TestStringUpper checks string_upper "hello" -> "HELLO".
func TestStringUpper(t *testing.T) {
	e := evaluator.New()
	Register(e)
	prog := callNode("string_upper", strNode("hello"))
	result, err := e.Run(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.String() != "HELLO" {
		t.Fatalf("expected HELLO, got %q", result.String())
	}
}

func TestStringCompareLocaleIgnoresCaseByDefault(t *testing.T) {
	e := evaluator.New()
	Register(e)
	prog := callNode("string_compare_locale", strNode("abc"), strNode("ABC"))
	result, err := e.Run(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.ToNumberOrNaN(result) != 0 {
		t.Fatalf("expected case-insensitive equal compare, got %v", result.String())
	}
}

func TestMathFactorial(t *testing.T) {
	e := evaluator.New()
	Register(e)
	prog := callNode("math_factorial", numNode(5))
	result, err := e.Run(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.ToNumberOrNaN(result) != 120 {
		t.Fatalf("expected 120, got %v", result.String())
	}
}

func TestLengthOfString(t *testing.T) {
	e := evaluator.New()
	Register(e)
	prog := callNode("length", strNode("hello"))
	result, err := e.Run(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value.ToNumberOrNaN(result) != 5 {
		t.Fatalf("expected 5, got %v", result.String())
	}
}
