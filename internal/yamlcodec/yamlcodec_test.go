package yamlcodec

import (
	"strings"
	"testing"

	"github.com/lumen-lang/lumen/internal/value"
)

func TestParseScalarClassification(t *testing.T) {
	v, err := Parse("true")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind != value.KindBoolean || !v.Truthy() {
		t.Fatalf("expected boolean true, got %v", v)
	}
}

func TestParseSimpleMapping(t *testing.T) {
	src := "name: Ada\nage: 36\n"
	v, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	name, ok := value.ObjectGet(v, "name")
	if !ok || name.String() != "Ada" {
		t.Fatalf("expected name=Ada, got %v", name)
	}
	age, ok := value.ObjectGet(v, "age")
	if !ok || value.ToNumberOrNaN(age) != 36 {
		t.Fatalf("expected age=36, got %v", age)
	}
}

func TestParseSequence(t *testing.T) {
	src := "- 1\n- 2\n- 3\n"
	v, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elems := value.ArrayElements(v)
	if len(elems) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elems))
	}
}

// TestAliasMergeKeyLocalWins exercises a mapping with a "<<: *anchor"
// merge key, where the local mapping's own keys win over merged ones.
func TestAliasMergeKeyLocalWins(t *testing.T) {
	src := "base: &defaults\n  color: red\n  size: 10\nitem:\n  <<: *defaults\n  color: blue\n"
	v, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item, ok := value.ObjectGet(v, "item")
	if !ok {
		t.Fatalf("expected item key")
	}
	color, _ := value.ObjectGet(item, "color")
	if color.String() != "blue" {
		t.Fatalf("expected local color=blue to win over merged, got %v", color)
	}
	size, ok := value.ObjectGet(item, "size")
	if !ok || value.ToNumberOrNaN(size) != 10 {
		t.Fatalf("expected merged size=10, got %v", size)
	}
}

// TestDuplicateAnchorLastWins verifies that a repeated anchor name
// resolves to its most recent registration.
func TestDuplicateAnchorLastWins(t *testing.T) {
	src := "a: &x 1\nb: &x 2\nc: *x\n"
	v, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, _ := value.ObjectGet(v, "c")
	if value.ToNumberOrNaN(c) != 2 {
		t.Fatalf("expected last-wins anchor value 2, got %v", c)
	}
}

// TestUnresolvedAliasIsUnknownAnchorError verifies that an alias with
// no matching anchor surfaces as an unknown-anchor error.
func TestUnresolvedAliasIsUnknownAnchorError(t *testing.T) {
	_, err := Parse("a: *nope\n")
	if err == nil {
		t.Fatalf("expected unknown-anchor error")
	}
	if !strings.Contains(err.Error(), "unknown-anchor") {
		t.Fatalf("expected unknown-anchor in error, got %v", err)
	}
}

// TestEmitCircularReferenceSentinel verifies that emitting a value
// containing itself does not recurse forever and instead emits the
// "[Circular Reference]" sentinel.
func TestEmitCircularReferenceSentinel(t *testing.T) {
	obj := value.NewObject()
	value.ObjectSet(obj, "self", obj)
	out, ok := Emit(obj)
	if !ok {
		t.Fatalf("expected emit to succeed with a sentinel, not fail")
	}
	if !strings.Contains(out, "[Circular Reference]") {
		t.Fatalf("expected circular reference sentinel in output, got %q", out)
	}
}

func TestEmitMaxDepthSentinel(t *testing.T) {
	var build func(depth int) *value.Value
	build = func(depth int) *value.Value {
		if depth == 0 {
			return value.NewNumber(1)
		}
		obj := value.NewObject()
		value.ObjectSet(obj, "next", build(depth-1))
		return obj
	}
	deep := build(maxEmitDepth + 10)
	out, ok := Emit(deep)
	if !ok {
		t.Fatalf("expected emit to succeed with a sentinel, not fail")
	}
	if !strings.Contains(out, "[Max Depth Reached]") {
		t.Fatalf("expected max depth sentinel in output")
	}
}

func TestRoundtripSimpleMapping(t *testing.T) {
	src := "name: Ada\nactive: true\ncount: 3\n"
	v, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, ok := Emit(v)
	if !ok {
		t.Fatalf("expected emit to succeed")
	}
	v2, err := Parse(out)
	if err != nil {
		t.Fatalf("unexpected error reparsing emitted output: %v\noutput was:\n%s", err, out)
	}
	if !value.Equals(v, v2) {
		t.Fatalf("roundtrip mismatch: %v vs %v", v, v2)
	}
}
