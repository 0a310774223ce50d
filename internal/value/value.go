// Package value implements the tagged runtime value taxonomy every other
// interpreter component traffics in: primitives, strings, arrays,
// insertion-ordered objects, functions, classes, instances, and errors,
// each behind a single atomically reference-counted handle. Every kind
// shares one Go struct with a Kind tag rather than an interface per
// kind, so copy/equals/stringify/ref-counting are total functions over
// one type instead of a type switch scattered across call sites.
package value

import (
	"github.com/lumen-lang/lumen/internal/alloc"
	"github.com/lumen-lang/lumen/internal/ast"
)

// Kind tags which payload fields of a Value are meaningful.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
	KindFunction
	KindClass
	KindInstance
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Function is the payload of a KindFunction value: a reference to the
// AST function-definition node plus the lexical scope captured at
// definition time. Scope is intentionally opaque (any) so this leaf
// package never depends on the evaluator; callers type-assert it back
// to their concrete scope type.
type Function struct {
	Def   *ast.Node
	Scope any
}

// Class is the payload of a KindClass value.
type Class struct {
	Name    string
	Parent  *Value // another KindClass value, or nil
	Methods *orderedMap
	Ctor    *Value // KindFunction value, or nil
}

// Instance is the payload of a KindInstance value. Class is a strong
// (ref-counted) reference, keeping the class alive for as long as any
// instance of it exists.
type Instance struct {
	Class *Value
	Props *orderedMap
}

// errPayload is the payload of a KindError value.
type errPayload struct {
	Message string
	Code    string
}

// Value is the tagged, reference-counted runtime object every
// interpreter component passes around. Only the fields matching Kind
// are meaningful; the rest are zero.
type Value struct {
	Kind Kind
	ref  *alloc.RefCount

	b   bool
	num float64
	str string

	arr []*Value
	obj *orderedMap

	fn    *Function
	class *Class
	inst  *Instance
	err   *errPayload
}

// New allocates a value of the given kind with ref count 1 and
// kind-appropriate zero payload (empty containers start with small
// reserved capacity; strings default to empty).
func New(kind Kind) *Value {
	v := &Value{Kind: kind, ref: alloc.NewRefCount()}
	switch kind {
	case KindArray:
		v.arr = make([]*Value, 0, 4)
	case KindObject:
		v.obj = newOrderedMap()
	}
	return v
}

// NewNull returns a fresh null value.
func NewNull() *Value { return New(KindNull) }

// NewBoolean returns a fresh boolean value.
func NewBoolean(b bool) *Value {
	v := New(KindBoolean)
	v.b = b
	return v
}

// NewNumber returns a fresh numeric value.
func NewNumber(n float64) *Value {
	v := New(KindNumber)
	v.num = n
	return v
}

// NewString copies s into a fresh string value.
func NewString(s string) *Value {
	v := New(KindString)
	v.str = s
	return v
}

// NewArray returns a fresh array value taking ownership of elems (each
// element's existing ref is assumed already owned by the caller; the
// array does not re-ref them).
func NewArray(elems ...*Value) *Value {
	v := New(KindArray)
	v.arr = append(v.arr[:0], elems...)
	return v
}

// NewObject returns a fresh, empty object value.
func NewObject() *Value { return New(KindObject) }

// ObjectSet inserts or overwrites key on an object value. Overwriting an
// existing key preserves its original position (insertion order).
func ObjectSet(obj *Value, key string, val *Value) {
	if obj == nil || obj.Kind != KindObject {
		return
	}
	obj.obj.Set(key, val)
}

// ObjectGet returns the current value bound to key, or (nil, false) if
// absent.
func ObjectGet(obj *Value, key string) (*Value, bool) {
	if obj == nil || obj.Kind != KindObject {
		return nil, false
	}
	return obj.obj.Get(key)
}

// ObjectKeys returns the object's keys in insertion order.
func ObjectKeys(obj *Value) []string {
	if obj == nil || obj.Kind != KindObject {
		return nil
	}
	return obj.obj.Keys()
}

// ArrayElements returns the array's backing elements. Callers must not
// mutate the returned slice's length; use ArrayPush/ArraySet.
func ArrayElements(arr *Value) []*Value {
	if arr == nil || arr.Kind != KindArray {
		return nil
	}
	return arr.arr
}

// ArrayPush appends elem to arr.
func ArrayPush(arr *Value, elem *Value) {
	if arr == nil || arr.Kind != KindArray {
		return
	}
	arr.arr = append(arr.arr, elem)
}

// NewError constructs an error value carrying msg and a short,
// stable code identifying the error class (e.g. "type-mismatch",
// "division-by-zero").
func NewError(msg, code string) *Value {
	v := New(KindError)
	v.err = &errPayload{Message: msg, Code: code}
	return v
}

// ErrorInfo returns the message and code of an error value, or ("","")
// if v is not an error.
func ErrorInfo(v *Value) (msg, code string) {
	if v == nil || v.Kind != KindError {
		return "", ""
	}
	return v.err.Message, v.err.Code
}

// NewFunction constructs a function value capturing def and scope.
func NewFunction(def *ast.Node, scope any) *Value {
	v := New(KindFunction)
	v.fn = &Function{Def: def, Scope: scope}
	return v
}

// FunctionPayload returns the function's definition node and captured
// scope, or (nil, nil) if v is not a function.
func FunctionPayload(v *Value) (*ast.Node, any) {
	if v == nil || v.Kind != KindFunction {
		return nil, nil
	}
	return v.fn.Def, v.fn.Scope
}

// NewClass constructs a class value. parent, if non-nil, must itself be
// a KindClass value.
func NewClass(name string, parent *Value) *Value {
	v := New(KindClass)
	v.class = &Class{Name: name, Parent: parent, Methods: newOrderedMap()}
	return v
}

// ClassSetMethod binds name to a KindFunction value on a class.
func ClassSetMethod(class *Value, name string, fn *Value) {
	if class == nil || class.Kind != KindClass {
		return
	}
	class.class.Methods.Set(name, fn)
}

// ClassSetConstructor records the constructor function for class.
func ClassSetConstructor(class *Value, ctor *Value) {
	if class == nil || class.Kind != KindClass {
		return
	}
	class.class.Ctor = ctor
}

// ClassLookupMethod resolves name by walking the parent chain, so a
// subclass inherits any method it doesn't override.
func ClassLookupMethod(class *Value, name string) (*Value, bool) {
	for c := class; c != nil && c.Kind == KindClass; c = c.class.Parent {
		if fn, ok := c.class.Methods.Get(name); ok {
			return fn, true
		}
	}
	return nil, false
}

// ClassName returns the class's declared name.
func ClassName(v *Value) string {
	if v == nil || v.Kind != KindClass {
		return ""
	}
	return v.class.Name
}

// ClassConstructor returns the class's own (non-inherited) constructor,
// if any.
func ClassConstructor(v *Value) (*Value, bool) {
	if v == nil || v.Kind != KindClass {
		return nil, false
	}
	if v.class.Ctor == nil {
		return nil, false
	}
	return v.class.Ctor, true
}

// NewInstance constructs an instance of classValue. Fails with an
// invalid-argument error if classValue is not a class.
func NewInstance(classValue *Value) (*Value, *Value) {
	if classValue == nil || classValue.Kind != KindClass {
		return nil, NewError("new() requires a class value", "invalid-argument")
	}
	v := New(KindInstance)
	v.inst = &Instance{Class: Ref(classValue), Props: newOrderedMap()}
	return v, nil
}

// InstanceClass returns the instance's class value.
func InstanceClass(v *Value) *Value {
	if v == nil || v.Kind != KindInstance {
		return nil
	}
	return v.inst.Class
}

// InstancePropGet/Set access an instance's property map.
func InstancePropGet(v *Value, name string) (*Value, bool) {
	if v == nil || v.Kind != KindInstance {
		return nil, false
	}
	return v.inst.Props.Get(name)
}

func InstancePropSet(v *Value, name string, val *Value) {
	if v == nil || v.Kind != KindInstance {
		return
	}
	v.inst.Props.Set(name, val)
}
