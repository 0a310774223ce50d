// Package evaluator walks an *ast.Node tree and produces *value.Value
// results. Control flow (break/continue/return) and language-level
// exceptions are threaded as explicit state rather than host Go panics:
// every eval step returns a signal alongside its value instead of
// unwinding the Go stack.
package evaluator

import (
	"fmt"
	"time"

	"github.com/lumen-lang/lumen/internal/ast"
	"github.com/lumen-lang/lumen/internal/token"
	"github.com/lumen-lang/lumen/internal/value"
)

// BuiltinFunc is the signature every registered builtin implements.
// Builtins never see raw Go types, only *value.Value.
type BuiltinFunc func(args []*value.Value) *value.Value

// signalKind distinguishes the three non-local control-flow exits a
// statement can produce, alongside normal completion.
type signalKind int

const (
	signalNone signalKind = iota
	signalBreak
	signalContinue
	signalReturn
)

type signal struct {
	kind signalKind
	val  *value.Value
}

// Evaluator holds the state of one program run: the root scope, call
// stack, in-flight exception, profiler, and builtin registry, carried
// together on one struct rather than threaded as separate parameters
// through every call.
type Evaluator struct {
	root      *Scope
	builtins  map[string]BuiltinFunc
	callStack []*CallFrame
	maxDepth  int
	exception ExceptionState
	profiler  *Profiler
	arena     *ast.Manager
	out       func(string)
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator)

// WithMaxCallDepth overrides the default call-depth cap.
func WithMaxCallDepth(n int) Option {
	return func(e *Evaluator) { e.maxDepth = n }
}

// WithOutput installs the sink used by `put`/print-style builtins.
func WithOutput(fn func(string)) Option {
	return func(e *Evaluator) { e.out = fn }
}

// WithArena installs an AST node-pool manager. The tree-walker itself
// never allocates or frees nodes through it — the arena's lifecycle is
// owned by whatever builds the tree; the manager is only stored on the
// Evaluator.
func WithArena(m *ast.Manager) Option {
	return func(e *Evaluator) { e.arena = m }
}

// WithProfiler installs a profiler; profiling is disabled by default.
func WithProfiler(p *Profiler) Option {
	return func(e *Evaluator) { e.profiler = p }
}

// New creates an Evaluator with an empty root scope and no builtins
// registered; call RegisterBuiltin to add them.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		root:     NewScope(nil),
		builtins: make(map[string]BuiltinFunc),
		maxDepth: defaultMaxCallDepth,
		profiler: NewProfiler(0),
		out:      func(string) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterBuiltin installs fn under name, reachable from any scope (the
// root scope has no parent, so builtins are visible everywhere a plain
// identifier lookup would find a user binding).
func (e *Evaluator) RegisterBuiltin(name string, fn BuiltinFunc) {
	e.builtins[name] = fn
}

// RootScope exposes the program-level scope, e.g. for a REPL host to
// pre-seed globals.
func (e *Evaluator) RootScope() *Scope { return e.root }

// Profiler exposes the evaluator's profiler for host inspection.
func (e *Evaluator) Profiler() *Profiler { return e.profiler }

// WriteOutput sends s to the installed output sink (see WithOutput);
// `put` and similar builtins call this rather than writing to stdout
// directly, so a host can capture or redirect program output.
func (e *Evaluator) WriteOutput(s string) { e.out(s) }

// Run evaluates a top-level program (a KindBlock node) in the root
// scope and returns its final value.
func (e *Evaluator) Run(program *ast.Node) (*value.Value, error) {
	v, _, err := e.eval(program, e.root)
	return v, err
}

// eval dispatches on node.Kind, returning the produced value, any
// in-flight control-flow signal, and a Go error only for conditions the
// language itself cannot represent (nil node, unknown kind, a signal
// escaping to top level).
func (e *Evaluator) eval(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if n == nil {
		return value.NewNull(), signal{}, nil
	}
	if n.IsFreed() {
		return nil, signal{}, fmt.Errorf("evaluator: use of freed ast node at %s", n.Pos)
	}

	switch n.Kind {
	case ast.KindNumberLiteral:
		return value.NewNumber(n.Num), signal{}, nil
	case ast.KindBooleanLiteral:
		return value.NewBoolean(n.Bool), signal{}, nil
	case ast.KindStringLiteral:
		return value.NewString(n.Str), signal{}, nil
	case ast.KindNullLiteral:
		return value.NewNull(), signal{}, nil
	case ast.KindUndecidableLiteral:
		// An "undecidable" literal stringifies/truthies like null but is
		// a distinct literal kind, so source-fidelity tools can tell it
		// apart from a real null.
		return value.NewNull(), signal{}, nil
	case ast.KindArrayLiteral:
		return e.evalArrayLiteral(n, scope)
	case ast.KindObjectLiteral:
		return e.evalObjectLiteral(n, scope)
	case ast.KindIdentifier:
		return e.evalIdentifier(n, scope)
	case ast.KindSet:
		return e.evalSet(n, scope)
	case ast.KindFunctionDef:
		return e.evalFunctionDef(n, scope)
	case ast.KindCall:
		return e.evalCall(n, scope)
	case ast.KindBlock:
		return e.evalBlock(n, scope)
	case ast.KindBinary:
		return e.evalBinary(n, scope)
	case ast.KindUnary:
		return e.evalUnary(n, scope)
	case ast.KindIf:
		return e.evalIf(n, scope)
	case ast.KindWhile:
		return e.evalWhile(n, scope)
	case ast.KindForIn:
		return e.evalForIn(n, scope)
	case ast.KindReturn:
		return e.evalReturn(n, scope)
	case ast.KindBreak:
		return value.NewNull(), signal{kind: signalBreak}, nil
	case ast.KindContinue:
		return value.NewNull(), signal{kind: signalContinue}, nil
	case ast.KindClassDef:
		return e.evalClassDef(n, scope)
	case ast.KindNewExpr:
		return e.evalNewExpr(n, scope)
	case ast.KindImport, ast.KindExport:
		// Module linking is a host concern; these nodes evaluate to null
		// here rather than doing any resolution themselves.
		return value.NewNull(), signal{}, nil
	case ast.KindTry:
		return e.evalTry(n, scope)
	case ast.KindThrow:
		return e.evalThrow(n, scope)
	default:
		return nil, signal{}, fmt.Errorf("evaluator: unknown node kind %d at %s", n.Kind, n.Pos)
	}
}

func (e *Evaluator) evalArrayLiteral(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	elems := make([]*value.Value, 0, len(n.Children))
	for _, c := range n.Children {
		v, sig, err := e.eval(c, scope)
		if err != nil {
			return nil, signal{}, err
		}
		if sig.kind != signalNone {
			return nil, sig, nil
		}
		elems = append(elems, v)
	}
	return value.NewArray(elems...), signal{}, nil
}

func (e *Evaluator) evalObjectLiteral(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	obj := value.NewObject()
	for i, c := range n.Children {
		v, sig, err := e.eval(c, scope)
		if err != nil {
			return nil, signal{}, err
		}
		if sig.kind != signalNone {
			return nil, sig, nil
		}
		key := ""
		if i < len(n.Keys) {
			key = n.Keys[i]
		}
		value.ObjectSet(obj, key, v)
	}
	return obj, signal{}, nil
}

func (e *Evaluator) evalIdentifier(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if v, ok := scope.Lookup(n.Str); ok {
		return v, signal{}, nil
	}
	if fn, ok := e.builtins[n.Str]; ok {
		// A builtin named outside call position evaluates to a placeholder
		// string, not a callable value; builtins are invoked only by name
		// in call position, which evalCall handles directly.
		_ = fn
		return value.NewString("<builtin " + n.Str + ">"), signal{}, nil
	}
	return value.NewError("undefined identifier: "+n.Str, "undefined-identifier"), signal{}, nil
}

func (e *Evaluator) evalSet(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if len(n.Children) == 0 {
		return nil, signal{}, fmt.Errorf("evaluator: malformed set node at %s", n.Pos)
	}
	v, sig, err := e.eval(n.Children[0], scope)
	if err != nil || sig.kind != signalNone {
		return v, sig, err
	}
	scope.Define(n.Str, v)
	return v, signal{}, nil
}

func (e *Evaluator) evalFunctionDef(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	n.CapturedScope = scope
	return value.NewFunction(n, scope), signal{}, nil
}

// evalCall resolves the callee, evaluates arguments left to right, and
// invokes either a builtin or a user function. A user-function call
// gets a fresh child scope parented to the function definition's
// *captured* scope, never the caller's, so a call cannot leak bindings
// into or out of unrelated call sites.
func (e *Evaluator) evalCall(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if len(n.Children) == 0 {
		return nil, signal{}, fmt.Errorf("evaluator: malformed call node at %s", n.Pos)
	}
	calleeNode := n.Children[0]
	argNodes := n.Children[1:]

	args := make([]*value.Value, 0, len(argNodes))
	for _, a := range argNodes {
		v, sig, err := e.eval(a, scope)
		if err != nil {
			return nil, signal{}, err
		}
		if sig.kind != signalNone {
			return nil, sig, nil
		}
		args = append(args, v)
	}

	if calleeNode.Kind == ast.KindIdentifier {
		if fn, ok := e.builtins[calleeNode.Str]; ok {
			return fn(args), signal{}, nil
		}
	}

	callee, sig, err := e.eval(calleeNode, scope)
	if err != nil {
		return nil, signal{}, err
	}
	if sig.kind != signalNone {
		return nil, sig, nil
	}
	if isErrorValue(callee) {
		return callee, signal{}, nil
	}
	if callee.Kind != value.KindFunction {
		return value.NewError("value is not callable", "type-mismatch"), signal{}, nil
	}
	return e.invoke(callee, args, n.Pos)
}

func (e *Evaluator) invoke(fnVal *value.Value, args []*value.Value, pos token.Position) (*value.Value, signal, error) {
	def, capturedAny := value.FunctionPayload(fnVal)
	if def == nil {
		return value.NewError("value is not callable", "type-mismatch"), signal{}, nil
	}
	captured, _ := capturedAny.(*Scope)

	if len(e.callStack) >= e.maxDepth {
		return value.NewError("call stack exceeded maximum depth", "stack-overflow"), signal{}, nil
	}

	name := def.Str
	if name == "" {
		name = "<anonymous>"
	}
	frame := &CallFrame{Name: name, Args: args, StartTime: time.Now(), Depth: len(e.callStack) + 1}
	e.callStack = append(e.callStack, frame)
	defer func() {
		e.callStack = e.callStack[:len(e.callStack)-1]
		if e.profiler != nil {
			e.profiler.Record(name, time.Since(frame.StartTime))
		}
	}()

	callScope := NewScope(captured)
	for i, param := range def.Keys {
		if i < len(args) {
			callScope.Define(param, args[i])
		} else {
			callScope.Define(param, value.NewNull())
		}
	}

	var body *ast.Node
	if len(def.Children) > 0 {
		body = def.Children[0]
	}
	v, sig, err := e.eval(body, callScope)
	if err != nil {
		return nil, signal{}, err
	}
	if sig.kind == signalReturn {
		return sig.val, signal{}, nil
	}
	return v, signal{}, nil
}

func (e *Evaluator) evalBlock(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	result := value.NewNull()
	for _, stmt := range n.Children {
		v, sig, err := e.eval(stmt, scope)
		if err != nil {
			return nil, signal{}, err
		}
		if sig.kind != signalNone {
			return v, sig, nil
		}
		result = v
		if e.HasException() {
			return result, signal{}, nil
		}
	}
	return result, signal{}, nil
}

func (e *Evaluator) evalBinary(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if len(n.Children) != 2 {
		return nil, signal{}, fmt.Errorf("evaluator: malformed binary node at %s", n.Pos)
	}
	left, sig, err := e.eval(n.Children[0], scope)
	if err != nil || sig.kind != signalNone {
		return left, sig, err
	}
	right, sig, err := e.eval(n.Children[1], scope)
	if err != nil || sig.kind != signalNone {
		return right, sig, err
	}
	return EvalBinary(n.Str, left, right), signal{}, nil
}

func (e *Evaluator) evalUnary(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if len(n.Children) != 1 {
		return nil, signal{}, fmt.Errorf("evaluator: malformed unary node at %s", n.Pos)
	}
	operand, sig, err := e.eval(n.Children[0], scope)
	if err != nil || sig.kind != signalNone {
		return operand, sig, err
	}
	return EvalUnary(n.Str, operand), signal{}, nil
}

func (e *Evaluator) evalIf(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if len(n.Children) < 2 {
		return nil, signal{}, fmt.Errorf("evaluator: malformed if node at %s", n.Pos)
	}
	cond, sig, err := e.eval(n.Children[0], scope)
	if err != nil || sig.kind != signalNone {
		return cond, sig, err
	}
	if cond.Truthy() {
		return e.eval(n.Children[1], NewScope(scope))
	}
	if len(n.Children) > 2 {
		return e.eval(n.Children[2], NewScope(scope))
	}
	return value.NewNull(), signal{}, nil
}

func (e *Evaluator) evalWhile(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if len(n.Children) != 2 {
		return nil, signal{}, fmt.Errorf("evaluator: malformed while node at %s", n.Pos)
	}
	result := value.NewNull()
	for {
		cond, sig, err := e.eval(n.Children[0], scope)
		if err != nil || sig.kind != signalNone {
			return cond, sig, err
		}
		if !cond.Truthy() {
			return result, signal{}, nil
		}
		v, sig, err := e.eval(n.Children[1], scope)
		if err != nil {
			return nil, signal{}, err
		}
		if e.HasException() {
			return v, signal{}, nil
		}
		switch sig.kind {
		case signalBreak:
			return v, signal{}, nil
		case signalReturn:
			return v, sig, nil
		}
		result = v
	}
}

// evalForIn iterates an array's elements or an object's keys.
// Children: [0]=iterable expr, [1]=body block. Keys[0] names the loop
// variable.
func (e *Evaluator) evalForIn(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if len(n.Children) != 2 || len(n.Keys) < 1 {
		return nil, signal{}, fmt.Errorf("evaluator: malformed for-in node at %s", n.Pos)
	}
	coll, sig, err := e.eval(n.Children[0], scope)
	if err != nil || sig.kind != signalNone {
		return coll, sig, err
	}
	varName := n.Keys[0]

	var items []*value.Value
	switch coll.Kind {
	case value.KindArray:
		items = value.ArrayElements(coll)
	case value.KindObject:
		for _, k := range value.ObjectKeys(coll) {
			items = append(items, value.NewString(k))
		}
	default:
		return value.NewError("for-in requires an array or object", "type-mismatch"), signal{}, nil
	}

	result := value.NewNull()
	for _, item := range items {
		iterScope := NewScope(scope)
		iterScope.Define(varName, item)
		v, sig, err := e.eval(n.Children[1], iterScope)
		if err != nil {
			return nil, signal{}, err
		}
		if e.HasException() {
			return v, signal{}, nil
		}
		switch sig.kind {
		case signalBreak:
			return v, signal{}, nil
		case signalContinue:
			continue
		case signalReturn:
			return v, sig, nil
		}
		result = v
	}
	return result, signal{}, nil
}

func (e *Evaluator) evalReturn(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if len(n.Children) == 0 {
		return value.NewNull(), signal{kind: signalReturn, val: value.NewNull()}, nil
	}
	v, sig, err := e.eval(n.Children[0], scope)
	if err != nil || sig.kind != signalNone {
		return v, sig, err
	}
	return v, signal{kind: signalReturn, val: v}, nil
}

// evalClassDef builds a Class value. Children holds parallel method
// KindFunctionDef nodes; Keys holds the matching method names, with the
// conventional name "constructor" bound via ClassSetConstructor instead
// of ClassSetMethod.
func (e *Evaluator) evalClassDef(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	var parent *value.Value
	if n.ParentName != "" {
		p, ok := scope.Lookup(n.ParentName)
		if !ok || p.Kind != value.KindClass {
			return value.NewError("undefined parent class: "+n.ParentName, "undefined-identifier"), signal{}, nil
		}
		parent = p
	}
	classVal := value.NewClass(n.Str, parent)
	for i, methodNode := range n.Children {
		if i >= len(n.Keys) {
			break
		}
		methodNode.CapturedScope = scope
		methodVal := value.NewFunction(methodNode, scope)
		if n.Keys[i] == "constructor" {
			value.ClassSetConstructor(classVal, methodVal)
		} else {
			value.ClassSetMethod(classVal, n.Keys[i], methodVal)
		}
	}
	scope.Define(n.Str, classVal)
	return classVal, signal{}, nil
}

// evalNewExpr instantiates a class. Children[0] is the class
// expression; the rest are constructor arguments.
func (e *Evaluator) evalNewExpr(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if len(n.Children) == 0 {
		return nil, signal{}, fmt.Errorf("evaluator: malformed new node at %s", n.Pos)
	}
	classVal, sig, err := e.eval(n.Children[0], scope)
	if err != nil || sig.kind != signalNone {
		return classVal, sig, err
	}
	if isErrorValue(classVal) {
		return classVal, signal{}, nil
	}
	inst, errVal := value.NewInstance(classVal)
	if errVal != nil {
		return errVal, signal{}, nil
	}
	if ctor, ok := value.ClassConstructor(classVal); ok {
		args := make([]*value.Value, 0, len(n.Children)-1)
		for _, a := range n.Children[1:] {
			v, sig, err := e.eval(a, scope)
			if err != nil {
				return nil, signal{}, err
			}
			if sig.kind != signalNone {
				return nil, sig, nil
			}
			args = append(args, v)
		}
		boundCtor := bindMethod(ctor, inst)
		if _, _, err := e.invoke(boundCtor, args, n.Pos); err != nil {
			return nil, signal{}, err
		}
	}
	return inst, signal{}, nil
}

// bindMethod wraps a class method so that, when invoked, its body
// executes in a scope where "self" resolves to inst — a synthetic
// scope layer rather than a receiver field on Value.
func bindMethod(method *value.Value, inst *value.Value) *value.Value {
	def, capturedAny := value.FunctionPayload(method)
	captured, _ := capturedAny.(*Scope)
	bound := NewScope(captured)
	bound.Define("self", inst)
	return value.NewFunction(def, bound)
}

// evalTry runs Children[0] (the try block); if it raises a language
// exception, Keys[0] is bound to the exception value in a fresh scope
// and Children[1] (the catch block) runs with the exception cleared.
func (e *Evaluator) evalTry(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if len(n.Children) < 1 {
		return nil, signal{}, fmt.Errorf("evaluator: malformed try node at %s", n.Pos)
	}
	depth := len(e.callStack)
	v, sig, err := e.eval(n.Children[0], NewScope(scope))
	if err != nil {
		return nil, signal{}, err
	}
	if !e.HasException() {
		return v, sig, nil
	}

	// An exception unwinds any frames pushed since the try was entered.
	if len(e.callStack) > depth {
		e.callStack = e.callStack[:depth]
	}
	excVal := e.exception.Value
	e.ClearException()

	if len(n.Children) < 2 {
		return v, sig, nil
	}
	catchScope := NewScope(scope)
	if len(n.Keys) > 0 {
		catchScope.Define(n.Keys[0], excVal)
	}
	return e.eval(n.Children[1], catchScope)
}

func (e *Evaluator) evalThrow(n *ast.Node, scope *Scope) (*value.Value, signal, error) {
	if len(n.Children) == 0 {
		return nil, signal{}, fmt.Errorf("evaluator: malformed throw node at %s", n.Pos)
	}
	v, sig, err := e.eval(n.Children[0], scope)
	if err != nil || sig.kind != signalNone {
		return v, sig, err
	}
	e.Throw(v, n.Pos)
	return v, signal{}, nil
}
