// Package ast defines the uniformly-sized syntax node and the chunked
// arena that serves it. The external parser builds trees out of these
// nodes; this package owns only their storage and kind taxonomy.
package ast

import "github.com/lumen-lang/lumen/internal/token"

// Kind tags the payload a Node currently holds. freeKind marks a node
// that is sitting on a sub-pool's free list — a use-after-free
// sentinel, not a valid node kind.
type Kind int

const freeKind Kind = -1

const (
	KindNumberLiteral Kind = iota
	KindBooleanLiteral
	KindStringLiteral
	KindNullLiteral
	KindUndecidableLiteral
	KindArrayLiteral
	KindObjectLiteral
	KindIdentifier
	KindSet
	KindFunctionDef
	KindCall
	KindBlock
	KindBinary
	KindUnary
	KindIf
	KindWhile
	KindForIn
	KindReturn
	KindBreak
	KindContinue
	KindClassDef
	KindNewExpr
	KindImport
	KindExport
	KindTry
	KindThrow
)

// Node is the uniform syntax-tree element every kind of construct is
// stored in: a kind tag plus a payload area sized for the union of
// literals, containers, references, definitions, calls, compound
// statements, operators, control flow, classes, import/export, and
// try/catch/throw.
type Node struct {
	Kind Kind
	Pos  token.Position

	// Scalar payload.
	Num  float64
	Bool bool
	Str  string // identifier name / string literal text / operator text

	// Structural payload. Children holds positional sub-nodes (array
	// elements, statement lists, call arguments, parameter list,
	// if/while/for parts in a fixed order documented per Kind).
	// Keys holds parallel string keys for object literals and named
	// parameters, preserving insertion/declaration order.
	Children []*Node
	Keys     []string

	// CapturedScope is set only on KindFunctionDef nodes: the lexical
	// scope in effect when the function literal was evaluated, opaque
	// here (concrete type supplied by the evaluator package) to avoid
	// an import cycle. The evaluator must read this without ever
	// overwriting it mid-call — each call gets its own child scope
	// instead.
	CapturedScope any

	// Parent-class name for KindClassDef (empty if none), pre-resolved
	// identifier for KindNewExpr.
	ParentName string

	// Arena bookkeeping. inPool is true iff this Node's storage lives
	// inside an arena chunk; free is the intrusive free-list link, used
	// only while the node sits on a sub-pool's free list.
	inPool bool
	poolID int
	free   *Node
}

// InPool reports whether n was allocated from the arena (as opposed to
// a host-allocator fallback node produced when the arena is disabled).
func (n *Node) InPool() bool { return n.inPool }

// IsFreed reports whether n currently sits on a free list — observing
// this on a supposedly-live node indicates a use-after-free.
func (n *Node) IsFreed() bool { return n.Kind == freeKind }

func (n *Node) reset() {
	*n = Node{}
}
