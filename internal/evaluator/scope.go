package evaluator

import "github.com/lumen-lang/lumen/internal/value"

// Scope is a chained identifier -> value environment. A
// function-definition node captures the Scope in effect when it is
// evaluated; calling the function later allocates a fresh child Scope
// parented to that captured one.
type Scope struct {
	vars   map[string]*value.Value
	parent *Scope
}

// NewScope creates a Scope chained to parent (nil for a root scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{vars: make(map[string]*value.Value), parent: parent}
}

// Define binds name to v in this scope, overwriting any existing
// binding in this scope only. A `set` statement never reaches past its
// own scope to rebind an outer variable.
func (s *Scope) Define(name string, v *value.Value) {
	s.vars[name] = v
}

// Lookup walks the scope chain from s outward, returning the first
// binding found.
func (s *Scope) Lookup(name string) (*value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}
