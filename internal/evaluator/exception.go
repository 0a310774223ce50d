package evaluator

import (
	"github.com/lumen-lang/lumen/internal/token"
	"github.com/lumen-lang/lumen/internal/value"
)

// ExceptionState is the evaluator's single in-flight exception record.
// A `try` frame notes the call-stack depth on entry; a matching `catch`
// pops back to it and clears this.
type ExceptionState struct {
	Active  bool
	Value   *value.Value
	Message string
	Pos     token.Position
}

// HasException reports whether a language-level exception is currently
// in flight.
func (e *Evaluator) HasException() bool { return e.exception.Active }

// ClearException resets the in-flight exception state (called by a
// matching `catch` handler).
func (e *Evaluator) ClearException() { e.exception = ExceptionState{} }

// Throw populates the exception state with v's message/value and the
// given source position.
func (e *Evaluator) Throw(v *value.Value, pos token.Position) {
	msg, _ := value.ErrorInfo(v)
	if msg == "" {
		msg = v.String()
	}
	e.exception = ExceptionState{Active: true, Value: v, Message: msg, Pos: pos}
}
