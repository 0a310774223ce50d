package evaluator

import (
	"time"

	"github.com/lumen-lang/lumen/internal/value"
)

// CallFrame records one in-progress function invocation.
type CallFrame struct {
	Name      string
	Args      []*value.Value
	StartTime time.Time
	Depth     int
}

// defaultMaxCallDepth is the hard default call-stack depth cap, used
// when the evaluator is constructed without an explicit override.
const defaultMaxCallDepth = 1000
