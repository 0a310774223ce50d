// Package srcerr formats lexer/evaluator errors with source context and a
// caret pointing at the offending column.
package srcerr

import (
	"fmt"
	"strings"

	"github.com/lumen-lang/lumen/internal/token"
)

const (
	colorMessage = "\033[31m"
	colorCaret   = "\033[93m"
	colorReset   = "\033[0m"
)

// SourceError is a single reported problem tied to a source position.
type SourceError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New creates a SourceError.
func New(pos token.Position, message, source, file string) *SourceError {
	return &SourceError{Pos: pos, Message: message, Source: source, File: file}
}

// Error implements the error interface with color disabled.
func (e *SourceError) Error() string { return e.Format(false) }

// Format renders the error as a single "location: message" line
// followed by the offending source line and a caret under the
// reported column. When color is true, the message and caret are
// wrapped in ANSI escapes for terminal output.
func (e *SourceError) Format(color bool) string {
	var sb strings.Builder

	sb.WriteString(e.location())
	sb.WriteString(": ")
	sb.WriteString(wrap(e.Message, colorMessage, color))
	sb.WriteString("\n")

	line := e.sourceLine(e.Pos.Line)
	if line == "" {
		return sb.String()
	}

	gutter := fmt.Sprintf("%d | ", e.Pos.Line)
	sb.WriteString(gutter)
	sb.WriteString(line)
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", len(gutter)))
	sb.WriteString(caretIndent(line, e.Pos.Column))
	sb.WriteString(wrap("^", colorCaret, color))
	sb.WriteString("\n")

	return sb.String()
}

func (e *SourceError) location() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d", e.File, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("line %d:%d", e.Pos.Line, e.Pos.Column)
}

func wrap(s, code string, enabled bool) string {
	if !enabled {
		return s
	}
	return code + s + colorReset
}

// caretIndent rebuilds the leading portion of line up to column,
// copying over any tab characters so the caret lines up correctly in
// terminals that render tabs wider than one column.
func caretIndent(line string, column int) string {
	var b strings.Builder
	n := 0
	for _, r := range line {
		if n >= column-1 {
			break
		}
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
		n++
	}
	for ; n < column-1; n++ {
		b.WriteByte(' ')
	}
	return b.String()
}

func (e *SourceError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
