package srcerr

import (
	"strings"
	"testing"

	"github.com/lumen-lang/lumen/internal/token"
)

func TestFormatIncludesCaretUnderColumn(t *testing.T) {
	src := "set x 5\nset y @\n"
	e := New(token.Position{Line: 2, Column: 7}, "unexpected character", src, "")
	out := e.Format(false)
	if !strings.Contains(out, "set y @") {
		t.Fatalf("expected offending line in output, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret marker in output, got:\n%s", out)
	}
}

func TestFormatWithColorWrapsCaretAndMessage(t *testing.T) {
	e := New(token.Position{Line: 1, Column: 1}, "boom", "x\n", "main.lum")
	out := e.Format(true)
	if !strings.Contains(out, "\033[31m") || !strings.Contains(out, "\033[93m") {
		t.Fatalf("expected ANSI color codes in colored output, got:\n%s", out)
	}
}

func TestFormatIndentsCaretPastTabs(t *testing.T) {
	e := New(token.Position{Line: 1, Column: 2}, "bad", "\tx\n", "")
	out := e.Format(false)
	lines := strings.Split(out, "\n")
	if len(lines) < 3 || !strings.Contains(lines[2], "\t^") {
		t.Fatalf("expected caret line to preserve the source's leading tab, got:\n%s", out)
	}
}
