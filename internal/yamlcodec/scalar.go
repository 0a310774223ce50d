package yamlcodec

import (
	"strconv"
	"strings"

	"github.com/lumen-lang/lumen/internal/value"
)

// classifyScalar classifies a bare (unquoted) scalar: bare
// null/~/empty -> null; true/yes/on (and false/no/off, case-mirrored)
// -> boolean; numeric if strconv consumes the whole lexeme; otherwise
// string. Quoted scalars are always strings regardless of content.
func classifyScalar(raw string) *value.Value {
	if quoted, s, ok := unquote(raw); ok {
		_ = quoted
		return value.NewString(s)
	}
	switch strings.ToLower(raw) {
	case "", "null", "~":
		return value.NewNull()
	case "true", "yes", "on":
		return value.NewBoolean(true)
	case "false", "no", "off":
		return value.NewBoolean(false)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return value.NewNumber(f)
	}
	return value.NewString(raw)
}

// unquote strips a single or double YAML quoting layer. ok is false
// when raw isn't quoted, in which case the caller falls through to
// scalar classification.
func unquote(raw string) (wasQuoted bool, s string, ok bool) {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		inner := raw[1 : len(raw)-1]
		inner = strings.ReplaceAll(inner, `\"`, `"`)
		inner = strings.ReplaceAll(inner, `\n`, "\n")
		inner = strings.ReplaceAll(inner, `\t`, "\t")
		inner = strings.ReplaceAll(inner, `\\`, `\`)
		return true, inner, true
	}
	if len(raw) >= 2 && raw[0] == '\'' && raw[len(raw)-1] == '\'' {
		inner := raw[1 : len(raw)-1]
		inner = strings.ReplaceAll(inner, "''", "'")
		return true, inner, true
	}
	return false, raw, false
}
