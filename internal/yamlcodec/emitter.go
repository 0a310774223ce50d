package yamlcodec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lumen-lang/lumen/internal/value"
)

const maxEmitDepth = 64

// emitter tracks visited container pointers to detect reference cycles
// on emit, substituting "[Circular Reference]" rather than recursing
// forever, and caps recursion depth at maxEmitDepth with a
// "[Max Depth Reached]" sentinel for pathologically deep (but acyclic)
// structures.
type emitter struct {
	visited map[*value.Value]bool
}

// Emit renders v as a YAML document. ok is false only on an internal
// failure; malformed-but-representable values (cycles, excess depth)
// still produce text with their sentinel substitutions.
func Emit(v *value.Value) (out string, ok bool) {
	e := &emitter{visited: make(map[*value.Value]bool)}
	var sb strings.Builder
	if !e.emitNode(&sb, v, 0, 0) {
		return "", false
	}
	return sb.String(), true
}

func (e *emitter) emitNode(sb *strings.Builder, v *value.Value, indent, depth int) bool {
	if depth > maxEmitDepth {
		sb.WriteString("[Max Depth Reached]")
		return true
	}
	if v == nil {
		sb.WriteString("null")
		return true
	}
	switch v.Kind {
	case value.KindArray:
		if e.visited[v] {
			sb.WriteString("[Circular Reference]")
			return true
		}
		e.visited[v] = true
		defer delete(e.visited, v)
		elems := value.ArrayElements(v)
		if len(elems) == 0 {
			sb.WriteString("[]")
			return true
		}
		for _, el := range elems {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat("  ", indent))
			sb.WriteString("- ")
			if !e.emitInline(sb, el, indent+1, depth+1) {
				return false
			}
		}
		return true
	case value.KindObject:
		if e.visited[v] {
			sb.WriteString("[Circular Reference]")
			return true
		}
		e.visited[v] = true
		defer delete(e.visited, v)
		keys := value.ObjectKeys(v)
		if len(keys) == 0 {
			sb.WriteString("{}")
			return true
		}
		for _, k := range keys {
			val, _ := value.ObjectGet(v, k)
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat("  ", indent))
			sb.WriteString(emitKey(k))
			sb.WriteString(":")
			if isScalarKind(val) {
				sb.WriteString(" ")
				e.emitScalar(sb, val)
			} else {
				if !e.emitNode(sb, val, indent+1, depth+1) {
					return false
				}
			}
		}
		return true
	default:
		e.emitScalar(sb, v)
		return true
	}
}

// emitInline handles sequence items, which may themselves be nested
// containers rendered immediately after "- " rather than on a fresh
// line.
func (e *emitter) emitInline(sb *strings.Builder, v *value.Value, indent, depth int) bool {
	if v != nil && (v.Kind == value.KindArray || v.Kind == value.KindObject) {
		var nested strings.Builder
		if !e.emitNode(&nested, v, indent, depth) {
			return false
		}
		sb.WriteString(strings.TrimPrefix(nested.String(), "\n"+strings.Repeat("  ", indent)))
		return true
	}
	e.emitScalar(sb, v)
	return true
}

func isScalarKind(v *value.Value) bool {
	return v == nil || (v.Kind != value.KindArray && v.Kind != value.KindObject)
}

func (e *emitter) emitScalar(sb *strings.Builder, v *value.Value) {
	if v == nil {
		sb.WriteString("null")
		return
	}
	switch v.Kind {
	case value.KindNull:
		sb.WriteString("null")
	case value.KindBoolean:
		sb.WriteString(fmt.Sprintf("%v", v.Truthy()))
	case value.KindNumber:
		sb.WriteString(v.String())
	case value.KindString:
		sb.WriteString(emitScalarString(v.String()))
	default:
		sb.WriteString(emitScalarString(v.String()))
	}
}

// emitScalarString quotes a string scalar when it would otherwise be
// misread as null/bool/number/empty on re-parse.
func emitScalarString(s string) string {
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	switch strings.ToLower(s) {
	case "null", "~", "true", "false", "yes", "no", "on", "off":
		return true
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return true
	}
	return strings.ContainsAny(s, ":#\n") || strings.TrimSpace(s) != s
}

func emitKey(k string) string {
	if needsQuoting(k) {
		return strconv.Quote(k)
	}
	return k
}
