package yamlcodec

import "strings"

// line is one physical source line reduced to its indent width and
// trimmed content, with blank and full-line-comment lines already
// filtered out.
type line struct {
	indent  int
	content string
	number  int
}

func scanLines(source string) []line {
	raw := strings.Split(source, "\n")
	out := make([]line, 0, len(raw))
	for i, l := range raw {
		trimmed := strings.TrimRight(l, "\r")
		stripped := strings.TrimLeft(trimmed, " ")
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		indent := len(trimmed) - len(stripped)
		out = append(out, line{indent: indent, content: stripped, number: i + 1})
	}
	return out
}

// splitKeyValue splits "key: value" (or "key:") at the first unquoted
// top-level colon-space, returning ok=false if content isn't a mapping
// entry.
func splitKeyValue(content string) (key, rest string, ok bool) {
	inSingle, inDouble := false, false
	depth := 0
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch c {
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		case '[', '{':
			if !inSingle && !inDouble {
				depth++
			}
		case ']', '}':
			if !inSingle && !inDouble && depth > 0 {
				depth--
			}
		case ':':
			if inSingle || inDouble || depth > 0 {
				continue
			}
			if i+1 == len(content) || content[i+1] == ' ' {
				return strings.TrimSpace(content[:i]), strings.TrimSpace(content[i+1:]), true
			}
		}
	}
	return "", "", false
}
