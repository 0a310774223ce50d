package yamlcodec

import (
	"fmt"
	"strings"

	"github.com/lumen-lang/lumen/internal/value"
)

const maxDocumentBytes = 64 * 1024 * 1024

// parser composes scanned lines directly into value.Value, maintaining
// an anchor map: register on construction, resolve (and ref) on alias,
// "unknown-anchor" on an unresolved reference. Duplicate anchor names
// use last-wins.
type parser struct {
	lines   []line
	anchors map[string]*value.Value
}

// Parse decodes a single YAML document from source into a *value.Value.
// Oversized input and an unresolved alias in block context surface as
// a Go error from this function ("yaml-too-large: ..." and
// "unknown-anchor: ..."); an unresolved alias inside a flow collection
// ("[...]" or "{...}") is instead carried as a value.KindError element
// of the result.
func Parse(source string) (*value.Value, error) {
	if len(source) > maxDocumentBytes {
		return nil, fmt.Errorf("yaml-too-large: document exceeds %d bytes", maxDocumentBytes)
	}
	p := &parser{lines: scanLines(source), anchors: make(map[string]*value.Value)}
	if len(p.lines) == 0 {
		return value.NewNull(), nil
	}
	v, _, err := p.parseBlock(0, p.lines[0].indent)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// parseBlock parses a run of sibling lines at exactly `indent`, starting
// at p.lines[idx], returning the composed value and the index of the
// first line not consumed.
func (p *parser) parseBlock(idx, indent int) (*value.Value, int, error) {
	if idx >= len(p.lines) || p.lines[idx].indent != indent {
		return value.NewNull(), idx, nil
	}
	if strings.HasPrefix(p.lines[idx].content, "- ") || p.lines[idx].content == "-" {
		return p.parseSequence(idx, indent)
	}
	if _, _, ok := splitKeyValue(p.lines[idx].content); ok {
		return p.parseMapping(idx, indent)
	}
	return p.parseScalarLine(idx, indent)
}

func (p *parser) parseScalarLine(idx, indent int) (*value.Value, int, error) {
	anchor, alias, rest := stripAnchorOrAlias(p.lines[idx].content)
	if alias != "" {
		v, err := p.resolveAlias(alias)
		return v, idx + 1, err
	}
	v := p.parseFlowOrScalar(rest)
	p.registerAnchor(anchor, v)
	return v, idx + 1, nil
}

func (p *parser) parseSequence(idx, indent int) (*value.Value, int, error) {
	arr := value.NewArray()
	for idx < len(p.lines) && p.lines[idx].indent == indent && (strings.HasPrefix(p.lines[idx].content, "- ") || p.lines[idx].content == "-") {
		rest := strings.TrimPrefix(p.lines[idx].content, "-")
		rest = strings.TrimPrefix(rest, " ")
		anchor, alias, rest2 := stripAnchorOrAlias(rest)

		if alias != "" {
			v, err := p.resolveAlias(alias)
			if err != nil {
				return nil, idx, err
			}
			value.ArrayPush(arr, v)
			idx++
			continue
		}

		if rest2 == "" {
			// Item's content is a nested block at deeper indent.
			v, next, err := p.parseBlock(idx+1, indentOf(p.lines, idx+1, indent))
			if err != nil {
				return nil, idx, err
			}
			p.registerAnchor(anchor, v)
			value.ArrayPush(arr, v)
			idx = next
			continue
		}

		if _, _, ok := splitKeyValue(rest2); ok {
			// "- key: value" starts an inline mapping whose first entry is
			// rest2; subsequent entries (if any) are deeper-indented
			// siblings aligned under the dash's content column.
			itemIndent := p.lines[idx].indent + (len(p.lines[idx].content) - len(rest2))
			v, next, err := p.parseInlineMapping(idx, itemIndent, rest2)
			if err != nil {
				return nil, idx, err
			}
			p.registerAnchor(anchor, v)
			value.ArrayPush(arr, v)
			idx = next
			continue
		}

		v := p.parseFlowOrScalar(rest2)
		p.registerAnchor(anchor, v)
		value.ArrayPush(arr, v)
		idx++
	}
	return arr, idx, nil
}

func (p *parser) parseMapping(idx, indent int) (*value.Value, int, error) {
	obj := value.NewObject()
	for idx < len(p.lines) && p.lines[idx].indent == indent {
		key, rest, ok := splitKeyValue(p.lines[idx].content)
		if !ok {
			break
		}
		next, err := p.consumeMappingEntry(obj, idx, indent, key, rest)
		if err != nil {
			return nil, idx, err
		}
		idx = next
	}
	return obj, idx, nil
}

// parseInlineMapping handles "- key: value" sequence items: the first
// entry is already split out as firstRest; further entries are sibling
// lines indented to align with the first entry's column.
func (p *parser) parseInlineMapping(idx, itemIndent int, firstRest string) (*value.Value, int, error) {
	obj := value.NewObject()
	key, rest, _ := splitKeyValue(firstRest)
	next, err := p.consumeMappingEntry(obj, idx, p.lines[idx].indent, key, rest)
	if err != nil {
		return nil, idx, err
	}
	idx = next
	for idx < len(p.lines) && p.lines[idx].indent == itemIndent {
		k, r, ok := splitKeyValue(p.lines[idx].content)
		if !ok {
			break
		}
		n, err := p.consumeMappingEntry(obj, idx, itemIndent, k, r)
		if err != nil {
			return nil, idx, err
		}
		idx = n
	}
	return obj, idx, nil
}

// consumeMappingEntry parses one "key: rest" line (already split) into
// obj, handling the "<<" merge key (local values win over merged
// ones), and returns the index following everything the entry consumed
// (including any nested block).
func (p *parser) consumeMappingEntry(obj *value.Value, idx, indent int, key, rest string) (int, error) {
	anchor, alias, rest2 := stripAnchorOrAlias(rest)

	if rest == "" || (alias == "" && rest2 == "") {
		// Either no value at all, or the value was purely an anchor
		// marker ("&name") with the actual payload on nested lines.
		nested := indentOf(p.lines, idx+1, indent)
		v, next, err := p.parseBlock(idx+1, nested)
		if err != nil {
			return idx, err
		}
		p.registerAnchor(anchor, v)
		if key == "<<" {
			mergeInto(obj, v)
		} else {
			value.ObjectSet(obj, key, v)
		}
		return next, nil
	}

	if alias != "" {
		v, err := p.resolveAlias(alias)
		if err != nil {
			return idx, err
		}
		if key == "<<" {
			mergeInto(obj, v)
		} else {
			value.ObjectSet(obj, key, v)
		}
		return idx + 1, nil
	}

	v := p.parseFlowOrScalar(rest2)
	p.registerAnchor(anchor, v)
	if key == "<<" {
		mergeInto(obj, v)
	} else {
		value.ObjectSet(obj, key, v)
	}
	return idx + 1, nil
}

// mergeInto copies properties from src (a mapping, or an array of
// mappings for "<<: [*a, *b]") into dst wherever dst doesn't already
// have that key — local values win over merged ones.
func mergeInto(dst, src *value.Value) {
	apply := func(m *value.Value) {
		if m == nil || m.Kind != value.KindObject {
			return
		}
		for _, k := range value.ObjectKeys(m) {
			if _, exists := value.ObjectGet(dst, k); exists {
				continue
			}
			v, _ := value.ObjectGet(m, k)
			value.ObjectSet(dst, k, v)
		}
	}
	if src.Kind == value.KindArray {
		for _, m := range value.ArrayElements(src) {
			apply(m)
		}
		return
	}
	apply(src)
}

func (p *parser) registerAnchor(name string, v *value.Value) {
	if name == "" {
		return
	}
	p.anchors[name] = v // last-wins on a repeated anchor name
}

func (p *parser) resolveAlias(name string) (*value.Value, error) {
	v, ok := p.anchors[name]
	if !ok {
		return nil, fmt.Errorf("unknown-anchor: *%s", name)
	}
	return value.Ref(v), nil
}

// indentOf returns the indent of p.lines[idx] if it is deeper than
// parentIndent (meaning it opens a nested block), else parentIndent+1
// as a sentinel depth that matches nothing, signalling an empty block.
func indentOf(lines []line, idx, parentIndent int) int {
	if idx >= len(lines) || lines[idx].indent <= parentIndent {
		return parentIndent + 1
	}
	return lines[idx].indent
}

// stripAnchorOrAlias extracts a leading "&name " anchor or a complete
// "*name" alias from content, returning whichever applies plus the
// remaining text (empty when the whole content was an alias).
func stripAnchorOrAlias(content string) (anchor, alias, rest string) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "&") {
		fields := strings.SplitN(content[1:], " ", 2)
		anchor = fields[0]
		if len(fields) == 2 {
			rest = strings.TrimSpace(fields[1])
		}
		a2, al2, r2 := stripAnchorOrAlias(rest)
		if a2 != "" {
			anchor = a2
		}
		if al2 != "" {
			return anchor, al2, r2
		}
		return anchor, "", rest
	}
	if strings.HasPrefix(content, "*") {
		return "", strings.TrimSpace(content[1:]), ""
	}
	return "", "", content
}

// parseFlowOrScalar parses an inline flow collection ("[...]"/"{...}")
// or classifies a plain scalar.
func (p *parser) parseFlowOrScalar(raw string) *value.Value {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		return p.parseFlowSequence(raw[1 : len(raw)-1])
	}
	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		return p.parseFlowMapping(raw[1 : len(raw)-1])
	}
	return classifyScalar(raw)
}

func (p *parser) parseFlowSequence(inner string) *value.Value {
	arr := value.NewArray()
	for _, item := range splitFlowItems(inner) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		_, alias, rest := stripAnchorOrAlias(item)
		if alias != "" {
			if v, err := p.resolveAlias(alias); err == nil {
				value.ArrayPush(arr, v)
			} else {
				value.ArrayPush(arr, value.NewError(err.Error(), "unknown-anchor"))
			}
			continue
		}
		value.ArrayPush(arr, p.parseFlowOrScalar(rest))
	}
	return arr
}

func (p *parser) parseFlowMapping(inner string) *value.Value {
	obj := value.NewObject()
	for _, item := range splitFlowItems(inner) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, rest, ok := splitKeyValue(item)
		if !ok {
			continue
		}
		_, alias, rest2 := stripAnchorOrAlias(rest)
		if alias != "" {
			if v, err := p.resolveAlias(alias); err == nil {
				value.ObjectSet(obj, key, v)
			} else {
				value.ObjectSet(obj, key, value.NewError(err.Error(), "unknown-anchor"))
			}
			continue
		}
		value.ObjectSet(obj, key, p.parseFlowOrScalar(rest2))
	}
	return obj
}

// splitFlowItems splits a flow collection's interior at top-level
// commas, respecting quotes and nested bracket depth.
func splitFlowItems(s string) []string {
	var items []string
	depth := 0
	inSingle, inDouble := false, false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
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
			if !inSingle && !inDouble {
				depth--
			}
		case ',':
			if !inSingle && !inDouble && depth == 0 {
				items = append(items, s[start:i])
				start = i + 1
			}
		}
	}
	if start < len(s) {
		items = append(items, s[start:])
	}
	return items
}
