package slides

import (
	"html"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// HTMLAttributes holds extra rendering attributes for a node. Keys keep their
// insertion order and each key collects its values in the order they were
// attached. A key with no non-empty value renders as a bare attribute.
type HTMLAttributes struct {
	keys   []string
	values map[string][]string
}

// NewHTMLAttributes returns an empty attribute set.
func NewHTMLAttributes() *HTMLAttributes {
	return &HTMLAttributes{values: make(map[string][]string)}
}

// Add appends value to key. An empty value only records the key.
func (a *HTMLAttributes) Add(key, value string) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
		a.values[key] = nil
	}
	if value != "" {
		a.values[key] = append(a.values[key], value)
	}
}

// Merge appends every key and value of other.
func (a *HTMLAttributes) Merge(other *HTMLAttributes) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		if len(other.values[k]) == 0 {
			a.Add(k, "")
			continue
		}
		for _, v := range other.values[k] {
			a.Add(k, v)
		}
	}
}

// Keys returns the attribute names in insertion order.
func (a *HTMLAttributes) Keys() []string {
	return append([]string(nil), a.keys...)
}

// Values returns the values recorded for key.
func (a *HTMLAttributes) Values(key string) []string {
	if a == nil {
		return nil
	}
	return a.values[key]
}

// Has reports whether key was recorded.
func (a *HTMLAttributes) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Len returns the number of distinct keys.
func (a *HTMLAttributes) Len() int {
	return len(a.keys)
}

// String serializes the attributes as they appear inside an opening tag,
// with a leading space: ` data-foo="1 2" data-bar`. Keys listed in skip are
// left out.
func (a *HTMLAttributes) String(skip ...string) string {
	var sb strings.Builder
	for _, k := range a.keys {
		if containsString(skip, k) {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(k)
		if vals := a.values[k]; len(vals) > 0 {
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(strings.Join(vals, " ")))
			sb.WriteByte('"')
		}
	}
	return sb.String()
}

// htmlAttributesKey is the goldmark node attribute holding *HTMLAttributes.
// It never passes goldmark's attribute filters, so goldmark renderers skip it.
var htmlAttributesKey = []byte("_mdreveal-html-attributes")

// GetHTMLAttributes returns the extra attributes of n, or nil if none were
// ever attached.
func GetHTMLAttributes(n ast.Node) *HTMLAttributes {
	v, ok := n.Attribute(htmlAttributesKey)
	if !ok {
		return nil
	}
	attrs, _ := v.(*HTMLAttributes)
	return attrs
}

// AttachHTMLAttributes merges attrs into the extra attributes of n,
// creating them on first use.
func AttachHTMLAttributes(n ast.Node, attrs *HTMLAttributes) {
	current := GetHTMLAttributes(n)
	if current == nil {
		current = NewHTMLAttributes()
		n.SetAttribute(htmlAttributesKey, current)
	}
	current.Merge(attrs)
}

// attributeList is the parsed form of a {.class #id key=value key} block.
type attributeList struct {
	Classes []string
	ID      string
	Attrs   *HTMLAttributes
}

// readAttributeBlock returns the text between the brace at start and its
// matching close brace, and the index just past the close brace.
func readAttributeBlock(line []byte, start int) (string, int, bool) {
	if start < 0 || start >= len(line) || line[start] != '{' {
		return "", 0, false
	}

	var quote byte
	escaped := false
	for idx := start + 1; idx < len(line); idx++ {
		ch := line[idx]
		if quote != 0 {
			if escaped {
				escaped = false
				continue
			}
			if ch == '\\' {
				escaped = true
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}
		if ch == '"' || ch == '\'' {
			quote = ch
			continue
		}
		if ch == '}' {
			return string(line[start+1 : idx]), idx + 1, true
		}
		if ch == '\n' || ch == '\r' {
			return "", 0, false
		}
	}

	return "", 0, false
}

// parseAttributeList parses the inside of an attribute block. Bare words
// become presence-only attributes.
func parseAttributeList(raw string) attributeList {
	list := attributeList{Attrs: NewHTMLAttributes()}

	for idx := 0; idx < len(raw); {
		for idx < len(raw) && isAttrSpace(raw[idx]) {
			idx++
		}
		if idx >= len(raw) {
			break
		}

		if raw[idx] == '.' || raw[idx] == '#' {
			marker := raw[idx]
			idx++
			start := idx
			for idx < len(raw) && !isAttrSpace(raw[idx]) {
				idx++
			}
			name := raw[start:idx]
			if name == "" {
				continue
			}
			if marker == '.' {
				list.Classes = append(list.Classes, name)
			} else {
				list.ID = name
			}
			continue
		}

		keyStart := idx
		for idx < len(raw) && !isAttrSpace(raw[idx]) && raw[idx] != '=' {
			idx++
		}
		key := raw[keyStart:idx]
		if key == "" {
			idx++
			continue
		}

		if idx >= len(raw) || raw[idx] != '=' {
			list.Attrs.Add(key, "")
			continue
		}

		idx++
		if idx >= len(raw) || isAttrSpace(raw[idx]) {
			list.Attrs.Add(key, "")
			continue
		}

		if raw[idx] == '"' || raw[idx] == '\'' {
			quote := raw[idx]
			idx++
			var value strings.Builder
			for idx < len(raw) {
				ch := raw[idx]
				if ch == '\\' && idx+1 < len(raw) {
					next := raw[idx+1]
					if next == quote || next == '\\' {
						value.WriteByte(next)
						idx += 2
						continue
					}
				}
				if ch == quote {
					idx++
					break
				}
				value.WriteByte(ch)
				idx++
			}
			list.Attrs.Add(key, value.String())
			continue
		}

		valueStart := idx
		for idx < len(raw) && !isAttrSpace(raw[idx]) {
			idx++
		}
		list.Attrs.Add(key, raw[valueStart:idx])
	}

	return list
}

func isAttrSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
