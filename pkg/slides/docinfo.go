package slides

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v2"
)

// fieldMarkdown renders front matter values. Values are inline fragments,
// so block constructs other than a paragraph are not expected.
var fieldMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
)

// docinfoFields turns parsed front matter into docinfo fields. Values that
// are neither scalars nor lists of scalars are dropped with a warning.
func (s *state) docinfoFields(items yaml.MapSlice) []DocinfoField {
	fields := make([]DocinfoField, 0, len(items))
	for _, item := range items {
		name := normalizeFieldName(fmt.Sprint(item.Key))
		if name == "" {
			continue
		}
		text, ok := frontMatterText(item.Value)
		if !ok {
			s.addWarning(WarningDroppedMetadata, KindDocinfo.String(), 1,
				fmt.Sprintf("front matter field %q is not a scalar or list of scalars", name))
			continue
		}
		fields = append(fields, DocinfoField{
			Name: name,
			Text: text,
			HTML: renderFieldHTML(text),
		})
	}
	return fields
}

// insertDocinfo puts the front matter first in doc. It is invisible, so it
// never counts as the first element of the document or of a section.
func (s *state) insertDocinfo(doc ast.Node, items yaml.MapSlice) {
	if len(items) == 0 {
		return
	}
	fields := s.docinfoFields(items)
	if len(fields) == 0 {
		return
	}
	s.docinfo = fields
	info := NewDocinfo(fields)
	if first := doc.FirstChild(); first != nil {
		doc.InsertBefore(doc, first, info)
	} else {
		doc.AppendChild(doc, info)
	}
}

// field returns the rendered value of the named docinfo field.
func (s *state) field(name string) string {
	for _, f := range s.docinfo {
		if f.Name == name {
			return f.HTML
		}
	}
	return ""
}

func normalizeFieldName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

func frontMatterText(v interface{}) (string, bool) {
	switch value := v.(type) {
	case nil:
		return "", true
	case string:
		return value, true
	case time.Time:
		return value.Format("2006-01-02"), true
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(value), true
	case []interface{}:
		parts := make([]string, 0, len(value))
		for _, elem := range value {
			text, ok := frontMatterText(elem)
			if !ok {
				return "", false
			}
			if _, nested := elem.([]interface{}); nested {
				return "", false
			}
			parts = append(parts, text)
		}
		return strings.Join(parts, ", "), true
	}
	return "", false
}

// renderFieldHTML renders a value as a single line of inline HTML.
func renderFieldHTML(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := fieldMarkdown.Convert([]byte(text), &buf); err != nil {
		return string(bytes.TrimSpace(buf.Bytes()))
	}
	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return strings.ReplaceAll(out, "\n", " ")
}
