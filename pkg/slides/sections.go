package slides

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Sectionize turns the top-level headings of doc into nested Section nodes.
// Each heading becomes the Title of its section, and every following block
// moves into the innermost open section. A heading closes all open sections
// of the same or a deeper level.
//
// When the whole document ends up as a single section, that section is
// dissolved: its title becomes the document title and its children move up
// one level. The section's classes and extra attributes have nowhere to go
// then; they are dropped and reported in the returned warnings.
func Sectionize(doc ast.Node, source []byte) []Warning {
	var stack []*Section

	for current := doc.FirstChild(); current != nil; {
		next := current.NextSibling()

		heading, ok := current.(*ast.Heading)
		if !ok {
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.AppendChild(top, current)
			}
			current = next
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].Level >= heading.Level {
			stack = stack[:len(stack)-1]
		}

		section := sectionFromHeading(heading, source)
		if len(stack) == 0 {
			doc.ReplaceChild(doc, heading, section)
		} else {
			doc.RemoveChild(doc, heading)
			top := stack[len(stack)-1]
			top.AppendChild(top, section)
		}
		stack = append(stack, section)
		current = next
	}

	return promoteDocumentTitle(doc)
}

func sectionFromHeading(heading *ast.Heading, source []byte) *Section {
	section := NewSection(heading.Level)
	if heading.Lines().Len() > 0 {
		setLine(section, lineAt(source, heading.Lines().At(0).Start))
	}

	extra := NewHTMLAttributes()
	for _, attr := range heading.Attributes() {
		value := attributeValueString(attr.Value)
		switch string(attr.Name) {
		case "id":
			section.ID = value
		case "class":
			section.Classes = append(section.Classes, strings.Fields(value)...)
		default:
			extra.Add(string(attr.Name), value)
		}
	}
	if extra.Len() > 0 {
		AttachHTMLAttributes(section, extra)
	}

	title := NewTitle()
	for c := heading.FirstChild(); c != nil; {
		next := c.NextSibling()
		title.AppendChild(title, c)
		c = next
	}
	title.SetLines(heading.Lines())
	section.AppendChild(section, title)
	return section
}

// promoteDocumentTitle lifts a lone top-level section into the document:
// the first visible child must be a Section and nothing may follow it.
func promoteDocumentTitle(doc ast.Node) []Warning {
	candidate := firstVisibleChild(doc)
	if candidate == nil || candidate.NextSibling() != nil {
		return nil
	}
	section, ok := candidate.(*Section)
	if !ok {
		return nil
	}

	var warnings []Warning
	if extra := GetHTMLAttributes(section); len(section.Classes) > 0 || extra != nil {
		var dropped []string
		if len(section.Classes) > 0 {
			dropped = append(dropped, "class="+strings.Join(section.Classes, " "))
		}
		if extra != nil {
			dropped = append(dropped, extra.Keys()...)
		}
		warnings = append(warnings, Warning{
			Type:     WarningDroppedAttributes,
			NodeType: KindSection.String(),
			Line:     nodeLine(section),
			Message:  "attributes of the document title are dropped: " + strings.Join(dropped, ", "),
		})
	}

	for c := section.FirstChild(); c != nil; {
		next := c.NextSibling()
		doc.InsertBefore(doc, section, c)
		c = next
	}
	doc.RemoveChild(doc, section)
	return warnings
}

func firstVisibleChild(n ast.Node) ast.Node {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if !isInvisible(c) {
			return c
		}
	}
	return nil
}

// attributeValueString renders a goldmark attribute value as text.
func attributeValueString(v interface{}) string {
	switch value := v.(type) {
	case []byte:
		return string(value)
	case string:
		return value
	case nil:
		return ""
	default:
		return fmt.Sprint(value)
	}
}
