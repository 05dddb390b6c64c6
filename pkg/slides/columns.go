package slides

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

// groupColumns checks every column directive and wraps each run of adjacent
// columns in a Columns container. Columns already inside an explicit
// "::: columns" are left alone.
func (s *state) groupColumns(doc ast.Node) {
	var columns []*Container
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == KindColumn {
			columns = append(columns, n.(*Container))
		}
		return ast.WalkContinue, nil
	})

	for _, col := range columns {
		switch col.Argument {
		case "left", "right":
			col.Classes = append(col.Classes, "column-"+col.Argument)
		default:
			msg := fmt.Sprintf("invalid argument for column directive: %q (expected left or right)", col.Argument)
			s.replaceWithError(col, ErrInvalidDirective, msg, "::: column "+col.Argument, WarningInvalidDirective)
		}
	}

	for _, col := range columns {
		parent := col.Parent()
		if parent == nil || parent.Kind() == KindColumns {
			continue
		}
		if prev := col.PreviousSibling(); prev != nil && prev.Kind() == KindColumn {
			// already pulled into a group by an earlier column
			continue
		}
		group := NewContainer(KindColumns, "columns", "columns")
		parent.InsertBefore(parent, col, group)
		for c := ast.Node(col); c != nil && c.Kind() == KindColumn; {
			next := c.NextSibling()
			group.AppendChild(group, c)
			c = next
		}
	}
}

// captionTables resolves "::: table Caption" directives: the GFM table inside
// takes the caption as its title and replaces the directive.
func (s *state) captionTables(doc ast.Node) {
	var directives []*Container
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if c, ok := n.(*Container); ok && entering && c.Name == "table" && c.Kind() == KindDiv {
			directives = append(directives, c)
		}
		return ast.WalkContinue, nil
	})

	for _, d := range directives {
		var table *extast.Table
		var title *Title
		for c := d.FirstChild(); c != nil; c = c.NextSibling() {
			switch v := c.(type) {
			case *Title:
				if title == nil {
					title = v
				}
			case *extast.Table:
				if table == nil {
					table = v
				}
			}
		}
		if table == nil {
			s.replaceWithError(d, ErrInvalidDirective, "table directive does not contain a table", "::: table", WarningInvalidDirective)
			continue
		}

		if title != nil {
			table.InsertBefore(table, table.FirstChild(), title)
		}
		if len(d.Classes) > 0 {
			table.SetAttributeString("class", []byte(joinClasses(d.Classes)))
		}
		if id, ok := d.AttributeString("id"); ok {
			table.SetAttributeString("id", id)
		}
		// goldmark renders the table, so extra attributes become plain ones
		if attrs := GetHTMLAttributes(d); attrs != nil {
			for _, key := range attrs.Keys() {
				table.SetAttributeString(key, []byte(strings.Join(attrs.Values(key), " ")))
			}
		}

		parent := d.Parent()
		for c := d.FirstChild(); c != nil; {
			next := c.NextSibling()
			parent.InsertBefore(parent, d, c)
			c = next
		}
		parent.RemoveChild(parent, d)
	}
}

// replaceWithError swaps n for a visible system message and records a warning.
func (s *state) replaceWithError(n ast.Node, err error, message, raw string, warnType WarningType) {
	line := nodeLine(n)
	msg := NewSystemMessage(err, message, raw, line)
	if parent := n.Parent(); parent != nil {
		parent.ReplaceChild(parent, n, msg)
	}
	s.addWarning(warnType, n.Kind().String(), line, message)
}
