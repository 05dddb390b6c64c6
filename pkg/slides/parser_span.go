package slides

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// spanParser reads [text]{.class} spans. The "small" and "vspace" classes
// get special rendering; any other class is passed through.
type spanParser struct{}

// NewSpanParser returns a parser.InlineParser for bracketed spans.
func NewSpanParser() parser.InlineParser {
	return &spanParser{}
}

func (p *spanParser) Trigger() []byte {
	return []byte{'['}
}

func (p *spanParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	if len(line) < 4 || line[0] != '[' {
		return nil
	}

	closing := findClosingBracket(line)
	if closing <= 0 || closing+1 >= len(line) || line[closing+1] != '{' {
		return nil
	}

	raw, end, ok := readAttributeBlock(line, closing+1)
	if !ok {
		return nil
	}
	list := parseAttributeList(raw)
	if len(list.Classes) == 0 {
		return nil
	}

	span := NewSpan(list.Classes)
	if list.ID != "" {
		span.SetAttributeString("id", []byte(list.ID))
	}
	if list.Attrs.Len() > 0 {
		AttachHTMLAttributes(span, list.Attrs)
	}
	if closing > 1 {
		span.AppendChild(span, ast.NewTextSegment(text.NewSegment(segment.Start+1, segment.Start+closing)))
	}
	block.Advance(end)
	return span
}

func findClosingBracket(line []byte) int {
	depth := 0
	for idx := 0; idx < len(line); idx++ {
		ch := line[idx]
		if ch == '\n' || ch == '\r' {
			break
		}
		if ch == '\\' {
			if idx+1 < len(line) {
				idx++
			}
			continue
		}
		switch ch {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return idx
			}
			if depth < 0 {
				return -1
			}
		}
	}
	return -1
}
