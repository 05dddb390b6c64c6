package slides

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// markerParser reads attribute markers written alone on a line:
//
//	{: data-background-color=#fff data-autoslide=2000 .dark}
//
// The marker stays in the tree until ResolveMarkers attaches it to the next
// element.
type markerParser struct{}

// NewMarkerParser returns a parser.BlockParser for attribute markers.
func NewMarkerParser() parser.BlockParser {
	return &markerParser{}
}

func (p *markerParser) Trigger() []byte {
	return []byte{'{'}
}

func (p *markerParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	content := strings.TrimSpace(string(line))
	if !strings.HasPrefix(content, "{:") {
		return nil, parser.NoChildren
	}

	raw, end, ok := readAttributeBlock([]byte(content), 0)
	if !ok || end != len(content) {
		return nil, parser.NoChildren
	}

	list := parseAttributeList(strings.TrimPrefix(raw, ":"))
	attrs := NewHTMLAttributes()
	for _, class := range list.Classes {
		attrs.Add("class", class)
	}
	if list.ID != "" {
		attrs.Add("id", list.ID)
	}
	attrs.Merge(list.Attrs)

	node := NewPendingMarker(attrs, content, lineAt(reader.Source(), segment.Start))
	reader.Advance(segment.Len() - 1)
	return node, parser.NoChildren
}

func (p *markerParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	return parser.Close
}

func (p *markerParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *markerParser) CanInterruptParagraph() bool {
	return true
}

func (p *markerParser) CanAcceptIndentedLine() bool {
	return false
}
