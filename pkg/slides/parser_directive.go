package slides

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// admonitionTitles maps the specific admonition directives to their default
// titles. The generic "admonition" directive takes its title from the argument.
var admonitionTitles = map[string]string{
	"attention": "Attention!",
	"caution":   "Caution!",
	"danger":    "!DANGER!",
	"error":     "Error",
	"hint":      "Hint",
	"important": "Important",
	"note":      "Note",
	"tip":       "Tip",
	"warning":   "Warning",
}

// directiveParser opens a container for a fenced directive:
//
//	::: name argument {.class #id key=value}
//	content
//	:::
//
// A bare ":::" line closes the innermost open directive.
type directiveParser struct{}

// NewDirectiveParser returns a parser.BlockParser for fenced directives.
func NewDirectiveParser() parser.BlockParser {
	return &directiveParser{}
}

func (p *directiveParser) Trigger() []byte {
	return []byte{':'}
}

func (p *directiveParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	content := trimLineEnding(string(line))
	indent := len(content) - len(strings.TrimLeft(content, " \t"))
	trimmed := content[indent:]

	fenceLength := countLeadingChar(trimmed, ':')
	if fenceLength < 3 {
		return nil, parser.NoChildren
	}
	rest := trimmed[fenceLength:]
	if strings.TrimSpace(rest) == "" {
		// a closing fence never opens anything
		return nil, parser.NoChildren
	}

	restStart := segment.Start + indent + fenceLength
	d, ok := parseDirectiveLine([]byte(rest))
	if !ok {
		return nil, parser.NoChildren
	}

	node := newDirectiveNode(d)
	if d.argument != "" {
		argSegment := text.NewSegment(restStart+d.argStart, restStart+d.argEnd)
		attachArgument(node, d, argSegment)
	}
	setLine(node, lineAt(reader.Source(), segment.Start))

	reader.Advance(len(content))
	return node, parser.HasChildren
}

func (p *directiveParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if isClosingFence(line) && isInnermostDirective(node, pc) {
		newline := len(line) - len(trimLineEnding(string(line)))
		reader.Advance(segment.Stop - segment.Start - newline + segment.Padding)
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (p *directiveParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *directiveParser) CanInterruptParagraph() bool {
	return true
}

func (p *directiveParser) CanAcceptIndentedLine() bool {
	return false
}

// directiveLine is the parsed opening line of a directive.
type directiveLine struct {
	name     string
	argument string
	argStart int
	argEnd   int
	attrs    attributeList
}

// parseDirectiveLine splits "name argument {attrs}" into its parts. The
// attribute block, when present, must end the line.
func parseDirectiveLine(rest []byte) (directiveLine, bool) {
	var d directiveLine
	s := string(rest)

	attrStart := -1
	if end := strings.LastIndexByte(s, '}'); end >= 0 && strings.TrimSpace(s[end+1:]) == "" {
		for i := strings.LastIndexByte(s[:end], '{'); i >= 0; i = strings.LastIndexByte(s[:i], '{') {
			raw, after, ok := readAttributeBlock(rest, i)
			if ok && after == end+1 {
				d.attrs = parseAttributeList(raw)
				attrStart = i
				break
			}
		}
	}
	if attrStart < 0 {
		d.attrs = attributeList{Attrs: NewHTMLAttributes()}
		attrStart = len(s)
	}

	head := s[:attrStart]
	lead := len(head) - len(strings.TrimLeft(head, " \t"))
	head = head[lead:]
	if head == "" {
		if attrStart == len(s) {
			return d, false
		}
		d.name = "div"
		return d, true
	}

	nameEnd := strings.IndexAny(head, " \t")
	if nameEnd < 0 {
		nameEnd = len(head)
	}
	d.name = strings.ToLower(head[:nameEnd])

	arg := head[nameEnd:]
	argLead := len(arg) - len(strings.TrimLeft(arg, " \t"))
	d.argument = strings.TrimSpace(arg)
	if d.argument != "" {
		d.argStart = lead + nameEnd + argLead
		d.argEnd = d.argStart + len(d.argument)
	}
	return d, true
}

func newDirectiveNode(d directiveLine) *Container {
	var node *Container
	switch {
	case d.name == "div":
		node = NewContainer(KindDiv, d.name)
	case d.name == "column":
		node = NewContainer(KindColumn, d.name, "column")
		node.Argument = strings.ToLower(d.argument)
	case d.name == "columns":
		node = NewContainer(KindColumns, d.name, "columns")
	case d.name == "topic":
		node = NewContainer(KindTopic, d.name, "topic")
	case d.name == "sidebar":
		node = NewContainer(KindSidebar, d.name, "sidebar")
	case d.name == "table":
		node = NewContainer(KindDiv, d.name)
	case d.name == "admonition":
		node = NewContainer(KindAdmonition, d.name, "admonition")
		if d.argument != "" {
			node.Classes = append(node.Classes, "admonition-"+slugify(d.argument))
		}
	case admonitionTitles[d.name] != "":
		node = NewContainer(KindAdmonition, d.name, "admonition", d.name)
		title := NewTitle()
		title.AppendChild(title, ast.NewString([]byte(admonitionTitles[d.name])))
		node.AppendChild(node, title)
	default:
		// unknown names behave like a div carrying the name as a class
		node = NewContainer(KindDiv, d.name, d.name)
	}

	node.Classes = append(node.Classes, d.attrs.Classes...)
	if d.attrs.ID != "" {
		node.SetAttributeString("id", []byte(d.attrs.ID))
	}
	if d.attrs.Attrs.Len() > 0 {
		AttachHTMLAttributes(node, d.attrs.Attrs)
	}
	return node
}

// attachArgument places the directive argument: a title for titled
// containers, a leading paragraph for the specific admonitions. Columns keep
// it as Argument only.
func attachArgument(node *Container, d directiveLine, seg text.Segment) {
	switch node.Kind() {
	case KindColumn:
		return
	case KindAdmonition:
		if d.name != "admonition" {
			para := ast.NewParagraph()
			para.Lines().Append(seg)
			node.AppendChild(node, para)
			return
		}
	case KindDiv:
		if d.name != "table" {
			return
		}
	}
	title := NewTitle()
	title.Lines().Append(seg)
	node.AppendChild(node, title)
}

func isClosingFence(line []byte) bool {
	trimmed := strings.TrimSpace(string(line))
	fenceLength := countLeadingChar(trimmed, ':')
	return fenceLength >= 3 && fenceLength == len(trimmed)
}

// isInnermostDirective reports whether a closing fence belongs to node: no
// directive or code block may be open inside it.
func isInnermostDirective(node ast.Node, pc parser.Context) bool {
	opened := pc.OpenedBlocks()
	found := false
	for _, b := range opened {
		if b.Node == node {
			found = true
			continue
		}
		if !found {
			continue
		}
		switch b.Node.(type) {
		case *Container, *ast.FencedCodeBlock, *ast.CodeBlock:
			return false
		}
	}
	return found
}

func trimLineEnding(line string) string {
	return strings.TrimRight(line, "\r\n")
}

func countLeadingChar(value string, target byte) int {
	count := 0
	for count < len(value) && value[count] == target {
		count++
	}
	return count
}

// slugify lowercases s and joins its words with dashes.
func slugify(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			dash = false
			sb.WriteRune(r)
		default:
			dash = true
		}
	}
	return sb.String()
}

var lineAttributeKey = []byte("_mdreveal-line")

func setLine(n ast.Node, line int) {
	n.SetAttribute(lineAttributeKey, line)
}

// nodeLine returns the 1-based source line recorded for n, or 0.
func nodeLine(n ast.Node) int {
	if v, ok := n.Attribute(lineAttributeKey); ok {
		if line, ok := v.(int); ok {
			return line
		}
	}
	return 0
}

// lineAt returns the 1-based line number of offset in source.
func lineAt(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	line := 1
	for _, b := range source[:offset] {
		if b == '\n' {
			line++
		}
	}
	return line
}
