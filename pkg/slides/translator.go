package slides

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// internalAttributePrefix marks goldmark node attributes used for
// bookkeeping. They are never written to the output.
const internalAttributePrefix = "_mdreveal-"

// headMetaFields are the front matter fields also exported as <meta> tags.
var headMetaFields = map[string]bool{
	"author":      true,
	"copyright":   true,
	"description": true,
	"keywords":    true,
}

// translator renders the slide tree. It overrides goldmark for section,
// title and container nodes and for the blocks that can carry extra
// attributes; everything else falls through to goldmark's HTML renderer.
//
// All state lives in the translator, which is created per conversion.
type translator struct {
	s   *state
	out *outputBuffer

	// depth is the section nesting level during the walk.
	depth int
	// subsectionOpen is set once the current top-level section has opened
	// its first sub-slide.
	subsectionOpen bool
	slides         int

	// docTitleStart is the buffer position before the document title's open
	// tag, docTitleContent the position after it. Both are -1 when no
	// document title is being captured.
	docTitleStart   int
	docTitleContent int
	titleCaptured   bool
	title           string

	meta     strings.Builder
	headMeta strings.Builder
}

func newTranslator(s *state, size int) *translator {
	return &translator{
		s:               s,
		out:             newOutputBuffer(size),
		docTitleStart:   -1,
		docTitleContent: -1,
	}
}

// RegisterFuncs implements renderer.NodeRenderer.
func (t *translator) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindDocument, t.renderDocument)
	reg.Register(KindSection, t.renderSection)
	reg.Register(KindTitle, t.renderTitle)
	for _, kind := range []ast.NodeKind{KindDiv, KindColumn, KindColumns, KindTopic, KindSidebar, KindAdmonition} {
		reg.Register(kind, t.renderContainer)
	}
	reg.Register(KindPendingMarker, t.renderNothing)
	reg.Register(KindSystemMessage, t.renderSystemMessage)
	reg.Register(KindDocinfo, t.renderDocinfo)
	reg.Register(KindPlot, t.renderPlot)
	reg.Register(KindSpan, t.renderSpan)

	reg.Register(ast.KindParagraph, t.renderParagraph)
	reg.Register(ast.KindHeading, t.renderHeading)
	reg.Register(ast.KindList, t.renderList)
	reg.Register(ast.KindListItem, t.renderListItem)
	reg.Register(ast.KindBlockquote, t.renderBlockquote)
	reg.Register(ast.KindThematicBreak, t.renderThematicBreak)
}

func (t *translator) renderDocument(_ util.BufWriter, _ []byte, _ ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering && t.depth != 0 {
		return ast.WalkStop, fmt.Errorf("%w: %d sections left open", ErrUnbalancedSectionNesting, t.depth)
	}
	return ast.WalkContinue, nil
}

func (t *translator) renderSection(_ util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Section)
	if entering {
		t.enterSection(n)
		return ast.WalkContinue, nil
	}
	if err := t.exitSection(n); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkContinue, nil
}

// enterSection opens the slide tags for n. A top-level section opens the
// outer group and its first inner slide together. The first child section
// reuses that inner slide when the parent has shown nothing but its title
// and the child carries no decorations of its own; otherwise the parent's
// slide is closed and a new one opened.
func (t *translator) enterSection(n *Section) {
	switch {
	case t.depth == 0:
		t.openSlide(n, true)
		t.openSlide(n, false)
		t.slides++
	case t.depth == 1 && !t.subsectionOpen:
		t.subsectionOpen = true
		if onlyTitleBefore(n) && !hasDecorations(n) {
			n.merged = true
		} else {
			t.closeSlide()
			t.openSlide(n, true)
			t.slides++
		}
	default:
		t.openSlide(n, true)
		t.slides++
	}
	t.depth++
}

func (t *translator) exitSection(n *Section) error {
	switch {
	case t.depth == 0:
		return fmt.Errorf("%w: exit of section %q at depth 0", ErrUnbalancedSectionNesting, n.ID)
	case t.depth == 1:
		if !t.subsectionOpen {
			t.closeSlide()
		}
		t.closeSlide()
		t.subsectionOpen = false
	default:
		t.closeSlide()
	}
	t.depth--
	return nil
}

func (t *translator) openSlide(n *Section, withID bool) {
	_, _ = t.out.WriteString("<section")
	t.writeAttributes(n, nil, withID)
	_, _ = t.out.WriteString(">\n")
	if t.s.config.Header {
		_, _ = t.out.WriteString(`<header class="section-header"></header>` + "\n")
	}
}

func (t *translator) closeSlide() {
	if t.s.config.Footer {
		_, _ = t.out.WriteString(`<footer class="section-footer"></footer>` + "\n")
	}
	_, _ = t.out.WriteString("</section>\n")
}

// onlyTitleBefore reports whether every sibling before n is a title or an
// invisible node.
func onlyTitleBefore(n ast.Node) bool {
	for c := n.PreviousSibling(); c != nil; c = c.PreviousSibling() {
		if c.Kind() != KindTitle && !isInvisible(c) {
			return false
		}
	}
	return true
}

func hasDecorations(n *Section) bool {
	return len(n.Classes) > 0 || GetHTMLAttributes(n) != nil
}

// writeAttributes writes the id, class and extra attributes of n inside an
// opening tag. base classes come first.
func (t *translator) writeAttributes(n ast.Node, base []string, withID bool) {
	classes := append([]string(nil), base...)
	if c, ok := n.(classed); ok {
		classes = append(classes, c.ClassList()...)
	} else if v, ok := n.AttributeString("class"); ok {
		classes = append(classes, strings.Fields(attributeValueString(v))...)
	}
	extra := GetHTMLAttributes(n)
	if extra != nil {
		classes = append(classes, extra.Values("class")...)
	}

	if withID {
		id := nodeID(n)
		if ids := extra.Values("id"); len(ids) > 0 {
			id = ids[len(ids)-1]
		}
		if id != "" {
			t.writeAttribute("id", id)
		}
	}
	if len(classes) > 0 {
		t.writeAttribute("class", joinClasses(classes))
	}
	for _, attr := range n.Attributes() {
		name := string(attr.Name)
		if name == "id" || name == "class" || strings.HasPrefix(name, internalAttributePrefix) {
			continue
		}
		t.writeAttribute(name, attributeValueString(attr.Value))
	}
	if extra != nil {
		_, _ = t.out.WriteString(extra.String("class", "id"))
	}
}

func (t *translator) writeAttribute(name, value string) {
	_ = t.out.WriteByte(' ')
	_, _ = t.out.WriteString(name)
	_, _ = t.out.WriteString(`="`)
	_, _ = t.out.Write(util.EscapeHTML([]byte(value)))
	_ = t.out.WriteByte('"')
}

func nodeID(n ast.Node) string {
	if s, ok := n.(*Section); ok {
		return s.ID
	}
	if v, ok := n.AttributeString("id"); ok {
		return attributeValueString(v)
	}
	return ""
}

// joinClasses joins class names, dropping duplicates.
func joinClasses(classes []string) string {
	seen := make(map[string]bool, len(classes))
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return strings.Join(out, " ")
}

func (t *translator) renderContainer(_ util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = t.out.WriteString("<div")
		t.writeAttributes(n, nil, true)
		_, _ = t.out.WriteString(">\n")
	} else {
		_, _ = t.out.WriteString("</div>\n")
	}
	return ast.WalkContinue, nil
}

func (t *translator) renderNothing(_ util.BufWriter, _ []byte, _ ast.Node, _ bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}

func (t *translator) renderSystemMessage(_ util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*SystemMessage)
	_, _ = t.out.WriteString(`<div class="system-message">` + "\n")
	_, _ = t.out.WriteString(`<p class="system-message-title">System Message: ERROR`)
	if n.Line > 0 {
		_, _ = fmt.Fprintf(t.out, " (line %d)", n.Line)
	}
	_, _ = t.out.WriteString("</p>\n<p>")
	_, _ = t.out.Write(util.EscapeHTML([]byte(n.Message)))
	_, _ = t.out.WriteString("</p>\n")
	if n.Raw != "" {
		_, _ = t.out.WriteString(`<pre class="literal-block">`)
		_, _ = t.out.Write(util.EscapeHTML([]byte(n.Raw)))
		_, _ = t.out.WriteString("</pre>\n")
	}
	_, _ = t.out.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

// renderDocinfo writes the front matter into the metadata blob. Nothing
// goes into the body.
func (t *translator) renderDocinfo(_ util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Docinfo)
	for _, f := range n.Fields {
		t.meta.WriteString(f.Name)
		t.meta.WriteString(" = ")
		t.meta.WriteString(f.HTML)
		t.meta.WriteByte('\n')
		if headMetaFields[f.Name] {
			fmt.Fprintf(&t.headMeta, `<meta name="%s" content="%s">`+"\n", f.Name, util.EscapeHTML([]byte(f.Text)))
		}
	}
	return ast.WalkSkipChildren, nil
}

func (t *translator) renderPlot(_ util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Plot)
	_, _ = t.out.WriteString("<div")
	t.writeAttributes(n, []string{"plot", "r-stretch", "align-" + n.Align}, true)
	_, _ = t.out.WriteString(">\n")
	_, _ = t.out.WriteString(`<img src="`)
	_, _ = t.out.Write(util.EscapeHTML(util.URLEscape([]byte(n.Src), false)))
	_, _ = t.out.WriteString(`" alt="`)
	_, _ = t.out.Write(util.EscapeHTML([]byte(n.Alt)))
	_, _ = t.out.WriteString("\">\n</div>\n")
	return ast.WalkSkipChildren, nil
}

func (t *translator) renderSpan(_ util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Span)
	if containsString(n.Classes, "vspace") {
		if entering {
			t.renderVSpace(n, source)
		}
		return ast.WalkSkipChildren, nil
	}
	if entering {
		_, _ = t.out.WriteString("<span")
		t.writeAttributes(n, nil, true)
		_ = t.out.WriteByte('>')
	} else {
		_, _ = t.out.WriteString("</span>")
	}
	return ast.WalkContinue, nil
}

// renderVSpace writes as many line breaks as the span's text says.
func (t *translator) renderVSpace(n *Span, source []byte) {
	var raw string
	if txt, ok := n.FirstChild().(*ast.Text); ok {
		raw = strings.TrimSpace(string(txt.Segment.Value(source)))
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		t.s.addWarning(WarningUnknownRole, KindSpan.String(), 0, fmt.Sprintf("vspace expects a line count, got %q", raw))
		return
	}
	_, _ = t.out.WriteString(strings.Repeat("<br>", count))
}

func (t *translator) renderParagraph(_ util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = t.out.WriteString("<p")
		t.writeAttributes(n, nil, true)
		_ = t.out.WriteByte('>')
	} else {
		_, _ = t.out.WriteString("</p>\n")
	}
	return ast.WalkContinue, nil
}

func (t *translator) renderHeading(_ util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if entering {
		_, _ = fmt.Fprintf(t.out, "<h%d", n.Level)
		t.writeAttributes(n, nil, true)
		_ = t.out.WriteByte('>')
	} else {
		_, _ = fmt.Fprintf(t.out, "</h%d>\n", n.Level)
	}
	return ast.WalkContinue, nil
}

func (t *translator) renderList(_ util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	tag := "ul"
	if n.IsOrdered() {
		tag = "ol"
	}
	if entering {
		_ = t.out.WriteByte('<')
		_, _ = t.out.WriteString(tag)
		if n.IsOrdered() && n.Start != 1 {
			_, _ = fmt.Fprintf(t.out, ` start="%d"`, n.Start)
		}
		t.writeAttributes(n, nil, true)
		_, _ = t.out.WriteString(">\n")
	} else {
		_, _ = fmt.Fprintf(t.out, "</%s>\n", tag)
	}
	return ast.WalkContinue, nil
}

func (t *translator) renderListItem(_ util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = t.out.WriteString("<li")
		t.writeAttributes(n, nil, true)
		_ = t.out.WriteByte('>')
		if fc := n.FirstChild(); fc != nil {
			if _, ok := fc.(*ast.TextBlock); !ok {
				_ = t.out.WriteByte('\n')
			}
		}
	} else {
		_, _ = t.out.WriteString("</li>\n")
	}
	return ast.WalkContinue, nil
}

func (t *translator) renderBlockquote(_ util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = t.out.WriteString("<blockquote")
		t.writeAttributes(n, nil, true)
		_, _ = t.out.WriteString(">\n")
	} else {
		_, _ = t.out.WriteString("</blockquote>\n")
	}
	return ast.WalkContinue, nil
}

func (t *translator) renderThematicBreak(_ util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = t.out.WriteString("<hr")
		t.writeAttributes(n, nil, true)
		_, _ = t.out.WriteString(">\n")
	}
	return ast.WalkContinue, nil
}
