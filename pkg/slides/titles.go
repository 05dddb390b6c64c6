package slides

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"
)

type titleContext int

const (
	titleTopic titleContext = iota
	titleSidebar
	titleAdmonition
	titleTable
	titleDocument
	titleSection
)

// titleContexts is checked in order; the first kind matching the title's
// parent decides how the title is rendered.
var titleContexts = []struct {
	kind    ast.NodeKind
	context titleContext
}{
	{KindTopic, titleTopic},
	{KindSidebar, titleSidebar},
	{KindAdmonition, titleAdmonition},
	{extast.KindTable, titleTable},
	{ast.KindDocument, titleDocument},
	{KindSection, titleSection},
}

var titleTags = map[titleContext][2]string{
	titleTopic:      {`<p class="topic-title first">`, "</p>\n"},
	titleSidebar:    {`<p class="sidebar-title">`, "</p>\n"},
	titleAdmonition: {`<p class="admonition-title">`, "</p>\n"},
	titleTable:      {"<caption>", "</caption>\n"},
	titleDocument:   {"<h2>", "</h2>\n"},
	titleSection:    {"<h2>", "</h2>\n"},
}

func classifyTitle(parent ast.Node) (titleContext, bool) {
	if parent == nil {
		return 0, false
	}
	for _, c := range titleContexts {
		if parent.Kind() == c.kind {
			return c.context, true
		}
	}
	return 0, false
}

// renderTitle writes a title in the form its parent calls for. The first
// document-level title is rendered into the buffer and then cut out again,
// so it ends up in Parts.Title instead of the body.
func (t *translator) renderTitle(_ util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	ctx, ok := classifyTitle(n.Parent())
	if !ok {
		kind := "nil"
		if n.Parent() != nil {
			kind = n.Parent().Kind().String()
		}
		return ast.WalkStop, fmt.Errorf("title inside %s is not supported", kind)
	}
	tags := titleTags[ctx]
	capture := ctx == titleDocument && !t.titleCaptured

	if entering {
		if capture {
			t.docTitleStart = t.out.Checkpoint()
		}
		if ctx == titleSection {
			t.openSectionTitle(n.Parent().(*Section))
		} else {
			_, _ = t.out.WriteString(tags[0])
		}
		if capture {
			t.docTitleContent = t.out.Checkpoint()
		}
		return ast.WalkContinue, nil
	}

	if capture && t.docTitleStart >= 0 {
		t.title = t.out.Since(t.docTitleContent)
		t.out.Truncate(t.docTitleStart)
		t.docTitleStart, t.docTitleContent = -1, -1
		t.titleCaptured = true
		return ast.WalkContinue, nil
	}
	_, _ = t.out.WriteString(tags[1])
	return ast.WalkContinue, nil
}

// openSectionTitle writes the heading of a section. A section sharing its
// parent's slide has no <section> tag of its own, so its id goes here.
func (t *translator) openSectionTitle(s *Section) {
	if !s.merged || s.ID == "" {
		_, _ = t.out.WriteString("<h2>")
		return
	}
	_, _ = t.out.WriteString("<h2")
	t.writeAttribute("id", s.ID)
	_ = t.out.WriteByte('>')
}
