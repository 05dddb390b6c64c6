package slides

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
)

var (
	KindSection       = ast.NewNodeKind("Section")
	KindTitle         = ast.NewNodeKind("Title")
	KindDiv           = ast.NewNodeKind("Div")
	KindColumn        = ast.NewNodeKind("Column")
	KindColumns       = ast.NewNodeKind("Columns")
	KindTopic         = ast.NewNodeKind("Topic")
	KindSidebar       = ast.NewNodeKind("Sidebar")
	KindAdmonition    = ast.NewNodeKind("Admonition")
	KindPendingMarker = ast.NewNodeKind("PendingMarker")
	KindSystemMessage = ast.NewNodeKind("SystemMessage")
	KindDocinfo       = ast.NewNodeKind("Docinfo")
	KindPlot          = ast.NewNodeKind("Plot")
	KindSpan          = ast.NewNodeKind("Span")
)

// Section groups a title and the content up to the next heading of the same
// or a higher level.
type Section struct {
	ast.BaseBlock
	Level   int
	ID      string
	Classes []string

	// merged is set when the section reuses the slide opened by its parent.
	merged bool
}

// NewSection returns an empty Section at the given heading level.
func NewSection(level int) *Section {
	return &Section{Level: level}
}

func (n *Section) Kind() ast.NodeKind { return KindSection }

func (n *Section) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Level":   strconv.Itoa(n.Level),
		"ID":      n.ID,
		"Classes": strings.Join(n.Classes, ","),
	}, nil)
}

// ClassList implements classed.
func (n *Section) ClassList() []string { return n.Classes }

// Title is the heading of a section, the document, or a titled container.
type Title struct {
	ast.BaseBlock
}

func NewTitle() *Title {
	return &Title{}
}

func (n *Title) Kind() ast.NodeKind { return KindTitle }

func (n *Title) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// Container is a block produced by a fenced directive. The directive name
// decides its kind.
type Container struct {
	ast.BaseBlock
	kind     ast.NodeKind
	Name     string
	Argument string
	Classes  []string
}

// NewContainer returns a container of the given kind.
func NewContainer(kind ast.NodeKind, name string, classes ...string) *Container {
	return &Container{kind: kind, Name: name, Classes: classes}
}

func (n *Container) Kind() ast.NodeKind { return n.kind }

func (n *Container) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name":     n.Name,
		"Argument": n.Argument,
		"Classes":  strings.Join(n.Classes, ","),
	}, nil)
}

// ClassList implements classed.
func (n *Container) ClassList() []string { return n.Classes }

// PendingMarker holds attributes waiting to be attached to the next element.
type PendingMarker struct {
	ast.BaseBlock
	Attrs *HTMLAttributes
	Raw   string
	Line  int
}

func NewPendingMarker(attrs *HTMLAttributes, raw string, line int) *PendingMarker {
	return &PendingMarker{Attrs: attrs, Raw: raw, Line: line}
}

func (n *PendingMarker) Kind() ast.NodeKind { return KindPendingMarker }

func (n *PendingMarker) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Raw":  n.Raw,
		"Line": strconv.Itoa(n.Line),
	}, nil)
}

// SystemMessage is a visible diagnostic left in the output in place of a
// construct that could not be processed.
type SystemMessage struct {
	ast.BaseBlock
	Err     error
	Message string
	Raw     string
	Line    int
}

func NewSystemMessage(err error, message, raw string, line int) *SystemMessage {
	return &SystemMessage{Err: err, Message: message, Raw: raw, Line: line}
}

func (n *SystemMessage) Kind() ast.NodeKind { return KindSystemMessage }

func (n *SystemMessage) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Message": n.Message,
		"Line":    strconv.Itoa(n.Line),
	}, nil)
}

// DocinfoField is one front matter entry.
type DocinfoField struct {
	Name string
	// Text is the raw value as written in the front matter.
	Text string
	// HTML is the value rendered as an inline fragment.
	HTML string
}

// Docinfo carries the front matter fields. It renders nothing into the body.
type Docinfo struct {
	ast.BaseBlock
	Fields []DocinfoField
}

func NewDocinfo(fields []DocinfoField) *Docinfo {
	return &Docinfo{Fields: fields}
}

func (n *Docinfo) Kind() ast.NodeKind { return KindDocinfo }

func (n *Docinfo) Dump(source []byte, level int) {
	kv := make(map[string]string, len(n.Fields))
	for _, f := range n.Fields {
		kv[f.Name] = f.Text
	}
	ast.DumpHelper(n, source, level, kv, nil)
}

// Plot is a rendered plot image.
type Plot struct {
	ast.BaseBlock
	Src   string
	Alt   string
	Align string
}

func NewPlot(src, alt, align string) *Plot {
	return &Plot{Src: src, Alt: alt, Align: align}
}

func (n *Plot) Kind() ast.NodeKind { return KindPlot }

func (n *Plot) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Src":   n.Src,
		"Align": n.Align,
	}, nil)
}

// Span is an inline run of text with classes, written as [text]{.class}.
type Span struct {
	ast.BaseInline
	Classes []string
}

func NewSpan(classes []string) *Span {
	return &Span{Classes: classes}
}

func (n *Span) Kind() ast.NodeKind { return KindSpan }

func (n *Span) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Classes": strings.Join(n.Classes, ","),
	}, nil)
}

// ClassList implements classed.
func (n *Span) ClassList() []string { return n.Classes }

type classed interface {
	ClassList() []string
}

// isInvisible reports whether n produces no visible element. Attribute
// markers skip these when looking for a target.
func isInvisible(n ast.Node) bool {
	switch n.Kind() {
	case KindPendingMarker, KindDocinfo:
		return true
	case ast.KindHTMLBlock:
		return n.(*ast.HTMLBlock).HTMLBlockType == ast.HTMLBlockType2
	}
	return false
}

func isSystemMessage(n ast.Node) bool {
	return n.Kind() == KindSystemMessage
}
