package slides

import (
	"github.com/yuin/goldmark/ast"
)

const noTargetMessage = "No suitable element following attribute marker"

// ResolveMarkers attaches the attributes of every pending marker in doc to
// the element that follows it, then removes the marker. Markers are handled
// in document order.
//
// The target is the first following sibling that is not invisible, a system
// message or the document title. When a marker is the last visible thing at its level, the
// search continues after its parent, one level up at a time. A marker with no
// target at all is replaced by a system message and reported as a warning.
//
// Running ResolveMarkers on a tree without markers changes nothing.
func ResolveMarkers(doc ast.Node) []Warning {
	var markers []*PendingMarker
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if m, ok := n.(*PendingMarker); ok && entering {
			markers = append(markers, m)
		}
		return ast.WalkContinue, nil
	})

	var warnings []Warning
	for _, m := range markers {
		parent := m.Parent()
		if parent == nil {
			continue
		}

		if target := findMarkerTarget(m); target != nil {
			AttachHTMLAttributes(attributeTarget(target), m.Attrs)
			parent.RemoveChild(parent, m)
			continue
		}

		parent.ReplaceChild(parent, m, NewSystemMessage(ErrNoTargetElement, noTargetMessage, m.Raw, m.Line))
		warnings = append(warnings, Warning{
			Type:     WarningNoTargetElement,
			NodeType: KindPendingMarker.String(),
			Line:     m.Line,
			Message:  noTargetMessage + ": " + m.Raw,
		})
	}
	return warnings
}

func findMarkerTarget(marker ast.Node) ast.Node {
	child := marker
	for parent := marker.Parent(); parent != nil; child, parent = parent, parent.Parent() {
		for sib := child.NextSibling(); sib != nil; sib = sib.NextSibling() {
			// The document title leaves the body, so it cannot carry attributes.
			if isInvisible(sib) || isSystemMessage(sib) || sib.Kind() == KindTitle {
				continue
			}
			return sib
		}
	}
	return nil
}

// attributeTarget returns n when the slide renderer writes extra attributes
// for its kind. Any other node is wrapped in a div that takes them.
func attributeTarget(n ast.Node) ast.Node {
	if rendersExtraAttributes(n) {
		return n
	}
	wrapper := NewContainer(KindDiv, "div")
	parent := n.Parent()
	parent.ReplaceChild(parent, n, wrapper)
	wrapper.AppendChild(wrapper, n)
	return wrapper
}

func rendersExtraAttributes(n ast.Node) bool {
	switch n.Kind() {
	case KindSection, KindDiv, KindColumn, KindColumns, KindTopic, KindSidebar, KindAdmonition, KindPlot,
		ast.KindParagraph, ast.KindList, ast.KindListItem, ast.KindBlockquote, ast.KindThematicBreak, ast.KindHeading:
		return true
	}
	return false
}
