package memdom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/miniframe/pkg/dom"
)

// Render writes the HTML serialization of n to w.
func Render(w io.Writer, n dom.Node) error {
	hn := Unwrap(n)
	if hn == nil {
		return nil
	}
	return html.Render(w, hn)
}

// OuterHTML returns the HTML serialization of n.
func OuterHTML(n dom.Node) string {
	var buf bytes.Buffer
	_ = Render(&buf, n)
	return buf.String()
}

// InnerHTML returns the HTML serialization of the children of el.
func InnerHTML(el dom.Element) string {
	var buf bytes.Buffer
	for _, c := range el.ChildNodes() {
		_ = Render(&buf, c)
	}
	return buf.String()
}

// DocumentHTML returns the serialization of the whole host page.
func (d *Document) DocumentHTML() string {
	var buf bytes.Buffer
	_ = html.Render(&buf, d.root)
	return buf.String()
}

// ElementsByTag returns the descendants of root with the given tag, in
// document order. root itself is not included.
func ElementsByTag(root dom.Element, tag string) []dom.Element {
	return Find(root, func(el dom.Element) bool { return el.Tag() == tag })
}

// Find returns the descendants of root matching fn, in document order.
func Find(root dom.Element, fn func(dom.Element) bool) []dom.Element {
	var out []dom.Element
	var visit func(dom.Element)
	visit = func(el dom.Element) {
		for _, c := range el.ChildNodes() {
			child, ok := c.(dom.Element)
			if !ok {
				continue
			}
			if fn(child) {
				out = append(out, child)
			}
			visit(child)
		}
	}
	visit(root)
	return out
}

// FindByText returns the first descendant of root with the given tag whose
// trimmed text content equals text, or nil.
func FindByText(root dom.Element, tag, text string) dom.Element {
	matches := Find(root, func(el dom.Element) bool {
		return el.Tag() == tag && strings.TrimSpace(el.TextContent()) == text
	})
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}
