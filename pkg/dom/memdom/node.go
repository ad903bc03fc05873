package memdom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/miniframe/pkg/dom"
)

type textNode struct {
	n *html.Node
}

func (t *textNode) Type() dom.NodeType  { return dom.TextNode }
func (t *textNode) TextContent() string { return t.n.Data }

type element struct {
	doc *Document
	n   *html.Node
}

func (e *element) Type() dom.NodeType { return dom.ElementNode }
func (e *element) Tag() string        { return e.n.Data }

func (e *element) TextContent() string {
	var b strings.Builder
	walk(e.n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return true
	})
	return b.String()
}

func (e *element) SetAttribute(name, value string) {
	for i := range e.n.Attr {
		if e.n.Attr[i].Namespace == "" && e.n.Attr[i].Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *element) Attribute(name string) (string, bool) {
	return attr(e.n, name)
}

func (e *element) Value() string {
	return e.doc.Value(e)
}

func (e *element) SetValue(value string) {
	e.doc.SetValue(e, value)
}

func (e *element) AddEventListener(event string, fn func(dom.Event)) {
	byType := e.doc.listeners[e.n]
	if byType == nil {
		byType = make(map[string][]func(dom.Event))
		e.doc.listeners[e.n] = byType
	}
	byType[event] = append(byType[event], fn)
}

func (e *element) AppendChild(child dom.Node) {
	c := Unwrap(child)
	if c == nil {
		return
	}
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	e.n.AppendChild(c)
}

func (e *element) ReplaceChildren(nodes ...dom.Node) {
	keep := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		if c := Unwrap(n); c != nil {
			keep[c] = true
		}
	}
	e.removeAllExcept(keep)
	for _, n := range nodes {
		e.AppendChild(n)
	}
}

func (e *element) ChildNodes() []dom.Node {
	var out []dom.Node
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, e.doc.wrap(c))
	}
	return out
}

func (e *element) SetTextContent(text string) {
	e.removeAllExcept(nil)
	if text != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

// removeAllExcept detaches every child. Detached subtrees lose their
// listeners unless they are in keep.
func (e *element) removeAllExcept(keep map[*html.Node]bool) {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		if !keep[c] {
			e.doc.forget(c)
		}
		c = next
	}
}
