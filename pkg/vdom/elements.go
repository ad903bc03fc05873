package vdom

import (
	"fmt"

	"github.com/vango-dev/miniframe/pkg/dom"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element with the given tag.
// Arguments can be: nil, Attr, []Attr, Attrs, EventHandler, *VNode, []*VNode, string.
// Any other argument is kept aside and reported by Validate.
func El(tag string, args ...any) *VNode {
	return createElement(tag, args)
}

// createElement creates a new VNode with the given tag and arguments.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  tag,
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue

		case Attr:
			node.setAttr(v)

		case []Attr:
			for _, a := range v {
				node.setAttr(a)
			}

		case Attrs:
			for key, value := range v {
				node.setAttr(Attr{Key: key, Value: value})
			}

		case EventHandler:
			if v.Event == "" {
				node.rejected = append(node.rejected, "EventHandler without an event name")
				continue
			}
			if node.Events == nil {
				node.Events = make(map[string]Handler)
			}
			node.Events[v.Event] = v.Handler

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case string:
			// Shorthand for text node
			node.Children = append(node.Children, Text(v))

		default:
			node.rejected = append(node.rejected, fmt.Sprintf("%T", v))
		}
	}

	return node
}

func (v *VNode) setAttr(a Attr) {
	if a.Key == "" {
		return
	}
	if v.Attrs == nil {
		v.Attrs = make(Attrs)
	}
	v.Attrs[a.Key] = a.Value
}

// handler normalizes the callback shapes accepted by On.
func handler(fn any) Handler {
	switch h := fn.(type) {
	case Handler:
		return h
	case func(dom.Event):
		return h
	case func():
		return Func(h)
	default:
		return nil
	}
}

// Content sectioning elements

func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }
func H2(args ...any) *VNode      { return createElement("h2", args) }
func H3(args ...any) *VNode      { return createElement("h3", args) }

// Text content elements

func Div(args ...any) *VNode  { return createElement("div", args) }
func P(args ...any) *VNode    { return createElement("p", args) }
func Span(args ...any) *VNode { return createElement("span", args) }
func Ul(args ...any) *VNode   { return createElement("ul", args) }
func Ol(args ...any) *VNode   { return createElement("ol", args) }
func Li(args ...any) *VNode   { return createElement("li", args) }
func Hr(args ...any) *VNode   { return createElement("hr", args) }

// Inline text semantics

func A(args ...any) *VNode      { return createElement("a", args) }
func Strong(args ...any) *VNode { return createElement("strong", args) }
func Em(args ...any) *VNode     { return createElement("em", args) }
func Small(args ...any) *VNode  { return createElement("small", args) }
func Br(args ...any) *VNode     { return createElement("br", args) }

// Form elements

func Form(args ...any) *VNode     { return createElement("form", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Textarea(args ...any) *VNode { return createElement("textarea", args) }
func Select(args ...any) *VNode   { return createElement("select", args) }
func Option(args ...any) *VNode   { return createElement("option", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }
