package vdom

import "github.com/vango-dev/miniframe/pkg/dom"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <button>, etc.
	KindText                 // Plain text
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// VNode is an element spec: a plain description of one UI node and its
// subtree. It is either Text(string) or Element(tag, attrs, events, children).
//
// A VNode is treated as immutable once handed to the renderer. Trees are
// usually rebuilt from scratch on every render.
type VNode struct {
	Kind     VKind              // Node type
	Tag      string             // Element tag name (e.g., "div")
	Attrs    Attrs              // Attribute name -> string or bool
	Events   map[string]Handler // Event name ("click") -> callback
	Children []*VNode           // Ordered child nodes
	Text     string             // For KindText

	rejected []string // builder arguments El could not use, by type
}

// Attrs holds attribute values. Values must be string or bool.
type Attrs map[string]any

// Handler is an event callback bound to a materialized element.
type Handler func(dom.Event)

// Func adapts a callback that ignores its event.
func Func(fn func()) Handler {
	if fn == nil {
		return nil
	}
	return func(dom.Event) { fn() }
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event binding.
type EventHandler struct {
	Event   string  // "click", "keypress", etc.
	Handler Handler // nil when the callback had an unsupported type
}

// IsText reports whether the node is a text node.
func (v *VNode) IsText() bool {
	return v != nil && v.Kind == KindText
}

// IsInteractive returns true if this node has event handlers.
func (v *VNode) IsInteractive() bool {
	return v != nil && v.Kind == KindElement && len(v.Events) > 0
}

// Count returns the number of nodes in the tree rooted at v.
func (v *VNode) Count() int {
	if v == nil {
		return 0
	}
	n := 1
	for _, c := range v.Children {
		n += c.Count()
	}
	return n
}
