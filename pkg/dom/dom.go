package dom

// NodeType is the node kind discriminator.
type NodeType uint8

const (
	ElementNode NodeType = iota // <div>, <li>, etc.
	TextNode                    // Character data
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is any live node owned by a Document.
type Node interface {
	// Type reports whether the node is an element or a text node.
	Type() NodeType

	// TextContent returns the concatenated text of the node and its descendants.
	TextContent() string
}

// Element is a live element node.
type Element interface {
	Node

	// Tag returns the lower-case tag name.
	Tag() string

	// SetAttribute sets an attribute verbatim. No escaping is performed.
	SetAttribute(name, value string)

	// Attribute returns the attribute value and whether it is present.
	Attribute(name string) (string, bool)

	// AddEventListener binds fn to the named event. Bindings are additive.
	AddEventListener(event string, fn func(Event))

	// AppendChild appends child as the last child of the element.
	AppendChild(child Node)

	// ReplaceChildren removes every existing child, then appends nodes in order.
	ReplaceChildren(nodes ...Node)

	// ChildNodes returns the current children in document order.
	ChildNodes() []Node

	// SetTextContent replaces every child with a single text node.
	SetTextContent(text string)

	// Value returns the live value of a form control, which may differ from
	// its value attribute once the user has typed.
	Value() string

	// SetValue sets the live value of a form control.
	SetValue(value string)
}

// Document creates nodes and resolves the mount point.
type Document interface {
	// CreateElement creates a detached element with the given tag.
	CreateElement(tag string) (Element, error)

	// CreateTextNode creates a detached text node.
	CreateTextNode(text string) Node

	// GetElementByID returns the element with the given id, or nil.
	GetElementByID(id string) Element
}

// Window exposes the location fragment and its change notifications.
type Window interface {
	// Hash returns the current fragment including the leading '#', or "".
	Hash() string

	// SetHash assigns the fragment. A change fires hashchange listeners.
	SetHash(hash string)

	// AddHashChangeListener registers fn for hashchange events.
	AddHashChangeListener(fn func())
}

// Event is the payload delivered to element event listeners.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string

	// Target is the element the event was dispatched on.
	Target Element

	// Key is the key name for keyboard events ("Enter", "a", ...).
	Key string

	// Value is the target's current value for form controls.
	Value string

	stop func()
}
