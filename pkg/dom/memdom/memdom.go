package memdom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/miniframe/pkg/dom"
)

// DefaultMountID is the id of the mount point created by New.
const DefaultMountID = "root"

// ErrInvalidCharacter is returned by CreateElement for tag names that are not
// valid element names.
var ErrInvalidCharacter = errors.New("memdom: invalid character in tag name")

// Document is an in-memory host document and window.
//
// Nodes are stored as golang.org/x/net/html nodes so the live tree can be
// serialized with html.Render at any time. Event listeners and live form
// values live in side tables keyed by node.
type Document struct {
	root      *html.Node
	listeners map[*html.Node]map[string][]func(dom.Event)
	values    map[*html.Node]string

	hash          string
	hashListeners []func()
}

// New returns an empty host page whose body holds a single mount point
// element with the given id. An empty id selects DefaultMountID.
func New(mountID string) *Document {
	if mountID == "" {
		mountID = DefaultMountID
	}
	root := &html.Node{Type: html.DocumentNode}
	htmlEl := newElementNode("html")
	head := newElementNode("head")
	body := newElementNode("body")
	mount := newElementNode("div")
	mount.Attr = []html.Attribute{{Key: "id", Val: mountID}}

	root.AppendChild(htmlEl)
	htmlEl.AppendChild(head)
	htmlEl.AppendChild(body)
	body.AppendChild(mount)

	return newDocument(root)
}

// Parse reads a host page. The page must contain the mount point element the
// caller intends to render into; Parse does not check for it.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("memdom: parse host page: %w", err)
	}
	return newDocument(root), nil
}

// ParseString is Parse over a string.
func ParseString(page string) (*Document, error) {
	return Parse(strings.NewReader(page))
}

func newDocument(root *html.Node) *Document {
	return &Document{
		root:      root,
		listeners: make(map[*html.Node]map[string][]func(dom.Event)),
		values:    make(map[*html.Node]string),
	}
}

func newElementNode(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) (dom.Element, error) {
	if !ValidTagName(tag) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCharacter, tag)
	}
	return &element{doc: d, n: newElementNode(strings.ToLower(tag))}, nil
}

// CreateTextNode implements dom.Document.
func (d *Document) CreateTextNode(text string) dom.Node {
	return &textNode{n: &html.Node{Type: html.TextNode, Data: text}}
}

// GetElementByID implements dom.Document.
func (d *Document) GetElementByID(id string) dom.Element {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if v, ok := attr(n, "id"); ok && v == id {
				found = n
				return false
			}
		}
		return true
	})
	if found == nil {
		return nil
	}
	return d.wrap(found).(dom.Element)
}

// Hash implements dom.Window.
func (d *Document) Hash() string {
	return d.hash
}

// SetHash implements dom.Window. The leading '#' is optional. Listeners are
// invoked synchronously, and only when the fragment actually changes.
func (d *Document) SetHash(hash string) {
	hash = strings.TrimPrefix(hash, "#")
	if hash != "" {
		hash = "#" + hash
	}
	if hash == d.hash {
		return
	}
	d.hash = hash

	listeners := make([]func(), len(d.hashListeners))
	copy(listeners, d.hashListeners)
	for _, fn := range listeners {
		fn()
	}
}

// AddHashChangeListener implements dom.Window.
func (d *Document) AddHashChangeListener(fn func()) {
	d.hashListeners = append(d.hashListeners, fn)
}

// HashListenerCount returns the number of registered hashchange listeners.
func (d *Document) HashListenerCount() int {
	return len(d.hashListeners)
}

func (d *Document) wrap(n *html.Node) dom.Node {
	if n.Type == html.ElementNode {
		return &element{doc: d, n: n}
	}
	return &textNode{n: n}
}

// forget drops listener and value bookkeeping for a detached subtree.
func (d *Document) forget(n *html.Node) {
	walk(n, func(c *html.Node) bool {
		delete(d.listeners, c)
		delete(d.values, c)
		return true
	})
}

// ValidTagName reports whether tag is a usable element name:
// an ASCII letter followed by letters, digits or hyphens.
func ValidTagName(tag string) bool {
	if tag == "" {
		return false
	}
	for i, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Unwrap returns the html node behind a node created by a memdom Document,
// or nil for foreign nodes.
func Unwrap(n dom.Node) *html.Node {
	switch v := n.(type) {
	case *element:
		return v.n
	case *textNode:
		return v.n
	default:
		return nil
	}
}
