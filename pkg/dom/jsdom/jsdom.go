//go:build js && wasm

package jsdom

import (
	"fmt"
	"syscall/js"

	"github.com/vango-dev/miniframe/pkg/dom"
)

// tagProp is the JS property holding an element's callback tag.
const tagProp = "__miniframeTag"

// Document wraps the browser's global document and window.
type Document struct {
	doc js.Value
	win js.Value

	funcs        *funcRegistry
	sweep        js.Func
	sweepPending bool

	// page-lifetime callbacks, such as the hashchange listener
	keep []js.Func
}

// New returns the Document for the current page.
func New() *Document {
	d := &Document{
		doc:   js.Global().Get("document"),
		win:   js.Global().Get("window"),
		funcs: newFuncRegistry(),
	}
	d.sweep = js.FuncOf(func(js.Value, []js.Value) any {
		d.sweepPending = false
		d.funcs.sweep()
		return nil
	})
	return d
}

// LiveFuncs returns the number of event callbacks bound to attached or not
// yet swept elements.
func (d *Document) LiveFuncs() int {
	return d.funcs.live()
}

func (d *Document) bind(v js.Value, cb js.Func) {
	var tag int
	if t := v.Get(tagProp); t.Type() == js.TypeNumber {
		tag = t.Int()
	} else {
		tag = d.funcs.newTag()
		v.Set(tagProp, tag)
	}
	d.funcs.track(tag, cb)
}

// retireSubtree retires the callbacks of v and its descendants and schedules
// a sweep.
func (d *Document) retireSubtree(v js.Value) {
	queued := d.retire(v)
	all := v.Call("querySelectorAll", "*")
	for i := 0; i < all.Length(); i++ {
		if d.retire(all.Index(i)) {
			queued = true
		}
	}
	if queued && !d.sweepPending {
		d.sweepPending = true
		d.win.Call("setTimeout", d.sweep, 0)
	}
}

func (d *Document) retire(v js.Value) bool {
	t := v.Get(tagProp)
	if t.Type() != js.TypeNumber {
		return false
	}
	return d.funcs.retire(t.Int())
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) (el dom.Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			el, err = nil, fmt.Errorf("jsdom: createElement(%q): %v", tag, r)
		}
	}()
	return &element{doc: d, v: d.doc.Call("createElement", tag)}, nil
}

// CreateTextNode implements dom.Document.
func (d *Document) CreateTextNode(text string) dom.Node {
	return &textNode{v: d.doc.Call("createTextNode", text)}
}

// GetElementByID implements dom.Document.
func (d *Document) GetElementByID(id string) dom.Element {
	v := d.doc.Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &element{doc: d, v: v}
}

// Hash implements dom.Window.
func (d *Document) Hash() string {
	return d.win.Get("location").Get("hash").String()
}

// SetHash implements dom.Window.
func (d *Document) SetHash(hash string) {
	d.win.Get("location").Set("hash", hash)
}

// AddHashChangeListener implements dom.Window.
func (d *Document) AddHashChangeListener(fn func()) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	d.keep = append(d.keep, cb)
	d.win.Call("addEventListener", "hashchange", cb)
}

type textNode struct {
	v js.Value
}

func (t *textNode) Type() dom.NodeType  { return dom.TextNode }
func (t *textNode) TextContent() string { return t.v.Get("textContent").String() }

type element struct {
	doc *Document
	v   js.Value
}

func (e *element) Type() dom.NodeType  { return dom.ElementNode }
func (e *element) Tag() string         { return e.v.Get("localName").String() }
func (e *element) TextContent() string { return e.v.Get("textContent").String() }

func (e *element) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *element) Attribute(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e *element) AddEventListener(event string, fn func(dom.Event)) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		var raw js.Value
		if len(args) > 0 {
			raw = args[0]
		}
		ev := dom.NewEvent(event, e, func() {
			if raw.Truthy() {
				raw.Call("stopPropagation")
			}
		})
		if raw.Truthy() {
			if k := raw.Get("key"); k.Type() == js.TypeString {
				ev.Key = k.String()
			}
			if t := raw.Get("target"); t.Truthy() {
				if v := t.Get("value"); v.Type() == js.TypeString {
					ev.Value = v.String()
				}
			}
		}
		fn(ev)
		return nil
	})
	e.doc.bind(e.v, cb)
	e.v.Call("addEventListener", event, cb)
}

func (e *element) AppendChild(child dom.Node) {
	if v, ok := unwrap(child); ok {
		e.v.Call("appendChild", v)
	}
}

func (e *element) ReplaceChildren(nodes ...dom.Node) {
	args := make([]any, 0, len(nodes))
	kept := make([]js.Value, 0, len(nodes))
	for _, n := range nodes {
		if v, ok := unwrap(n); ok {
			args = append(args, v)
			kept = append(kept, v)
		}
	}

	old := e.v.Get("children")
	for i := 0; i < old.Length(); i++ {
		c := old.Index(i)
		if !containsValue(kept, c) {
			e.doc.retireSubtree(c)
		}
	}
	e.v.Call("replaceChildren", args...)
}

func containsValue(vs []js.Value, v js.Value) bool {
	for _, x := range vs {
		if x.Equal(v) {
			return true
		}
	}
	return false
}

func (e *element) ChildNodes() []dom.Node {
	list := e.v.Get("childNodes")
	out := make([]dom.Node, 0, list.Length())
	for i := 0; i < list.Length(); i++ {
		c := list.Index(i)
		if c.Get("nodeType").Int() == 1 {
			out = append(out, &element{doc: e.doc, v: c})
		} else {
			out = append(out, &textNode{v: c})
		}
	}
	return out
}

func (e *element) SetTextContent(text string) {
	e.v.Set("textContent", text)
}

func (e *element) Value() string {
	if v := e.v.Get("value"); v.Type() == js.TypeString {
		return v.String()
	}
	return ""
}

func (e *element) SetValue(value string) {
	e.v.Set("value", value)
}

func unwrap(n dom.Node) (js.Value, bool) {
	switch v := n.(type) {
	case *element:
		return v.v, true
	case *textNode:
		return v.v, true
	default:
		return js.Value{}, false
	}
}
