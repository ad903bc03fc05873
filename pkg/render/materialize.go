package render

import (
	"fmt"

	"github.com/vango-dev/miniframe/pkg/dom"
	"github.com/vango-dev/miniframe/pkg/vdom"
)

// Materialize builds a new live node tree for spec in doc.
//
// Attributes are set verbatim in ascending key order; event callbacks are
// bound additively; children are appended in order, with every string child
// becoming its own text node next to its element siblings. Every call
// allocates fresh nodes, and spec is never modified.
//
// A malformed spec fails with vdom.ErrInvalidSpec before any node is created.
func Materialize(doc dom.Document, spec *vdom.VNode) (dom.Node, error) {
	if err := vdom.Validate(spec); err != nil {
		return nil, err
	}
	return materialize(doc, spec)
}

func materialize(doc dom.Document, spec *vdom.VNode) (dom.Node, error) {
	switch spec.Kind {
	case vdom.KindText:
		return doc.CreateTextNode(spec.Text), nil
	case vdom.KindElement:
		return materializeElement(doc, spec)
	default:
		return nil, fmt.Errorf("%w: unknown node kind %s", vdom.ErrInvalidSpec, spec.Kind)
	}
}

func materializeElement(doc dom.Document, spec *vdom.VNode) (dom.Element, error) {
	el, err := doc.CreateElement(spec.Tag)
	if err != nil {
		return nil, fmt.Errorf("%w: create <%s>: %v", vdom.ErrInvalidSpec, spec.Tag, err)
	}

	for _, key := range spec.SortedAttrKeys() {
		value, _ := vdom.AttrString(spec.Attrs[key])
		el.SetAttribute(key, value)
	}

	for _, name := range spec.SortedEventNames() {
		el.AddEventListener(name, spec.Events[name])
	}

	for _, child := range spec.Children {
		node, err := materialize(doc, child)
		if err != nil {
			return nil, err
		}
		el.AppendChild(node)
	}

	return el, nil
}
