package memdom

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/vango-dev/miniframe/pkg/dom"
)

// Dispatch delivers an event of type typ to target, then to its ancestors for
// bubbling event types. The propagation path and listener lists are captured
// before any listener runs, so a listener that re-renders the page does not
// change which listeners receive this event.
//
// ev supplies Key (and optionally Value); Type and Target are filled in.
// When ev.Value is empty the target's live value is used.
func (d *Document) Dispatch(target dom.Element, typ string, ev dom.Event) {
	n := Unwrap(target)
	if n == nil {
		return
	}

	path := []*html.Node{n}
	if dom.Bubbles(typ) {
		for p := n.Parent; p != nil; p = p.Parent {
			if p.Type == html.ElementNode {
				path = append(path, p)
			}
		}
	}

	type step struct {
		fns []func(dom.Event)
	}
	steps := make([]step, 0, len(path))
	for _, p := range path {
		fns := d.listeners[p][typ]
		cp := make([]func(dom.Event), len(fns))
		copy(cp, fns)
		steps = append(steps, step{fns: cp})
	}

	stopped := false
	out := dom.NewEvent(typ, target, func() { stopped = true })
	out.Key = ev.Key
	out.Value = ev.Value
	if out.Value == "" {
		out.Value = d.Value(target)
	}

	for _, s := range steps {
		for _, fn := range s.fns {
			fn(out)
		}
		if stopped {
			return
		}
	}
}

// Click dispatches a click event on el.
func (d *Document) Click(el dom.Element) {
	d.Dispatch(el, "click", dom.Event{})
}

// KeyPress dispatches a keypress event with the given key on el.
func (d *Document) KeyPress(el dom.Element, key string) {
	d.Dispatch(el, "keypress", dom.Event{Key: key})
}

// Blur dispatches a blur event on el.
func (d *Document) Blur(el dom.Element) {
	d.Dispatch(el, "blur", dom.Event{})
}

// Type sets the live value of a form control and dispatches an input event,
// the way a user typing into it would.
func (d *Document) Type(el dom.Element, value string) {
	d.SetValue(el, value)
	d.Dispatch(el, "input", dom.Event{Value: value})
}

// SetValue sets the live value of a form control without firing events.
func (d *Document) SetValue(el dom.Element, value string) {
	if n := Unwrap(el); n != nil {
		d.values[n] = value
	}
}

// Value returns the live value of a form control. Controls that were never
// typed into report their value attribute.
func (d *Document) Value(el dom.Element) string {
	n := Unwrap(el)
	if n == nil {
		return ""
	}
	if v, ok := d.values[n]; ok {
		return v
	}
	v, _ := attr(n, "value")
	return v
}

// ListenerCount returns the number of listeners bound to el for typ.
func (d *Document) ListenerCount(el dom.Element, typ string) int {
	n := Unwrap(el)
	if n == nil {
		return 0
	}
	return len(d.listeners[n][typ])
}

// ElementAt resolves a path of element-child indexes below the mount point
// with the given id. Text nodes are not counted. An empty path returns the
// mount point itself.
func (d *Document) ElementAt(mountID string, path []int) (dom.Element, error) {
	mount := d.GetElementByID(mountID)
	if mount == nil {
		return nil, fmt.Errorf("memdom: no element with id %q", mountID)
	}
	n := Unwrap(mount)
	for depth, idx := range path {
		next := nthElementChild(n, idx)
		if next == nil {
			return nil, fmt.Errorf("memdom: path %v: no element child %d at depth %d", path, idx, depth)
		}
		n = next
	}
	return d.wrap(n).(dom.Element), nil
}

func nthElementChild(n *html.Node, idx int) *html.Node {
	if idx < 0 {
		return nil
	}
	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if i == idx {
			return c
		}
		i++
	}
	return nil
}
