// Package vdom provides the element spec model for miniframe.
//
// A VNode describes a UI node declaratively: a tag, attributes, event
// bindings and ordered children, or a plain text value. Application code
// builds a fresh VNode tree on every render; the render package turns that
// tree into live nodes.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(ID("app"),
//	    H1("TodoMVC"),
//	    Button(OnClick(add), "Add"),
//	    Ul(items),
//	)
//
// Arguments may be attributes, event handlers, child nodes, child slices or
// strings (text children). nil arguments are skipped, which allows
// conditional attributes and children.
//
// # Validation
//
// Validate walks a tree and reports the first malformed node with
// ErrInvalidSpec: a nil child, an element without a valid tag, an attribute
// value that is neither string nor bool, or an event without a callback.
package vdom
