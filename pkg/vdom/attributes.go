package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// AttrOf sets an arbitrary attribute. value must be a string or bool.
func AttrOf(key string, value any) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// ClassIf sets class to name when cond holds and to "" otherwise.
func ClassIf(cond bool, name string) Attr {
	if cond {
		return attr("class", name)
	}
	return attr("class", "")
}

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Form attributes

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Value sets the value attribute.
func Value(v string) Attr { return attr("value", v) }

// Name sets the name attribute.
func Name(n string) Attr { return attr("name", n) }

// Placeholder sets the placeholder attribute.
func Placeholder(p string) Attr { return attr("placeholder", p) }

// Autofocus sets the autofocus attribute.
func Autofocus(on bool) Attr { return attr("autofocus", on) }

// Disabled sets the disabled attribute.
func Disabled(on bool) Attr { return attr("disabled", on) }

// Checked sets the checked attribute.
func Checked(on bool) Attr { return attr("checked", on) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }
