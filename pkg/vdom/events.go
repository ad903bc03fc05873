package vdom

// On binds fn to the named event. fn may be a Handler, a func(dom.Event) or
// a func(). Any other value yields a binding that fails validation.
func On(name string, fn any) EventHandler {
	return EventHandler{Event: name, Handler: handler(fn)}
}

// Mouse events

// OnClick handles click events.
func OnClick(fn any) EventHandler { return On("click", fn) }

// OnDblClick handles double-click events.
func OnDblClick(fn any) EventHandler { return On("dblclick", fn) }

// Keyboard events

// OnKeyDown handles keydown events.
func OnKeyDown(fn any) EventHandler { return On("keydown", fn) }

// OnKeyUp handles keyup events.
func OnKeyUp(fn any) EventHandler { return On("keyup", fn) }

// OnKeyPress handles keypress events.
func OnKeyPress(fn any) EventHandler { return On("keypress", fn) }

// Form events

// OnInput handles input events (fired when value changes).
func OnInput(fn any) EventHandler { return On("input", fn) }

// OnChange handles change events (fired when value is committed).
func OnChange(fn any) EventHandler { return On("change", fn) }

// OnSubmit handles form submit events.
func OnSubmit(fn any) EventHandler { return On("submit", fn) }

// OnFocus handles focus events.
func OnFocus(fn any) EventHandler { return On("focus", fn) }

// OnBlur handles blur events.
func OnBlur(fn any) EventHandler { return On("blur", fn) }
