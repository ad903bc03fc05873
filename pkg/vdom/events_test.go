package vdom

import (
	"testing"

	"github.com/vango-dev/miniframe/pkg/dom"
)

func TestEventHandlers(t *testing.T) {
	handler := func() {}

	tests := []struct {
		name     string
		handler  EventHandler
		expected string
	}{
		{"OnClick", OnClick(handler), "click"},
		{"OnDblClick", OnDblClick(handler), "dblclick"},
		{"OnKeyDown", OnKeyDown(handler), "keydown"},
		{"OnKeyUp", OnKeyUp(handler), "keyup"},
		{"OnKeyPress", OnKeyPress(handler), "keypress"},
		{"OnInput", OnInput(handler), "input"},
		{"OnChange", OnChange(handler), "change"},
		{"OnSubmit", OnSubmit(handler), "submit"},
		{"OnFocus", OnFocus(handler), "focus"},
		{"OnBlur", OnBlur(handler), "blur"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.handler.Event != tt.expected {
				t.Errorf("Event = %v, want %v", tt.handler.Event, tt.expected)
			}
			if tt.handler.Handler == nil {
				t.Error("Handler should not be nil")
			}
		})
	}
}

func TestOnCallbackShapes(t *testing.T) {
	var got []string

	zero := On("click", func() { got = append(got, "zero") })
	one := On("click", func(e dom.Event) { got = append(got, "one:"+e.Key) })
	typed := On("click", Handler(func(e dom.Event) { got = append(got, "typed") }))
	bad := On("click", 42)

	zero.Handler(dom.Event{})
	one.Handler(dom.Event{Key: "Enter"})
	typed.Handler(dom.Event{})

	want := []string{"zero", "one:Enter", "typed"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if bad.Handler != nil {
		t.Error("unsupported callback type should produce a nil Handler")
	}
}
