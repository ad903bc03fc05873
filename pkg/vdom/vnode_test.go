package vdom

import (
	"testing"

	"github.com/vango-dev/miniframe/pkg/dom"
)

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{"nil node", nil, false},
		{"text node", Text("hello"), false},
		{"plain element", Div(Class("x")), false},
		{"element with click", Button(OnClick(func() {})), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeCount(t *testing.T) {
	tree := Div(H1("Title"), Ul(Li("a"), Li("b")))
	// div, h1, "Title", ul, li, "a", li, "b"
	if got := tree.Count(); got != 8 {
		t.Errorf("Count() = %d, want 8", got)
	}
	var nilNode *VNode
	if got := nilNode.Count(); got != 0 {
		t.Errorf("nil Count() = %d, want 0", got)
	}
}

func TestFunc(t *testing.T) {
	if Func(nil) != nil {
		t.Error("Func(nil) should be nil")
	}
	called := 0
	h := Func(func() { called++ })
	h(dom.Event{Type: "click"})
	if called != 1 {
		t.Errorf("called = %d, want 1", called)
	}
}

func TestVNodeString(t *testing.T) {
	tree := Li(Class("completed"), OnClick(func() {}), "a", Button("Edit"))
	want := `(li class="completed" @click "a" (button "Edit"))`
	if got := tree.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
