package todo

import (
	"github.com/vango-dev/miniframe"
	"github.com/vango-dev/miniframe/pkg/dom"
	. "github.com/vango-dev/miniframe/pkg/vdom"
)

// InputID is the id of the new-item text box.
const InputID = "todoInput"

// View renders the whole to-do UI from the App's state.
func View(a *miniframe.App) *VNode {
	s := Snapshot(a.State())
	total, completed, notCompleted := s.Counts()

	return Div(ID("app"),
		H1("TodoMVC"),
		Input(ID(InputID), Type("text"), Placeholder("Add a new task")),
		Button(OnClick(func() { run(a, "add", AddFromInput(a)) }), "Add"),
		Button(OnClick(func() { run(a, "filter", SetFilter(a, FilterCompleted)) }), "Show Completed"),
		Button(OnClick(func() { run(a, "filter", SetFilter(a, FilterNotCompleted)) }), "Show Not Completed"),
		Button(OnClick(func() { run(a, "filter", SetFilter(a, FilterAll)) }), "Show All"),
		Ul(Range(s.Visible(), func(_ int, it Item) *VNode {
			return item(a, it, s.EditingIndex == it.Index)
		})),
		Button(OnClick(func() { run(a, "clear", ClearCompleted(a)) }), "Clear Completed"),
		Button(OnClick(func() { run(a, "delete", DeleteAll(a)) }), "Delete All"),
		Div(Textf("Total: %d | Completed: %d | Not Completed: %d", total, completed, notCompleted)),
	)
}

func item(a *miniframe.App, it Item, editing bool) *VNode {
	idx := it.Index

	var label *VNode
	if editing {
		label = Input(
			Type("text"),
			Value(it.Text),
			Autofocus(true),
			// Clicks inside the editor must not toggle the item.
			OnClick(func(e dom.Event) { e.StopPropagation() }),
			OnBlur(func(e dom.Event) { run(a, "save", SaveEdit(a, idx, e.Value)) }),
			OnKeyPress(func(e dom.Event) {
				if e.Key == "Enter" {
					run(a, "save", SaveEdit(a, idx, e.Value))
				}
			}),
		)
	} else {
		label = Text(it.Text)
	}

	return Li(
		ClassIf(it.Completed, "completed"),
		OnClick(func() { run(a, "toggle", Toggle(a, idx)) }),
		label,
		Button(
			Class("edit-btn"),
			OnClick(func(e dom.Event) {
				e.StopPropagation()
				run(a, "edit", StartEditing(a, idx))
			}),
			"Edit",
		),
	)
}

// AddFromInput adds the text typed into the new-item box and clears it.
func AddFromInput(a *miniframe.App) error {
	input := a.Document().GetElementByID(InputID)
	if input == nil {
		return nil
	}
	text := input.Value()
	input.SetValue("")
	return Add(a, text)
}

// run logs the failure of an operation started by an event callback.
// Event callbacks have no caller to return an error to.
func run(a *miniframe.App, op string, err error) {
	if err != nil {
		a.Logger().Error("todo operation failed", "op", op, "error", err)
	}
}
