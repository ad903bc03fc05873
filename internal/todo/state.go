package todo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vango-dev/miniframe"
	"github.com/vango-dev/miniframe/pkg/router"
	"github.com/vango-dev/miniframe/pkg/store"
)

// Filters. The filter is mirrored in the location fragment.
const (
	FilterAll          = "all"
	FilterCompleted    = "completed"
	FilterNotCompleted = "notcompleted"
)

// State keys.
const (
	KeyTodos   = "todos"
	KeyFilter  = "filter"
	KeyEditing = "editingIndex"
)

// NotEditing is the editingIndex value when no item is being edited.
const NotEditing = -1

// ErrNoSuchTodo is returned for an index outside the list.
var ErrNoSuchTodo = errors.New("todo: no such item")

// Todo is one list item.
type Todo struct {
	Text      string `mapstructure:"text" yaml:"text" json:"text"`
	Completed bool   `mapstructure:"completed" yaml:"completed" json:"completed"`
}

// State is the typed view of the store.
type State struct {
	Todos        []Todo `mapstructure:"todos"`
	Filter       string `mapstructure:"filter"`
	EditingIndex int    `mapstructure:"editingIndex"`
}

// Initial returns the starting state: no items, every item shown, nothing
// being edited.
func Initial() store.State {
	return store.State{
		KeyTodos:   []Todo{},
		KeyFilter:  FilterAll,
		KeyEditing: NotEditing,
	}
}

// Snapshot reads the typed state out of s with store.Decode. Missing keys
// take their initial values, as does a key whose value cannot be decoded.
// Items stored as maps (for example state loaded from JSON) decode too.
func Snapshot(s store.State) State {
	out := State{Filter: FilterAll, EditingIndex: NotEditing}
	if err := store.Decode(s, &out); err != nil {
		return snapshotFields(s)
	}
	return out
}

// snapshotFields decodes each key on its own, so one bad value does not
// discard the others.
func snapshotFields(s store.State) State {
	out := State{Filter: FilterAll, EditingIndex: NotEditing}
	for _, key := range []string{KeyTodos, KeyFilter, KeyEditing} {
		v, ok := s[key]
		if !ok {
			continue
		}
		field := State{Filter: FilterAll, EditingIndex: NotEditing}
		if err := store.Decode(store.State{key: v}, &field); err != nil {
			continue
		}
		switch key {
		case KeyTodos:
			out.Todos = field.Todos
		case KeyFilter:
			out.Filter = field.Filter
		case KeyEditing:
			out.EditingIndex = field.EditingIndex
		}
	}
	return out
}

// Counts returns the total, completed and not completed item counts.
func (s State) Counts() (total, completed, notCompleted int) {
	for _, t := range s.Todos {
		if t.Completed {
			completed++
		}
	}
	return len(s.Todos), completed, len(s.Todos) - completed
}

// Item is a todo together with its position in the full list.
type Item struct {
	Index int
	Todo
}

// Visible returns the items the current filter shows, in list order.
func (s State) Visible() []Item {
	out := make([]Item, 0, len(s.Todos))
	for i, t := range s.Todos {
		switch s.Filter {
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		case FilterNotCompleted:
			if t.Completed {
				continue
			}
		}
		out = append(out, Item{Index: i, Todo: t})
	}
	return out
}

// FilterFor maps a route name to a filter. The default route and unknown
// names show every item.
func FilterFor(route string) string {
	switch route {
	case FilterCompleted, FilterNotCompleted:
		return route
	default:
		return FilterAll
	}
}

// FoldRoute folds a route change into the filter.
func FoldRoute(r router.Route) store.State {
	return store.State{KeyFilter: FilterFor(r.Name)}
}

func todos(a *miniframe.App) []Todo {
	return Snapshot(a.State()).Todos
}

// Add appends a new item with the trimmed text. Blank text is ignored.
func Add(a *miniframe.App, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	cur := todos(a)
	next := make([]Todo, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, Todo{Text: text})
	return a.Update(store.State{KeyTodos: next})
}

// Toggle flips the completed flag of item i.
func Toggle(a *miniframe.App, i int) error {
	next, err := withItem(todos(a), i, func(t *Todo) { t.Completed = !t.Completed })
	if err != nil {
		return err
	}
	return a.Update(store.State{KeyTodos: next})
}

// StartEditing marks item i as being edited.
func StartEditing(a *miniframe.App, i int) error {
	if i < 0 || i >= len(todos(a)) {
		return fmt.Errorf("%w: %d", ErrNoSuchTodo, i)
	}
	return a.Update(store.State{KeyEditing: i})
}

// SaveEdit replaces the text of item i with the trimmed text and ends
// editing. Blank text keeps the old text.
func SaveEdit(a *miniframe.App, i int, text string) error {
	text = strings.TrimSpace(text)
	next, err := withItem(todos(a), i, func(t *Todo) {
		if text != "" {
			t.Text = text
		}
	})
	if err != nil {
		return err
	}
	return a.Update(store.State{KeyTodos: next, KeyEditing: NotEditing})
}

// ClearCompleted removes every completed item.
func ClearCompleted(a *miniframe.App) error {
	cur := todos(a)
	next := make([]Todo, 0, len(cur))
	for _, t := range cur {
		if !t.Completed {
			next = append(next, t)
		}
	}
	return a.Update(store.State{KeyTodos: next, KeyEditing: NotEditing})
}

// DeleteAll removes every item.
func DeleteAll(a *miniframe.App) error {
	return a.Update(store.State{KeyTodos: []Todo{}, KeyEditing: NotEditing})
}

// SetFilter sets the filter and mirrors it in the location fragment.
func SetFilter(a *miniframe.App, filter string) error {
	if err := a.Update(store.State{KeyFilter: filter}); err != nil {
		return err
	}
	a.Navigate(filter)
	return nil
}

// withItem returns a copy of list with fn applied to item i.
func withItem(list []Todo, i int, fn func(*Todo)) ([]Todo, error) {
	if i < 0 || i >= len(list) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchTodo, i)
	}
	next := make([]Todo, len(list))
	copy(next, list)
	fn(&next[i])
	return next, nil
}
