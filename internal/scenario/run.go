package scenario

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/vango-dev/miniframe"
	"github.com/vango-dev/miniframe/internal/errors"
	"github.com/vango-dev/miniframe/internal/todo"
	"github.com/vango-dev/miniframe/pkg/dom"
	"github.com/vango-dev/miniframe/pkg/dom/memdom"
)

// Options configures Run.
type Options struct {
	// RootID is the mount point id (default: "root").
	RootID string

	// DefaultRoute is the route for an empty fragment (default: "home").
	DefaultRoute string

	// Update rewrites the golden file instead of comparing against it.
	Update bool

	// Logger receives app logs. Default: discard.
	Logger *slog.Logger
}

// Result is the outcome of a run.
type Result struct {
	Name  string
	HTML  string
	Hash  string
	State todo.State

	// Failures lists every expectation that did not hold.
	Failures []*errors.Error
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Err returns the first failure, or nil.
func (r *Result) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	return r.Failures[0]
}

// Run executes s against a fresh demo App in an in-memory document.
//
// The returned error reports a step that could not be carried out. Unmet
// expectations are collected in Result.Failures instead.
func Run(s *Script, opts Options) (*Result, error) {
	rootID := opts.RootID
	if rootID == "" {
		rootID = memdom.DefaultMountID
	}

	doc := memdom.New(rootID)
	if s.Hash != "" {
		doc.SetHash(s.Hash)
	}
	app, err := todo.Start(miniframe.Options{
		Document:     doc,
		RootID:       rootID,
		DefaultRoute: opts.DefaultRoute,
		Logger:       opts.Logger,
	})
	if err != nil {
		return nil, errors.FromError(err, "")
	}

	for i, step := range s.Steps {
		if err := apply(doc, rootID, step); err != nil {
			return nil, s.stepError(i, errors.CodeScenarioFailed, err.Error())
		}
	}

	mount := doc.GetElementByID(rootID)
	res := &Result{
		Name:  s.Name,
		HTML:  memdom.InnerHTML(mount),
		Hash:  doc.Hash(),
		State: todo.Snapshot(app.State()),
	}
	res.Failures = s.check(mount, res)

	if gp := s.goldenPath(); gp != "" {
		if opts.Update {
			if err := os.WriteFile(gp, []byte(res.HTML), 0o644); err != nil {
				return res, errors.New(errors.CodeScenarioFailed).Wrap(err)
			}
		} else if want, err := os.ReadFile(gp); err != nil {
			res.Failures = append(res.Failures, s.expectError("golden file unreadable: "+err.Error()))
		} else if !bytes.Equal(want, []byte(res.HTML)) {
			res.Failures = append(res.Failures, s.expectError(
				fmt.Sprintf("HTML differs from %s\nwant: %s\ngot:  %s", s.Golden, want, res.HTML)))
		}
	}

	return res, nil
}

func apply(doc *memdom.Document, rootID string, step Step) error {
	switch {
	case step.Input != nil:
		el, err := target(doc, rootID, step.Input.ID, step.Input.Path)
		if err != nil {
			return err
		}
		doc.Type(el, step.Input.Value)

	case step.Event != nil:
		el, err := doc.ElementAt(rootID, step.Event.Path)
		if err != nil {
			return err
		}
		ev := dom.Event{Key: step.Event.Key}
		if step.Event.Value != nil {
			doc.SetValue(el, *step.Event.Value)
			ev.Value = *step.Event.Value
		}
		doc.Dispatch(el, step.Event.Type, ev)

	case step.Click != "":
		el := memdom.FindByText(doc.GetElementByID(rootID), "button", step.Click)
		if el == nil {
			return fmt.Errorf("no button labelled %q", step.Click)
		}
		doc.Click(el)

	case step.Hash != nil:
		doc.SetHash(*step.Hash)
	}
	return nil
}

func target(doc *memdom.Document, rootID, id string, path []int) (dom.Element, error) {
	if id != "" {
		el := doc.GetElementByID(id)
		if el == nil {
			return nil, fmt.Errorf("no element with id %q", id)
		}
		return el, nil
	}
	return doc.ElementAt(rootID, path)
}

func (s *Script) check(mount dom.Element, res *Result) []*errors.Error {
	var out []*errors.Error
	fail := func(format string, args ...any) {
		out = append(out, s.expectError(fmt.Sprintf(format, args...)))
	}

	e := s.Expect
	lis := memdom.ElementsByTag(mount, "li")
	if e.Items != nil && len(lis) != *e.Items {
		fail("items = %d, want %d", len(lis), *e.Items)
	}
	if e.Texts != nil {
		got := itemTexts(lis)
		if !reflect.DeepEqual(got, e.Texts) {
			fail("texts = %q, want %q", got, e.Texts)
		}
	}
	for _, sub := range e.HTMLContains {
		if !strings.Contains(res.HTML, sub) {
			fail("HTML does not contain %q", sub)
		}
	}
	if e.Hash != nil && res.Hash != *e.Hash {
		fail("hash = %q, want %q", res.Hash, *e.Hash)
	}
	if st := e.State; st != nil {
		if st.Todos != nil && !reflect.DeepEqual(nonNil(res.State.Todos), st.Todos) {
			fail("todos = %+v, want %+v", res.State.Todos, st.Todos)
		}
		if st.Filter != nil && res.State.Filter != *st.Filter {
			fail("filter = %q, want %q", res.State.Filter, *st.Filter)
		}
		if st.EditingIndex != nil && res.State.EditingIndex != *st.EditingIndex {
			fail("editingIndex = %d, want %d", res.State.EditingIndex, *st.EditingIndex)
		}
	}
	return out
}

// itemTexts returns the text of each list item, excluding its buttons.
func itemTexts(lis []dom.Element) []string {
	out := make([]string, 0, len(lis))
	for _, li := range lis {
		var b strings.Builder
		for _, c := range li.ChildNodes() {
			switch n := c.(type) {
			case dom.Element:
				if n.Tag() == "input" {
					b.WriteString(n.Value())
				}
			default:
				b.WriteString(c.TextContent())
			}
		}
		out = append(out, b.String())
	}
	return out
}

func nonNil(t []todo.Todo) []todo.Todo {
	if t == nil {
		return []todo.Todo{}
	}
	return t
}
