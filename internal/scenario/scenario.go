package scenario

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/miniframe/internal/errors"
	"github.com/vango-dev/miniframe/internal/todo"
)

// Script is a scripted session against the demo application.
type Script struct {
	// Name identifies the script in reports.
	Name string `yaml:"name"`

	// Description explains what the script checks.
	Description string `yaml:"description,omitempty"`

	// Hash is the location fragment set before the app starts.
	Hash string `yaml:"hash,omitempty"`

	// Steps run in order after the app starts.
	Steps []Step `yaml:"steps"`

	// Expect is checked against the final tree and state.
	Expect Expect `yaml:"expect"`

	// Golden is a file, relative to the script, holding the expected inner
	// HTML of the mount point.
	Golden string `yaml:"golden,omitempty"`

	path      string
	stepLines []int
	expLine   int
}

// Step is one user action. Exactly one field is set.
type Step struct {
	// Input types value into the control at Path.
	Input *InputStep `yaml:"input,omitempty"`

	// Event dispatches an event on an element.
	Event *EventStep `yaml:"event,omitempty"`

	// Click clicks the button with the given label.
	Click string `yaml:"click,omitempty"`

	// Hash sets the location fragment.
	Hash *string `yaml:"hash,omitempty"`
}

// InputStep types into a form control.
type InputStep struct {
	// Path is a list of element-child indexes below the mount point.
	Path []int `yaml:"path,omitempty"`

	// ID selects the control by id instead of Path.
	ID string `yaml:"id,omitempty"`

	Value string `yaml:"value"`
}

// EventStep dispatches an event.
type EventStep struct {
	// Path is a list of element-child indexes below the mount point.
	Path []int `yaml:"path"`

	// Type is the event type, e.g. click, keypress, blur.
	Type string `yaml:"type"`

	Key string `yaml:"key,omitempty"`

	// Value, if set, becomes the target's live value before dispatch.
	Value *string `yaml:"value,omitempty"`
}

// Expect lists the checks run after the last step. Unset fields are not
// checked.
type Expect struct {
	// Items is the number of list items rendered.
	Items *int `yaml:"items,omitempty"`

	// Texts are the texts of the rendered list items, in order.
	Texts []string `yaml:"texts,omitempty"`

	// HTMLContains are substrings of the mount point's inner HTML.
	HTMLContains []string `yaml:"html_contains,omitempty"`

	// Hash is the final location fragment, with its leading '#'.
	Hash *string `yaml:"hash,omitempty"`

	// State is checked against the typed application state.
	State *StateExpect `yaml:"state,omitempty"`
}

// StateExpect checks parts of the application state.
type StateExpect struct {
	Todos        []todo.Todo `yaml:"todos,omitempty"`
	Filter       *string     `yaml:"filter,omitempty"`
	EditingIndex *int        `yaml:"editingIndex,omitempty"`
}

// Path returns the file the script was loaded from.
func (s *Script) Path() string {
	return s.path
}

// Load reads and parses a script file. Unknown fields are rejected.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeScenarioParse).Wrap(err)
	}
	s, err := Parse(data)
	if err != nil {
		var e *errors.Error
		if stderrors.As(err, &e) && e.Location != nil {
			e.WithLocation(path, e.Location.Line, e.Location.Column)
		}
		return nil, err
	}
	s.path = path
	return s, nil
}

// Parse parses a script from YAML.
func Parse(data []byte) (*Script, error) {
	var s Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, errors.New(errors.CodeScenarioParse).Wrap(err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.New(errors.CodeScenarioParse).Wrap(err)
	}
	s.stepLines, s.expLine = positions(&root)

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	if s.Name == "" {
		return errors.New(errors.CodeScenarioParse).WithDetail("name is required")
	}
	for i, step := range s.Steps {
		n := 0
		if step.Input != nil {
			n++
		}
		if step.Event != nil {
			n++
			if step.Event.Type == "" {
				return s.stepError(i, errors.CodeScenarioParse, "event step has no type")
			}
		}
		if step.Click != "" {
			n++
		}
		if step.Hash != nil {
			n++
		}
		if n != 1 {
			return s.stepError(i, errors.CodeScenarioParse,
				fmt.Sprintf("step %d must set exactly one of input, event, click, hash (has %d)", i+1, n))
		}
	}
	return nil
}

// positions returns the line of each step and of the expect block.
func positions(root *yaml.Node) ([]int, int) {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, 0
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, 0
	}
	var steps []int
	expect := 0
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		switch key.Value {
		case "steps":
			for _, item := range val.Content {
				steps = append(steps, item.Line)
			}
		case "expect":
			expect = key.Line
		}
	}
	return steps, expect
}

func (s *Script) stepError(i int, code, detail string) *errors.Error {
	e := errors.New(code).WithDetail(detail)
	if i >= 0 && i < len(s.stepLines) {
		e.Location = &errors.Location{File: s.path, Line: s.stepLines[i]}
		if s.path != "" {
			e.WithLocation(s.path, s.stepLines[i], 0)
		}
	}
	return e
}

func (s *Script) expectError(detail string) *errors.Error {
	e := errors.New(errors.CodeScenarioFailed).WithDetail(detail)
	if s.expLine > 0 {
		e.Location = &errors.Location{File: s.path, Line: s.expLine}
		if s.path != "" {
			e.WithLocation(s.path, s.expLine, 0)
		}
	}
	return e
}

// goldenPath resolves Golden relative to the script.
func (s *Script) goldenPath() string {
	if s.Golden == "" || filepath.IsAbs(s.Golden) || s.path == "" {
		return s.Golden
	}
	return filepath.Join(filepath.Dir(s.path), s.Golden)
}
