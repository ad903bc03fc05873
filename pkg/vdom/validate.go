package vdom

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSpec is returned for malformed element specs.
var ErrInvalidSpec = errors.New("invalid element spec")

// SpecError locates a malformed node inside a tree.
type SpecError struct {
	Path   string // e.g. "div>ul>li[2]"
	Reason string
}

// Error implements the error interface.
func (e *SpecError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidSpec, e.Reason)
	}
	return fmt.Sprintf("%s at %s: %s", ErrInvalidSpec, e.Path, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidSpec) hold.
func (e *SpecError) Unwrap() error {
	return ErrInvalidSpec
}

// Validate reports the first malformed node of the tree rooted at v.
func Validate(v *VNode) error {
	return validate(v, "")
}

func validate(v *VNode, path string) error {
	if v == nil {
		return &SpecError{Path: path, Reason: "nil node"}
	}
	switch v.Kind {
	case KindText:
		return nil
	case KindElement:
	default:
		return &SpecError{Path: path, Reason: "unknown kind " + v.Kind.String()}
	}

	here := joinPath(path, v.Tag)
	if !ValidTag(v.Tag) {
		return &SpecError{Path: here, Reason: fmt.Sprintf("invalid tag %q", v.Tag)}
	}
	if len(v.rejected) > 0 {
		return &SpecError{Path: here, Reason: "unsupported argument " + v.rejected[0]}
	}
	for key, value := range v.Attrs {
		if key == "" {
			return &SpecError{Path: here, Reason: "empty attribute name"}
		}
		if _, ok := AttrString(value); !ok {
			return &SpecError{Path: here, Reason: fmt.Sprintf("attribute %q has unsupported type %T", key, value)}
		}
	}
	for name, fn := range v.Events {
		if fn == nil {
			return &SpecError{Path: here, Reason: fmt.Sprintf("event %q has no callback", name)}
		}
	}
	for i, child := range v.Children {
		if err := validate(child, here+"["+strconv.Itoa(i)+"]"); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(path, tag string) string {
	if path == "" {
		return tag
	}
	return path + ">" + tag
}

// ValidTag reports whether tag is an ASCII letter followed by letters,
// digits or hyphens.
func ValidTag(tag string) bool {
	if tag == "" {
		return false
	}
	for i, r := range tag {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-'):
		default:
			return false
		}
	}
	return true
}

// AttrString converts an attribute value to the string set on the node.
// Booleans become "true"/"false", matching setAttribute.
func AttrString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

// String renders a compact, human-readable form of the tree for logs and
// test failures. Event callbacks are listed by name only.
func (v *VNode) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v *VNode) write(b *strings.Builder) {
	if v == nil {
		b.WriteString("<nil>")
		return
	}
	if v.Kind == KindText {
		b.WriteString(strconv.Quote(v.Text))
		return
	}
	b.WriteString("(")
	b.WriteString(v.Tag)
	for _, key := range sortedKeys(v.Attrs) {
		s, _ := AttrString(v.Attrs[key])
		fmt.Fprintf(b, " %s=%q", key, s)
	}
	for _, name := range sortedKeys(v.Events) {
		fmt.Fprintf(b, " @%s", name)
	}
	for _, c := range v.Children {
		b.WriteString(" ")
		c.write(b)
	}
	b.WriteString(")")
}
