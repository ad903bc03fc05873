package render

import (
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/vango-dev/miniframe/pkg/dom"
	"github.com/vango-dev/miniframe/pkg/dom/memdom"
	"github.com/vango-dev/miniframe/pkg/vdom"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func todoTree() *vdom.VNode {
	item := func(text string, done bool) *vdom.VNode {
		return vdom.Li(vdom.ClassIf(done, "completed"), vdom.OnClick(func() {}),
			text,
			vdom.Button(vdom.Class("edit-btn"), vdom.OnClick(func() {}), "Edit"),
		)
	}
	return vdom.Div(vdom.ID("app"),
		vdom.H1("TodoMVC"),
		vdom.Input(vdom.ID("todoInput"), vdom.Type("text"), vdom.Placeholder("Add a new task")),
		vdom.Ul(item("a", true), item("b", false)),
		vdom.Div("Total: 2 | Completed: 1 | Not Completed: 1"),
	)
}

func TestMaterializeTree(t *testing.T) {
	doc := memdom.New("")
	node, err := Materialize(doc, todoTree())
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	newGoldie(t).Assert(t, "todo_tree", []byte(memdom.OuterHTML(node)))
}

func TestMaterializeMixedChildren(t *testing.T) {
	doc := memdom.New("")
	node, err := Materialize(doc, vdom.Li("before", vdom.Button("Edit"), "after"))
	if err != nil {
		t.Fatal(err)
	}
	newGoldie(t).Assert(t, "mixed_children", []byte(memdom.OuterHTML(node)))

	el := node.(dom.Element)
	kids := el.ChildNodes()
	if len(kids) != 3 {
		t.Fatalf("children = %d, want 3", len(kids))
	}
	wantTypes := []dom.NodeType{dom.TextNode, dom.ElementNode, dom.TextNode}
	for i, want := range wantTypes {
		if kids[i].Type() != want {
			t.Errorf("child %d type = %v, want %v", i, kids[i].Type(), want)
		}
	}
}

func TestMaterializeAttributesVerbatim(t *testing.T) {
	doc := memdom.New("")
	spec := vdom.Input(
		vdom.Type("text"),
		vdom.Value("x"),
		vdom.Autofocus(true),
		vdom.Disabled(false),
		vdom.Data("note", `a <b> & "c"`),
	)
	node, err := Materialize(doc, spec)
	if err != nil {
		t.Fatal(err)
	}
	el := node.(dom.Element)

	// Values reach the node unmodified; only serialization escapes them.
	if got, _ := el.Attribute("data-note"); got != `a <b> & "c"` {
		t.Errorf("data-note = %q", got)
	}
	if got, _ := el.Attribute("autofocus"); got != "true" {
		t.Errorf("autofocus = %q, want true", got)
	}
	newGoldie(t).Assert(t, "attributes", []byte(memdom.OuterHTML(node)))
}

func TestMaterializeTextRoot(t *testing.T) {
	doc := memdom.New("")
	node, err := Materialize(doc, vdom.Text("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if node.Type() != dom.TextNode || node.TextContent() != "hello" {
		t.Errorf("node = %v %q", node.Type(), node.TextContent())
	}
}

func TestMaterializeTwiceProducesDistinctEquivalentTrees(t *testing.T) {
	doc := memdom.New("")
	spec := todoTree()

	a, err := Materialize(doc, spec)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Materialize(doc, spec)
	if err != nil {
		t.Fatal(err)
	}

	if memdom.OuterHTML(a) != memdom.OuterHTML(b) {
		t.Errorf("trees differ:\n%s\n%s", memdom.OuterHTML(a), memdom.OuterHTML(b))
	}
	if memdom.Unwrap(a) == memdom.Unwrap(b) {
		t.Error("Materialize returned the same node twice")
	}
	la := memdom.ElementsByTag(a.(dom.Element), "li")
	lb := memdom.ElementsByTag(b.(dom.Element), "li")
	for i := range la {
		if memdom.Unwrap(la[i]) == memdom.Unwrap(lb[i]) {
			t.Errorf("li %d shared between trees", i)
		}
	}
}

func TestMaterializeDoesNotMutateSpec(t *testing.T) {
	doc := memdom.New("")
	spec := todoTree()
	before := spec.String()
	if _, err := Materialize(doc, spec); err != nil {
		t.Fatal(err)
	}
	if after := spec.String(); after != before {
		t.Errorf("spec changed:\nbefore %s\nafter  %s", before, after)
	}
}

func TestMaterializeBindsEvents(t *testing.T) {
	doc := memdom.New("")
	var got []string
	spec := vdom.Input(
		vdom.OnBlur(func(e dom.Event) { got = append(got, "blur:"+e.Value) }),
		vdom.OnKeyPress(func(e dom.Event) { got = append(got, "key:"+e.Key) }),
	)
	node, err := Materialize(doc, spec)
	if err != nil {
		t.Fatal(err)
	}
	el := node.(dom.Element)

	doc.SetValue(el, "typed")
	doc.KeyPress(el, "Enter")
	doc.Blur(el)

	want := []string{"key:Enter", "blur:typed"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if n := doc.ListenerCount(el, "blur"); n != 1 {
		t.Errorf("blur listeners = %d, want 1", n)
	}
}

func TestMaterializeInvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		spec *vdom.VNode
	}{
		{"nil", nil},
		{"missing tag", &vdom.VNode{Kind: vdom.KindElement}},
		{"bad nested tag", vdom.Div(vdom.Ul(vdom.El("not a tag")))},
		{"bad attr", vdom.Div(vdom.AttrOf("n", 1.5))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Materialize(memdom.New(""), tt.spec)
			if !errors.Is(err, vdom.ErrInvalidSpec) {
				t.Errorf("error = %v, want ErrInvalidSpec", err)
			}
		})
	}
}

// failingDoc rejects one tag, the way a host can refuse element creation.
type failingDoc struct {
	*memdom.Document
	reject string
}

func (f failingDoc) CreateElement(tag string) (dom.Element, error) {
	if tag == f.reject {
		return nil, errors.New("host refused")
	}
	return f.Document.CreateElement(tag)
}

func TestMaterializeHostFailurePropagates(t *testing.T) {
	doc := failingDoc{Document: memdom.New(""), reject: "li"}
	_, err := Materialize(doc, vdom.Ul(vdom.Li("a")))
	if !errors.Is(err, vdom.ErrInvalidSpec) {
		t.Errorf("error = %v, want ErrInvalidSpec", err)
	}
}
