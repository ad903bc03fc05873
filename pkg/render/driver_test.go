package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/miniframe/pkg/dom"
	"github.com/vango-dev/miniframe/pkg/dom/memdom"
	"github.com/vango-dev/miniframe/pkg/store"
	"github.com/vango-dev/miniframe/pkg/vdom"
)

type todo struct {
	Text      string
	Completed bool
}

func listView(st *store.Store) RootFunc {
	return func() *vdom.VNode {
		todos, _ := st.Read()["todos"].([]todo)
		return vdom.Ul(vdom.ID("list"),
			vdom.Range(todos, func(_ int, t todo) *vdom.VNode {
				return vdom.Li(vdom.ClassIf(t.Completed, "completed"), t.Text)
			}),
		)
	}
}

func mountHTML(t *testing.T, doc *memdom.Document, id string) string {
	t.Helper()
	mount := doc.GetElementByID(id)
	if mount == nil {
		t.Fatalf("mount #%s missing", id)
	}
	return memdom.InnerHTML(mount)
}

func TestDriverRenderReplacesContent(t *testing.T) {
	doc := memdom.New("")
	mount := doc.GetElementByID(DefaultRootID)
	mount.AppendChild(doc.CreateTextNode("stale"))

	d := NewDriver(doc, func() *vdom.VNode { return vdom.H1("fresh") })
	if err := d.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := mountHTML(t, doc, DefaultRootID); got != "<h1>fresh</h1>" {
		t.Errorf("mount = %q, want %q", got, "<h1>fresh</h1>")
	}
	if d.Renders() != 1 {
		t.Errorf("Renders() = %d, want 1", d.Renders())
	}
}

func TestDriverRendersOnEveryRevision(t *testing.T) {
	doc := memdom.New("")
	st := store.New(store.State{"todos": []todo{}, "filter": "all"})
	d := Mount(doc, st, listView(st))

	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
	if got := mountHTML(t, doc, DefaultRootID); got != `<ul id="list"></ul>` {
		t.Errorf("initial mount = %q", got)
	}

	if err := st.Update(store.State{"todos": []todo{{Text: "a"}}}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	mount := doc.GetElementByID(DefaultRootID)
	items := memdom.ElementsByTag(mount, "li")
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	if items[0].TextContent() != "a" {
		t.Errorf("item text = %q, want a", items[0].TextContent())
	}
	if class, _ := items[0].Attribute("class"); class == "completed" {
		t.Error("new item rendered as completed")
	}

	if err := st.Update(store.State{}); err != nil {
		t.Fatal(err)
	}
	if d.Renders() != 3 {
		t.Errorf("Renders() = %d, want 3", d.Renders())
	}
}

func TestDriverMountNotFound(t *testing.T) {
	doc := memdom.New("elsewhere")
	d := NewDriver(doc, func() *vdom.VNode { return vdom.Div() })

	err := d.Render()
	if !errors.Is(err, ErrMountNotFound) {
		t.Fatalf("Render() error = %v, want ErrMountNotFound", err)
	}

	d = NewDriver(doc, func() *vdom.VNode { return vdom.Div() }, WithRootID("elsewhere"))
	if err := d.Render(); err != nil {
		t.Errorf("Render() with root id error = %v", err)
	}
	if d.RootID() != "elsewhere" {
		t.Errorf("RootID() = %q", d.RootID())
	}
}

func TestDriverInvalidSpecKeepsPreviousContent(t *testing.T) {
	doc := memdom.New("")
	broken := false
	d := NewDriver(doc, func() *vdom.VNode {
		if broken {
			return vdom.Div(vdom.El("bad tag"))
		}
		return vdom.P("ok")
	})

	if err := d.Render(); err != nil {
		t.Fatal(err)
	}
	broken = true
	if err := d.Render(); !errors.Is(err, vdom.ErrInvalidSpec) {
		t.Fatalf("Render() error = %v, want ErrInvalidSpec", err)
	}
	if got := mountHTML(t, doc, DefaultRootID); got != "<p>ok</p>" {
		t.Errorf("mount after failure = %q, want previous content", got)
	}
	if d.Renders() != 1 {
		t.Errorf("Renders() = %d, want 1", d.Renders())
	}
}

func TestDriverNilRootFunc(t *testing.T) {
	d := NewDriver(memdom.New(""), nil)
	if err := d.Render(); !errors.Is(err, vdom.ErrInvalidSpec) {
		t.Errorf("Render() error = %v, want ErrInvalidSpec", err)
	}
}

func TestDriverRootPanicPropagates(t *testing.T) {
	doc := memdom.New("")
	fail := false
	d := NewDriver(doc, func() *vdom.VNode {
		if fail {
			panic("boom")
		}
		return vdom.P("ok")
	})
	if err := d.Render(); err != nil {
		t.Fatal(err)
	}

	fail = true
	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Errorf("recover() = %v, want boom", r)
			}
		}()
		_ = d.Render()
	}()

	if got := mountHTML(t, doc, DefaultRootID); got != "<p>ok</p>" {
		t.Errorf("mount after panic = %q, want previous content", got)
	}
}

func TestDriverListenerFailureSurfacesThroughStore(t *testing.T) {
	doc := memdom.New("other")
	st := store.New(nil)
	Mount(doc, st, func() *vdom.VNode { return vdom.Div() })

	err := st.Update(store.State{"x": 1})
	if !errors.Is(err, store.ErrListenerFailure) {
		t.Fatalf("Update() error = %v, want ErrListenerFailure", err)
	}
	if !errors.Is(err, ErrMountNotFound) {
		t.Errorf("Update() error = %v, want ErrMountNotFound in chain", err)
	}
}

func TestDriverEventTriggersRerender(t *testing.T) {
	doc := memdom.New("")
	st := store.New(store.State{"count": 0})
	Mount(doc, st, func() *vdom.VNode {
		n := st.Read()["count"].(int)
		return vdom.Button(
			vdom.OnClick(func() { _ = st.Update(store.State{"count": n + 1}) }),
			vdom.Textf("clicked %d", n),
		)
	})
	if err := st.Update(store.State{}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		btn, err := doc.ElementAt(DefaultRootID, []int{0})
		if err != nil {
			t.Fatal(err)
		}
		doc.Click(btn)
	}

	if got := mountHTML(t, doc, DefaultRootID); got != "<button>clicked 3</button>" {
		t.Errorf("mount = %q", got)
	}
}

func TestDriverObserver(t *testing.T) {
	doc := memdom.New("")
	var infos []Info
	d := NewDriver(doc,
		func() *vdom.VNode { return vdom.Ul(vdom.Li("a"), vdom.Li("b")) },
		WithObserver(func(i Info) { infos = append(infos, i) }),
	)
	_ = d.Render()
	_ = d.Render()

	if len(infos) != 2 {
		t.Fatalf("observer calls = %d, want 2", len(infos))
	}
	if infos[1].Seq != 2 {
		t.Errorf("Seq = %d, want 2", infos[1].Seq)
	}
	if infos[0].Nodes != 5 {
		t.Errorf("Nodes = %d, want 5", infos[0].Nodes)
	}
	if infos[0].Err != nil {
		t.Errorf("Err = %v", infos[0].Err)
	}
}

func TestDriverDropsListenersOfReplacedTree(t *testing.T) {
	doc := memdom.New("")
	d := NewDriver(doc, func() *vdom.VNode {
		return vdom.Button(vdom.OnClick(func(dom.Event) {}), "x")
	})
	_ = d.Render()
	first, _ := doc.ElementAt(DefaultRootID, []int{0})
	_ = d.Render()

	if n := doc.ListenerCount(first, "click"); n != 0 {
		t.Errorf("listeners on detached button = %d, want 0", n)
	}
	second, _ := doc.ElementAt(DefaultRootID, []int{0})
	if n := doc.ListenerCount(second, "click"); n != 1 {
		t.Errorf("listeners on live button = %d, want 1", n)
	}
	if !strings.Contains(doc.DocumentHTML(), `<div id="root"><button>x</button></div>`) {
		t.Errorf("document = %s", doc.DocumentHTML())
	}
}
