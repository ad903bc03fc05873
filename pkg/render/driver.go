package render

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/miniframe/pkg/dom"
	"github.com/vango-dev/miniframe/pkg/store"
	"github.com/vango-dev/miniframe/pkg/vdom"
)

// DefaultRootID is the id of the mount point used when none is configured.
const DefaultRootID = "root"

// ErrMountNotFound is returned when the document has no mount point.
var ErrMountNotFound = errors.New("render: mount point not found")

// RootFunc produces the element spec for the whole UI from current state.
type RootFunc func() *vdom.VNode

// Info describes one render pass, for observers.
type Info struct {
	Seq      uint64 // 1-based count of attempted renders
	Nodes    int    // spec nodes materialized; 0 on failure
	Start    time.Time
	Duration time.Duration
	Err      error
}

// Option configures a Driver.
type Option func(*Driver)

// WithRootID sets the id of the mount point element.
func WithRootID(id string) Option {
	return func(d *Driver) {
		if id != "" {
			d.rootID = id
		}
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithObserver registers fn to be called after every render attempt.
func WithObserver(fn func(Info)) Option {
	return func(d *Driver) {
		if fn != nil {
			d.observers = append(d.observers, fn)
		}
	}
}

// Driver re-derives the whole UI into a mount point.
//
// Every Render discards the mount point's content and replaces it with a
// freshly materialized tree; nothing is diffed or reused. Node-local browser
// state (focus, caret, scroll, typed input) does not survive a render unless
// it round-trips through the store.
type Driver struct {
	doc    dom.Document
	root   RootFunc
	rootID string
	logger *slog.Logger

	observers []func(Info)

	mu       sync.Mutex
	attempts uint64
	renders  uint64
}

// NewDriver creates a Driver rendering root into doc.
func NewDriver(doc dom.Document, root RootFunc, opts ...Option) *Driver {
	d := &Driver{
		doc:    doc,
		root:   root,
		rootID: DefaultRootID,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Mount creates a Driver and subscribes it to st, so that every store
// revision re-renders the UI. Mount itself does not render.
func Mount(doc dom.Document, st *store.Store, root RootFunc, opts ...Option) *Driver {
	d := NewDriver(doc, root, opts...)
	st.Subscribe(d.Listener())
	return d
}

// Listener adapts Render to a store listener.
func (d *Driver) Listener() store.Listener {
	return func(store.State) error {
		return d.Render()
	}
}

// RootID returns the id of the mount point.
func (d *Driver) RootID() string {
	return d.rootID
}

// Renders returns the number of completed renders.
func (d *Driver) Renders() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.renders
}

// Render calls the root function, materializes its result and makes it the
// mount point's only child.
//
// The new tree is fully built before the mount point is touched, so a
// failing root function or a malformed spec leaves the previous content in
// place. A panic in the root function propagates unchanged.
func (d *Driver) Render() error {
	d.mu.Lock()
	d.attempts++
	seq := d.attempts
	d.mu.Unlock()

	start := time.Now()
	nodes, err := d.render()
	info := Info{
		Seq:      seq,
		Nodes:    nodes,
		Start:    start,
		Duration: time.Since(start),
		Err:      err,
	}

	if err != nil {
		d.logger.Error("render failed", "seq", seq, "error", err)
	} else {
		d.mu.Lock()
		d.renders++
		d.mu.Unlock()
		d.logger.Debug("rendered", "seq", seq, "nodes", nodes, "duration", info.Duration)
	}

	for _, obs := range d.observers {
		obs(info)
	}
	return err
}

func (d *Driver) render() (int, error) {
	mount := d.doc.GetElementByID(d.rootID)
	if mount == nil {
		return 0, fmt.Errorf("%w: #%s", ErrMountNotFound, d.rootID)
	}
	if d.root == nil {
		return 0, fmt.Errorf("%w: no root function", vdom.ErrInvalidSpec)
	}

	spec := d.root()
	node, err := Materialize(d.doc, spec)
	if err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}

	mount.ReplaceChildren(node)
	return spec.Count(), nil
}
