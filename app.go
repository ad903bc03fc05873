package miniframe

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/vango-dev/miniframe/pkg/dom"
	"github.com/vango-dev/miniframe/pkg/render"
	"github.com/vango-dev/miniframe/pkg/router"
	"github.com/vango-dev/miniframe/pkg/store"
	"github.com/vango-dev/miniframe/pkg/telemetry"
	"github.com/vango-dev/miniframe/pkg/vdom"
)

var (
	// ErrNoDocument is returned by New when Options.Document is nil.
	ErrNoDocument = errors.New("miniframe: no document")

	// ErrNoWindow is returned by New when no window is given and the
	// document does not provide one.
	ErrNoWindow = errors.New("miniframe: no window")

	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("miniframe: app already started")
)

// Component produces the element spec of the whole UI.
type Component func(*App) *vdom.VNode

// Options configures an App.
type Options struct {
	// Document is the host document the UI is rendered into. Required.
	Document dom.Document

	// Window supplies the location fragment. If nil, Document is used when
	// it also implements dom.Window.
	Window dom.Window

	// RootID is the id of the mount point (default: "root").
	RootID string

	// Initial is the starting state. It is copied.
	Initial store.State

	// DefaultRoute is the route name for an empty fragment (default: "home").
	DefaultRoute string

	// FoldRoute maps a route to the partial state merged on every route
	// change. Default: {"route": name, "params": params}.
	FoldRoute func(router.Route) store.State

	// Logger receives framework logs. Default: discard.
	Logger *slog.Logger

	// Telemetry, if set, observes store passes, renders and route changes.
	Telemetry *telemetry.Telemetry

	// OnRender is called after every render attempt.
	OnRender func(render.Info)
}

// DefaultFoldRoute stores the route name under "route" and its parameters
// under "params".
func DefaultFoldRoute(r router.Route) store.State {
	return store.State{"route": r.Name, "params": r.Params}
}

// App is the application context object.
type App struct {
	doc    dom.Document
	win    dom.Window
	store  *store.Store
	router *router.Router
	driver *render.Driver
	fold   func(router.Route) store.State
	logger *slog.Logger

	mu        sync.Mutex
	started   bool
	component Component
}

// New creates an App. Nothing is rendered and no listener is registered on
// the host page until Start.
func New(opts Options) (*App, error) {
	if opts.Document == nil {
		return nil, ErrNoDocument
	}
	win := opts.Window
	if win == nil {
		w, ok := opts.Document.(dom.Window)
		if !ok {
			return nil, ErrNoWindow
		}
		win = w
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fold := opts.FoldRoute
	if fold == nil {
		fold = DefaultFoldRoute
	}

	storeOpts := []store.Option{store.WithLogger(logger.With("component", "store"))}
	renderOpts := []render.Option{
		render.WithRootID(opts.RootID),
		render.WithLogger(logger.With("component", "render")),
	}
	routerOpts := []router.Option{router.WithLogger(logger.With("component", "router"))}
	if opts.DefaultRoute != "" {
		routerOpts = append(routerOpts, router.WithDefaultRoute(opts.DefaultRoute))
	}
	if opts.Telemetry != nil {
		storeOpts = append(storeOpts, opts.Telemetry.StoreOption())
		renderOpts = append(renderOpts, opts.Telemetry.RenderOption())
	}
	if opts.OnRender != nil {
		renderOpts = append(renderOpts, render.WithObserver(opts.OnRender))
	}

	a := &App{
		doc:    opts.Document,
		win:    win,
		fold:   fold,
		logger: logger,
	}
	a.store = store.New(opts.Initial, storeOpts...)
	a.router = router.New(win, routerOpts...)
	a.driver = render.NewDriver(opts.Document, a.root, renderOpts...)
	if opts.Telemetry != nil {
		a.router.OnChange(opts.Telemetry.RouteObserver())
	}
	return a, nil
}

// Start mounts component. It subscribes the render driver to the store,
// starts folding route changes into the state and initializes the router.
// Folding the initial route produces the first revision, which performs the
// initial render.
//
// The returned error is the failure of that first revision, typically a
// render error wrapped in store.ErrListenerFailure.
func (a *App) Start(component Component) error {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return ErrAlreadyStarted
	}
	a.started = true
	a.component = component
	a.mu.Unlock()

	a.store.Subscribe(a.driver.Listener())
	a.router.OnChange(func(r router.Route) error {
		return a.store.Update(a.fold(r))
	})

	a.logger.Info("app starting", "root", a.driver.RootID(), "hash", a.win.Hash())
	return a.router.Initialize()
}

// Started reports whether Start has been called.
func (a *App) Started() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.started
}

func (a *App) root() *vdom.VNode {
	a.mu.Lock()
	c := a.component
	a.mu.Unlock()
	if c == nil {
		return nil
	}
	return c(a)
}

// State returns the current state.
func (a *App) State() store.State {
	return a.store.Read()
}

// Update merges partial into the state and re-renders.
func (a *App) Update(partial store.State) error {
	return a.store.Update(partial)
}

// Navigate assigns the fragment for name and params. The route change is
// folded into the state by the resulting hashchange.
func (a *App) Navigate(name string, params ...string) {
	a.router.Navigate(name, params...)
}

// Store returns the App's store.
func (a *App) Store() *store.Store {
	return a.store
}

// Router returns the App's router.
func (a *App) Router() *router.Router {
	return a.router
}

// Driver returns the App's render driver.
func (a *App) Driver() *render.Driver {
	return a.driver
}

// Document returns the host document.
func (a *App) Document() dom.Document {
	return a.doc
}

// Logger returns the App's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
