package router

import (
	"io"
	"log/slog"
	"sync"

	"github.com/vango-dev/miniframe/pkg/dom"
)

// Observer is notified after every route computation.
type Observer func(Route) error

// Option configures a Router.
type Option func(*Router)

// WithDefaultRoute overrides the route name used for an empty fragment.
func WithDefaultRoute(name string) Option {
	return func(r *Router) {
		if name != "" {
			r.fallback = name
		}
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// Router tracks the route encoded in a window's location fragment.
//
// A Router starts uninitialized: CurrentRoute is "" and Params is nil.
// Initialize moves it to tracking, after which the route is recomputed on
// every hashchange.
type Router struct {
	win      dom.Window
	fallback string
	logger   *slog.Logger

	mu        sync.Mutex
	tracking  bool
	current   Route
	observers []Observer
	lastErr   error
}

// New creates an uninitialized Router over win.
func New(win dom.Window, opts ...Option) *Router {
	r := &Router{
		win:      win,
		fallback: DefaultRoute,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize registers the hashchange listener and computes the route from
// the current fragment, so the route is valid before any change occurs.
//
// Only the first call has an effect. Later calls return nil without
// registering another listener or recomputing.
//
// The returned error is the observer failure of the initial computation.
func (r *Router) Initialize() error {
	r.mu.Lock()
	if r.tracking {
		r.mu.Unlock()
		r.logger.Debug("router already initialized")
		return nil
	}
	r.tracking = true
	r.mu.Unlock()

	r.win.AddHashChangeListener(func() {
		_ = r.update()
	})
	return r.update()
}

// Initialized reports whether Initialize has run.
func (r *Router) Initialized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tracking
}

// CurrentRoute returns the last computed route name.
func (r *Router) CurrentRoute() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Name
}

// Params returns a copy of the last computed parameter list.
func (r *Router) Params() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current.Params == nil {
		return nil
	}
	out := make([]string, len(r.current.Params))
	copy(out, r.current.Params)
	return out
}

// Route returns the last computed route.
func (r *Router) Route() Route {
	return Route{Name: r.CurrentRoute(), Params: r.Params()}
}

// OnChange registers fn to run after every route computation, in
// registration order. A failing observer stops the remaining ones for that
// computation; the failure is logged and kept for Err.
func (r *Router) OnChange(fn Observer) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.observers = append(r.observers, fn)
	r.mu.Unlock()
}

// Err returns the most recent observer failure, or nil.
func (r *Router) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Navigate assigns the fragment for name and params. The route itself is
// recomputed by the resulting hashchange, not by Navigate.
func (r *Router) Navigate(name string, params ...string) {
	r.win.SetHash(Fragment(name, params...))
}

func (r *Router) update() error {
	route := parse(r.win.Hash(), r.fallback)

	r.mu.Lock()
	r.current = route
	observers := make([]Observer, len(r.observers))
	copy(observers, r.observers)
	r.mu.Unlock()

	r.logger.Debug("route changed", "route", route.Name, "params", route.Params)

	for i, fn := range observers {
		if err := fn(route); err != nil {
			r.logger.Error("route observer failed", "route", route.Name, "observer", i, "error", err)
			r.mu.Lock()
			r.lastErr = err
			r.mu.Unlock()
			return err
		}
	}
	return nil
}
