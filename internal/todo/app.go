// Package todo is the demo to-do application. It is plain call-site code
// over the miniframe App: a view function, state operations and a route
// fold that keeps the filter in sync with the location fragment.
package todo

import (
	"github.com/vango-dev/miniframe"
)

// New creates an App for the demo. Initial and FoldRoute are filled in
// unless the caller set them.
func New(opts miniframe.Options) (*miniframe.App, error) {
	if opts.Initial == nil {
		opts.Initial = Initial()
	}
	if opts.FoldRoute == nil {
		opts.FoldRoute = FoldRoute
	}
	return miniframe.New(opts)
}

// Start creates the demo App and mounts View.
func Start(opts miniframe.Options) (*miniframe.App, error) {
	app, err := New(opts)
	if err != nil {
		return nil, err
	}
	if err := app.Start(View); err != nil {
		return app, err
	}
	return app, nil
}
