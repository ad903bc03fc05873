// Package miniframe binds a Store, a hash Router and a render Driver into one
// application object.
//
// Components are plain functions of the App. Event callbacks close over the
// App and change state through it; every change re-renders the whole UI.
//
//	app, err := miniframe.New(miniframe.Options{
//	    Document: doc,
//	    Initial:  store.State{"todos": []Todo{}},
//	})
//	if err != nil {
//	    return err
//	}
//	return app.Start(func(a *miniframe.App) *vdom.VNode {
//	    return vdom.Div(vdom.Textf("route: %s", a.Router().CurrentRoute()))
//	})
//
// The App has an explicit lifecycle: New wires nothing to the host page,
// Start subscribes the driver, initializes the router and renders. Several
// Apps can share a process, each with its own document.
package miniframe
