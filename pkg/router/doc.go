// Package router derives route state from the location fragment.
//
// The fragment protocol is "#routeName/param1/param2/...". Routing is plain
// string splitting: there are no patterns and no nested routes.
//
//	r := router.New(window)
//	r.OnChange(func(rt router.Route) error {
//	    return st.Update(store.State{"filter": rt.Name})
//	})
//	if err := r.Initialize(); err != nil {
//	    return err
//	}
//	r.Navigate("completed")
//
// An empty fragment yields the route "home" with no parameters.
package router
