// Package render turns element specs into live nodes and keeps a mount point
// in sync with the store.
//
// Materialize is the pure half: spec in, fresh node tree out. Driver is the
// orchestration half: on every store revision it calls the application's
// root function, materializes the result and swaps it into the mount point.
//
//	st := store.New(store.State{"todos": []Todo{}})
//	d := render.Mount(doc, st, func() *vdom.VNode { return view(st.Read()) })
//	_ = d.Render()
//
// There is no reconciliation: each render rebuilds the whole subtree. The
// cost is proportional to tree size on every change, in exchange for a
// single code path.
package render
