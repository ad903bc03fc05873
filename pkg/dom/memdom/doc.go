// Package memdom is an in-memory implementation of the dom interfaces.
//
// A Document doubles as the window: it owns the location fragment and the
// hashchange listeners. Events are dispatched explicitly with Dispatch (or the
// Click, KeyPress, Blur and Type helpers) and bubble through element
// ancestors the way browser events do.
//
//	doc := memdom.New("root")
//	// ... mount an application into doc ...
//	btn := memdom.FindByText(doc.GetElementByID("root"), "button", "Add")
//	doc.Click(btn)
//	fmt.Println(memdom.InnerHTML(doc.GetElementByID("root")))
//
// hashchange listeners run synchronously inside SetHash.
package memdom
