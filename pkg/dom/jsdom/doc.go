// Package jsdom implements the dom interfaces over syscall/js for programs
// compiled to WebAssembly and run in a browser.
//
// Event callbacks are js.Func values, which stay reachable until released.
// Each element that has listeners gets a numeric tag; when ReplaceChildren
// removes a subtree, the callbacks of every tagged element in it are retired
// and released on the next macrotask, after the event that caused the render
// has finished propagating through the detached nodes.
package jsdom
