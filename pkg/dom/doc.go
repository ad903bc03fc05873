// Package dom defines the host document that element specs are materialized
// into.
//
// The interfaces here cover exactly what the renderer and router need from a
// browser-like host: creating element and text nodes, setting attributes,
// binding event listeners, replacing the children of a mount point, and
// observing the location fragment.
//
// Two implementations ship with the module:
//
//   - memdom: an in-memory document backed by golang.org/x/net/html nodes.
//     It is used by tests, the CLI and the preview server.
//   - jsdom: a js/wasm implementation over syscall/js for real browsers.
//
// All methods are expected to be called from a single goroutine, the same way
// browser DOM access is confined to the main thread.
package dom
