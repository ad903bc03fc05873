// Package preview serves the demo application to a browser.
//
// Every WebSocket connection gets its own session: an in-memory document and
// an App running server-side. The browser page is a thin shell. It forwards
// DOM events (as element-index paths below the mount point) and fragment
// changes, and replaces the mount point's content with the HTML the server
// sends after each render.
//
// Routes:
//
//	GET /         host page with the client script
//	GET /ws       session WebSocket
//	GET /healthz  liveness probe
//	GET /metrics  Prometheus metrics, when enabled in the config
//
// Messages are JSON objects with a "type" field. The client sends "event"
// and "hash" messages. The server sends "html" and "error" messages.
package preview
