// Package telemetry records Prometheus metrics and OpenTelemetry spans for
// store notification passes, renders and route changes.
//
// A Telemetry value is wired in through the observer hooks of the store and
// render packages:
//
//	tel := telemetry.New(telemetry.WithRegistry(reg))
//	st := store.New(initial, tel.StoreOption())
//	d := render.Mount(doc, st, root, tel.RenderOption())
//
// Metrics collected (default namespace "miniframe"):
//   - miniframe_store_passes_total: notification passes by status
//   - miniframe_store_pass_duration_seconds: notification pass duration
//   - miniframe_store_queue_depth: partials queued behind the last pass
//   - miniframe_renders_total: render attempts by status
//   - miniframe_render_duration_seconds: render duration
//   - miniframe_render_nodes: spec nodes materialized per render
//   - miniframe_route_changes_total: route changes by route name
//   - miniframe_preview_sessions: open preview connections
//
// Spans are recorded after the fact with the start and end timestamps of the
// observed pass, using the global tracer provider unless WithTracer is given.
package telemetry
