package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/miniframe/pkg/render"
	"github.com/vango-dev/miniframe/pkg/router"
	"github.com/vango-dev/miniframe/pkg/store"
)

// DefaultTracerName is the tracer name used when none is configured.
const DefaultTracerName = "miniframe"

// Config configures metrics and tracing.
type Config struct {
	// Namespace is the metrics namespace (default: "miniframe").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// TracerName names the tracer taken from the global provider.
	TracerName string

	// Tracer overrides the global tracer provider.
	Tracer trace.Tracer
}

// Option configures a Telemetry.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// WithTracerName sets the name of the tracer taken from the global provider.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Config) {
		c.Tracer = tracer
	}
}

func defaultConfig() Config {
	return Config{
		Namespace:  "miniframe",
		Buckets:    prometheus.DefBuckets,
		Registry:   prometheus.DefaultRegisterer,
		TracerName: DefaultTracerName,
	}
}

// Telemetry holds the collectors and tracer shared by every observed store,
// driver and router.
type Telemetry struct {
	storePasses   *prometheus.CounterVec
	storeDuration prometheus.Histogram
	storeQueue    prometheus.Gauge
	renders       *prometheus.CounterVec
	renderTime    prometheus.Histogram
	renderNodes   prometheus.Histogram
	routeChanges  *prometheus.CounterVec
	sessions      prometheus.Gauge

	tracer trace.Tracer
}

// New creates and registers the collectors. It panics if they are already
// registered with the chosen registry, so call it once per registry.
func New(opts ...Option) *Telemetry {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Buckets == nil {
		config.Buckets = prometheus.DefBuckets
	}

	tracer := config.Tracer
	if tracer == nil {
		tracer = otel.Tracer(config.TracerName)
	}

	factory := promauto.With(config.Registry)

	return &Telemetry{
		storePasses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_passes_total",
			Help:        "Total number of store notification passes",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		storeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_pass_duration_seconds",
			Help:        "Store notification pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		storeQueue: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_queue_depth",
			Help:        "Updates queued behind the most recent notification pass",
			ConstLabels: config.ConstLabels,
		}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of render attempts",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		renderTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		renderNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_nodes",
			Help:        "Spec nodes materialized per successful render",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(8, 4, 6), // 8 to 8192
		}),

		routeChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "route_changes_total",
			Help:        "Total number of route changes by route name",
			ConstLabels: config.ConstLabels,
		}, []string{"route"}),

		sessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "preview_sessions",
			Help:        "Number of open preview connections",
			ConstLabels: config.ConstLabels,
		}),

		tracer: tracer,
	}
}

// StoreOption returns a store option that reports every pass to t.
func (t *Telemetry) StoreOption() store.Option {
	return store.WithObserver(t.ObserveStore)
}

// RenderOption returns a render option that reports every render to t.
func (t *Telemetry) RenderOption() render.Option {
	return render.WithObserver(t.ObserveRender)
}

// ObserveStore records one store notification pass.
func (t *Telemetry) ObserveStore(p store.Pass) {
	t.storePasses.WithLabelValues(status(p.Err)).Inc()
	t.storeDuration.Observe(p.Duration.Seconds())
	t.storeQueue.Set(float64(p.Queued))

	t.span("miniframe.store.notify", p.Start, p.Start.Add(p.Duration), p.Err,
		attribute.Int64("miniframe.revision", int64(p.Revision)),
		attribute.Int("miniframe.listeners", p.Listeners),
		attribute.Int("miniframe.queued", p.Queued),
	)
}

// ObserveRender records one render attempt.
func (t *Telemetry) ObserveRender(i render.Info) {
	t.renders.WithLabelValues(status(i.Err)).Inc()
	t.renderTime.Observe(i.Duration.Seconds())
	if i.Err == nil {
		t.renderNodes.Observe(float64(i.Nodes))
	}

	t.span("miniframe.render", i.Start, i.Start.Add(i.Duration), i.Err,
		attribute.Int64("miniframe.render_seq", int64(i.Seq)),
		attribute.Int("miniframe.nodes", i.Nodes),
	)
}

// RouteObserver returns a router observer that counts route changes.
func (t *Telemetry) RouteObserver() router.Observer {
	return func(r router.Route) error {
		t.routeChanges.WithLabelValues(r.Name).Inc()
		return nil
	}
}

// SessionOpened increments the open preview connection gauge.
func (t *Telemetry) SessionOpened() {
	t.sessions.Inc()
}

// SessionClosed decrements the open preview connection gauge.
func (t *Telemetry) SessionClosed() {
	t.sessions.Dec()
}

func (t *Telemetry) span(name string, start, end time.Time, err error, attrs ...attribute.KeyValue) {
	_, span := t.tracer.Start(context.Background(), name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(start),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(end))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
