package preview

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/miniframe/internal/config"
	"github.com/vango-dev/miniframe/pkg/telemetry"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Config is the project configuration. Default: config.New().
	Config *config.Config

	// Logger receives server and session logs. Default: discard.
	Logger *slog.Logger

	// Registry collects metrics. Default: a new registry with the Go and
	// process collectors.
	Registry *prometheus.Registry
}

// Server is the preview server.
type Server struct {
	cfg      *config.Config
	rootID   string
	logger   *slog.Logger
	registry *prometheus.Registry
	tel      *telemetry.Telemetry
	upgrader websocket.Upgrader
	router   chi.Router

	nextID     atomic.Uint64
	mu         sync.Mutex
	sessions   map[*session]struct{}
	httpServer *http.Server
}

// New creates a preview server.
func New(opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	s := &Server{
		cfg:      cfg,
		rootID:   cfg.Mount.RootID,
		logger:   logger.With("component", "preview"),
		registry: reg,
		tel:      telemetry.New(telemetry.WithRegistry(reg)),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local preview only
			},
		},
		sessions: make(map[*session]struct{}),
	}
	if s.rootID == "" {
		s.rootID = config.DefaultRootID
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok\n")
	})
	if s.cfg.MetricsEnabled() {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Telemetry returns the metrics shared by all sessions.
func (s *Server) Telemetry() *telemetry.Telemetry {
	return s.tel
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sess, err := s.newSession(s.nextID.Add(1), conn)
	if err != nil {
		s.logger.Error("session setup failed", "error", err)
		return
	}

	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()
	s.tel.SessionOpened()
	sess.logger.Info("session opened", "remote", r.RemoteAddr)

	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess)
		s.mu.Unlock()
		s.tel.SessionClosed()
		sess.logger.Info("session closed")
	}()

	sess.start(r.URL.Query().Get("hash"))
	sess.serve()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Run serves on the configured address until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.cfg.PreviewAddress(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server starting", "url", s.cfg.PreviewURL())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for sess := range s.sessions {
		sess.conn.Close()
	}
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	s.logger.Info("preview server stopped")
	return nil
}
