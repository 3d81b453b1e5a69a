package preview

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"maragu.dev/gomponents"

	"github.com/tradition-dev/site/pkg/contact"
	"github.com/tradition-dev/site/pkg/page"
	"github.com/tradition-dev/site/pkg/pref"
)

// Config configures the preview server.
type Config struct {
	// Address is the listen address, e.g. "localhost:3000".
	Address string

	// StaticDir is the directory holding the site files. Empty disables
	// static serving.
	StaticDir string

	// Page controls the rendered contact page.
	Page page.Options

	// Rules checks the contact form. Nil uses contact.DefaultRules.
	Rules contact.RuleSet

	// NamePref pre-fills the name field. Nil disables the pre-fill.
	NamePref *pref.Pref[string]

	// Metrics is handed to every contact handler.
	Metrics *contact.Metrics

	// Gatherer backs /metrics. Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Logger is the server logger. Default: slog.Default().
	Logger *slog.Logger

	// ShutdownTimeout bounds graceful shutdown. Default: 5s.
	ShutdownTimeout time.Duration
}

// Server is the preview HTTP server.
type Server struct {
	config     Config
	router     chi.Router
	logger     *slog.Logger
	httpServer *http.Server
}

// New creates a preview server. It returns an E181 error when the static
// directory is configured but missing.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.StaticDir != "" {
		if info, err := os.Stat(cfg.StaticDir); err != nil || !info.IsDir() {
			return nil, staticDirError(cfg.StaticDir, err)
		}
	}

	s := &Server{
		config: cfg,
		logger: cfg.Logger,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/contact", s.contactPage)

	static := http.HandlerFunc(s.serveStatic)
	r.Get("/*", static)
	r.Head("/*", static)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
	return r
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return listenError(s.config.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	s.logger.Info("preview server stopped")
	return nil
}

// contactPage renders a fresh contact form. Each request gets its own
// handler and surface.
func (s *Server) contactPage(w http.ResponseWriter, r *http.Request) {
	surface := page.NewSurface()
	h := contact.NewHandler(
		contact.WithView(surface),
		contact.WithRules(s.config.Rules),
		contact.WithNamePref(s.config.NamePref),
		contact.WithLogger(s.logger),
		contact.WithMetrics(s.config.Metrics),
	)
	h.Restore(r.Context())

	renderHTML(w, http.StatusOK, page.Document(h.Form(), surface, s.config.Page))
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

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
