// Package server exposes a loaded document over a read-only JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/erraggy/rpcdoc/methodtree"
	"github.com/erraggy/rpcdoc/openrpc"
	"github.com/erraggy/rpcdoc/rpcerrors"
	"github.com/erraggy/rpcdoc/store"
)

// DefaultShutdownTimeout bounds how long Run waits for in-flight requests.
const DefaultShutdownTimeout = 10 * time.Second

// RequestIDHeader carries the request ID. An incoming value is kept;
// otherwise a random UUID is assigned.
const RequestIDHeader = "X-Request-Id"

type Option func(*Server)

// WithLogger sets the logger for request and lifecycle messages.
func WithLogger(l openrpc.Logger) Option {
	return func(s *Server) {
		s.log = openrpc.LoggerOrNop(l)
	}
}

// WithShutdownTimeout sets the graceful shutdown deadline. Values <= 0 are ignored.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// Server serves one Store. The store's caches are not safe for concurrent
// use, so every handler that touches it holds mu.
type Server struct {
	mu              sync.Mutex
	store           *store.Store
	log             openrpc.Logger
	shutdownTimeout time.Duration
	router          chi.Router
}

// New builds the router for s.
func New(s *store.Store, opts ...Option) *Server {
	srv := &Server{
		store:           s,
		log:             openrpc.NopLogger{},
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(srv)
	}

	r := chi.NewRouter()
	r.Use(srv.requestLog)
	r.Get("/health", srv.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/document", srv.document)
		r.Get("/stats", srv.stats)
		r.Get("/methods", srv.methods)
		// Method names contain slashes, so the name is the whole remainder.
		r.Get("/methods/*", srv.method)
		r.Get("/tree", srv.tree)
		r.Get("/resolve", srv.resolve)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	srv.router = r
	return srv
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on ls until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, ls net.Listener) error {
	hs := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.log.Info("serving", "addr", ls.Addr().String())
		return hs.Serve(ls)
	})
	eg.Go(func() error {
		<-egCtx.Done()
		s.log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	})

	err := eg.Wait()
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// ListenAndRun listens on addr and calls Run.
func (s *Server) ListenAndRun(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ls, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return s.Run(ctx, ls)
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLog tags every response with a request ID and logs it at debug level.
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed", time.Since(start),
		)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) document(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	raw := s.store.Document().Raw
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, raw)
}

func (s *Server) stats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	st := s.store.Stats()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) methods(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	found := s.store.Search(r.URL.Query().Get("q"))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) method(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")

	s.mu.Lock()
	described, err := s.store.DescribeMethod(name)
	s.mu.Unlock()
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, described)
}

func (s *Server) tree(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all, err := parseBool(q.Get("all"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid all parameter: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tree := s.store.MethodTree()
	open := methodtree.NewExpanded(q["open"]...)
	if all {
		open = methodtree.ExpandAll(tree)
	}
	writeJSON(w, http.StatusOK, methodtree.Materialize(tree, open))
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ref := q.Get("ref")
	if ref == "" {
		writeError(w, http.StatusBadRequest, "missing ref parameter")
		return
	}
	expand, err := parseBool(q.Get("expand"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expand parameter: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if expand {
		writeJSON(w, http.StatusOK, s.store.ResolveSchemaRef(ref))
		return
	}
	v, err := s.store.ResolveReference(ref)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// fail maps engine errors to status codes.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, rpcerrors.ErrResolution):
		status = http.StatusNotFound
	case errors.Is(err, rpcerrors.ErrShape):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
	}
	writeError(w, status, err.Error())
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
