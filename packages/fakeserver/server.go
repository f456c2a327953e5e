// Package fakeserver provides a local HTTP server that returns canned
// responses so browser tests never depend on live network services.
package fakeserver

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPort is the fixed port tests expect the fake server on.
const DefaultPort = 4537

// Server serves canned responses loaded from fixture files.
type Server struct {
	router  *Router
	port    int
	delay   time.Duration
	limiter *rate.Limiter
	verbose bool
	stats   *Stats
}

// Option is a functional option for Server.
type Option func(*Server)

// WithPort sets the server port.
func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithDelay adds a delay to all responses, simulating network latency.
func WithDelay(delay time.Duration) Option {
	return func(s *Server) {
		s.delay = delay
	}
}

// WithRateLimit throttles responses to n per second, simulating a slow
// or rate-limited network.
func WithRateLimit(n float64) Option {
	return func(s *Server) {
		if n > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithVerbose enables per-request logging.
func WithVerbose(verbose bool) Option {
	return func(s *Server) {
		s.verbose = verbose
	}
}

// NewServer creates a new fake-response server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		router: NewRouter(),
		port:   DefaultPort,
		stats:  NewStats(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadFixtureFile loads routes from one fixture file.
func (s *Server) LoadFixtureFile(path string) error {
	routes, err := LoadFixtures(path)
	if err != nil {
		return err
	}
	for _, route := range routes {
		s.router.AddRoute(route)
	}
	return nil
}

// LoadFixtureDir loads routes from every fixture file in a directory.
func (s *Server) LoadFixtureDir(dir string) error {
	routes, err := LoadFixtureDir(dir)
	if err != nil {
		return err
	}
	for _, route := range routes {
		s.router.AddRoute(route)
	}
	return nil
}

// Routes returns all registered routes.
func (s *Server) Routes() []*Route {
	return s.router.routes
}

// Stats returns the server's request stats.
func (s *Server) Stats() *Stats {
	return s.stats
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// Handler returns the server's HTTP handler. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)
	return mux
}

// Start starts the server and blocks until it fails or is shut down.
func (s *Server) Start() error {
	return s.StartWithContext(context.Background())
}

// StartWithContext starts the server and shuts it down gracefully when
// ctx is canceled.
func (s *Server) StartWithContext(ctx context.Context) error {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("Fake-response server starting on %s", s.Addr())
	log.Printf("Routes loaded: %d", len(s.router.routes))

	if s.verbose {
		for _, route := range s.router.routes {
			log.Printf("  %s %s -> %d", route.Method, route.PathPattern, route.Response.StatusCode)
		}
	}

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if s.limiter != nil {
		if err := s.limiter.Wait(r.Context()); err != nil {
			return
		}
	}

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	route, params := s.router.Match(r.Method, r.URL.Path)

	if route == nil {
		s.stats.Record(time.Since(start), false)
		if s.verbose {
			log.Printf("%s %s -> 404 Not Found (%s)", r.Method, r.URL.Path, time.Since(start))
		}
		http.NotFound(w, r)
		return
	}

	resp := route.Response
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}

	body := resolveBodyParams(resp.Body, params)

	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write([]byte(body))

	s.stats.Record(time.Since(start), true)
	if s.verbose {
		log.Printf("%s %s -> %d (%s)", r.Method, r.URL.Path, resp.StatusCode, time.Since(start))
	}
}

// resolveBodyParams substitutes {{param}} placeholders in the body with
// values captured from the request path.
func resolveBodyParams(body string, params map[string]string) string {
	result := body
	for key, value := range params {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}
