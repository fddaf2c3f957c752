package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/teranos/jazzgraph/errors"
	"github.com/teranos/jazzgraph/logger"
)

// RequestIDHeader carries the per-request id back to the caller
const RequestIDHeader = "X-Request-ID"

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// routes configures all HTTP handlers
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ws", s.HandleWebSocket) // explorer session protocol
	mux.HandleFunc("GET /health", s.HandleHealth)

	mux.HandleFunc("GET /api/graph", s.HandleGraph)
	mux.HandleFunc("GET /api/path", s.HandlePath)
	mux.HandleFunc("GET /api/neighborhood", s.HandleNeighborhood)
	mux.HandleFunc("GET /api/artists", s.HandleSearch)
	mux.HandleFunc("GET /api/artists/{id}", s.HandleArtist)
	mux.HandleFunc("GET /api/artists/{id}/network", s.HandleArtistNetwork)
	mux.HandleFunc("GET /api/artists/{id}/related", s.HandleArtistRelated)
	mux.HandleFunc("GET /api/albums/{id}/related", s.HandleAlbumRelated)
	mux.HandleFunc("GET /api/genres", s.HandleGenres)
	mux.HandleFunc("GET /api/eras", s.HandleEras)

	return s.requestIDMiddleware(s.corsMiddleware(s.rateLimitMiddleware(mux)))
}

// corsMiddleware adds CORS headers for allowed origins and answers preflight requests
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.checkOrigin(r) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware rejects /api/ requests over the configured rate with 429
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && strings.HasPrefix(r.URL.Path, "/api/") && !s.limiter.Allow() {
			err := errors.Wrapf(errors.ErrRateLimited, "%s %s", r.Method, r.URL.Path)
			logger.LoggerFromContext(r.Context(), s.logger).Warnw("Request rate limited",
				logger.FieldPath, r.URL.Path,
			)
			w.Header().Set("Retry-After", "1")
			writeErr(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware tags each request with an id for logs and the response header.
// A well-formed incoming X-Request-ID is kept.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := logger.WithRequestID(r.Context(), id)
		ctx = logger.WithComponent(ctx, "http")
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))

		if logger.ShouldOutput(int(s.verbosity.Load()), logger.OutputHTTPCalls) {
			logger.LoggerFromContext(ctx, s.logger).Debugw("HTTP request",
				logger.FieldMethod, r.Method,
				logger.FieldPath, r.URL.Path,
				logger.FieldQuery, r.URL.RawQuery,
				logger.FieldDurationMS, time.Since(start).Milliseconds(),
			)
		}
	})
}
