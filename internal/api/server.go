// Package api serves the directory over a read-only JSON HTTP interface.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/scout-cli/internal/browser"
	"github.com/sells-group/scout-cli/internal/dataset"
	"github.com/sells-group/scout-cli/internal/orgchart"
	"github.com/sells-group/scout-cli/internal/resident"
)

// Options tunes the server.
type Options struct {
	PageSizes browser.PageSizes
	// RateLimit is the sustained requests per second; 0 disables limiting.
	RateLimit   float64
	RateBurst   int
	CORSOrigins []string
}

// Server answers directory queries against one catalog.
type Server struct {
	catalog  *dataset.Catalog
	linker   *orgchart.Linker
	resolver *resident.Resolver
	sizes    browser.PageSizes
	router   chi.Router
}

// New builds the server and its routes.
func New(cat *dataset.Catalog, linker *orgchart.Linker, resolver *resident.Resolver, opts Options) *Server {
	if linker == nil {
		linker = orgchart.NewLinker(nil, nil)
	}
	if resolver == nil {
		resolver = resident.NewResolver()
	}
	s := &Server{
		catalog:  cat,
		linker:   linker,
		resolver: resolver,
		sizes:    opts.PageSizes,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	if opts.RateLimit > 0 {
		r.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.RateBurst, 1))))
	}

	r.Get("/health", s.handleHealth)
	r.Get("/options", s.handleOptions)
	r.Route("/facilities", func(r chi.Router) {
		r.Get("/", s.handleFacilities)
		r.Get("/{id}", s.handleProfile)
		r.Get("/{id}/residents", s.handleResidents)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
