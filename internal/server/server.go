// Package server exposes the ask pipeline, data entry and document
// extraction over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/procure-cli/internal/ask"
	"github.com/sells-group/procure-cli/internal/extract"
	"github.com/sells-group/procure-cli/internal/ingest"
	"github.com/sells-group/procure-cli/internal/model"
)

// Asker answers questions for a named profile.
type Asker interface {
	Ask(ctx context.Context, profile, question string) (*ask.Answer, error)
	Profiles() ask.Profiles
}

// Store is the write side used by the entry endpoints.
type Store interface {
	CreateSupplier(ctx context.Context, sup *model.Supplier) error
	CreateComponent(ctx context.Context, c *model.Component) error
	SaveQuote(ctx context.Context, rec *model.QuoteRecord) (*model.SaveResult, error)
	CreatePurchaseOrder(ctx context.Context, po *model.PurchaseOrder) error
	CreateLandedCost(ctx context.Context, lc *model.LandedCost) error
	CreatePayment(ctx context.Context, p *model.Payment) error
}

// Ingester extracts and stores uploaded documents.
type Ingester interface {
	Ingest(ctx context.Context, doc extract.Document, mode ingest.Mode, dryRun bool) (*ingest.Result, error)
}

// Options configures the HTTP surface.
type Options struct {
	CORSOrigins    []string
	MaxUploadBytes int64

	// LLMRatePerSec caps requests that reach a model (ask and extract)
	// across all clients. Zero disables the limit.
	LLMRatePerSec float64
	LLMBurst      int
}

const (
	maxJSONBody          = 1 << 20
	defaultMaxUploadSize = 20 << 20
)

// Server holds the injected services behind the HTTP handlers.
type Server struct {
	asker    Asker
	store    Store
	ingester Ingester
	opts     Options
	validate *validator.Validate
	limiter  *rate.Limiter
}

// New creates a Server. ingester may be nil, in which case the extract
// endpoint is not mounted.
func New(asker Asker, store Store, ingester Ingester, opts Options) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadSize
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	s := &Server{
		asker:    asker,
		store:    store,
		ingester: ingester,
		opts:     opts,
		validate: newValidator(),
	}
	if opts.LLMRatePerSec > 0 {
		burst := opts.LLMBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.LLMRatePerSec), burst)
	}
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/profiles", s.handleProfiles)
		r.With(s.limitLLM).Post("/ask", s.handleAsk)
		r.With(s.limitLLM).Post("/ask/{profile}", s.handleAsk)

		r.Post("/suppliers", s.handleCreateSupplier)
		r.Post("/components", s.handleCreateComponent)
		r.Post("/quotes", s.handleCreateQuote)
		r.Post("/purchase-orders", s.handleCreatePurchaseOrder)
		r.Post("/costs", s.handleCreateLandedCost)
		r.Post("/payments", s.handleCreatePayment)

		if s.ingester != nil {
			r.With(s.limitLLM).Post("/extract", s.handleExtract)
		}
	})

	return r
}

// limitLLM rejects requests over the shared model-call budget with 429.
func (s *Server) limitLLM(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with zap.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
