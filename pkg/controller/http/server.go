package http

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/service/chart"
	"github.com/secmon-lab/riskdss/pkg/utils/errutil"
	"github.com/secmon-lab/riskdss/pkg/utils/logging"
	"github.com/secmon-lab/riskdss/pkg/utils/safe"
)

type Server struct {
	router      *chi.Mux
	dashboard   DashboardUseCase
	metrics     MetricsCollector
	corsOrigins []string
	page        *template.Template
}

type Options func(*Server)

// WithMetrics enables request metrics and the /metrics endpoint
func WithMetrics(m MetricsCollector) Options {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithCORSOrigins allows cross-origin GET requests to /api from origins
func WithCORSOrigins(origins []string) Options {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

func New(dashboard DashboardUseCase, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	page, err := parsePageTemplate()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    r,
		dashboard: dashboard,
		page:      page,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	if s.metrics != nil {
		r.Use(requestMetrics(s.metrics))
	}
	r.Use(middleware.Recoverer)

	r.Get("/", s.pageHandler)

	r.Route("/api", func(r chi.Router) {
		if len(s.corsOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: s.corsOrigins,
				AllowedMethods: []string{"GET", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
		}
		r.Get("/overview", s.overviewHandler)
		r.Get("/analysis", s.analysisHandler)
		r.Get("/critical", s.criticalHandler)
		r.Get("/records", s.recordsHandler)
	})

	r.Route("/charts", func(r chi.Router) {
		for _, format := range []chart.Format{chart.FormatSVG, chart.FormatPNG} {
			r.Get("/before-after"+format.Ext(), s.chartHandler(chart.BeforeAfter, format))
			r.Get("/heatmap"+format.Ext(), s.chartHandler(chart.HeatMap, format))
		}
	})

	r.Get("/health", healthHandler)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests and stores a request
// scoped logger in the context
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.From(r.Context()).With("request_id", middleware.GetReqID(r.Context()))
		r = r.WithContext(logging.With(r.Context(), logger))

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// requestMetrics counts requests by matched route pattern and status
func requestMetrics(m MetricsCollector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest(route, status)
		})
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, []byte("ok"))
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, data)
}
