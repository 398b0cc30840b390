package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/user/anicatalog-go/internal/catalog"
	"github.com/user/anicatalog-go/internal/config"
	"github.com/user/anicatalog-go/internal/store"
	"golang.org/x/time/rate"
)

var (
	contentTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "anicatalog_content_total",
		Help: "Total number of content entries in the catalog",
	})

	queriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "anicatalog_queries_total",
		Help: "Total number of catalog queries served",
	}, []string{"operation"})

	queryDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "anicatalog_query_duration_seconds",
		Help:    "Duration of catalog queries in seconds",
		Buckets: prometheus.DefBuckets,
	})

	errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "anicatalog_errors_total",
		Help: "Total number of errors",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(contentTotal)
	prometheus.MustRegister(queriesTotal)
	prometheus.MustRegister(queryDurationSeconds)
	prometheus.MustRegister(errorsTotal)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// Server handles HTTP requests for the catalog API, health checks and
// metrics
type Server struct {
	catalog   *catalog.Service
	store     store.Store
	router    *http.ServeMux
	server    *http.Server
	limiter   *rate.Limiter
	startTime time.Time
}

// NewServer creates a new HTTP server instance
func NewServer(svc *catalog.Service, st store.Store, cfg config.ServerConfig) *Server {
	s := &Server{
		catalog:   svc,
		store:     st,
		router:    http.NewServeMux(),
		startTime: time.Now(),
	}
	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /api/genres", s.instrument("genres", s.handleGenres))
	s.router.HandleFunc("GET /api/movies", s.instrument("movies", s.handleMovies))
	s.router.HandleFunc("GET /api/content", s.instrument("contentByType", s.handleContentByType))
	s.router.HandleFunc("GET /api/content/{id}", s.instrument("contentByID", s.handleContentByID))
	s.router.HandleFunc("GET /api/content/recent", s.instrument("recentlyUpdated", s.handleRecentlyUpdated))
	s.router.HandleFunc("GET /api/content/search", s.instrument("search", s.handleSearch))
	s.router.HandleFunc("GET /api/content/filter", s.instrument("filtered", s.handleFiltered))
	s.router.HandleFunc("GET /api/content/count", s.instrument("countByType", s.handleCountByType))
	s.router.HandleFunc("GET /api/content/ids", s.instrument("contentIDs", s.handleContentIDs))
	s.router.HandleFunc("GET /api/schedule", s.instrument("scheduledContent", s.handleScheduledContent))
	s.router.HandleFunc("GET /api/schedule/upcoming", s.instrument("upcomingEpisodes", s.handleUpcomingEpisodes))
	s.router.HandleFunc("GET /api/schedule/weekly", s.instrument("weeklySchedule", s.handleWeeklySchedule))

	// Health check endpoint
	s.router.HandleFunc("GET /health", s.handleHealth)

	// Metrics endpoint
	s.router.Handle("GET /metrics", promhttp.Handler())
}

// instrument wraps a handler with the per-operation counter and the shared
// duration histogram.
func (s *Server) instrument(operation string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		queriesTotal.WithLabelValues(operation).Inc()
		h(w, r)
		queryDurationSeconds.Observe(time.Since(start).Seconds())
	}
}

// rateLimit rejects requests above the configured global rate with 429.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			errorsTotal.WithLabelValues("rate_limited").Inc()
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Handler returns the fully wrapped handler (for tests)
func (s *Server) Handler() http.Handler {
	return s.rateLimit(s.router)
}

// Start begins listening on the specified port
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Int("port", port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Info().Msg("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}

// RunMetricsLoop periodically refreshes the content gauge until the context
// is cancelled
func (s *Server) RunMetricsLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		count, err := s.store.CountContent(ctx, store.ContentCriteria{})
		if err != nil {
			log.Error().Err(err).Msg("Failed to refresh content count metric")
		} else {
			contentTotal.Set(float64(count))
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

// handleHealth handles the /health endpoint.
// Returns JSON with status, database connectivity, and uptime.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbStatus := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		dbStatus = fmt.Sprintf("unhealthy: %v", err)
	}

	uptime := time.Since(s.startTime).Round(time.Second).String()

	status := "healthy"
	if dbStatus != "healthy" {
		status = "unhealthy"
	}

	response := HealthResponse{
		Status:   status,
		Database: dbStatus,
		Uptime:   uptime,
	}

	w.Header().Set("Content-Type", "application/json")
	if status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Msg("Failed to encode health response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// GetUptime returns the server uptime
func (s *Server) GetUptime() time.Duration {
	return time.Since(s.startTime)
}
