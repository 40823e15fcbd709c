package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/njchilds90/symbolic"
)

const requestIDHeader = "X-Request-Id"

type metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rejected prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		calls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "symbolic_tool_calls_total",
			Help: "Total tool calls by tool and result",
		}, []string{"tool", "result"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "symbolic_tool_call_duration_seconds",
			Help:    "Tool call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
		}, []string{"tool"}),
		rejected: f.NewCounter(prometheus.CounterOpts{
			Name: "symbolic_rate_limited_total",
			Help: "Tool calls rejected by the rate limiter",
		}),
	}
}

// server exposes the kernel's tool calls over HTTP. The kernel is
// single-threaded, so calls against the shared registry are serialized.
type server struct {
	cfg      Config
	logger   *slog.Logger
	limiter  *rate.Limiter
	tracer   trace.Tracer
	metrics  *metrics
	gatherer prometheus.Gatherer

	mu       sync.Mutex
	registry *symbolic.Registry
}

func newServer(cfg Config, logger *slog.Logger) *server {
	reg := prometheus.NewRegistry()
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	return &server{
		cfg:      cfg,
		logger:   logger,
		limiter:  rate.NewLimiter(limit, cfg.RateBurst),
		tracer:   otel.Tracer("symbolic-server"),
		metrics:  newMetrics(reg),
		gatherer: reg,
		registry: symbolic.NewRegistry(),
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/tool", s.handleTool)
	mux.HandleFunc("/schema", s.handleSchema)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// POST /tool — handle a tool call
func (s *server) handleTool(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(requestIDHeader, id)
	logger := s.logger.With("request_id", id)

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("panic in /tool", "panic", rec, "stack", string(debug.Stack()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !s.limiter.Allow() {
		s.metrics.rejected.Inc()
		writeJSON(w, http.StatusTooManyRequests, symbolic.ToolResponse{Error: "rate limit exceeded"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req symbolic.ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, symbolic.ToolResponse{Error: err.Error()})
		return
	}
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, symbolic.ToolResponse{Error: "invalid JSON: trailing data"})
		return
	}
	if s.cfg.Compact {
		if req.Params == nil {
			req.Params = map[string]interface{}{}
		}
		if _, ok := req.Params["compact"]; !ok {
			req.Params["compact"] = true
		}
	}

	_, span := s.tracer.Start(r.Context(), "symbolic.HandleToolCall",
		trace.WithAttributes(
			attribute.String("tool", req.Tool),
			attribute.String("request_id", id),
		),
	)
	defer span.End()

	start := time.Now()
	s.mu.Lock()
	resp := s.registry.HandleToolCall(req)
	s.mu.Unlock()
	elapsed := time.Since(start)

	result := "ok"
	if resp.Error != "" {
		result = "error"
		span.SetStatus(codes.Error, resp.Error)
		logger.Warn("tool call failed", "tool", req.Tool, "error", resp.Error, "duration", elapsed)
	} else {
		span.SetStatus(codes.Ok, "")
		logger.Info("tool call", "tool", req.Tool, "duration", elapsed)
	}
	s.metrics.calls.WithLabelValues(req.Tool, result).Inc()
	s.metrics.duration.WithLabelValues(req.Tool).Observe(elapsed.Seconds())

	writeJSON(w, http.StatusOK, resp)
}

// GET /schema — return tool schema for agent registration
func (s *server) handleSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(symbolic.ToolSpec()))
}

// GET /health — liveness check
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
