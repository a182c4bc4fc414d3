package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var errTemplatesNotLoaded = errors.New("templates not loaded")

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

// handleReady reports whether the page can be served: templates parsed and data loaded
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]any)

	if s.templates == nil {
		checks["templates"] = "failed: " + errTemplatesNotLoaded.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.data == nil {
		checks["data"] = "failed: no data loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["data"] = map[string]any{
			"transactions":    len(s.data.Transactions),
			"aggregates_mode": s.data.Mode,
			"mismatches":      len(s.data.Mismatches),
			"status":          "ok",
		}
	}

	stats := s.viewCache.Stats()
	checks["view_cache"] = map[string]any{
		"entries": stats.Size,
		"status":  "ok",
	}
	checks["rate_limiter"] = map[string]any{
		"active_clients": s.exportLimiter.ActiveClients(),
		"status":         "ok",
	}

	writeJSON(w, r, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics provides application and security metrics in plain text format
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	securityMetrics := s.securityDetector.GetMetrics()
	rateLimitMetrics := s.exportLimiter.GetMetrics()
	traceMetrics := s.traceMiddleware.GetMetrics()
	cacheStats := s.viewCache.Stats()
	uptime := time.Since(s.started)

	w.WriteHeader(http.StatusOK)

	// Write metrics in Prometheus-like format
	metric := func(name, kind, help string, value any) {
		fmt.Fprintf(w, "# HELP %s %s\n", name, help)
		fmt.Fprintf(w, "# TYPE %s %s\n", name, kind)
		fmt.Fprintf(w, "%s %v\n\n", name, value)
	}
	metric("http_requests_total", "counter", "Total number of HTTP requests", traceMetrics.TotalRequests)
	metric("http_request_duration_avg_microseconds", "gauge", "Average request duration", traceMetrics.AverageResponseTime)
	metric("view_cache_hits_total", "counter", "Total view cache hits", cacheStats.Hits)
	metric("view_cache_misses_total", "counter", "Total view cache misses", cacheStats.Misses)
	metric("view_cache_evictions_total", "counter", "Total view cache evictions", cacheStats.Evictions)
	metric("view_cache_entries", "gauge", "Current view cache entries", cacheStats.Size)
	metric("export_rate_limit_hits_total", "counter", "Total export requests rejected by the rate limiter", rateLimitMetrics.TotalHits)
	metric("export_rate_limit_clients", "gauge", "Currently tracked export clients", rateLimitMetrics.ClientCount)
	metric("suspicious_requests_total", "counter", "Total suspicious requests detected", securityMetrics.SuspiciousRequests)
	metric("invalid_forwarded_ip_total", "counter", "Forwarded client IPs that failed to parse", securityMetrics.InvalidIPAttempts)
	metric("transactions_loaded", "gauge", "Transactions in the loaded data set", len(s.data.Transactions))
	metric("uptime_seconds", "gauge", "Application uptime in seconds", fmt.Sprintf("%.0f", uptime.Seconds()))
}
