package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"findash/internal/cache"
	"findash/internal/core"
	"findash/internal/dashboard"
	"findash/internal/log"
	"findash/internal/middleware/ratelimit"
	"findash/internal/middleware/security"
	"findash/internal/middleware/trace"
	appweb "findash/web"
)

// Options tunes the server. Zero values fall back to the defaults used by config.Load.
type Options struct {
	ViewCacheSize       int
	ViewCacheTTL        time.Duration
	ExportRatePerMinute int
	Logger              *log.Logger
}

func (o Options) withDefaults() Options {
	if o.ViewCacheSize <= 0 {
		o.ViewCacheSize = 100
	}
	if o.ViewCacheTTL <= 0 {
		o.ViewCacheTTL = 5 * time.Minute
	}
	if o.ExportRatePerMinute <= 0 {
		o.ExportRatePerMinute = 30
	}
	if o.Logger == nil {
		o.Logger = log.New(log.DefaultConfig())
	}
	return o
}

type Server struct {
	http.Server
	logger     *log.Logger
	structured *log.StructuredLogger
	templates  *template.Template
	data       *dashboard.Data

	// Filtered and sorted views keyed by ledger.Query.Key
	viewCache    *cache.LRUCache[[]core.Transaction]
	cacheManager *cache.Manager

	exportLimiter    *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware

	started      time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, data *dashboard.Data, opts Options) *Server {
	opts = opts.withDefaults()
	logger := opts.Logger.WithComponent(log.ComponentHTTP)
	mux := http.NewServeMux()

	s := &Server{
		logger:           logger,
		structured:       log.NewStructuredLogger(logger),
		data:             data,
		viewCache:        cache.NewLRUCache[[]core.Transaction](opts.ViewCacheSize, opts.ViewCacheTTL),
		cacheManager:     cache.NewManager(logger.Logger),
		exportLimiter:    ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.ExportRatePerMinute}),
		securityDetector: security.NewDetector(),
		started:          time.Now(),
	}
	s.traceMiddleware = trace.NewMiddleware(s.securityDetector.ExtractClientIP)

	s.cacheManager.Register("views", s.viewCache)
	s.cacheManager.StartCleanup(opts.ViewCacheTTL)

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.WithComponent(log.ComponentTemplate).Warn("Failed parsing templates", log.FieldError, err)
	} else {
		s.templates = t
	}

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/", s.getOnly(s.handleDashboard))
	mux.HandleFunc("/healthz", s.getOnly(s.handleHealth))
	mux.HandleFunc("/readyz", s.getOnly(s.handleReady))
	mux.HandleFunc("/metrics", s.getOnly(s.handleMetrics))

	// UI partials
	mux.HandleFunc("/ui/pie", s.getOnly(s.handlePie))
	mux.HandleFunc("/ui/bars", s.getOnly(s.handleBars))
	mux.HandleFunc("/ui/transactions", s.getOnly(s.handleTransactions))
	mux.HandleFunc("/ui/summary", s.getOnly(s.handleSummary))

	// JSON API
	mux.HandleFunc("/api/transactions", s.getOnly(s.handleAPITransactions))
	mux.HandleFunc("/api/categories", s.getOnly(s.handleAPICategories))
	mux.HandleFunc("/api/aggregates", s.getOnly(s.handleAPIAggregates))

	limited := s.exportLimiter.Middleware(s.securityDetector.ExtractClientIP, s.onExportLimited)
	mux.Handle("/export/transactions.xlsx", log.ComponentMiddleware(log.ComponentExport)(limited(s.getOnly(s.handleExport))))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	var handler http.Handler = mux
	handler = headers.Middleware(handler)
	handler = s.detectSuspicious(handler)
	handler = log.RequestIDMiddleware(func(r *http.Request) string { return trace.GetRequestID(r.Context()) })(handler)
	handler = log.Middleware(logger)(handler)
	handler = s.traceMiddleware.Middleware(handler)

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}
	return s
}

// getOnly rejects every method but GET with 405.
func (s *Server) getOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resp := RequireGET(r); resp != nil {
			resp.Write(w)
			return
		}
		next(w, r)
	}
}

// detectSuspicious logs requests matching known probe patterns. They are still served.
func (s *Server) detectSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.securityDetector.DetectSuspiciousRequest(r) {
			log.FromContext(r.Context()).WithComponent(log.ComponentSecurity).WarnContext(r.Context(), "Suspicious request",
				log.FieldPath, r.URL.Path,
				log.FieldClientIP, s.securityDetector.ExtractClientIP(r),
				log.FieldUserAgent, r.Header.Get("User-Agent"))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) onExportLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.securityDetector.ExtractClientIP(r),
		log.FieldPath, r.URL.Path)
	w.Header().Set("Retry-After", "60")
	http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	// Ensure shutdown logic runs only once
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.exportLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
		s.logger.Info("HTTP server stopped", log.FieldOperation, log.OpShutdown)
	})

	return shutdownErr
}
