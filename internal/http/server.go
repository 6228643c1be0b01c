package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"expensereport/internal/cache"
	"expensereport/internal/i18n"
	"expensereport/internal/log"
	"expensereport/internal/middleware/security"
	"expensereport/internal/middleware/trace"
	"expensereport/internal/receipt"
	"expensereport/internal/storage"
	"expensereport/internal/store"
)

// Dependencies are the collaborators the handlers work on.
type Dependencies struct {
	Store           *store.Store
	Local           *storage.Local
	Views           *cache.Views
	CacheManager    *cache.Manager
	Logger          *log.Logger
	MaxReceiptBytes int64
}

type Server struct {
	http.Server
	store        *store.Store
	local        *storage.Local
	views        *cache.Views
	cacheManager *cache.Manager
	logger       *log.Logger
	maxReceipt   int64

	guard     *security.Guard
	tracer    *trace.Middleware
	startedAt time.Time

	shutdownOnce sync.Once
}

// NewServer wires the routes. Store and Local are required.
func NewServer(addr string, deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.Discard()
	}
	views := deps.Views
	if views == nil {
		views = cache.NewViews(5*time.Minute, deps.CacheManager)
	}
	maxReceipt := deps.MaxReceiptBytes
	if maxReceipt <= 0 {
		maxReceipt = receipt.DefaultMaxBytes
	}

	s := &Server{
		store:        deps.Store,
		local:        deps.Local,
		views:        views,
		cacheManager: deps.CacheManager,
		logger:       logger.WithComponent(log.ComponentHTTP),
		maxReceipt:   maxReceipt,
		guard:        security.NewGuard(logger),
		startedAt:    time.Now(),
	}
	s.tracer = trace.NewMiddleware(logger, s.guard.ExtractClientIP)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("PATCH /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("POST /api/expenses/{id}/receipt", s.handleAttachReceipt)
	mux.HandleFunc("DELETE /api/expenses/{id}/receipt", s.handleRemoveReceipt)

	mux.HandleFunc("GET /api/selection", s.handleGetSelection)
	mux.HandleFunc("DELETE /api/selection", s.handleClearSelection)
	mux.HandleFunc("POST /api/selection/toggle", s.handleToggleSelection)
	mux.HandleFunc("POST /api/selection/toggle-all", s.handleToggleAll)

	mux.HandleFunc("POST /api/bulk/approve", s.handleBulkApprove)
	mux.HandleFunc("POST /api/bulk/reject", s.handleBulkReject)
	mux.HandleFunc("POST /api/bulk/delete", s.handleBulkDelete)

	mux.HandleFunc("POST /api/save", s.handleSave)
	mux.HandleFunc("GET /api/export.csv", s.handleExportCSV)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/projection", s.handleProjection)

	mux.HandleFunc("GET /api/preferences", s.handleGetPreferences)
	mux.HandleFunc("PUT /api/preferences", s.handleUpdatePreferences)
	mux.HandleFunc("POST /api/preferences/theme/toggle", s.handleToggleTheme)
	mux.HandleFunc("GET /api/i18n", s.handleI18n)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	var handler http.Handler = mux
	handler = s.guard.SameOrigin(handler)
	handler = headers.Middleware(handler)
	handler = s.tracer.Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// translator picks the saved locale, else negotiates from Accept-Language.
func (s *Server) translator(r *http.Request) *i18n.Translator {
	loc, saved := s.local.Locale(r.Context())
	if !saved {
		loc = i18n.Negotiate(r.Header.Get("Accept-Language"), loc)
	}
	return i18n.New(loc)
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// handleReady checks the persistence backend.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]any{}

	if err := s.local.Ready(ctx); err != nil {
		checks["storage"] = "failed: " + err.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["storage"] = "ok"
	}

	checks["store"] = map[string]any{"version": s.store.Version(), "dirty": s.store.Dirty()}
	checks["cache"] = map[string]any{"entries": s.views.Size()}
	checks["requests"] = s.tracer.TotalRequests()
	checks["crossOriginRejected"] = s.guard.Rejected()

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// storeError maps store errors onto responses.
func storeError(tr *i18n.Translator, err error) *ResponseBuilder {
	if errors.Is(err, store.ErrNotFound) {
		return NotFoundError(tr, err)
	}
	return UnprocessableEntityError(tr, "invalidInput", err)
}
