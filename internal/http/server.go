// Package http provides the JSON API over the ledger backend.
package http

import (
	"net/http"
	"time"

	"ledger/internal/backend"
	"ledger/internal/cache"
	"ledger/internal/log"
)

const (
	reportCacheSize    = 64
	reportCacheTTL     = 5 * time.Minute
	cacheCleanupPeriod = time.Minute
)

// Server holds the backend and the report caches behind the HTTP handlers.
type Server struct {
	backend backend.Backend

	// Computed reports are cached per year and purged on every write.
	reportCache  *cache.LRU[[]byte]
	cacheManager *cache.Manager
}

// NewServer builds the http.Server with all routes registered.
func NewServer(addr string, b backend.Backend) *http.Server {
	s := &Server{
		backend:      b,
		reportCache:  cache.NewLRU[[]byte](reportCacheSize, reportCacheTTL),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.reportCache)
	s.cacheManager.StartCleanup(cacheCleanupPeriod)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/reports/largest-expense", s.handleLargestExpense)
	mux.HandleFunc("/api/reports/overview", s.handleYearOverview)

	httpLogger := log.New(log.Config{Component: log.ComponentHTTP})
	handler := log.Middleware(httpLogger)(mux)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}
	srv.RegisterOnShutdown(s.cacheManager.StopCleanup)
	return srv
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
