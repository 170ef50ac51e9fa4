// Package api serves the dashboard's HTTP and websocket endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/vietddude/stacksyield/internal/bridge"
	"github.com/vietddude/stacksyield/internal/core/domain"
	"github.com/vietddude/stacksyield/internal/health"
	"github.com/vietddude/stacksyield/internal/wallet"
	"github.com/vietddude/stacksyield/internal/yield"
)

// Config configures the API server.
type Config struct {
	Port        int
	CORSOrigins []string
	Profit      yield.ProfitParams
	Health      *health.Monitor // nil reports healthy
}

// Server provides the REST API, the transaction stream and metrics.
type Server struct {
	wallets *wallet.Tracker
	bridges *bridge.Service
	yields  yield.Source
	stream  *Stream
	profit  yield.ProfitParams
	monitor *health.Monitor
	handler http.Handler
	server  *http.Server
	log     *slog.Logger
}

// NewServer creates a new API server.
func NewServer(cfg Config, wallets *wallet.Tracker, bridges *bridge.Service, yields yield.Source, stream *Stream) *Server {
	mux := http.NewServeMux()
	s := &Server{
		wallets: wallets,
		bridges: bridges,
		yields:  yields,
		stream:  stream,
		profit:  cfg.Profit,
		monitor: cfg.Health,
		log:     slog.Default().With("component", "api"),
	}

	mux.HandleFunc("GET /api/yields", s.handleYields)
	mux.HandleFunc("GET /api/yields/best", s.handleBestYield)
	mux.HandleFunc("GET /api/yields/recommendation", s.handleRecommendation)

	mux.HandleFunc("GET /api/wallets", s.handleWallets)
	mux.HandleFunc("POST /api/wallets/refresh", s.handleRefreshWallets)
	mux.HandleFunc("POST /api/wallets/{chain}/connect", s.handleConnect)
	mux.HandleFunc("POST /api/wallets/{chain}/disconnect", s.handleDisconnect)
	mux.HandleFunc("PUT /api/wallets/{chain}/balance", s.handleSetBalance)

	mux.HandleFunc("POST /api/bridge", s.handleBridge)
	mux.HandleFunc("GET /api/bridge/transactions", s.handleTransactions)
	mux.HandleFunc("DELETE /api/bridge/transactions", s.handleClearTransactions)
	mux.HandleFunc("POST /api/bridge/transactions/{id}/refresh", s.handleRefreshTransaction)
	mux.HandleFunc("GET /api/bridge/current", s.handleCurrent)
	mux.HandleFunc("PUT /api/bridge/current", s.handleSetCurrent)
	mux.HandleFunc("GET /api/bridge/estimate", s.handleEstimate)

	mux.Handle("GET /ws", stream)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/detailed", s.handleDetailed)
	mux.Handle("GET /metrics", promhttp.Handler())

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Info("API server listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) report(r *http.Request) health.HealthReport {
	if s.monitor == nil {
		return health.HealthReport{SystemStatus: health.StatusHealthy}
	}
	return s.monitor.CheckHealth(r.Context())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.report(r)
	code := http.StatusOK
	if report.SystemStatus == health.StatusCritical {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": string(report.SystemStatus)})
}

func (s *Server) handleDetailed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.report(r))
}

type errorResponse struct {
	Success     bool                      `json:"success"`
	Error       string                    `json:"error"`
	Transaction *domain.BridgeTransaction `json:"transaction,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrUnknownChain):
		return http.StatusBadRequest
	case errors.Is(err, bridge.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrWalletNotConnected):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(err, domain.ErrConnectionFailure),
		errors.Is(err, domain.ErrContractCallFailure),
		errors.Is(err, domain.ErrNoSignerAvailable):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func chainParam(r *http.Request, name string, required bool) (*domain.Chain, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		if required {
			return nil, fmt.Errorf("%w: %s is required", domain.ErrUnknownChain, name)
		}
		return nil, nil
	}
	chain, err := domain.ParseChain(raw)
	if err != nil {
		return nil, err
	}
	return &chain, nil
}
