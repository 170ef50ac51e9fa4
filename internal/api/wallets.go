package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

func (s *Server) handleWallets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.wallets.Snapshot())
}

func (s *Server) handleRefreshWallets(w http.ResponseWriter, r *http.Request) {
	s.wallets.RefreshBalances(r.Context())
	writeJSON(w, http.StatusOK, s.wallets.Snapshot())
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	chain, err := domain.ParseChain(r.PathValue("chain"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.wallets.Connect(r.Context(), chain); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.wallets.State(chain))
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	chain, err := domain.ParseChain(r.PathValue("chain"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.wallets.Disconnect(r.Context(), chain); err != nil {
		s.log.Warn("Wallet teardown failed", "chain", chain, "error", err)
	}
	writeJSON(w, http.StatusOK, s.wallets.State(chain))
}

type balanceRequest struct {
	Balance string `json:"balance"`
}

// handleSetBalance overrides the displayed balance, e.g. after an external
// transfer the chain API has not indexed yet.
func (s *Server) handleSetBalance(w http.ResponseWriter, r *http.Request) {
	chain, err := domain.ParseChain(r.PathValue("chain"))
	if err != nil {
		writeError(w, err)
		return
	}
	var body balanceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	balance, err := decimal.NewFromString(body.Balance)
	if err != nil || balance.IsNegative() {
		writeError(w, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, body.Balance))
		return
	}
	if err := s.wallets.SetBalance(chain, balance.String()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.wallets.State(chain))
}
