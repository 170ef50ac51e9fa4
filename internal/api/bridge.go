package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vietddude/stacksyield/internal/bridge"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

type bridgeRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

func (s *Server) handleBridge(w http.ResponseWriter, r *http.Request) {
	var body bridgeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	from, err := domain.ParseChain(body.From)
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := domain.ParseChain(body.To)
	if err != nil {
		writeError(w, err)
		return
	}

	tx, err := s.bridges.Bridge(r.Context(), bridge.Request{From: from, To: to, Amount: body.Amount})
	if err != nil {
		resp := errorResponse{Error: err.Error()}
		if tx.ID != "" {
			resp.Transaction = &tx
		}
		writeJSON(w, statusFor(err), resp)
		return
	}
	writeJSON(w, http.StatusAccepted, tx)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bridges.Tracker().Transactions())
}

func (s *Server) handleClearTransactions(w http.ResponseWriter, r *http.Request) {
	s.bridges.Tracker().Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	tx, ok := s.bridges.Tracker().Current()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no current transaction"})
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

type currentRequest struct {
	ID string `json:"id"`
}

// handleSetCurrent points the current transaction at a history entry. An
// empty id clears it.
func (s *Server) handleSetCurrent(w http.ResponseWriter, r *http.Request) {
	var body currentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	tracker := s.bridges.Tracker()
	if !tracker.SetCurrent(body.ID) {
		writeError(w, fmt.Errorf("%w: %s", bridge.ErrTransactionNotFound, body.ID))
		return
	}
	if body.ID == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	tx, _ := tracker.Current()
	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) handleRefreshTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.bridges.Refresh(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

type estimateResponse struct {
	From    domain.Chain `json:"from"`
	To      domain.Chain `json:"to"`
	Seconds int64        `json:"seconds"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	from, err := chainParam(r, "from", true)
	if err != nil {
		writeError(w, err)
		return
	}
	to, err := chainParam(r, "to", true)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, estimateResponse{From: *from, To: *to, Seconds: bridge.EstimateTime(*from, *to)})
}
