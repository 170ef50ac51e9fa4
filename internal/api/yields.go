package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vietddude/stacksyield/internal/core/domain"
	"github.com/vietddude/stacksyield/internal/yield"
)

func (s *Server) handleYields(w http.ResponseWriter, r *http.Request) {
	protocols, err := s.yields.Fetch(r.Context())
	if err != nil {
		s.log.Error("Error in yields API", "error", err)
		writeJSON(w, http.StatusInternalServerError, yield.Response{Error: "Failed to fetch yield data"})
		return
	}
	writeJSON(w, http.StatusOK, yield.Response{
		Success:   true,
		Data:      protocols,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *Server) handleBestYield(w http.ResponseWriter, r *http.Request) {
	chain, err := chainParam(r, "chain", false)
	if err != nil {
		writeError(w, err)
		return
	}
	protocols, err := s.yields.Fetch(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	best, ok := yield.BestYield(protocols, chain)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no yield protocols available"})
		return
	}
	writeJSON(w, http.StatusOK, best)
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	chain, err := chainParam(r, "chain", true)
	if err != nil {
		writeError(w, err)
		return
	}
	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil || amount < 0 {
		writeError(w, fmt.Errorf("%w: %q", domain.ErrInvalidAmount, r.URL.Query().Get("amount")))
		return
	}
	protocols, err := s.yields.Fetch(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	rec, ok := yield.Recommend(*chain, amount, protocols, s.profit)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not enough protocols to compare"})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
