package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Muhsin-Gun/mobile-app/internal/model"
	"github.com/Muhsin-Gun/mobile-app/internal/store"
)

type createTradeRequest struct {
	Symbol string  `json:"symbol"`
	Side   string  `json:"side"`
	Amount float64 `json:"amount"`
	Price  float64 `json:"price"`
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var req createTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	side := model.TradeSide(req.Side)
	if req.Symbol == "" || req.Amount <= 0 || (side != model.TradeSideBuy && side != model.TradeSideSell) {
		writeError(w, http.StatusBadRequest, "symbol, side (buy|sell) and a positive amount are required")
		return
	}

	trade, err := s.store.CreateTrade(r.Context(), model.TradeRecord{
		UserID: userIDFromContext(r.Context()),
		Symbol: req.Symbol,
		Side:   side,
		Amount: req.Amount,
		Price:  req.Price,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to record trade")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trade": trade})
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.ListTrades(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list trades")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trades": trades})
}
