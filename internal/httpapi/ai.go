package httpapi

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Muhsin-Gun/mobile-app/internal/model"
	"github.com/Muhsin-Gun/mobile-app/internal/store"
)

type chatRequest struct {
	Message string         `json:"message"`
	Context map[string]any `json:"context"`
}

func (s *Server) handleAIChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	parseOrDefault(r, &req)

	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := s.relay.Chat(r.Context(), req.Message, req.Context)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logConversation(r, model.ConversationKindChat, req.Message, reply)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "response": reply})
}

type analyzeRequest struct {
	Symbol    string         `json:"symbol"`
	Timeframe string         `json:"timeframe"`
	Data      map[string]any `json:"data"`
}

func (s *Server) handleAIAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	parseOrDefault(r, &req)

	if req.Symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	analysis, err := s.relay.Analyze(r.Context(), req.Symbol, req.Timeframe, req.Data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logConversation(r, model.ConversationKindAnalysis, req.Symbol, analysis)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "analysis": analysis})
}

type signalRequest struct {
	Symbol     string         `json:"symbol"`
	Price      float64        `json:"price"`
	Indicators map[string]any `json:"indicators"`
}

func (s *Server) handleAISignal(w http.ResponseWriter, r *http.Request) {
	var req signalRequest
	parseOrDefault(r, &req)

	if req.Symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	ext, err := s.relay.GenerateSignal(r.Context(), req.Symbol, req.Price, req.Indicators)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logConversation(r, model.ConversationKindSignal, req.Symbol, ext.Raw)

	// Structured when extraction worked, raw text otherwise; extraction
	// failure is not an error.
	if ext.Structured != nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "signal": ext.Structured})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "analysis": ext.Raw})
}

func (s *Server) handleAIHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	list, err := s.store.ListConversations(r.Context(), store.ConversationFilter{
		UserID: userIDFromContext(r.Context()),
		Limit:  limit,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list conversations")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "conversations": list})
}

// logConversation records the round trip best-effort; relay responses are
// never blocked on the store.
func (s *Server) logConversation(r *http.Request, kind model.ConversationKind, prompt, reply string) {
	userID := ""
	if token := bearerToken(r); token != "" {
		userID, _ = s.tokens.parse(token)
	}

	_, err := s.store.CreateConversation(r.Context(), model.Conversation{
		UserID: userID,
		Kind:   kind,
		Prompt: prompt,
		Reply:  reply,
	})
	if err != nil {
		log.Printf("failed to log %s conversation: %v", kind, err)
	}
}
