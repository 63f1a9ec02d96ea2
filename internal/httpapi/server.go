package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Muhsin-Gun/mobile-app/internal/ai"
	"github.com/Muhsin-Gun/mobile-app/internal/config"
	"github.com/Muhsin-Gun/mobile-app/internal/model"
	"github.com/Muhsin-Gun/mobile-app/internal/store"
)

// PaymentGateway is what the front door needs from the M-Pesa client.
type PaymentGateway interface {
	InitiateSTKPush(ctx context.Context, phone string, amount int, reference, description, callbackURL string) (model.PaymentResult, error)
	QueryStatus(ctx context.Context, checkoutRequestID string) (json.RawMessage, error)
}

// AIRelay is what the front door needs from the completion client.
type AIRelay interface {
	Chat(ctx context.Context, message string, extra map[string]any) (string, error)
	Analyze(ctx context.Context, symbol, timeframe string, data map[string]any) (string, error)
	GenerateSignal(ctx context.Context, symbol string, price float64, indicators map[string]any) (ai.Extraction, error)
}

type Server struct {
	cfg      config.Config
	store    store.Store
	payments PaymentGateway
	relay    AIRelay
	tokens   tokenIssuer
	mux      *http.ServeMux
}

func NewServer(cfg config.Config, st store.Store, payments PaymentGateway, relay AIRelay) *Server {
	s := &Server{
		cfg:      cfg,
		store:    st,
		payments: payments,
		relay:    relay,
		tokens:   newTokenIssuer(cfg.JWTSecret),
		mux:      http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = metricsMiddleware(h)
	h = corsMiddleware(h)
	h = loggingMiddleware(h)
	h = requestIDMiddleware(h)
	h = recoverMiddleware(h)
	return h
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("GET /metrics", metricsHandler())

	s.mux.HandleFunc("POST /api/mpesa/stk-push", s.handleSTKPush)
	s.mux.HandleFunc("POST /api/mpesa/query", s.handleQuery)
	s.mux.HandleFunc("POST /api/mpesa/callback", s.handleCallback)

	s.mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /api/auth/me", s.requireAuth(s.handleMe))
	s.mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	s.mux.HandleFunc("GET /api/auth/google", s.handleGoogleLogin)
	s.mux.HandleFunc("GET /api/auth/google/callback", s.handleGoogleCallback)

	s.mux.HandleFunc("POST /api/ai/chat", s.handleAIChat)
	s.mux.HandleFunc("POST /api/ai/analyze", s.handleAIAnalyze)
	s.mux.HandleFunc("POST /api/ai/signal", s.handleAISignal)
	s.mux.HandleFunc("GET /api/ai/history", s.requireAuth(s.handleAIHistory))

	s.mux.HandleFunc("GET /api/trades", s.requireAuth(s.handleListTrades))
	s.mux.HandleFunc("POST /api/trades", s.requireAuth(s.handleCreateTrade))

	s.mux.HandleFunc("/", s.handleStatic)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
