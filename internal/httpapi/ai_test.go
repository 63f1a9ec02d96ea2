package httpapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/Muhsin-Gun/mobile-app/internal/ai"
	"github.com/Muhsin-Gun/mobile-app/internal/model"
	"github.com/Muhsin-Gun/mobile-app/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatRequiresMessage(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/ai/chat", map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatRelaysReply(t *testing.T) {
	e := newTestEnv(t)
	e.relay.reply = "BTC is consolidating."

	rec := e.do(t, http.MethodPost, "/api/ai/chat", map[string]any{
		"message": "what is BTC doing?",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "BTC is consolidating.", body["response"])

	// The round trip is logged even for anonymous callers.
	logs, err := e.store.ListConversations(context.Background(), store.ConversationFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ConversationKindChat, logs[0].Kind)
	assert.Empty(t, logs[0].UserID)
}

func TestSignalStructuredResult(t *testing.T) {
	e := newTestEnv(t)
	e.relay.extraction = ai.Extraction{
		Structured: map[string]any{"action": "buy", "confidence": float64(75)},
		Raw:        `{"action":"buy","confidence":75}`,
	}

	rec := e.do(t, http.MethodPost, "/api/ai/signal", map[string]any{
		"symbol": "BTCUSDT",
		"price":  65000,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	signal := body["signal"].(map[string]any)
	assert.Equal(t, "buy", signal["action"])
	_, hasAnalysis := body["analysis"]
	assert.False(t, hasAnalysis)
}

func TestSignalFallsBackToRawText(t *testing.T) {
	e := newTestEnv(t)
	e.relay.extraction = ai.Extraction{Raw: "no structured signal available"}

	rec := e.do(t, http.MethodPost, "/api/ai/signal", map[string]any{
		"symbol": "BTCUSDT",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "no structured signal available", body["analysis"])
	_, hasSignal := body["signal"]
	assert.False(t, hasSignal)
}

func TestAnalyzeRequiresSymbol(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/api/ai/analyze", map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryScopedToAuthenticatedUser(t *testing.T) {
	e := newTestEnv(t)
	_, token := registerUser(t, e, "hist@example.com", "Secret12!")

	e.relay.reply = "reply"
	rec := e.do(t, http.MethodPost, "/api/ai/chat", map[string]any{"message": "mine"}, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Anonymous conversation should not show up for the user.
	rec = e.do(t, http.MethodPost, "/api/ai/chat", map[string]any{"message": "anon"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/api/ai/history", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	convs := body["conversations"].([]any)
	require.Len(t, convs, 1)
	assert.Equal(t, "mine", convs[0].(map[string]any)["prompt"])
}

func TestHistoryRequiresAuth(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(t, http.MethodGet, "/api/ai/history", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
