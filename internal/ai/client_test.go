package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeCompletions(t *testing.T, reply string, capture *completionRequest) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if capture != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		})
	})
	return httptest.NewServer(mux)
}

func testAIClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL, APIKey: "test-key", Model: "gpt-4o-mini"})
}

func TestChatWrapsSystemPromptAndContext(t *testing.T) {
	var got completionRequest
	srv := fakeCompletions(t, "hello trader", &got)
	defer srv.Close()

	reply, err := testAIClient(srv.URL).Chat(context.Background(), "what is BTC doing?", map[string]any{"portfolio": "BTC"})
	require.NoError(t, err)
	assert.Equal(t, "hello trader", reply)

	require.Len(t, got.Messages, 3)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Contains(t, got.Messages[1].Content, "Context:")
	assert.Equal(t, "what is BTC doing?", got.Messages[2].Content)
}

func TestChatWithoutContextOmitsExtraTurn(t *testing.T) {
	var got completionRequest
	srv := fakeCompletions(t, "ok", &got)
	defer srv.Close()

	_, err := testAIClient(srv.URL).Chat(context.Background(), "hi", nil)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
}

func TestGenerateSignalStructured(t *testing.T) {
	srv := fakeCompletions(t, `{"action":"buy","confidence":80}`, nil)
	defer srv.Close()

	got, err := testAIClient(srv.URL).GenerateSignal(context.Background(), "BTCUSDT", 65000, nil)
	require.NoError(t, err)
	require.NotNil(t, got.Structured)
	assert.Equal(t, "buy", got.Structured["action"])
}

func TestGenerateSignalFallsBackToRawText(t *testing.T) {
	srv := fakeCompletions(t, "I cannot produce a signal right now.", nil)
	defer srv.Close()

	got, err := testAIClient(srv.URL).GenerateSignal(context.Background(), "BTCUSDT", 0, nil)
	require.NoError(t, err)
	assert.Nil(t, got.Structured)
	assert.Equal(t, "I cannot produce a signal right now.", got.Raw)
}

func TestCompletionUpstreamErrorPropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": "rate limited"}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := testAIClient(srv.URL).Chat(context.Background(), "hi", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
