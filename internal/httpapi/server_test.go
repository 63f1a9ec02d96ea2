package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Muhsin-Gun/mobile-app/internal/ai"
	"github.com/Muhsin-Gun/mobile-app/internal/config"
	"github.com/Muhsin-Gun/mobile-app/internal/model"
	"github.com/Muhsin-Gun/mobile-app/internal/store/memory"
)

type fakeGateway struct {
	pushCalls  int
	queryCalls int
	result     model.PaymentResult
	raw        json.RawMessage
	err        error
}

func (f *fakeGateway) InitiateSTKPush(_ context.Context, phone string, amount int, reference, description, callbackURL string) (model.PaymentResult, error) {
	f.pushCalls++
	return f.result, f.err
}

func (f *fakeGateway) QueryStatus(_ context.Context, checkoutRequestID string) (json.RawMessage, error) {
	f.queryCalls++
	return f.raw, f.err
}

type fakeRelay struct {
	reply      string
	extraction ai.Extraction
	err        error
}

func (f *fakeRelay) Chat(_ context.Context, message string, extra map[string]any) (string, error) {
	return f.reply, f.err
}

func (f *fakeRelay) Analyze(_ context.Context, symbol, timeframe string, data map[string]any) (string, error) {
	return f.reply, f.err
}

func (f *fakeRelay) GenerateSignal(_ context.Context, symbol string, price float64, indicators map[string]any) (ai.Extraction, error) {
	return f.extraction, f.err
}

type testEnv struct {
	server  *Server
	handler http.Handler
	gateway *fakeGateway
	relay   *fakeRelay
	store   *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := memory.NewStore()
	gw := &fakeGateway{}
	rl := &fakeRelay{}
	cfg := config.Config{
		JWTSecret:   "test-secret",
		StaticDir:   t.TempDir(),
		FrontendURL: "http://localhost:3000",
	}
	srv := NewServer(cfg, st, gw, rl)
	return &testEnv{
		server:  srv,
		handler: srv.Handler(),
		gateway: gw,
		relay:   rl,
		store:   st,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}
