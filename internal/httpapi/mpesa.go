package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
)

type stkPushRequest struct {
	PhoneNumber      string          `json:"phoneNumber"`
	Amount           json.RawMessage `json:"amount"`
	AccountReference string          `json:"accountReference"`
	TransactionDesc  string          `json:"transactionDesc"`
	CallbackURL      string          `json:"callbackUrl"`
}

// coerceAmount accepts the amount as a JSON number or numeric string and
// truncates it to an integer. ok is false for anything non-numeric.
func coerceAmount(raw json.RawMessage) (int, bool) {
	sv := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if sv == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(sv, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

func (s *Server) handleSTKPush(w http.ResponseWriter, r *http.Request) {
	var req stkPushRequest
	parseOrDefault(r, &req)

	amount, ok := coerceAmount(req.Amount)
	if req.PhoneNumber == "" || !ok || amount <= 0 {
		writeError(w, http.StatusBadRequest, "Phone number and amount are required")
		return
	}

	reference := req.AccountReference
	if reference == "" {
		reference = "CrypTex"
	}
	description := req.TransactionDesc
	if description == "" {
		description = "Payment"
	}
	callbackURL := req.CallbackURL
	if callbackURL == "" {
		callbackURL = "https://example.com/callback"
	}

	result, err := s.payments.InitiateSTKPush(r.Context(), req.PhoneNumber, amount, reference, description, callbackURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Upstream rejections still come back as HTTP 200 with success=false.
	writeJSON(w, http.StatusOK, result)
}

type statusQueryRequest struct {
	CheckoutRequestID string `json:"checkoutRequestId"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req statusQueryRequest
	parseOrDefault(r, &req)

	if req.CheckoutRequestID == "" {
		writeError(w, http.StatusBadRequest, "CheckoutRequestId is required")
		return
	}

	raw, err := s.payments.QueryStatus(r.Context(), req.CheckoutRequestID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The query path relays the upstream body verbatim.
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// handleCallback acknowledges the gateway's asynchronous result webhook.
// The fixed body stops upstream redelivery; the payload is only logged,
// never correlated with the originating checkout request.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	parseOrDefault(r, &payload)

	b, _ := json.Marshal(payload)
	log.Printf("M-Pesa callback received: %s", b)

	writeJSON(w, http.StatusOK, map[string]any{
		"ResultCode": 0,
		"ResultDesc": "Success",
	})
}
