// Standalone receiver for exercising the M-Pesa result webhook without
// running the full server. Logs whatever the gateway delivers and always
// acknowledges so the upstream does not retry.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /payment/mpesa/callback", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)

		b, _ := json.Marshal(payload)
		log.Printf("M-Pesa callback received: %s", b)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ResultCode": 0,
			"ResultDesc": "Accepted",
		})
	})

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Callback test server running"))
	})

	log.Printf("callback test server listening on :%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
