package mpesa

import (
	"encoding/base64"
	"time"
)

// Timestamp renders t in the fixed-width YYYYMMDDHHMMSS form the Daraja
// signature scheme expects. Validity windows are short, so callers must
// sample it immediately before use rather than cache it.
func Timestamp(t time.Time) string {
	return t.Format("20060102150405")
}

// Password derives the request password: base64(shortcode + passkey + timestamp).
// It is a pure function of its inputs; empty secrets still produce a digest
// and the gateway rejects it on the round trip.
func Password(shortcode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortcode + passkey + timestamp))
}
