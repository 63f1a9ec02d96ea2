package mpesa

import (
	"encoding/base64"
	"testing"
	"time"
)

func TestTimestampFixedWidth(t *testing.T) {
	ts := Timestamp(time.Date(2024, 3, 7, 9, 5, 2, 0, time.UTC))
	if ts != "20240307090502" {
		t.Fatalf("Timestamp = %q, want 20240307090502", ts)
	}
	if len(ts) != 14 {
		t.Fatalf("Timestamp length = %d, want 14", len(ts))
	}
}

func TestPasswordDeterministic(t *testing.T) {
	a := Password("174379", "passkey", "20240307090502")
	b := Password("174379", "passkey", "20240307090502")
	if a != b {
		t.Fatalf("same inputs produced different passwords: %q vs %q", a, b)
	}

	c := Password("174379", "passkey", "20240307090503")
	if a == c {
		t.Fatal("differing timestamp produced identical password")
	}

	decoded, err := base64.StdEncoding.DecodeString(a)
	if err != nil {
		t.Fatalf("password is not valid base64: %v", err)
	}
	if string(decoded) != "174379passkey20240307090502" {
		t.Fatalf("decoded password = %q", decoded)
	}
}

func TestPasswordEmptySecrets(t *testing.T) {
	// Absent configuration still derives a digest; rejection is the
	// gateway's job after the round trip.
	got := Password("", "", "20240307090502")
	want := base64.StdEncoding.EncodeToString([]byte("20240307090502"))
	if got != want {
		t.Fatalf("Password with empty secrets = %q, want %q", got, want)
	}
}
