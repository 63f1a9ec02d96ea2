package model

import "time"

type TradeSide string

const (
	TradeSideBuy  TradeSide = "buy"
	TradeSideSell TradeSide = "sell"
)

type TradeRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Symbol    string    `json:"symbol"`
	Side      TradeSide `json:"side"`
	Amount    float64   `json:"amount"`
	Price     float64   `json:"price"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationKind string

const (
	ConversationKindChat     ConversationKind = "chat"
	ConversationKindAnalysis ConversationKind = "analysis"
	ConversationKindSignal   ConversationKind = "signal"
)

// Conversation logs one AI relay round trip. UserID is empty for
// unauthenticated calls.
type Conversation struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id,omitempty"`
	Kind      ConversationKind `json:"kind"`
	Prompt    string           `json:"prompt"`
	Reply     string           `json:"reply"`
	CreatedAt time.Time        `json:"created_at"`
}

// PaymentResult is the normalized projection over the gateway's
// success and error response shapes.
type PaymentResult struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	CheckoutRequestID string `json:"checkoutRequestId,omitempty"`
	MerchantRequestID string `json:"merchantRequestId,omitempty"`
}
