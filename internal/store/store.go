package store

import (
	"context"
	"errors"

	"github.com/Muhsin-Gun/mobile-app/internal/model"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
)

// GoogleProfile is the projection of a verified Google identity used to
// upsert a user on OAuth login.
type GoogleProfile struct {
	GoogleID  string
	Email     string
	Name      string
	AvatarURL string
}

type ConversationFilter struct {
	UserID string
	Limit  int
}

type Store interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// UpsertGoogleUser keys on the Google id and falls back to
	// upsert-by-email when the email already belongs to a password account.
	UpsertGoogleUser(ctx context.Context, p GoogleProfile) (model.User, error)
	TouchLastLogin(ctx context.Context, userID string) error

	CreateTrade(ctx context.Context, tr model.TradeRecord) (model.TradeRecord, error)
	ListTrades(ctx context.Context, userID string) ([]model.TradeRecord, error)

	CreateConversation(ctx context.Context, c model.Conversation) (model.Conversation, error)
	ListConversations(ctx context.Context, f ConversationFilter) ([]model.Conversation, error)
}
