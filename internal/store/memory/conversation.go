package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Muhsin-Gun/mobile-app/internal/model"
	"github.com/Muhsin-Gun/mobile-app/internal/store"

	"github.com/google/uuid"
)

func (s *Store) CreateConversation(_ context.Context, c model.Conversation) (model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	s.conversations[c.ID] = c
	return c, nil
}

func (s *Store) ListConversations(_ context.Context, f store.ConversationFilter) ([]model.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Conversation
	for _, c := range s.conversations {
		if f.UserID != "" && c.UserID != f.UserID {
			continue
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// PurgeConversationsBefore drops conversation logs older than the cutoff.
// Used by the retention loop in main.
func (s *Store) PurgeConversationsBefore(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, c := range s.conversations {
		if c.CreatedAt.Before(before) {
			delete(s.conversations, id)
			n++
		}
	}
	return n, nil
}
