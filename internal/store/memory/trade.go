package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/Muhsin-Gun/mobile-app/internal/model"
	"github.com/Muhsin-Gun/mobile-app/internal/store"

	"github.com/google/uuid"
)

func (s *Store) CreateTrade(_ context.Context, tr model.TradeRecord) (model.TradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(tr.UserID) == "" {
		return model.TradeRecord{}, store.ErrNotFound
	}
	if _, ok := s.users[tr.UserID]; !ok {
		return model.TradeRecord{}, store.ErrNotFound
	}

	tr.ID = uuid.NewString()
	if tr.Reference == "" {
		tr.Reference = uuid.NewString()
	}
	tr.CreatedAt = time.Now().UTC()
	s.trades[tr.ID] = tr
	return tr, nil
}

func (s *Store) ListTrades(_ context.Context, userID string) ([]model.TradeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.TradeRecord
	for _, tr := range s.trades {
		if tr.UserID == userID {
			out = append(out, tr)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
