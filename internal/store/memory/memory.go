package memory

import (
	"sync"

	"github.com/Muhsin-Gun/mobile-app/internal/model"
)

// Store keeps everything behind one mutex. It backs local development
// (no DATABASE_URL) and the handler tests.
type Store struct {
	mu sync.Mutex

	users         map[string]model.User
	trades        map[string]model.TradeRecord
	conversations map[string]model.Conversation
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]model.User),
		trades:        make(map[string]model.TradeRecord),
		conversations: make(map[string]model.Conversation),
	}
}
