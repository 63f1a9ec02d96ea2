package memory

import (
	"context"
	"strings"
	"time"

	"github.com/Muhsin-Gun/mobile-app/internal/model"
	"github.com/Muhsin-Gun/mobile-app/internal/store"

	"github.com/google/uuid"
)

func (s *Store) CreateUser(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(u.Email))
	if email == "" {
		return model.User{}, store.ErrConflict
	}

	for _, existing := range s.users {
		if existing.Email == email {
			return model.User{}, store.ErrConflict
		}
	}

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.Email = email
	u.LastLoginAt = now
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) UpsertGoogleUser(_ context.Context, p store.GoogleProfile) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	email := strings.ToLower(strings.TrimSpace(p.Email))

	for id, u := range s.users {
		if u.GoogleID == p.GoogleID {
			u.Name = p.Name
			u.AvatarURL = p.AvatarURL
			u.LastLoginAt = now
			u.UpdatedAt = now
			s.users[id] = u
			return u, nil
		}
	}

	// Existing password account with the same email: attach the identity.
	for id, u := range s.users {
		if u.Email == email {
			u.GoogleID = p.GoogleID
			u.Name = p.Name
			u.AvatarURL = p.AvatarURL
			u.LastLoginAt = now
			u.UpdatedAt = now
			s.users[id] = u
			return u, nil
		}
	}

	u := model.User{
		ID:          uuid.NewString(),
		Email:       email,
		Name:        p.Name,
		AvatarURL:   p.AvatarURL,
		GoogleID:    p.GoogleID,
		LastLoginAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) TouchLastLogin(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now().UTC()
	u.LastLoginAt = now
	u.UpdatedAt = now
	s.users[userID] = u
	return nil
}
