package postgres

import (
	"context"
	"time"

	"github.com/Muhsin-Gun/mobile-app/internal/model"
	"github.com/Muhsin-Gun/mobile-app/internal/store"
)

func (s *Store) CreateConversation(ctx context.Context, c model.Conversation) (model.Conversation, error) {
	var out model.Conversation
	err := s.pool.QueryRow(ctx, `
		insert into public.conversations (user_id, kind, prompt, reply)
		values (nullif($1, '')::uuid, $2, $3, $4)
		returning id::text, coalesce(user_id::text, ''), kind, prompt, reply, created_at
	`, c.UserID, string(c.Kind), c.Prompt, c.Reply).Scan(
		&out.ID,
		&out.UserID,
		&out.Kind,
		&out.Prompt,
		&out.Reply,
		&out.CreatedAt,
	)
	if err != nil {
		return model.Conversation{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) ListConversations(ctx context.Context, f store.ConversationFilter) ([]model.Conversation, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, `
		select id::text, coalesce(user_id::text, ''), kind, prompt, reply, created_at
		from public.conversations
		where ($1 = '' or user_id = nullif($1, '')::uuid)
		order by created_at desc
		limit $2
	`, f.UserID, limit)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	var out []model.Conversation
	for rows.Next() {
		var c model.Conversation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Kind, &c.Prompt, &c.Reply, &c.CreatedAt); err != nil {
			return nil, mapPgErr(err)
		}
		out = append(out, c)
	}
	return out, nil
}

// PurgeConversationsBefore drops conversation logs older than the cutoff.
func (s *Store) PurgeConversationsBefore(ctx context.Context, before time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, `
		delete from public.conversations
		where created_at < $1
	`, before)
	if err != nil {
		return 0, mapPgErr(err)
	}
	return int(tag.RowsAffected()), nil
}
